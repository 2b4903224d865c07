package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/queryir"
)

func TestOpenStore_PredictableIDs(t *testing.T) {
	pc := OpenStore(t)

	cat, items := Seed(t, pc, "Groceries", "Milk", "Eggs")

	assert.Equal(t, "id-1", cat.ID)
	require.Len(t, items, 2)
	assert.Equal(t, "id-2", items[0].ID)
	assert.Equal(t, "id-3", items[1].ID)
	assert.False(t, pc.HasChanges())
}

func TestFailOn_BlocksCommitUntilRemoved(t *testing.T) {
	pc := OpenStore(t)
	remove := FailOn(t, pc, "INSERT", "categories")

	_, err := pc.NewCategory("Work")
	require.NoError(t, err)

	err = pc.Commit(context.Background())
	require.Error(t, err)
	assert.True(t, model.IsWriteError(err))
	assert.True(t, pc.HasChanges())

	remove()
	require.NoError(t, pc.Commit(context.Background()))

	cats, err := pc.FetchCategories(context.Background(), queryir.Categories())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Work", cats[0].Name)
}
