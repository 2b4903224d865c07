package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/testutil"
)

func names(cats []*model.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Name
	}
	return out
}

func TestCategoryStore_CreateCommitLoad(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	s := NewCategoryStore(pc, nil)

	prior := map[string]bool{}
	for _, name := range []string{"Groceries", "Work"} {
		cat, err := s.Create(name)
		require.NoError(t, err)
		assert.False(t, prior[cat.ID], "identity reused: %s", cat.ID)
		prior[cat.ID] = true

		_, err = s.Commit(ctx)
		require.NoError(t, err)
	}

	// A fresh store sees exactly what was committed.
	loaded, err := NewCategoryStore(pc, nil).LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Work"}, names(loaded))
	for _, c := range loaded {
		assert.True(t, prior[c.ID])
	}
}

func TestCategoryStore_CreateRejectsBlank(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	s := NewCategoryStore(pc, nil)

	_, err := s.Create("  ")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
	assert.Empty(t, s.Categories())
	assert.False(t, pc.HasChanges())

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCategoryStore_CommitReturnsSnapshot(t *testing.T) {
	pc := testutil.OpenStore(t)
	s := NewCategoryStore(pc, nil)

	_, err := s.Create("Home")
	require.NoError(t, err)

	snapshot, err := s.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Home"}, names(snapshot))
}

func TestCategoryStore_CommitFailureKeepsWorkingList(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	s := NewCategoryStore(pc, nil)
	remove := testutil.FailOn(t, pc, "INSERT", "categories")

	_, err := s.Create("Home")
	require.NoError(t, err)

	snapshot, err := s.Commit(ctx)
	require.Error(t, err)
	assert.True(t, model.IsWriteError(err))
	assert.Equal(t, []string{"Home"}, names(snapshot))
	assert.True(t, pc.HasChanges())

	remove()
	_, err = s.Commit(ctx)
	require.NoError(t, err)

	loaded, err := NewCategoryStore(pc, nil).LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Home"}, names(loaded))
}

func TestCategoryStore_DeleteRemovesItems(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	groceries, _ := testutil.Seed(t, pc, "Groceries", "Milk", "Eggs")
	work, _ := testutil.Seed(t, pc, "Work", "Report")

	s := NewCategoryStore(pc, nil)
	_, err := s.LoadAll(ctx)
	require.NoError(t, err)

	s.Delete(groceries)
	snapshot, err := s.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Work"}, names(snapshot))

	items := NewItemStore(pc)
	got, err := items.LoadForCategory(ctx, groceries, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = items.LoadForCategory(ctx, work, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCategoryStore_LoadFailureReturnsPreviousList(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	testutil.Seed(t, pc, "Groceries")

	s := NewCategoryStore(pc, nil)
	before, err := s.LoadAll(ctx)
	require.NoError(t, err)

	require.NoError(t, pc.Close())

	after, err := s.LoadAll(ctx)
	require.Error(t, err)
	assert.True(t, model.IsReadError(err))
	assert.Equal(t, names(before), names(after))
}

func TestCategoryStore_Resolve(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	groceries, _ := testutil.Seed(t, pc, "Groceries")
	testutil.Seed(t, pc, "Work")
	testutil.Seed(t, pc, "Work")

	s := NewCategoryStore(pc, nil)
	_, err := s.LoadAll(ctx)
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  string
		want string
		code model.ErrorCode
	}{
		{name: "by id", ref: groceries.ID, want: "Groceries"},
		{name: "by name", ref: "Groceries", want: "Groceries"},
		{name: "case-insensitive name", ref: "  groceries ", want: "Groceries"},
		{name: "duplicate name", ref: "Work", code: model.ErrCodeAmbiguous},
		{name: "unknown", ref: "Garden", code: model.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.code != "" {
				require.Error(t, err)
				assert.True(t, model.HasCode(err, tt.code), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}
