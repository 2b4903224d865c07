// Package testutil provides shared helpers for tests that need a real
// database.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/store"
)

// OpenStore opens a fresh database in a temp dir with predictable
// identities ("id-1", "id-2", ...). The database is closed on cleanup.
func OpenStore(t testing.TB, opts ...store.Option) *store.Context {
	t.Helper()
	return OpenStoreAt(t, filepath.Join(t.TempDir(), "todoey.db"), opts...)
}

// OpenStoreAt opens the database at path with predictable identities.
func OpenStoreAt(t testing.TB, path string, opts ...store.Option) *store.Context {
	t.Helper()
	opts = append([]store.Option{store.WithIDGenerator(model.NewSequenceGenerator("id"))}, opts...)
	pc, err := store.Open(path, opts...)
	require.NoError(t, err, "open store")
	t.Cleanup(func() { pc.Close() })
	return pc
}

// FailOn installs a trigger that aborts every event ("INSERT", "UPDATE" or
// "DELETE") on table, so the next commit touching it fails. The returned
// func removes the trigger.
func FailOn(t testing.TB, pc *store.Context, event, table string) (remove func()) {
	t.Helper()
	name := "fail_" + event + "_" + table
	_, err := pc.DB().Exec(`CREATE TRIGGER ` + name + ` BEFORE ` + event + ` ON ` + table + `
		BEGIN SELECT RAISE(ABORT, 'injected failure'); END`)
	require.NoError(t, err)
	return func() {
		_, err := pc.DB().Exec(`DROP TRIGGER IF EXISTS ` + name)
		require.NoError(t, err)
	}
}

// Seed commits one category with the given item titles and returns them.
func Seed(t testing.TB, pc *store.Context, category string, titles ...string) (*model.Category, []*model.Item) {
	t.Helper()
	cat, err := pc.NewCategory(category)
	require.NoError(t, err)

	items := make([]*model.Item, 0, len(titles))
	for _, title := range titles {
		item, err := pc.NewItem(cat.ID, title)
		require.NoError(t, err)
		items = append(items, item)
	}
	require.NoError(t, pc.Commit(context.Background()))
	return cat, items
}
