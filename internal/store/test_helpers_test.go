package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JeanCesca/app-Todoey/internal/model"
)

// createTestContext opens a fresh database with predictable identities.
func createTestContext(t *testing.T) *Context {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	c, err := Open(path, WithIDGenerator(model.NewSequenceGenerator("id")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// failOn installs a trigger that aborts the given statement kind on a table.
// Used to make Commit fail deterministically.
func failOn(t *testing.T, c *Context, event, table string) (remove func()) {
	t.Helper()
	name := "fail_" + event + "_" + table
	_, err := c.DB().Exec(`CREATE TRIGGER ` + name + ` BEFORE ` + event + ` ON ` + table + `
		BEGIN SELECT RAISE(ABORT, 'injected failure'); END`)
	require.NoError(t, err)
	return func() {
		_, err := c.DB().Exec(`DROP TRIGGER ` + name)
		require.NoError(t, err)
	}
}

// mustCommit commits and fails the test on error.
func mustCommit(t *testing.T, c *Context) {
	t.Helper()
	require.NoError(t, c.Commit(context.Background()))
}
