package store

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/JeanCesca/app-Todoey/internal/fold"
	"github.com/JeanCesca/app-Todoey/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema
// 1 - title_fold backfilled for rows written without it
const currentSchemaVersion = 1

// Context is the persistence context shared by the category and item stores.
// Construct one per process with Open and pass it to the stores.
type Context struct {
	db    *sqlx.DB
	log   *zap.Logger
	ids   model.IDGenerator
	clock *Clock

	mu      sync.Mutex
	pending pendingSet
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIDGenerator sets the identity generator. The default is UUIDv7.
func WithIDGenerator(g model.IDGenerator) Option {
	return func(c *Context) {
		if g != nil {
			c.ids = g
		}
	}
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically, and is safe to call
// on an existing database.
func Open(path string, opts ...Option) (*Context, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	var maxSeq int64
	if err := db.Get(&maxSeq, `
		SELECT COALESCE(MAX(seq), 0) FROM (
			SELECT seq FROM categories
			UNION ALL
			SELECT seq FROM items
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read sequence: %w", err)
	}

	c := &Context{
		db:    db,
		log:   zap.NewNop(),
		ids:   model.UUIDv7Generator{},
		clock: NewClockAt(maxSeq),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log.Debug("database opened", zap.String("path", path), zap.Int64("seq", maxSeq))
	return c, nil
}

// Close closes the database connection. Pending changes are discarded.
func (c *Context) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB returns the underlying database handle for direct queries.
// Use with caution - prefer Context methods when available.
func (c *Context) DB() *sqlx.DB {
	return c.db
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sqlx.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental migrations based on user_version.
func runMigrations(db *sqlx.DB) error {
	var version int
	if err := db.Get(&version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 fills title_fold for items that were written without it,
// e.g. by an external tool or a build that predates search folding.
// Folding happens in Go, so it cannot be a pure SQL UPDATE.
func migrateToV1(db *sqlx.DB) error {
	return refoldTitles(context.Background(), db, "WHERE title_fold = ''")
}

// refoldTitles recomputes title_fold for the selected items.
func refoldTitles(ctx context.Context, db *sqlx.DB, where string) error {
	type row struct {
		ID    string `db:"id"`
		Title string `db:"title"`
	}
	var rows []row
	if err := db.SelectContext(ctx, &rows, "SELECT id, title FROM items "+where); err != nil {
		return fmt.Errorf("refold titles: select: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("refold titles: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, "UPDATE items SET title_fold = ? WHERE id = ?", fold.String(r.Title), r.ID); err != nil {
			return fmt.Errorf("refold titles: update %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("refold titles: commit: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (c *Context) verifyPragma(name, expected string) error {
	var value string
	if err := c.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
