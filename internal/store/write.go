package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/JeanCesca/app-Todoey/internal/fold"
	"github.com/JeanCesca/app-Todoey/internal/model"
)

// Commit flushes every pending change to the database in one transaction.
//
// Order within the transaction: category inserts, item inserts, item
// updates, item deletes, category deletes. Commit with nothing pending is a
// no-op.
//
// On failure the transaction is rolled back, the pending set is kept for a
// later retry, and a *model.Error with code STORAGE_WRITE is returned.
// In-memory entities keep whatever values the caller gave them.
func (c *Context) Commit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending.empty() {
		return nil
	}

	counts := c.pending.counts()
	if err := c.flush(ctx); err != nil {
		c.log.Debug("commit rolled back", zap.Error(err))
		return model.NewWriteError("commit", err)
	}

	c.pending = pendingSet{}
	c.log.Debug("commit",
		zap.Int("new_categories", counts.NewCategories),
		zap.Int("new_items", counts.NewItems),
		zap.Int("updated_items", counts.UpdatedItems),
		zap.Int("deleted_categories", counts.DeletedCategories),
		zap.Int("deleted_items", counts.DeletedItems),
	)
	return nil
}

// flush writes the pending set inside a transaction. Caller holds c.mu.
func (c *Context) flush(ctx context.Context) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := insertCategories(ctx, tx, c.pending.newCategories); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, c.pending.newItems); err != nil {
		return err
	}

	for _, item := range c.pending.updatedItems {
		if _, err := tx.ExecContext(ctx, `UPDATE items SET done = ? WHERE id = ?`, item.Done, item.ID); err != nil {
			return fmt.Errorf("update item %s: %w", item.ID, err)
		}
	}

	for _, id := range c.pending.deletedItems {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete item %s: %w", id, err)
		}
	}

	for _, id := range c.pending.deletedCategories {
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete category %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sqlx.Tx, cats []*model.Category) error {
	for _, cat := range cats {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, seq)
			VALUES (?, ?, ?)
		`, cat.ID, cat.Name, cat.Seq)
		if err != nil {
			return fmt.Errorf("insert category %s: %w", cat.ID, err)
		}
	}
	return nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, items []*model.Item) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, category_id, title, title_fold, done, seq)
			VALUES (?, ?, ?, ?, ?, ?)
		`, item.ID, item.CategoryID, item.Title, fold.String(item.Title), item.Done, item.Seq)
		if err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}
	return nil
}
