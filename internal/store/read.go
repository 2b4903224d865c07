package store

import (
	"context"
	"fmt"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/queryir"
	"github.com/JeanCesca/app-Todoey/internal/querysql"
)

type categoryRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Seq  int64  `db:"seq"`
}

type itemRow struct {
	ID         string `db:"id"`
	CategoryID string `db:"category_id"`
	Title      string `db:"title"`
	Done       bool   `db:"done"`
	Seq        int64  `db:"seq"`
}

// FetchCategories runs a category fetch against durable storage.
//
// Returns a snapshot; later changes are not reflected in it. On failure the
// result is an empty (non-nil) slice and a STORAGE_READ error.
func (c *Context) FetchCategories(ctx context.Context, f queryir.Fetch) ([]model.Category, error) {
	if f.Entity != queryir.EntityCategories {
		return []model.Category{}, model.NewReadError("fetch categories", fmt.Errorf("fetch is for %s", f.Entity))
	}

	query, params, err := querysql.Compile(f)
	if err != nil {
		return []model.Category{}, model.NewReadError("fetch categories", err)
	}

	var rows []categoryRow
	if err := c.db.SelectContext(ctx, &rows, query, params...); err != nil {
		return []model.Category{}, model.NewReadError("fetch categories", err)
	}

	out := make([]model.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Category{ID: r.ID, Name: r.Name, Seq: r.Seq})
	}
	return out, nil
}

// FetchItems runs an item fetch against durable storage.
//
// Returns a snapshot; later changes are not reflected in it. On failure the
// result is an empty (non-nil) slice and a STORAGE_READ error.
func (c *Context) FetchItems(ctx context.Context, f queryir.Fetch) ([]model.Item, error) {
	if f.Entity != queryir.EntityItems {
		return []model.Item{}, model.NewReadError("fetch items", fmt.Errorf("fetch is for %s", f.Entity))
	}

	query, params, err := querysql.Compile(f)
	if err != nil {
		return []model.Item{}, model.NewReadError("fetch items", err)
	}

	var rows []itemRow
	if err := c.db.SelectContext(ctx, &rows, query, params...); err != nil {
		return []model.Item{}, model.NewReadError("fetch items", err)
	}

	out := make([]model.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Item{
			ID:         r.ID,
			CategoryID: r.CategoryID,
			Title:      r.Title,
			Done:       r.Done,
			Seq:        r.Seq,
		})
	}
	return out, nil
}
