package store

import (
	"go.uber.org/zap"

	"github.com/JeanCesca/app-Todoey/internal/model"
)

// pendingSet holds changes registered since the last successful commit.
// Entities are held by pointer so a commit writes their current values.
type pendingSet struct {
	newCategories     []*model.Category
	newItems          []*model.Item
	updatedItems      []*model.Item
	deletedCategories []string
	deletedItems      []string
}

func (p *pendingSet) empty() bool {
	return len(p.newCategories) == 0 &&
		len(p.newItems) == 0 &&
		len(p.updatedItems) == 0 &&
		len(p.deletedCategories) == 0 &&
		len(p.deletedItems) == 0
}

// PendingCounts summarizes the pending set.
type PendingCounts struct {
	NewCategories     int
	NewItems          int
	UpdatedItems      int
	DeletedCategories int
	DeletedItems      int
}

func (p *pendingSet) counts() PendingCounts {
	return PendingCounts{
		NewCategories:     len(p.newCategories),
		NewItems:          len(p.newItems),
		UpdatedItems:      len(p.updatedItems),
		DeletedCategories: len(p.deletedCategories),
		DeletedItems:      len(p.deletedItems),
	}
}

// NewCategory allocates a category with a fresh identity and registers it
// for insertion. The name is trimmed; a blank name is a validation error and
// nothing is registered.
func (c *Context) NewCategory(name string) (*model.Category, error) {
	name, err := model.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cat := &model.Category{
		ID:   c.ids.NewID(),
		Name: name,
		Seq:  c.clock.Next(),
	}
	c.pending.newCategories = append(c.pending.newCategories, cat)
	c.log.Debug("category created", zap.String("id", cat.ID), zap.Int64("seq", cat.Seq))
	return cat, nil
}

// NewItem allocates an item under the given category with Done = false and
// registers it for insertion. A blank title or empty category id is a
// validation error and nothing is registered.
func (c *Context) NewItem(categoryID, title string) (*model.Item, error) {
	title, err := model.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return nil, model.NewValidationError("category", "item must belong to a category")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item := &model.Item{
		ID:         c.ids.NewID(),
		CategoryID: categoryID,
		Title:      title,
		Done:       false,
		Seq:        c.clock.Next(),
	}
	c.pending.newItems = append(c.pending.newItems, item)
	c.log.Debug("item created",
		zap.String("id", item.ID),
		zap.String("category_id", categoryID),
		zap.Int64("seq", item.Seq),
	)
	return item, nil
}

// MarkUpdated registers an item whose Done flag changed.
// Items still pending insertion need no update; the insert writes their
// current value.
func (c *Context) MarkUpdated(item *model.Item) {
	if item == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pending := range c.pending.newItems {
		if pending.ID == item.ID {
			return
		}
	}
	for i, pending := range c.pending.updatedItems {
		if pending.ID == item.ID {
			c.pending.updatedItems[i] = item
			return
		}
	}
	c.pending.updatedItems = append(c.pending.updatedItems, item)
}

// DeleteItem registers an item for deletion. An item that was never
// committed is simply dropped from the pending inserts.
func (c *Context) DeleteItem(item *model.Item) {
	if item == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending.updatedItems = removeItem(c.pending.updatedItems, item.ID)

	before := len(c.pending.newItems)
	c.pending.newItems = removeItem(c.pending.newItems, item.ID)
	if len(c.pending.newItems) < before {
		return
	}
	c.pending.deletedItems = appendUnique(c.pending.deletedItems, item.ID)
}

// DeleteCategory registers a category for deletion. Its stored items are
// removed by the database cascade; its pending items are dropped.
func (c *Context) DeleteCategory(cat *model.Category) {
	if cat == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending.newItems = removeItemsOf(c.pending.newItems, cat.ID)
	c.pending.updatedItems = removeItemsOf(c.pending.updatedItems, cat.ID)

	for i, pending := range c.pending.newCategories {
		if pending.ID == cat.ID {
			c.pending.newCategories = append(c.pending.newCategories[:i], c.pending.newCategories[i+1:]...)
			return
		}
	}
	c.pending.deletedCategories = appendUnique(c.pending.deletedCategories, cat.ID)
}

// HasChanges reports whether anything is waiting for Commit.
func (c *Context) HasChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.pending.empty()
}

// Pending returns a summary of the pending set.
func (c *Context) Pending() PendingCounts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.counts()
}

func removeItem(items []*model.Item, id string) []*model.Item {
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func removeItemsOf(items []*model.Item, categoryID string) []*model.Item {
	out := items[:0]
	for _, it := range items {
		if it.CategoryID != categoryID {
			out = append(out, it)
		}
	}
	return out
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
