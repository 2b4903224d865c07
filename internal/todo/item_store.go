package todo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/JeanCesca/app-Todoey/internal/fold"
	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/queryir"
	"github.com/JeanCesca/app-Todoey/internal/store"
)

// Scope selects how an item list is tied to its category.
type Scope string

const (
	// ScopeByID matches items by their parent's identity.
	ScopeByID Scope = "id"

	// ScopeByName matches items by their parent's name. Two categories with
	// the same name share one item list under this scope.
	ScopeByName Scope = "name"
)

// ViewState is the lifecycle state of an item list view.
type ViewState int

const (
	// Unloaded: no load has succeeded yet.
	Unloaded ViewState = iota

	// Loaded: the list reflects the last successful load plus local
	// mutations since.
	Loaded
)

// String returns the state name.
func (s ViewState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

// ItemStore holds the item list of one category view.
type ItemStore struct {
	pc    *store.Context
	log   *zap.Logger
	scope Scope

	category *model.Category
	filter   string
	items    []*model.Item
	state    ViewState
}

// ItemStoreOption configures an ItemStore.
type ItemStoreOption func(*ItemStore)

// WithScope sets how items are tied to the category. Default ScopeByID.
func WithScope(scope Scope) ItemStoreOption {
	return func(s *ItemStore) {
		if scope == ScopeByName {
			s.scope = ScopeByName
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(log *zap.Logger) ItemStoreOption {
	return func(s *ItemStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewItemStore creates an unloaded item list view.
func NewItemStore(pc *store.Context, opts ...ItemStoreOption) *ItemStore {
	s := &ItemStore{pc: pc, log: zap.NewNop(), scope: ScopeByID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadForCategory loads the items of category, narrowed by textFilter when
// it is not blank.
//
// The category predicate is always applied. A text filter adds a case- and
// diacritic-insensitive title substring predicate, and only then are results
// sorted alphabetically by title; unfiltered loads keep creation order.
//
// On success the view switches to the category and becomes Loaded. On
// failure the previous list is returned unchanged with the error and the
// view state does not change.
func (s *ItemStore) LoadForCategory(ctx context.Context, category *model.Category, textFilter string) ([]*model.Item, error) {
	if category == nil {
		return s.Items(), model.NewValidationError("category", "no category selected")
	}

	fetch := s.fetchFor(category, textFilter)
	fetched, err := s.pc.FetchItems(ctx, fetch)
	if err != nil {
		s.log.Error("error fetching items",
			zap.String("category_id", category.ID),
			zap.String("filter", textFilter),
			zap.Error(err),
		)
		return s.Items(), err
	}

	items := make([]*model.Item, len(fetched))
	for i := range fetched {
		items[i] = &fetched[i]
	}
	s.category = category
	s.filter = normalizeFilter(textFilter)
	s.items = items
	s.state = Loaded
	return s.Items(), nil
}

// fetchFor builds the item fetch for a category and optional text filter.
func (s *ItemStore) fetchFor(category *model.Category, textFilter string) queryir.Fetch {
	var scope queryir.Predicate = queryir.CategoryIs{ID: category.ID}
	if s.scope == ScopeByName {
		scope = queryir.CategoryNamed{Name: category.Name}
	}

	textFilter = normalizeFilter(textFilter)
	if textFilter == "" {
		return queryir.Items(scope, queryir.SortCreation)
	}
	return queryir.Items(
		queryir.AllOf(scope, queryir.TitleContains{Text: textFilter}),
		queryir.SortTitle,
	)
}

// normalizeFilter trims text and drops it when it folds to nothing, such as
// a lone combining mark.
func normalizeFilter(text string) string {
	if fold.IsEmpty(text) {
		return ""
	}
	return strings.TrimSpace(text)
}

// Search is the search-bar entry point for the current category.
// Blank text reloads the full, unfiltered list; anything else runs the
// filtered, alphabetically sorted load.
func (s *ItemStore) Search(ctx context.Context, text string) ([]*model.Item, error) {
	if s.category == nil {
		return s.Items(), model.NewValidationError("category", "no category selected")
	}
	return s.LoadForCategory(ctx, s.category, text)
}

// Reload repeats the last load (same category and filter).
func (s *ItemStore) Reload(ctx context.Context) ([]*model.Item, error) {
	return s.Search(ctx, s.filter)
}

// Create allocates an item under category with Done = false. The title is
// trimmed and must not be blank. The item is appended to the list unless a
// search filter is active that its title does not match. Call Commit to
// persist it.
func (s *ItemStore) Create(title string, category *model.Category) (*model.Item, error) {
	if category == nil {
		return nil, model.NewValidationError("category", "no category selected")
	}
	item, err := s.pc.NewItem(category.ID, title)
	if err != nil {
		return nil, err
	}
	if fold.Contains(item.Title, s.filter) {
		s.items = append(s.items, item)
	}
	return item, nil
}

// ToggleDone flips the item's completion flag and registers the change.
// Call Commit to persist it.
func (s *ItemStore) ToggleDone(item *model.Item) {
	if item == nil {
		return
	}
	item.Toggle()
	s.pc.MarkUpdated(item)
}

// Delete removes an item from the list and registers its deletion.
// Call Commit to persist.
func (s *ItemStore) Delete(item *model.Item) {
	if item == nil {
		return
	}
	out := s.items[:0]
	for _, it := range s.items {
		if it.ID != item.ID {
			out = append(out, it)
		}
	}
	s.items = out
	s.pc.DeleteItem(item)
}

// Commit persists pending changes and returns the list.
// A failure is logged and returned; the list is left as is. While a search
// filter is active the list is reloaded after a successful commit so new
// items take their place in title order.
func (s *ItemStore) Commit(ctx context.Context) ([]*model.Item, error) {
	if err := s.pc.Commit(ctx); err != nil {
		fields := []zap.Field{zap.Error(err)}
		if s.category != nil {
			fields = append(fields, zap.String("category_id", s.category.ID))
		}
		s.log.Error("error saving context", fields...)
		return s.Items(), err
	}
	if s.filter != "" && s.category != nil {
		return s.Reload(ctx)
	}
	return s.Items(), nil
}

// Find returns the listed item with the given id.
func (s *ItemStore) Find(id string) (*model.Item, error) {
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, model.NewNotFoundError("item", id)
}

// Items returns a copy of the list.
func (s *ItemStore) Items() []*model.Item {
	out := make([]*model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Category returns the category of the last successful load, or nil.
func (s *ItemStore) Category() *model.Category {
	return s.category
}

// Filter returns the text filter of the last successful load.
func (s *ItemStore) Filter() string {
	return s.filter
}

// State returns the view state.
func (s *ItemStore) State() ViewState {
	return s.state
}
