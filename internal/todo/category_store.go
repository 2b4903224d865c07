package todo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/queryir"
	"github.com/JeanCesca/app-Todoey/internal/store"
)

// CategoryStore loads, creates and deletes categories.
type CategoryStore struct {
	pc         *store.Context
	log        *zap.Logger
	categories []*model.Category
}

// NewCategoryStore creates a category store on the shared persistence
// context. A nil logger discards output.
func NewCategoryStore(pc *store.Context, log *zap.Logger) *CategoryStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryStore{pc: pc, log: log}
}

// LoadAll fetches every category in creation order.
// On failure the previous list is returned unchanged with the error.
func (s *CategoryStore) LoadAll(ctx context.Context) ([]*model.Category, error) {
	fetched, err := s.pc.FetchCategories(ctx, queryir.Categories())
	if err != nil {
		s.log.Error("error loading categories", zap.Error(err))
		return s.Categories(), err
	}

	cats := make([]*model.Category, len(fetched))
	for i := range fetched {
		cats[i] = &fetched[i]
	}
	s.categories = cats
	return s.Categories(), nil
}

// Create allocates a category and appends it to the working list.
// The name is trimmed and must not be blank. Call Commit to persist it.
func (s *CategoryStore) Create(name string) (*model.Category, error) {
	cat, err := s.pc.NewCategory(name)
	if err != nil {
		return nil, err
	}
	s.categories = append(s.categories, cat)
	return cat, nil
}

// Delete removes a category from the working list and registers its
// deletion; its items go with it. Call Commit to persist.
func (s *CategoryStore) Delete(cat *model.Category) {
	if cat == nil {
		return
	}
	out := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != cat.ID {
			out = append(out, c)
		}
	}
	s.categories = out
	s.pc.DeleteCategory(cat)
}

// Commit persists pending changes and returns the working list.
// A failure is logged and returned; the working list is left as is.
func (s *CategoryStore) Commit(ctx context.Context) ([]*model.Category, error) {
	if err := s.pc.Commit(ctx); err != nil {
		s.log.Error("error saving categories", zap.Error(err))
		return s.Categories(), err
	}
	return s.Categories(), nil
}

// Categories returns a copy of the working list.
func (s *CategoryStore) Categories() []*model.Category {
	out := make([]*model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Resolve finds a category in the working list by id, then by exact name,
// then by case-insensitive name. A name shared by several categories is an
// AMBIGUOUS error; no match is NOT_FOUND.
func (s *CategoryStore) Resolve(ref string) (*model.Category, error) {
	ref = strings.TrimSpace(ref)
	for _, c := range s.categories {
		if c.ID == ref {
			return c, nil
		}
	}

	matchers := []func(string) bool{
		func(name string) bool { return name == ref },
		func(name string) bool { return strings.EqualFold(name, ref) },
	}
	for _, match := range matchers {
		var found []*model.Category
		for _, c := range s.categories {
			if match(c.Name) {
				found = append(found, c)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return nil, model.NewAmbiguousError("category", ref, len(found))
		}
	}

	return nil, model.NewNotFoundError("category", ref)
}
