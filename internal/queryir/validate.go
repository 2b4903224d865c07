package queryir

import (
	"fmt"
	"strings"

	"github.com/JeanCesca/app-Todoey/internal/fold"
)

// Validate checks that a fetch is well formed for its entity.
//
// Rules:
//  1. Entity must be categories or items
//  2. TitleContains and SortTitle only apply to items
//  3. Category scopes must carry a non-empty id or name
//  4. TitleContains text must not fold to blank (callers drop empty filters)
//
// All violations are reported together.
func Validate(f Fetch) error {
	v := &validator{entity: f.Entity}

	switch f.Entity {
	case EntityCategories, EntityItems:
	default:
		v.addProblem("unknown entity %q", f.Entity)
	}

	if f.Sort == SortTitle && f.Entity != EntityItems {
		v.addProblem("sort by title is only valid for items")
	}
	if f.Sort != SortCreation && f.Sort != SortTitle {
		v.addProblem("unknown sort key %d", int(f.Sort))
	}

	v.validatePredicate(f.Filter)

	if len(v.problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid %s fetch: %s", f.Entity, strings.Join(v.problems, "; "))
}

type validator struct {
	entity   Entity
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validatePredicate(p Predicate) {
	if p == nil {
		return
	}

	switch pred := p.(type) {
	case CategoryIs:
		if pred.ID == "" {
			v.addProblem("category scope has empty id")
		}
	case CategoryNamed:
		if pred.Name == "" {
			v.addProblem("category scope has empty name")
		}
	case TitleContains:
		if v.entity != EntityItems {
			v.addProblem("title filter is only valid for items")
		}
		if fold.IsEmpty(pred.Text) {
			v.addProblem("title filter is blank")
		}
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addProblem("unsupported predicate %T", p)
	}
}
