package querysql

import (
	"fmt"
	"strings"

	"github.com/JeanCesca/app-Todoey/internal/fold"
	"github.com/JeanCesca/app-Todoey/internal/queryir"
)

// Column lists selected for each entity. The store scans rows into structs
// whose db tags match these names.
const (
	categoryColumns = "c.id, c.name, c.seq"
	itemColumns     = "i.id, i.category_id, i.title, i.done, i.seq"
)

// Compile converts a fetch to parameterized SQL for SQLite.
// Returns (sql, params, error).
//
// Every statement carries an ORDER BY with a unique tiebreaker so repeated
// loads of unchanged data return rows in the same order. Values are always
// bound as parameters, never interpolated.
//
// Item fetches always join their parent category; an item without a
// category can never appear in a result.
func Compile(f queryir.Fetch) (string, []any, error) {
	if err := queryir.Validate(f); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	switch f.Entity {
	case queryir.EntityCategories:
		b.WriteString("SELECT " + categoryColumns + " FROM categories c")
	case queryir.EntityItems:
		b.WriteString("SELECT " + itemColumns + " FROM items i JOIN categories c ON c.id = i.category_id")
	}

	var params []any
	if f.Filter != nil {
		where, p, err := compilePredicate(f.Entity, f.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		b.WriteString(" WHERE " + where)
		params = p
	}

	b.WriteString(" ORDER BY " + orderBy(f))

	return b.String(), params, nil
}

// orderBy returns the ORDER BY terms for a fetch.
// Title order compares folded titles first so "apple" and "Apple" sort
// together, then the raw title and creation order break ties.
func orderBy(f queryir.Fetch) string {
	if f.Entity == queryir.EntityCategories {
		return "c.seq ASC, c.id COLLATE BINARY ASC"
	}
	if f.Sort == queryir.SortTitle {
		return "i.title_fold COLLATE BINARY ASC, i.title COLLATE BINARY ASC, i.seq ASC"
	}
	return "i.seq ASC, i.id COLLATE BINARY ASC"
}

// compilePredicate compiles a predicate to a WHERE fragment.
func compilePredicate(entity queryir.Entity, p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.CategoryIs:
		if entity == queryir.EntityItems {
			return "i.category_id = ?", []any{pred.ID}, nil
		}
		return "c.id = ?", []any{pred.ID}, nil
	case queryir.CategoryNamed:
		return "c.name = ?", []any{pred.Name}, nil
	case queryir.TitleContains:
		return "instr(i.title_fold, ?) > 0", []any{fold.String(pred.Text)}, nil
	case queryir.And:
		return compileAnd(entity, pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileAnd joins sub-predicates with AND. Empty is always true.
func compileAnd(entity queryir.Entity, and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, sub := range and.Predicates {
		sql, p, err := compilePredicate(entity, sub)
		if err != nil {
			return "", nil, err
		}
		if _, nested := sub.(queryir.And); nested {
			sql = "(" + sql + ")"
		}
		parts = append(parts, sql)
		params = append(params, p...)
	}

	return strings.Join(parts, " AND "), params, nil
}
