package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanCesca/app-Todoey/internal/queryir"
)

func TestCompile_AllCategories(t *testing.T) {
	sql, params, err := Compile(queryir.Categories())
	require.NoError(t, err)

	assert.Equal(t, "SELECT c.id, c.name, c.seq FROM categories c ORDER BY c.seq ASC, c.id COLLATE BINARY ASC", sql)
	assert.Empty(t, params)
}

func TestCompile_ItemsScopedByIdentity(t *testing.T) {
	sql, params, err := Compile(queryir.Items(queryir.CategoryIs{ID: "cat-1"}, queryir.SortCreation))
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM items i JOIN categories c ON c.id = i.category_id")
	assert.Contains(t, sql, "WHERE i.category_id = ?")
	assert.Contains(t, sql, "ORDER BY i.seq ASC")
	assert.NotContains(t, sql, "cat-1")
	assert.Equal(t, []any{"cat-1"}, params)
}

func TestCompile_ItemsScopedByName(t *testing.T) {
	sql, params, err := Compile(queryir.Items(queryir.CategoryNamed{Name: "Groceries"}, queryir.SortCreation))
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE c.name = ?")
	assert.Equal(t, []any{"Groceries"}, params)
}

func TestCompile_SearchFoldsNeedleAndSortsByTitle(t *testing.T) {
	f := queryir.Items(
		queryir.AllOf(queryir.CategoryIs{ID: "cat-1"}, queryir.TitleContains{Text: "CAFÉ"}),
		queryir.SortTitle,
	)

	sql, params, err := Compile(f)
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE i.category_id = ? AND instr(i.title_fold, ?) > 0")
	assert.Contains(t, sql, "ORDER BY i.title_fold COLLATE BINARY ASC, i.title COLLATE BINARY ASC, i.seq ASC")
	assert.Equal(t, []any{"cat-1", "cafe"}, params)
}

func TestCompile_NestedAnd(t *testing.T) {
	f := queryir.Items(queryir.And{Predicates: []queryir.Predicate{
		queryir.CategoryIs{ID: "cat-1"},
		queryir.And{Predicates: []queryir.Predicate{
			queryir.TitleContains{Text: "a"},
			queryir.TitleContains{Text: "b"},
		}},
	}}, queryir.SortCreation)

	sql, params, err := Compile(f)
	require.NoError(t, err)

	assert.Contains(t, sql, "i.category_id = ? AND (instr(i.title_fold, ?) > 0 AND instr(i.title_fold, ?) > 0)")
	assert.Equal(t, []any{"cat-1", "a", "b"}, params)
}

func TestCompile_EmptyAndIsAlwaysTrue(t *testing.T) {
	sql, params, err := Compile(queryir.Items(queryir.And{}, queryir.SortCreation))
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE 1 = 1")
	assert.Empty(t, params)
}

func TestCompile_OrderByMandatory(t *testing.T) {
	fetches := []queryir.Fetch{
		queryir.Categories(),
		queryir.Items(nil, queryir.SortCreation),
		queryir.Items(queryir.CategoryIs{ID: "x"}, queryir.SortTitle),
	}

	for _, f := range fetches {
		sql, _, err := Compile(f)
		require.NoError(t, err)
		assert.Contains(t, sql, " ORDER BY ")
		assert.Contains(t, sql, "COLLATE BINARY")
	}
}

func TestCompile_RejectsInvalidFetch(t *testing.T) {
	_, _, err := Compile(queryir.Fetch{Entity: queryir.EntityCategories, Filter: queryir.TitleContains{Text: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title filter is only valid for items")
}
