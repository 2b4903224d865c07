package seed

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/testutil"
	"github.com/JeanCesca/app-Todoey/internal/todo"
)

func loadFixture(t *testing.T) *Document {
	t.Helper()
	f, err := os.Open("testdata/groceries.yaml")
	require.NoError(t, err)
	defer f.Close()

	doc, err := Load(f)
	require.NoError(t, err)
	return doc
}

func TestLoad_Fixture(t *testing.T) {
	doc := loadFixture(t)

	require.Len(t, doc.Categories, 3)
	assert.Equal(t, "Groceries", doc.Categories[0].Name)
	assert.Equal(t, []Item{{Title: "Milk"}, {Title: "Eggs", Done: true}}, doc.Categories[0].Items)
	assert.Empty(t, doc.Categories[2].Items)
}

func TestLoad_EmptyDocument(t *testing.T) {
	doc, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Categories)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "unknown field",
			input:    "categories:\n  - name: Home\n    colour: red\n",
			contains: "colour",
		},
		{
			name:     "typo at root",
			input:    "category:\n  - name: Home\n",
			contains: "category",
		},
		{
			name:     "blank title",
			input:    "categories:\n  - name: Home\n    items:\n      - title: \"  \"\n",
			contains: "title",
		},
		{
			name:     "missing name",
			input:    "categories:\n  - items:\n      - title: Sweep\n",
			contains: "name",
		},
		{
			name:     "malformed",
			input:    "categories: [",
			contains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, model.IsValidationError(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestApply_CreatesEverythingInOneCommit(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	cats := todo.NewCategoryStore(pc, nil)
	items := todo.NewItemStore(pc)

	res, err := Apply(ctx, loadFixture(t), cats, items)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 3, Items: 3}, res)
	assert.False(t, pc.HasChanges())

	loaded, err := todo.NewCategoryStore(pc, nil).LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	groceries, err := todo.NewItemStore(pc).LoadForCategory(ctx, loaded[0], "")
	require.NoError(t, err)
	require.Len(t, groceries, 2)
	assert.False(t, groceries[0].Done)
	assert.True(t, groceries[1].Done)
}

func TestApply_FailedCommitLeavesStorageEmpty(t *testing.T) {
	ctx := context.Background()
	pc := testutil.OpenStore(t)
	remove := testutil.FailOn(t, pc, "INSERT", "items")
	defer remove()

	cats := todo.NewCategoryStore(pc, nil)
	_, err := Apply(ctx, loadFixture(t), cats, todo.NewItemStore(pc))
	require.Error(t, err)
	assert.True(t, model.IsWriteError(err))

	loaded, err := todo.NewCategoryStore(pc, nil).LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestApply_InvalidDocumentRegistersNothing(t *testing.T) {
	long := strings.Repeat("x", model.MaxTextLength+1)
	tests := []struct {
		name string
		doc  *Document
		path string
	}{
		{"blank title", &Document{Categories: []Category{
			{Name: "Home"},
			{Name: "Work", Items: []Item{{Title: ""}}},
		}}, ""},
		{"title too long", &Document{Categories: []Category{
			{Name: "Home"},
			{Name: "Work", Items: []Item{{Title: "ok"}, {Title: long}}},
		}}, "categories.1.items.1.title"},
		{"name too long", &Document{Categories: []Category{
			{Name: long},
		}}, "categories.0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := testutil.OpenStore(t)

			_, err := Apply(context.Background(), tt.doc, todo.NewCategoryStore(pc, nil), todo.NewItemStore(pc))
			require.Error(t, err)
			assert.True(t, model.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.path)
			assert.False(t, pc.HasChanges())
		})
	}
}

func TestValidate_MaxLengthCountsRunesAfterTrim(t *testing.T) {
	title := "  " + strings.Repeat("é", model.MaxTextLength) + "  "
	doc := &Document{Categories: []Category{{Name: "Cafe", Items: []Item{{Title: title}}}}}

	assert.NoError(t, Validate(doc))
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := testutil.OpenStore(t)
	original := loadFixture(t)
	_, err := Apply(ctx, original, todo.NewCategoryStore(src, nil), todo.NewItemStore(src))
	require.NoError(t, err)

	exported, err := Export(ctx, src, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(original, exported); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exported))

	reloaded, err := Load(&buf)
	require.NoError(t, err)

	dst := testutil.OpenStore(t)
	_, err = Apply(ctx, reloaded, todo.NewCategoryStore(dst, nil), todo.NewItemStore(dst))
	require.NoError(t, err)

	again, err := Export(ctx, dst, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(original, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_SameNamedCategoriesKeepTheirItems(t *testing.T) {
	ctx := context.Background()
	src := testutil.OpenStore(t)
	original := &Document{Categories: []Category{
		{Name: "Home", Items: []Item{{Title: "Sweep"}}},
		{Name: "Home", Items: []Item{{Title: "Dishes", Done: true}}},
	}}

	byName := todo.NewItemStore(src, todo.WithScope(todo.ScopeByName))
	_, err := Apply(ctx, original, todo.NewCategoryStore(src, nil), byName)
	require.NoError(t, err)

	exported, err := Export(ctx, src, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(original, exported); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, exported))
	reloaded, err := Load(&buf)
	require.NoError(t, err)

	dst := testutil.OpenStore(t)
	_, err = Apply(ctx, reloaded, todo.NewCategoryStore(dst, nil), todo.NewItemStore(dst, todo.WithScope(todo.ScopeByName)))
	require.NoError(t, err)

	again, err := Export(ctx, dst, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(original, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Format(t *testing.T) {
	doc := &Document{Categories: []Category{
		{Name: "Groceries", Items: []Item{{Title: "Milk"}, {Title: "Eggs", Done: true}}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))

	want := `categories:
  - name: Groceries
    items:
      - title: Milk
      - title: Eggs
        done: true
`
	assert.Equal(t, want, buf.String())
}
