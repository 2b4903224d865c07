// Package seed imports and exports category/item lists as YAML documents.
//
// A document looks like:
//
//	categories:
//	  - name: Groceries
//	    items:
//	      - title: Milk
//	      - title: Eggs
//	        done: true
//
// Documents are decoded strictly and then checked against an embedded CUE
// schema before anything touches the stores.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	goerrors "errors"
	"fmt"
	"io"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/JeanCesca/app-Todoey/internal/model"
	"github.com/JeanCesca/app-Todoey/internal/store"
	"github.com/JeanCesca/app-Todoey/internal/todo"
)

//go:embed schema.cue
var schemaCUE string

// Document is the seed file root.
type Document struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Category is one category and its items, in list order.
type Category struct {
	Name  string `yaml:"name" json:"name"`
	Items []Item `yaml:"items,omitempty" json:"items,omitempty"`
}

// Item is one to-do entry.
type Item struct {
	Title string `yaml:"title" json:"title"`
	Done  bool   `yaml:"done,omitempty" json:"done"`
}

// Result counts what Apply created.
type Result struct {
	Categories int `json:"categories"`
	Items      int `json:"items"`
}

// Load decodes a YAML document from r and validates it.
// Unknown fields are rejected.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}

	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && err != io.EOF {
		return nil, model.NewValidationError("seed", fmt.Sprintf("failed to parse YAML: %v", err))
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks a document against the embedded schema, then applies the
// same name and title rules the stores enforce.
func Validate(doc *Document) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile seed schema: %w", err)
	}

	value := ctx.Encode(normalized(doc))
	if err := value.Err(); err != nil {
		return model.NewValidationError("seed", formatCUEError(err))
	}

	unified := schema.LookupPath(cue.ParsePath("#Document")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return model.NewValidationError("seed", formatCUEError(err))
	}
	return checkText(doc)
}

// checkText runs every name and title through the model's normalizers so a
// document that passes never fails half way through Apply.
func checkText(doc *Document) error {
	for i, c := range doc.Categories {
		if _, err := model.NormalizeName(c.Name); err != nil {
			return textError(fmt.Sprintf("categories.%d.name", i), err)
		}
		for j, it := range c.Items {
			if _, err := model.NormalizeTitle(it.Title); err != nil {
				return textError(fmt.Sprintf("categories.%d.items.%d.title", i, j), err)
			}
		}
	}
	return nil
}

func textError(path string, err error) error {
	msg := err.Error()
	var merr *model.Error
	if goerrors.As(err, &merr) {
		msg = merr.Message
	}
	return model.NewValidationError("seed", path+": "+msg)
}

// normalized replaces nil slices with empty ones so the encoded value is a
// list rather than null.
func normalized(doc *Document) Document {
	out := Document{Categories: make([]Category, 0, len(doc.Categories))}
	for _, c := range doc.Categories {
		items := c.Items
		if items == nil {
			items = []Item{}
		}
		out.Categories = append(out.Categories, Category{Name: c.Name, Items: items})
	}
	return out
}

// formatCUEError reduces a CUE error list to its first message, prefixed
// with the path it was found at.
func formatCUEError(err error) string {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	first := errs[0]
	msg := first.Error()
	if extra := len(errs) - 1; extra > 0 {
		msg = fmt.Sprintf("%s (and %d more)", msg, extra)
	}
	return msg
}

// Apply creates every category and item of doc through the stores and
// commits once. Nothing is registered when the document is invalid.
func Apply(ctx context.Context, doc *Document, categories *todo.CategoryStore, items *todo.ItemStore) (Result, error) {
	var res Result
	if err := Validate(doc); err != nil {
		return res, err
	}

	for _, c := range doc.Categories {
		cat, err := categories.Create(c.Name)
		if err != nil {
			return res, err
		}
		res.Categories++

		for _, it := range c.Items {
			item, err := items.Create(it.Title, cat)
			if err != nil {
				return res, err
			}
			if it.Done {
				items.ToggleDone(item)
			}
			res.Items++
		}
	}

	if _, err := categories.Commit(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// Export loads every category and its items, in creation order.
// Items are always listed by category identity so that categories sharing
// a name keep their own items.
func Export(ctx context.Context, pc *store.Context, log *zap.Logger) (*Document, error) {
	categories := todo.NewCategoryStore(pc, log)
	items := todo.NewItemStore(pc, todo.WithScope(todo.ScopeByID), todo.WithLogger(log))

	cats, err := categories.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	doc := &Document{Categories: make([]Category, 0, len(cats))}
	for _, cat := range cats {
		loaded, err := items.LoadForCategory(ctx, cat, "")
		if err != nil {
			return nil, err
		}
		entry := Category{Name: cat.Name}
		for _, it := range loaded {
			entry.Items = append(entry.Items, Item{Title: it.Title, Done: it.Done})
		}
		doc.Categories = append(doc.Categories, entry)
	}
	return doc, nil
}

// Write encodes doc as YAML.
func Write(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode seed: %w", err)
	}
	return enc.Close()
}
