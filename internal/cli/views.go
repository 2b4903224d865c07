package cli

import (
	"fmt"
	"io"

	"github.com/JeanCesca/app-Todoey/internal/model"
)

const (
	checkOpen = "☐"
	checkDone = "☑"
)

// CategoryView is a category as printed by the CLI.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemView is an item as printed by the CLI.
type ItemView struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
	Done       bool   `json:"done"`
}

func newCategoryView(c *model.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name}
}

func newItemView(it *model.Item) ItemView {
	return ItemView{ID: it.ID, CategoryID: it.CategoryID, Title: it.Title, Done: it.Done}
}

func checkbox(done bool) string {
	if done {
		return checkDone
	}
	return checkOpen
}

// CategoryList is the result of `category list`.
type CategoryList struct {
	Categories []CategoryView `json:"categories"`
}

// RenderText prints one category per line.
func (l CategoryList) RenderText(w io.Writer) {
	if len(l.Categories) == 0 {
		fmt.Fprintln(w, "No categories")
		return
	}
	for _, c := range l.Categories {
		fmt.Fprintf(w, "%s  %s\n", c.ID, c.Name)
	}
}

// ItemList is the result of `item list`.
type ItemList struct {
	Category CategoryView `json:"category"`
	Search   string       `json:"search,omitempty"`
	Items    []ItemView   `json:"items"`
}

// RenderText prints the category name followed by one item per line.
func (l ItemList) RenderText(w io.Writer) {
	header := l.Category.Name
	if l.Search != "" {
		header = fmt.Sprintf("%s (search: %q)", header, l.Search)
	}
	fmt.Fprintln(w, header)
	if len(l.Items) == 0 {
		fmt.Fprintln(w, "  no items")
		return
	}
	for _, it := range l.Items {
		fmt.Fprintf(w, "  %s %s  %s\n", checkbox(it.Done), it.Title, it.ID)
	}
}

// CategoryChange is the result of `category add` and `category rm`.
type CategoryChange struct {
	Action   string       `json:"action"`
	Category CategoryView `json:"category"`
}

// RenderText prints a one-line summary.
func (c CategoryChange) RenderText(w io.Writer) {
	fmt.Fprintf(w, "%s category %s (%s)\n", c.Action, c.Category.Name, c.Category.ID)
}

// ItemChange is the result of `item add`, `item toggle` and `item rm`.
type ItemChange struct {
	Action   string       `json:"action"`
	Category CategoryView `json:"category"`
	Item     ItemView     `json:"item"`
}

// RenderText prints a one-line summary.
func (c ItemChange) RenderText(w io.Writer) {
	fmt.Fprintf(w, "%s %s %s (%s) in %s\n", c.Action, checkbox(c.Item.Done), c.Item.Title, c.Item.ID, c.Category.Name)
}
