package model

// Category is a user-named grouping of items.
// Names are not unique.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Seq  int64  `json:"seq" yaml:"seq"`
}

// Item is a single to-do entry.
type Item struct {
	ID         string `json:"id" yaml:"id"`
	CategoryID string `json:"category_id" yaml:"category_id"`
	Title      string `json:"title" yaml:"title"`
	Done       bool   `json:"done" yaml:"done"`
	Seq        int64  `json:"seq" yaml:"seq"`
}

// Toggle flips the completion flag. It is the only mutation path for Done.
func (i *Item) Toggle() {
	i.Done = !i.Done
}
