package queryir

// Entity names the record set a fetch reads.
type Entity string

const (
	EntityCategories Entity = "categories"
	EntityItems      Entity = "items"
)

// SortKey selects the result order.
type SortKey int

const (
	// SortCreation orders by creation sequence. Used by every unfiltered load.
	SortCreation SortKey = iota

	// SortTitle orders alphabetically by folded title, ascending. Only the
	// search path requests it.
	SortTitle
)

// String returns the sort key name.
func (k SortKey) String() string {
	switch k {
	case SortCreation:
		return "creation"
	case SortTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Fetch is a read request against the store.
type Fetch struct {
	Entity Entity
	Filter Predicate // nil = no filter
	Sort   SortKey
}

// Predicate is a filter condition applied during a fetch.
type Predicate interface {
	predicateNode()
}

// CategoryIs matches items whose parent category has the given identity, or
// the category with that identity when fetching categories.
type CategoryIs struct {
	ID string
}

func (CategoryIs) predicateNode() {}

// CategoryNamed matches items whose parent category has exactly this name,
// or categories with this name. Several categories may match.
type CategoryNamed struct {
	Name string
}

func (CategoryNamed) predicateNode() {}

// TitleContains matches items whose title contains Text, ignoring case and
// diacritics. Only valid for item fetches.
type TitleContains struct {
	Text string
}

func (TitleContains) predicateNode() {}

// And matches when all predicates match. Empty means always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// AllOf combines predicates with AND, dropping nils.
// Returns nil for no predicates and the predicate itself for one.
func AllOf(preds ...Predicate) Predicate {
	var kept []Predicate
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return And{Predicates: kept}
	}
}

// Categories returns a fetch of every category in creation order.
func Categories() Fetch {
	return Fetch{Entity: EntityCategories, Sort: SortCreation}
}

// Items returns an item fetch with the given filter and sort.
func Items(filter Predicate, sort SortKey) Fetch {
	return Fetch{Entity: EntityItems, Filter: filter, Sort: sort}
}
