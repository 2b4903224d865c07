// Package queryir describes fetches against the todoey store as data.
//
// A Fetch names the entity set to read, an optional filter predicate and a
// sort key. The list stores build fetches; querysql compiles them to
// parameterized SQLite statements. Keeping the filter as a value rather than
// as SQL text lets the stores compose predicates (category scope AND title
// search) and lets tests assert on the exact query a load issued.
//
// Predicate is a sealed interface. Only the types in this package implement
// it, so backends can switch over them exhaustively:
//
//	switch p := pred.(type) {
//	case CategoryIs:         // item.category_id = ?
//	case CategoryNamed:      // parent.name = ?
//	case TitleContains:      // folded substring of item.title
//	case And:                // conjunction
//	}
//
// Category scope comes in two forms. CategoryIs scopes by identity and is the
// default. CategoryNamed scopes by the parent's name, which collides when two
// categories share a name; it exists for compatibility with data organized by
// name.
package queryir
