// Package store is the persistence context: the single handle to the
// embedded SQLite database that holds categories and items.
//
// # Working set and commit
//
// New, changed and deleted entities are first registered in memory as
// pending changes. Nothing reaches the database until Commit, which flushes
// every pending change in one transaction:
//
//	ctx, _ := store.Open("todoey.db")
//	cat, _ := ctx.NewCategory("Groceries")
//	item, _ := ctx.NewItem(cat.ID, "Milk")
//	item.Toggle()
//	ctx.MarkUpdated(item)
//	err := ctx.Commit(context.Background())
//
// A failed commit rolls the transaction back and keeps the pending set, so
// a later Commit retries it. In-memory entities are not reverted: a caller
// that toggled an item and then failed to commit still holds the toggled
// value while a fresh fetch returns the persisted one.
//
// # Fetch
//
// Fetches always read durable storage and return value snapshots. Pending
// changes are not visible to a fetch until they are committed.
//
// # Database configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON (items cascade with their category)
//   - one open connection; Context serializes writers with a mutex
package store
