// Package todo holds the list stores the front ends talk to.
//
// CategoryStore owns the category list. ItemStore owns one item list view:
// the items of a selected category, optionally narrowed by a search text.
// Both keep an in-memory working list, register mutations with the shared
// store.Context, and return the authoritative snapshot from every mutating
// call so the caller can re-render without the stores knowing about any UI.
//
// Storage errors follow a log-and-continue policy: the error is logged,
// returned, and the in-memory list stays as it was. A failed commit
// therefore leaves the list showing a mutation that was never persisted
// until the next successful commit or reload.
package todo
