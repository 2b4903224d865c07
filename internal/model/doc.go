// Package model defines the todoey entities and the rules every layer shares.
//
// A Category groups Items. Each Item belongs to exactly one Category through
// CategoryID; the relation is a reference, not ownership. The store keeps
// both alive and removes a category's items when the category is deleted.
//
// Identities are assigned in memory at creation time by an IDGenerator, before
// the entity is committed, and are never reused. Seq records creation order
// and is the pinned sort key for unfiltered loads.
package model
