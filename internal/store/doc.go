// Package store persists source-to-target associations in SQLite.
//
// One record per source playlist, keyed by source ID with upsert semantics.
// The store is injected with an open database handle; callers own the
// open/close lifecycle.
package store
