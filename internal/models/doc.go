// Package models defines the domain entities shared across the sync pipeline.
//
// The package contains two categories of types:
//
// 1. Catalog-side types: SourceItem entries fetched from the external catalog,
// immutable once listed.
//
// 2. Card-side types: Container, TargetItem (chapter) and Asset records owned
// by the card service, plus the persisted Association linking a source
// playlist to the container it was last synced to.
package models
