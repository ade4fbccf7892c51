// Package tasks implements the sync orchestration pipeline.
//
// The core abstraction is SyncEngine, whose Run method drives one
// reconciliation pass: plan, confirm, fetch, publish, commit, persist. A run
// is all-or-nothing past confirmation: the first fetch, publish or commit
// failure aborts the batch with nothing written, and the run's temporary
// workspace is removed on every exit path. Operations emit progress updates
// via channels for non-blocking status reporting to the CLI layer.
package tasks
