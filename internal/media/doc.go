// Package media retrieves source payloads into the run workspace and
// publishes them to the card host's asset store.
//
// Publishing is content-addressed: identical payloads resolve to the same
// asset reference, so re-publishing after a failed run uploads nothing new.
package media
