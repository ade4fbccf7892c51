package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// API and collaborator errors
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrPlaylistNotFound  = fmt.Errorf("playlist not found")
	ErrContainerNotFound = fmt.Errorf("container not found")

	// Sync pipeline errors. Fetch, publish and commit failures abort the
	// whole batch; a persist failure is logged without undoing the commit.
	ErrFetchFailed    = fmt.Errorf("fetch failed")
	ErrPublishFailed  = fmt.Errorf("publish failed")
	ErrPublishTimeout = fmt.Errorf("publish timed out")
	ErrCommitFailed   = fmt.Errorf("commit failed")
	ErrPersistFailed  = fmt.Errorf("failed to persist association")

	// ErrCancelled marks an operator decline. It is a terminal outcome, not
	// a failure: callers report "no changes made" and exit zero.
	ErrCancelled = fmt.Errorf("cancelled by user")
)
