package seed

import "errors"

// Per-record failures (identity, profile, update) are logged and skipped.
// Bulk insert failures are logged, notified and the run continues.
var (
	ErrIdentityCreationFailed = errors.New("identity creation failed")
	ErrProfileInsertFailed    = errors.New("profile insert failed")
	ErrBulkInsertFailed       = errors.New("bulk insert failed")
	ErrUpdateFailed           = errors.New("update failed")

	// ErrNoGroups ends the run early without an error being returned.
	ErrNoGroups = errors.New("no groups found after creation")

	// ErrEmptyLeaderPool aborts the run: groups cannot be created without leaders.
	ErrEmptyLeaderPool = errors.New("leader pool is empty")
)
