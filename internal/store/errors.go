package store

import "errors"

// Sentinel errors returned by repository methods. Callers match them with
// [errors.Is].
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when a unique constraint is violated.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrReferenceNotFound is returned when a foreign key points to a
	// missing row (e.g. granting access to a template that does not exist).
	ErrReferenceNotFound = errors.New("referenced record not found")

	// ErrKeyNotFound is returned by [KeyValueStore.Get] for a missing key.
	ErrKeyNotFound = errors.New("key not found")
)

// Low-level database operation errors, wrapped together with the driver
// error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrEncodingDocument     = errors.New("failed to encode document")
	ErrDecodingDocument     = errors.New("failed to decode document")
)
