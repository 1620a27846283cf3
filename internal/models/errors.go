package models

import "errors"

var (
	// ErrDuplicateEmail reports a storage-level uniqueness violation on the
	// subscriber email. It is an expected business outcome, not a failure.
	ErrDuplicateEmail = errors.New("email already subscribed")

	// ErrStorageUnavailable collapses every non-duplicate storage failure:
	// lost connection, timeout, driver error.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrEmailRequired = errors.New("email is required")
	ErrEmailFormat   = errors.New("invalid email format")
	ErrMissingFields = errors.New("all fields are required")
)
