package domain

import "errors"

var (
	// ErrInvalidOffer is returned when an offer is missing endpoints or breaks a field invariant.
	ErrInvalidOffer = errors.New("invalid offer")
	// ErrInvalidQuery is returned for malformed search input or corrupt stored data.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrStorageUnavailable marks snapshot read/write failures. The in-memory copy stays authoritative.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSnapshotNotFound is returned by snapshot stores for keys that were never written.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
