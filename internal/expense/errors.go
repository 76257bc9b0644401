package expense

import "errors"

var (
	// ErrInvalidAmount rejects assembly of a record whose amount is absent
	// or not positive.
	ErrInvalidAmount = errors.New("invalid expense amount")

	// ErrStoreWrite means the authoritative store rejected the record.
	// Nothing was persisted and the write is not retried.
	ErrStoreWrite = errors.New("store write failed")

	// ErrMirrorWrite means the record was stored but the spreadsheet append
	// failed. The partial-success state is intentional and user-visible.
	ErrMirrorWrite = errors.New("mirror write failed")
)
