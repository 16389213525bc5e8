package service

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Services wrap
// them with entity context via fmt.Errorf and %w.
var (
	// ErrValidation maps to 400: the request was rejected before anything
	// was persisted. Collaborator failures deliberately do not wrap it, so
	// a storage outage stays a 500.
	ErrValidation = errors.New("invalid request")

	// ErrNotFound maps to 404; the UI treats it as a navigational dead end.
	ErrNotFound = errors.New("record not found")

	// ErrReferenced maps to 409: deleting a client or supplier that still
	// has orders is refused, and the message is surfaced verbatim.
	ErrReferenced = errors.New("record is referenced by existing orders")

	// ErrNotEditable maps to 409: a received or cancelled supplier order's
	// item set can no longer be changed.
	ErrNotEditable = errors.New("order items can no longer be edited")
)
