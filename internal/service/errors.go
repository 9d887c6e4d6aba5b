package service

import "errors"

// Sentinel errors handlers branch on. Anything else that comes out of a
// service is a store failure and propagates unchanged.
var (
	// ErrNotFound: lookup, restore or resolve against a missing identifier,
	// hash, or the shop singleton.
	ErrNotFound = errors.New("not found")

	// ErrValidation wraps all pre-write rejections.
	ErrValidation = errors.New("validation failed")

	// ErrSequenceExhausted: a 100th bill was requested for one business date.
	ErrSequenceExhausted = errors.New("maximum bills for this date reached")

	// ErrInvalidIdentifier: the public resolver could not classify the
	// request (empty path segment or the viewer page itself).
	ErrInvalidIdentifier = errors.New("no bill identifier provided")
)
