package cards

import "errors"

var (
	// ErrRecordNotFound is returned when a record source answered with its
	// not-found sentinel or an empty record.
	ErrRecordNotFound = errors.New("card record not found")

	// ErrMalformedRecord is returned when a record lacks a required field or
	// cannot be decoded at all.
	ErrMalformedRecord = errors.New("malformed card record")
)
