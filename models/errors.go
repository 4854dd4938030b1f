package models

import "fmt"

// TransportError wraps an upstream network or HTTP failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError reports malformed client input, e.g. a non-numeric latitude.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError reports that no matching parcel, building or record exists.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

// DataUnavailableError reports a missing or unreadable static dataset.
type DataUnavailableError struct {
	Msg string
}

func (e *DataUnavailableError) Error() string {
	return e.Msg
}
