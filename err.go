package balcao

import (
	"fmt"
)

// StoreError is a classifiable backing-store failure. Transports translate
// whatever their wire protocol reports into this shape so that the rest of
// the module never sniffs transport-specific error types.
type StoreError struct {
	// Code is the stable backend error code, e.g. the SQLSTATE "42P01"
	// for an undefined relation. May be empty.
	Code string
	// Message is the human-readable cause reported by the store.
	Message string
	// Status is the HTTP status of the response that carried the error,
	// or 0 when the transport is not HTTP.
	Status int
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
