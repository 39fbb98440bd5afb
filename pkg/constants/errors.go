package constants

import "errors"

// Errors
var (
	ErrNoRow     = errors.New("error no row")
	ErrTimeout   = errors.New("timeout")
	ErrClosed    = errors.New("connection closed")
	ErrNoBaseURL = errors.New("base url not set")
)
