package api

import (
	"errors"
	"fmt"
)

// ErrEmptyResult marks a well-formed response that carried zero usable
// items. Callers treat it as a normal outcome, not a failure.
var ErrEmptyResult = errors.New("empty result set")

// NetworkError is a transport-level failure: the service could not be
// reached or the connection broke mid-request.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a response the service itself marked unsuccessful
// (success=false), carrying its error payload. Always recoverable.
type ServerError struct {
	Op      string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server reported failure", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
