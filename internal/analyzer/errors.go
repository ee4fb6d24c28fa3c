// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

package analyzer

import (
	"errors"
	"fmt"
	"net"
)

var (
	// ErrRejected matches every failed analyzer call: transport failures,
	// timeouts, rejected statuses and open-circuit short circuits.
	ErrRejected = errors.New("analyzer request rejected")

	// ErrMissingField is wrapped by PayloadError in strict mode when an
	// expected field is absent from an accepted response.
	ErrMissingField = errors.New("field missing from analyzer response")

	// ErrMalformedField is wrapped by PayloadError when a field is present
	// but cannot be decoded into the expected shape.
	ErrMalformedField = errors.New("analyzer response field has unexpected shape")
)

// TransportError reports a call that never produced an HTTP status:
// connection refused, DNS failure, timeout or an unreadable body.
type TransportError struct {
	Endpoint string
	URL      string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Timeout() {
		return fmt.Sprintf("analyzer %s request timed out: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("failed to make analyzer %s request: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRejected) match.
func (e *TransportError) Is(target error) bool { return target == ErrRejected }

// Timeout reports whether the request exceeded its deadline.
func (e *TransportError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// StatusError reports a response whose status the client's StatusPolicy
// rejected (>= 500 by default).
type StatusError struct {
	Endpoint   string
	URL        string
	StatusCode int
	// Body is a bounded excerpt of the response for diagnostics.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analyzer %s request failed with status %d: %s", e.Endpoint, e.StatusCode, string(e.Body))
}

// Is lets errors.Is(err, ErrRejected) match.
func (e *StatusError) Is(target error) bool { return target == ErrRejected }

// PayloadError reports an accepted response whose body could not be
// turned into the expected value.
type PayloadError struct {
	Endpoint   string
	Field      string
	StatusCode int
	Err        error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("analyzer %s response (status %d) field %q: %v", e.Endpoint, e.StatusCode, e.Field, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

// IsRejected reports whether err is a failed analyzer call.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
