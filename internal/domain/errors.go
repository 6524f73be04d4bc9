package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientData marks a metric or score that could not be computed
// from the available NAV history. It propagates structurally (nil fields,
// skipped funds) rather than aborting a batch.
var ErrInsufficientData = errors.New("insufficient data")

// InvalidInputError rejects malformed requests before any computation
// begins.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UpstreamError wraps a failure from a NAV/fund/benchmark reader after
// retries are exhausted.
type UpstreamError struct {
	Op  string
	Err error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %s", e.Op, e.Err.Error())
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}
