package sampler

import "errors"

var (
	// ErrNoSample indicates the background sampler has not produced a value yet.
	ErrNoSample = errors.New("sampler: no sample yet")

	// ErrBadWindow indicates a non-positive sampling window.
	ErrBadWindow = errors.New("sampler: window must be > 0")
)
