package types

import "errors"

var (
	// ErrProcessUnavailable indicates the process exited or could not be
	// introspected between enumeration and the read.
	ErrProcessUnavailable = errors.New("process unavailable")

	// ErrVolumeNotReady indicates a volume with no media or no usable figures.
	ErrVolumeNotReady = errors.New("volume not ready")

	// ErrSinkWriteFailed indicates the activity log line could not be appended.
	ErrSinkWriteFailed = errors.New("sink write failed")

	// ErrInvalidSelection indicates an unrecognized metric choice.
	ErrInvalidSelection = errors.New("invalid metric selection")
)
