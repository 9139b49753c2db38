// ABOUTME: Playback error definitions
// ABOUTME: Command-misuse sentinels and device failure wrapper
package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyPlaying is returned when a play command arrives while a
	// session is Playing or Stopping. There is no playback queue.
	ErrAlreadyPlaying = errors.New("playback already in progress")

	// ErrInvalidRange is returned for a degenerate or out-of-bounds loop range.
	ErrInvalidRange = errors.New("invalid loop range")

	// ErrInvalidRepeatCount is returned for a repeat count below 1.
	ErrInvalidRepeatCount = errors.New("repeat count must be at least 1")
)

// DeviceError wraps an audio device failure. It aborts the session; the
// user retries by replaying, never the controller.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio device %s failed: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
