// ABOUTME: Time range over a sample buffer
// ABOUTME: Half-open frame interval selected by the user
package audio

import "time"

// TimeRange is a half-open frame interval [Start, End) over a SampleBuffer.
// A zero-length range means no selection.
type TimeRange struct {
	Start int64
	End   int64
}

// NewTimeRange orders the endpoints so Start <= End.
func NewTimeRange(a, b int64) TimeRange {
	if a > b {
		a, b = b, a
	}
	return TimeRange{Start: a, End: b}
}

// Frames returns the range length in frames.
func (r TimeRange) Frames() int64 {
	return r.End - r.Start
}

// IsEmpty reports whether the range selects nothing.
func (r TimeRange) IsEmpty() bool {
	return r.End <= r.Start
}

// Within reports whether the range lies inside a buffer of the given length.
func (r TimeRange) Within(frames int64) bool {
	return r.Start >= 0 && r.End <= frames && r.Start <= r.End
}

// Duration converts the range length to wall-clock time at the given rate.
func (r TimeRange) Duration(sampleRate int) time.Duration {
	return time.Duration(r.Frames()) * time.Second / time.Duration(sampleRate)
}
