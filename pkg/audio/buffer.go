// ABOUTME: Immutable decoded sample buffer
// ABOUTME: Holds interleaved PCM for one loaded track
package audio

import (
	"fmt"
	"time"
)

// SampleBuffer is decoded PCM for one track. Samples are channel-interleaved
// int32 values normalized to the 24-bit range. The buffer never changes after
// construction and is safe to share across goroutines without locking.
type SampleBuffer struct {
	format  Format
	samples []int32
	frames  int64
}

// NewSampleBuffer validates and copies the interleaved samples.
func NewSampleBuffer(format Format, samples []int32) (*SampleBuffer, error) {
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}
	if format.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty sample data")
	}
	if len(samples)%format.Channels != 0 {
		return nil, fmt.Errorf("sample count %d not divisible by %d channels",
			len(samples), format.Channels)
	}

	owned := make([]int32, len(samples))
	copy(owned, samples)

	return &SampleBuffer{
		format:  format,
		samples: owned,
		frames:  int64(len(samples) / format.Channels),
	}, nil
}

// Format returns the buffer format.
func (b *SampleBuffer) Format() Format {
	return b.format
}

// Frames returns the buffer length in frames (samples per channel).
func (b *SampleBuffer) Frames() int64 {
	return b.frames
}

// Duration returns the buffer length as wall-clock time.
func (b *SampleBuffer) Duration() time.Duration {
	return time.Duration(b.frames) * time.Second / time.Duration(b.format.SampleRate)
}

// Sample returns one amplitude value. frame must be in [0, Frames()) and
// ch in [0, Channels).
func (b *SampleBuffer) Sample(frame int64, ch int) int32 {
	return b.samples[frame*int64(b.format.Channels)+int64(ch)]
}

// CopyFrames copies interleaved frames starting at the given frame into dst.
// len(dst) must be a multiple of the channel count. Returns the number of
// frames copied, which is less than len(dst)/channels only at end of buffer.
func (b *SampleBuffer) CopyFrames(dst []int32, from int64) int {
	if from < 0 || from >= b.frames {
		return 0
	}
	ch := int64(b.format.Channels)
	want := int64(len(dst)) / ch
	avail := b.frames - from
	if want > avail {
		want = avail
	}
	copy(dst[:want*ch], b.samples[from*ch:(from+want)*ch])
	return int(want)
}
