// ABOUTME: Playback controller and streaming loop
// ABOUTME: Owns the single playback session, loop seams and cancellation
package playback

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
	"github.com/NetScalerTrainer/audio9/pkg/audio/output"
)

// DefaultBlockMs is the output block duration used when none is configured.
// The streaming loop checks for cancellation once per block, so this is
// also the worst-case cancellation latency.
const DefaultBlockMs = 20

// BlockFrames converts a block duration to frames at the given rate.
func BlockFrames(sampleRate, blockMs int) int {
	frames := sampleRate * blockMs / 1000
	if frames < 1 {
		frames = 1
	}
	return frames
}

// RangeSource supplies the committed selection for display queries.
type RangeSource interface {
	Range() audio.TimeRange
}

// Stats counts streaming work done by the controller.
type Stats struct {
	BlocksWritten int64
	FramesWritten int64
	RepeatsDone   int64
}

// Controller drives audio output from the sample buffer. Exactly one
// playback session exists at a time: commands arrive on the input goroutine,
// streaming happens on a playback goroutine owned by the controller, and the
// two meet only at the state mutex and the per-session stop channel.
type Controller struct {
	buf         *audio.SampleBuffer
	out         output.Output
	blockFrames int
	onError     func(error)
	ranges      RangeSource

	mu    sync.Mutex
	state State
	stop  chan struct{}
	done  chan struct{}

	cursor  atomic.Int64
	repeats atomic.Int64

	statsMu sync.Mutex
	stats   Stats
}

// NewController creates a controller for one buffer and one output device.
// onError receives device failures detected on the playback goroutine; nil
// means log only.
func NewController(buf *audio.SampleBuffer, out output.Output, blockFrames int, onError func(error)) *Controller {
	if blockFrames < 1 {
		blockFrames = BlockFrames(buf.Format().SampleRate, DefaultBlockMs)
	}
	if onError == nil {
		onError = func(err error) { log.Printf("Playback error: %v", err) }
	}
	return &Controller{
		buf:         buf,
		out:         out,
		blockFrames: blockFrames,
		onError:     onError,
	}
}

// SetRangeSource wires the committed-selection getter used by Range.
func (c *Controller) SetRangeSource(src RangeSource) {
	c.ranges = src
}

// PlayFull streams the whole buffer once from frame 0.
func (c *Controller) PlayFull() error {
	return c.start(audio.TimeRange{Start: 0, End: c.buf.Frames()}, 1)
}

// PlayLoop streams [r.Start, r.End) repeats times with seamless joins: the
// frame at r.End is never played, and the frame after r.End-1 is r.Start.
func (c *Controller) PlayLoop(r audio.TimeRange, repeats int) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyPlaying
	}
	if r.IsEmpty() || !r.Within(c.buf.Frames()) {
		c.mu.Unlock()
		return ErrInvalidRange
	}
	if repeats < 1 {
		c.mu.Unlock()
		return ErrInvalidRepeatCount
	}
	c.beginLocked(r, repeats)
	return nil
}

func (c *Controller) start(r audio.TimeRange, repeats int) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyPlaying
	}
	c.beginLocked(r, repeats)
	return nil
}

// beginLocked transitions Idle -> Playing and launches the streaming
// goroutine. Called with c.mu held; releases it.
func (c *Controller) beginLocked(r audio.TimeRange, repeats int) {
	c.state = StatePlaying
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop = stop
	c.done = done
	c.cursor.Store(r.Start)
	c.repeats.Store(int64(repeats))
	c.mu.Unlock()

	go c.stream(r, repeats, stop, done)
}

// Cancel requests the playback goroutine to stop at the next block boundary.
// It never blocks and is a no-op outside Playing.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return
	}
	c.state = StateStopping
	close(c.stop)
}

// CancelAndWait cancels and blocks until the playback goroutine has exited.
// Used on shutdown so the device is quiet before it is closed.
func (c *Controller) CancelAndWait() {
	c.mu.Lock()
	if c.state == StatePlaying {
		c.state = StateStopping
		close(c.stop)
	}
	done := c.done
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Position returns the playback cursor in frames.
func (c *Controller) Position() int64 {
	return c.cursor.Load()
}

// RemainingRepeats returns how many loop passes are left, including the
// one in progress.
func (c *Controller) RemainingRepeats() int {
	return int(c.repeats.Load())
}

// Range returns the last committed selection, for display.
func (c *Controller) Range() audio.TimeRange {
	if c.ranges == nil {
		return audio.TimeRange{}
	}
	return c.ranges.Range()
}

// Stats returns streaming counters.
func (c *Controller) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// stream is the playback goroutine. It fills fixed-size blocks from the
// buffer, continuing across loop seams inside a block so the output stream
// has no gap, duplicate or dropped frame, and checks the stop channel once
// per block.
func (c *Controller) stream(r audio.TimeRange, repeats int, stop, done chan struct{}) {
	defer close(done)
	defer c.settle()

	channels := c.buf.Format().Channels
	block := make([]int32, c.blockFrames*channels)
	cursor := r.Start
	remaining := repeats

	for remaining > 0 {
		select {
		case <-stop:
			log.Printf("Playback cancelled at frame %d", cursor)
			return
		default:
		}

		filled := 0
		for filled < len(block) && remaining > 0 {
			want := int64((len(block) - filled) / channels)
			if until := r.End - cursor; want > until {
				want = until
			}
			copied := c.buf.CopyFrames(block[filled:filled+int(want)*channels], cursor)
			cursor += int64(copied)
			filled += copied * channels

			if cursor == r.End {
				remaining--
				c.repeats.Store(int64(remaining))
				c.statsMu.Lock()
				c.stats.RepeatsDone++
				c.statsMu.Unlock()
				if remaining > 0 {
					cursor = r.Start
				}
			}
			c.cursor.Store(cursor)
		}

		if filled == 0 {
			break
		}
		if err := c.out.Write(block[:filled]); err != nil {
			c.onError(&DeviceError{Op: "write", Err: err})
			return
		}

		c.statsMu.Lock()
		c.stats.BlocksWritten++
		c.stats.FramesWritten += int64(filled / channels)
		c.statsMu.Unlock()
	}
}

// settle returns the session to Idle whatever ended the stream: natural
// completion, seam exhaustion, cancellation or device failure.
func (c *Controller) settle() {
	c.mu.Lock()
	c.state = StateIdle
	c.stop = nil
	c.mu.Unlock()
}
