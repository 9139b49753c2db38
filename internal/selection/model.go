// ABOUTME: Selection model for drag gestures
// ABOUTME: Maps display-pixel drags to sample-accurate time ranges
package selection

import (
	"math"
	"sync"

	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

// Model converts pointer drags in display pixels into a committed TimeRange
// over one buffer. Every event carries the display width current at that
// moment, so a window resize mid-drag maps later events correctly instead
// of reusing a stale scale.
//
// Written only by the input goroutine; the mutex makes reads from the UI
// goroutine safe.
type Model struct {
	mu        sync.Mutex
	frames    int64
	dragging  bool
	anchor    int64
	pending   audio.TimeRange
	committed audio.TimeRange
}

// NewModel creates a selection model over a buffer of the given length.
func NewModel(frames int64) *Model {
	return &Model{frames: frames}
}

// MapPixel converts a pixel position to a frame offset using the linear
// mapping sample = round(pixelX / displayWidth * frames), clamped into
// [0, frames).
func MapPixel(pixelX, displayWidth int, frames int64) int64 {
	if displayWidth < 1 {
		displayWidth = 1
	}
	sample := int64(math.Round(float64(pixelX) / float64(displayWidth) * float64(frames)))
	if sample < 0 {
		return 0
	}
	if sample >= frames {
		return frames - 1
	}
	return sample
}

// BeginDrag records the drag anchor. A drag already in progress makes this
// a no-op.
func (m *Model) BeginDrag(pixelX, displayWidth int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dragging {
		return
	}
	m.dragging = true
	m.anchor = MapPixel(pixelX, displayWidth, m.frames)
	m.pending = audio.TimeRange{Start: m.anchor, End: m.anchor}
}

// UpdateDrag recomputes the provisional range from the anchor and the
// current pointer position. Endpoints are ordered, so right-to-left drags
// behave the same as left-to-right ones.
func (m *Model) UpdateDrag(pixelX, displayWidth int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dragging {
		return
	}
	m.pending = audio.NewTimeRange(m.anchor, MapPixel(pixelX, displayWidth, m.frames))
}

// EndDrag finalizes the provisional range into the committed selection and
// ends the drag.
func (m *Model) EndDrag(pixelX, displayWidth int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dragging {
		return
	}
	m.dragging = false
	m.committed = audio.NewTimeRange(m.anchor, MapPixel(pixelX, displayWidth, m.frames))
	m.pending = m.committed
}

// Range returns the committed selection. A degenerate range means no
// selection.
func (m *Model) Range() audio.TimeRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// Pending returns the provisional range and whether a drag is in progress.
func (m *Model) Pending() (audio.TimeRange, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending, m.dragging
}

// Dragging reports whether a drag is in progress.
func (m *Model) Dragging() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dragging
}

// Clear drops the committed selection and any drag in progress.
func (m *Model) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dragging = false
	m.pending = audio.TimeRange{}
	m.committed = audio.TimeRange{}
}
