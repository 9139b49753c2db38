// ABOUTME: Input command router
// ABOUTME: Consumes typed commands and drives selection and playback
package input

import (
	"context"
	"log"

	"github.com/NetScalerTrainer/audio9/internal/playback"
	"github.com/NetScalerTrainer/audio9/internal/selection"
	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

// previewSeconds is how much audio a click (as opposed to a drag) plays,
// matching the short-press preview behavior.
const previewSeconds = 5

// Router consumes commands on a single goroutine and drives the selection
// model and playback controller. Rejected commands are reported through
// Notify; nothing fails silently.
type Router struct {
	buf    *audio.SampleBuffer
	sel    *selection.Model
	ctrl   *playback.Controller
	cmds   chan Command
	notify func(error)
}

// NewRouter wires a router. notify receives command rejections; nil means
// log only.
func NewRouter(buf *audio.SampleBuffer, sel *selection.Model, ctrl *playback.Controller, notify func(error)) *Router {
	if notify == nil {
		notify = func(err error) { log.Printf("Command rejected: %v", err) }
	}
	return &Router{
		buf:    buf,
		sel:    sel,
		ctrl:   ctrl,
		cmds:   make(chan Command, 64),
		notify: notify,
	}
}

// Post queues a command for the router goroutine.
func (r *Router) Post(cmd Command) {
	r.cmds <- cmd
}

// Run consumes commands until the context is cancelled.
func (r *Router) Run(ctx context.Context) {
	for {
		select {
		case cmd := <-r.cmds:
			r.dispatch(cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Router) dispatch(cmd Command) {
	switch c := cmd.(type) {
	case BeginDrag:
		r.sel.BeginDrag(c.X, c.Width)
	case UpdateDrag:
		r.sel.UpdateDrag(c.X, c.Width)
	case EndDrag:
		r.sel.EndDrag(c.X, c.Width)
		committed := r.sel.Range()
		log.Printf("Selection committed: frames [%d, %d)", committed.Start, committed.End)
	case PlayFull:
		if err := r.ctrl.PlayFull(); err != nil {
			r.notify(err)
		}
	case PlayLoop:
		if err := r.ctrl.PlayLoop(r.sel.Range(), c.Repeats); err != nil {
			r.notify(err)
		}
	case Preview:
		if err := r.ctrl.PlayLoop(r.previewRange(c), 1); err != nil {
			r.notify(err)
		}
	case Cancel:
		r.ctrl.Cancel()
	}
}

// previewRange maps the clicked pixel to a frame and extends it by
// previewSeconds, clamped to the end of the buffer.
func (r *Router) previewRange(c Preview) audio.TimeRange {
	start := selection.MapPixel(c.X, c.Width, r.buf.Frames())
	end := start + int64(previewSeconds*r.buf.Format().SampleRate)
	if end > r.buf.Frames() {
		end = r.buf.Frames()
	}
	return audio.TimeRange{Start: start, End: end}
}
