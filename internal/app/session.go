// ABOUTME: Session orchestration
// ABOUTME: Bundles buffer, selection, controller and router for one track
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/NetScalerTrainer/audio9/internal/input"
	"github.com/NetScalerTrainer/audio9/internal/playback"
	"github.com/NetScalerTrainer/audio9/internal/selection"
	"github.com/NetScalerTrainer/audio9/pkg/audio"
	"github.com/NetScalerTrainer/audio9/pkg/audio/decode"
	"github.com/NetScalerTrainer/audio9/pkg/audio/output"
	"github.com/google/uuid"
)

// Config holds session configuration
type Config struct {
	FilePath string
	BlockMs  int
	Volume   int
	OnError  func(error)
}

// Session bundles everything for one loaded track: the immutable sample
// buffer, the selection model, the playback controller and the command
// router. One session exists per process; loading a different file means
// restarting (the audio device cannot be reopened at a new format).
type Session struct {
	ID     string
	buf    *audio.SampleBuffer
	sel    *selection.Model
	ctrl   *playback.Controller
	router *input.Router
	out    output.Output
	cancel context.CancelFunc
}

// Status is a display snapshot of the session.
type Status struct {
	State     playback.State
	Position  int64
	Remaining int
	Selection audio.TimeRange
	Pending   audio.TimeRange
	Dragging  bool
	Stats     playback.Stats
}

// New decodes the configured file, opens the audio device and wires the
// session components.
func New(cfg Config) (*Session, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("no audio file configured")
	}

	buf, err := decode.FromFile(cfg.FilePath)
	if err != nil {
		return nil, err
	}

	blockMs := cfg.BlockMs
	if blockMs <= 0 {
		blockMs = playback.DefaultBlockMs
	}

	out := output.NewOto(deviceBuffer(blockMs))
	if err := out.Open(buf.Format().SampleRate, buf.Format().Channels); err != nil {
		return nil, &playback.DeviceError{Op: "open", Err: err}
	}
	if cfg.Volume > 0 {
		out.SetVolume(cfg.Volume)
	}

	return newSession(cfg, buf, out, blockMs), nil
}

// deviceBuffer is how much audio the device may hold ahead of the stream
// cursor. One block keeps Write backpressure, and with it cancellation
// latency, within a single block duration.
func deviceBuffer(blockMs int) time.Duration {
	return time.Duration(blockMs) * time.Millisecond
}

// newSession wires the components around an already-open output. Split out
// so tests can substitute a fake device.
func newSession(cfg Config, buf *audio.SampleBuffer, out output.Output, blockMs int) *Session {
	blockFrames := playback.BlockFrames(buf.Format().SampleRate, blockMs)

	ctrl := playback.NewController(buf, out, blockFrames, cfg.OnError)
	sel := selection.NewModel(buf.Frames())
	ctrl.SetRangeSource(sel)

	s := &Session{
		ID:     uuid.New().String(),
		buf:    buf,
		sel:    sel,
		ctrl:   ctrl,
		router: input.NewRouter(buf, sel, ctrl, cfg.OnError),
		out:    out,
	}

	log.Printf("Session %s: %s (%d frames, block %d frames)",
		s.ID, cfg.FilePath, buf.Frames(), blockFrames)

	return s
}

// Start runs the command router until Stop or context cancellation.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.router.Run(ctx)
}

// Stop halts playback, stops the router and releases the audio device.
func (s *Session) Stop() {
	s.ctrl.CancelAndWait()
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.out.Close(); err != nil {
		log.Printf("Error closing audio output: %v", err)
	}
	log.Printf("Session %s stopped", s.ID)
}

// Post queues a command for the router.
func (s *Session) Post(cmd input.Command) {
	s.router.Post(cmd)
}

// Buffer returns the loaded track.
func (s *Session) Buffer() *audio.SampleBuffer {
	return s.buf
}

// Selection returns the selection model.
func (s *Session) Selection() *selection.Model {
	return s.sel
}

// Controller returns the playback controller.
func (s *Session) Controller() *playback.Controller {
	return s.ctrl
}

// Output returns the audio device.
func (s *Session) Output() output.Output {
	return s.out
}

// Status returns a display snapshot.
func (s *Session) Status() Status {
	pending, _ := s.sel.Pending()
	return Status{
		State:     s.ctrl.State(),
		Position:  s.ctrl.Position(),
		Remaining: s.ctrl.RemainingRepeats(),
		Selection: s.sel.Range(),
		Pending:   pending,
		Dragging:  s.sel.Dragging(),
		Stats:     s.ctrl.Stats(),
	}
}
