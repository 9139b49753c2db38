// ABOUTME: Tests for the input router
// ABOUTME: Tests command dispatch and rejection reporting
package input

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NetScalerTrainer/audio9/internal/playback"
	"github.com/NetScalerTrainer/audio9/internal/selection"
	"github.com/NetScalerTrainer/audio9/pkg/audio"
)

type nullOutput struct {
	mu     sync.Mutex
	frames int64
}

func (o *nullOutput) Open(sampleRate, channels int) error { return nil }
func (o *nullOutput) SetVolume(volume int)                {}
func (o *nullOutput) SetMuted(muted bool)                 {}
func (o *nullOutput) Close() error                        { return nil }

func (o *nullOutput) Write(samples []int32) error {
	o.mu.Lock()
	o.frames += int64(len(samples) / 2)
	o.mu.Unlock()
	return nil
}

func (o *nullOutput) written() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.frames
}

func testFixture(t *testing.T, notify func(error)) (*Router, *selection.Model, *playback.Controller, *nullOutput) {
	t.Helper()
	samples := make([]int32, 2000) // 1000 stereo frames
	samples[0] = 1
	buf, err := audio.NewSampleBuffer(audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}, samples)
	if err != nil {
		t.Fatalf("failed to build buffer: %v", err)
	}
	out := &nullOutput{}
	ctrl := playback.NewController(buf, out, 100, nil)
	sel := selection.NewModel(buf.Frames())
	router := NewRouter(buf, sel, ctrl, notify)
	return router, sel, ctrl, out
}

func runRouter(t *testing.T, r *Router) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	return cancel
}

func settle(r *Router) {
	// Posting a no-op and letting the router drain gives earlier commands
	// time to dispatch.
	r.Post(Cancel{})
	time.Sleep(20 * time.Millisecond)
}

func TestRouterDrivesSelection(t *testing.T) {
	router, sel, _, _ := testFixture(t, nil)
	cancel := runRouter(t, router)
	defer cancel()

	router.Post(BeginDrag{X: 10, Width: 100})
	router.Post(UpdateDrag{X: 50, Width: 100})
	router.Post(EndDrag{X: 90, Width: 100})
	settle(router)

	want := audio.TimeRange{Start: 100, End: 900}
	if got := sel.Range(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRouterPlayLoopUsesCommittedSelection(t *testing.T) {
	router, _, ctrl, out := testFixture(t, nil)
	cancel := runRouter(t, router)
	defer cancel()

	router.Post(BeginDrag{X: 0, Width: 100})
	router.Post(EndDrag{X: 50, Width: 100})
	router.Post(PlayLoop{Repeats: 2})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.State() == playback.StateIdle && out.written() == 1000 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected 1000 frames (2 x 500), got %d in state %v", out.written(), ctrl.State())
}

func TestRouterReportsRejectedCommands(t *testing.T) {
	var mu sync.Mutex
	var got []error
	notify := func(err error) {
		mu.Lock()
		got = append(got, err)
		mu.Unlock()
	}

	router, _, _, _ := testFixture(t, notify)
	cancel := runRouter(t, router)
	defer cancel()

	// No committed selection: the loop request must surface ErrInvalidRange.
	router.Post(PlayLoop{Repeats: 3})
	settle(router)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(got))
	}
	if !errors.Is(got[0], playback.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", got[0])
	}
}

func TestRouterPreviewPlaysFromClick(t *testing.T) {
	router, _, ctrl, out := testFixture(t, nil)
	cancel := runRouter(t, router)
	defer cancel()

	// Five seconds from frame 500 clamps to the 1000-frame buffer end.
	router.Post(Preview{X: 50, Width: 100})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.State() == playback.StateIdle && out.written() == 500 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected 500 preview frames, got %d", out.written())
}

func TestRouterCancelIsSafeWhenIdle(t *testing.T) {
	router, _, ctrl, _ := testFixture(t, nil)
	cancel := runRouter(t, router)
	defer cancel()

	router.Post(Cancel{})
	settle(router)

	if ctrl.State() != playback.StateIdle {
		t.Errorf("expected Idle, got %v", ctrl.State())
	}
}
