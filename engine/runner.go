package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pinball/core"
)

// FrameFunc receives the wall-clock delta since the previous frame
type FrameFunc func(now time.Time, delta time.Duration)

// Runner drives a FrameFunc at a fixed wall interval on its own goroutine
// Frames are serialized; the FrameFunc owns simulation state exclusively
type Runner struct {
	interval time.Duration
	clock    TimeSource
	frame    FrameFunc

	frames   atomic.Uint64
	running  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRunner creates a stopped runner
func NewRunner(interval time.Duration, clock TimeSource, frame FrameFunc) *Runner {
	return &Runner{
		interval: interval,
		clock:    clock,
		frame:    frame,
		stopChan: make(chan struct{}),
	}
}

// Start launches the frame goroutine; ctx cancellation stops it like Stop
func (r *Runner) Start(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	r.wg.Add(1)
	core.Go(func() { r.loop(ctx) })
}

// Stop halts frame scheduling and waits for the in-flight frame
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
		r.wg.Wait()
	})
}

// Frames returns the number of frames delivered
func (r *Runner) Frames() uint64 {
	return r.frames.Load()
}

func (r *Runner) loop(ctx context.Context) {
	defer r.wg.Done()
	defer r.running.Store(false)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := r.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.C:
			now := r.clock.Now()
			r.frame(now, now.Sub(last))
			last = now
			r.frames.Add(1)
		}
	}
}
