package engine

import "time"

// FixedLoop converts variable frame deltas into whole fixed steps
//
// Frame deltas are clamped to maxFrame before accumulation, bounding steps per frame
// to maxFrame/step. Leftover time below one step carries into the next frame.
type FixedLoop struct {
	step     time.Duration
	maxFrame time.Duration
	acc      time.Duration
}

// NewFixedLoop creates a loop; maxFrame below step is raised to step
func NewFixedLoop(step, maxFrame time.Duration) *FixedLoop {
	if maxFrame < step {
		maxFrame = step
	}
	return &FixedLoop{step: step, maxFrame: maxFrame}
}

// Step returns the fixed timestep
func (l *FixedLoop) Step() time.Duration {
	return l.step
}

// Advance accumulates frameDelta and calls fn once per whole step, returning the step count
// Negative deltas (clock went backwards) are treated as zero
func (l *FixedLoop) Advance(frameDelta time.Duration, fn func(step time.Duration)) int {
	if frameDelta < 0 {
		frameDelta = 0
	}
	if frameDelta > l.maxFrame {
		frameDelta = l.maxFrame
	}
	l.acc += frameDelta

	n := 0
	for l.acc >= l.step {
		l.acc -= l.step
		fn(l.step)
		n++
	}
	return n
}

// Pending returns accumulated time not yet consumed
func (l *FixedLoop) Pending() time.Duration {
	return l.acc
}

// Reset drops any accumulated time
func (l *FixedLoop) Reset() {
	l.acc = 0
}
