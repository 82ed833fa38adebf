package engine

import "time"

// SimClock is simulation time, advanced only by fixed steps
// All gameplay deadlines compare against it so behavior is independent of wall time
type SimClock struct {
	elapsed time.Duration
	steps   uint64
}

// Advance moves the clock by one step of length d
func (c *SimClock) Advance(d time.Duration) {
	c.elapsed += d
	c.steps++
}

// Now returns elapsed simulation time since the clock was created
func (c *SimClock) Now() time.Duration {
	return c.elapsed
}

// Steps returns the number of fixed steps taken
func (c *SimClock) Steps() uint64 {
	return c.steps
}

// Deadline is a one-shot scheduled point on a SimClock
// Zero value is disarmed
type Deadline struct {
	at    time.Duration
	armed bool
}

// Arm schedules the deadline delay after now, replacing any pending one
func (d *Deadline) Arm(now, delay time.Duration) {
	d.at = now + delay
	d.armed = true
}

// Disarm cancels a pending deadline
func (d *Deadline) Disarm() {
	d.armed = false
}

// Armed reports whether a deadline is pending
func (d *Deadline) Armed() bool {
	return d.armed
}

// Fire returns true exactly once, on the first check at or after the deadline
func (d *Deadline) Fire(now time.Duration) bool {
	if !d.armed || now < d.at {
		return false
	}
	d.armed = false
	return true
}
