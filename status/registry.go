package status

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Metric keys written by the simulation
const (
	SimSteps         = "sim.steps"
	SimFrames        = "sim.frames"
	SimCollisions    = "sim.collisions"
	SimIgnored       = "sim.ignored_events"
	SimStepsPerFrame = "sim.steps_per_frame"
	SimStepsPeak     = "sim.steps_per_frame_peak"
	BallDrains       = "ball.drains"
	BallLaunches     = "ball.launches"
	CuesDropped      = "cues.dropped"
	SessionPhase     = "session.phase"
	TableName        = "table.name"
)

// Registry holds counters, gauges and labels shared with the debug overlay
// Writers cache pointers at setup and update atomics directly
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Len returns metrics across all kinds
func (r *Registry) Len() int {
	return r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Lines formats every metric as "key: value", sorted by key
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.Len())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s: %d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s: %.2f", k, v.Get()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		lines = append(lines, fmt.Sprintf("%s: %s", k, v.Load()))
	})
	sort.Strings(lines)
	return lines
}
