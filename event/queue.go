package event

import (
	"sync/atomic"

	"github.com/lixenwraith/pinball/parameter"
)

// EventQueue is a lock-free MPSC ring buffer for cues
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (presentation frame)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest cues overwritten when full; cues are cosmetic so loss is tolerable
type EventQueue struct {
	events    [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
	dropped   atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev, overwriting the oldest pending cue when full
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		tail := eq.tail.Load()
		next := tail + 1
		if !eq.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & parameter.EventBufferMask
		eq.events[idx] = ev
		eq.published[idx].Store(true) // MUST be after write

		head := eq.head.Load()
		if next-head > parameter.EventQueueSize {
			if eq.head.CompareAndSwap(head, next-parameter.EventQueueSize) {
				eq.dropped.Add(next - parameter.EventQueueSize - head)
			}
		}
		return
	}
}

// Consume returns pending cues in FIFO order and advances head
func (eq *EventQueue) Consume() []GameEvent {
	for {
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail == head {
			return nil
		}

		avail := tail - head
		if avail > parameter.EventQueueSize {
			avail = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]GameEvent, 0, avail)
		for i := uint64(0); i < avail; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !eq.published[idx].Load() {
				break // writer incomplete
			}
			out = append(out, eq.events[idx])
			eq.published[idx].Store(false)
		}

		if eq.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns approximate pending count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	if d := tail - head; d < parameter.EventQueueSize {
		return int(d)
	}
	return parameter.EventQueueSize
}

// Dropped returns the number of cues overwritten before being consumed
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
