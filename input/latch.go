package input

import (
	"time"

	"github.com/lixenwraith/pinball/parameter"
)

// KeyLatch turns a stream of key presses into a held state
//
// Terminals report key presses and auto-repeats but no key-up. The first press holds
// for KeyHoldInitial to bridge the repeat delay; each repeat extends by KeyHoldRepeat.
// A gap longer than that reads as release.
type KeyLatch struct {
	Initial time.Duration
	Repeat  time.Duration

	held  bool
	until time.Time
}

// NewKeyLatch creates a latch with terminal repeat timings
func NewKeyLatch() KeyLatch {
	return KeyLatch{Initial: parameter.KeyHoldInitial, Repeat: parameter.KeyHoldRepeat}
}

// Press registers a press or repeat, returning true on the initial press
func (l *KeyLatch) Press(now time.Time) bool {
	if l.held {
		l.until = now.Add(l.Repeat)
		return false
	}
	l.held = true
	l.until = now.Add(l.Initial)
	return true
}

// Expire releases the latch when its hold window has passed, returning true on that edge
func (l *KeyLatch) Expire(now time.Time) bool {
	if l.held && now.After(l.until) {
		l.held = false
		return true
	}
	return false
}

// Drop releases without waiting
func (l *KeyLatch) Drop() {
	l.held = false
}

func (l *KeyLatch) Held() bool {
	return l.held
}
