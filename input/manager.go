package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Manager tracks control state fed by a UI goroutine and read by the simulation
// Time is always passed in, so tests drive it with a mock clock
type Manager struct {
	mu sync.Mutex

	latches   [controlCount]KeyLatch
	maxCharge time.Duration

	chargeStart time.Time
	charge      float64

	release    Release
	hasRelease bool
}

func NewManager() *Manager {
	m := &Manager{maxCharge: parameter.MaxChargeTime}
	for i := range m.latches {
		m.latches[i] = NewKeyLatch()
	}
	return m
}

// Press registers a key press or auto-repeat for c
func (m *Manager) Press(c Control, now time.Time) {
	if c >= controlCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.latches[c].Press(now) && c == ControlLaunch {
		m.chargeStart = now
		m.charge = 0
	}
}

// Release ends a hold immediately, for sources that do report key-up
func (m *Manager) Release(c Control, now time.Time) {
	if c >= controlCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.latches[c].Held() {
		return
	}
	if c == ControlLaunch {
		m.updateCharge(now)
		m.fire()
	}
	m.latches[c].Drop()
}

// Poll expires stale latches and ramps the launch charge
func (m *Manager) Poll(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.latches[ControlLaunch].Held() {
		m.updateCharge(now)
	}
	for c := range m.latches {
		if m.latches[c].Expire(now) && Control(c) == ControlLaunch {
			m.fire()
		}
	}
}

// Blur drops every hold without firing, used when focus is lost or a run restarts
func (m *Manager) Blur() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.latches {
		m.latches[c].Drop()
	}
	m.charge = 0
	m.hasRelease = false
}

func (m *Manager) updateCharge(now time.Time) {
	if m.maxCharge <= 0 {
		m.charge = 1
		return
	}
	m.charge = vmath.Clamp01(float64(now.Sub(m.chargeStart)) / float64(m.maxCharge))
}

func (m *Manager) fire() {
	m.release = Release{Charge: m.charge}
	m.hasRelease = true
	m.charge = 0
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		LeftFlipper:  m.latches[ControlLeftFlipper].Held(),
		RightFlipper: m.latches[ControlRightFlipper].Held(),
		LaunchHeld:   m.latches[ControlLaunch].Held(),
		LaunchCharge: m.charge,
	}
}

func (m *Manager) ConsumeRelease() (Release, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasRelease {
		return Release{}, false
	}
	m.hasRelease = false
	return m.release, true
}

var _ Source = (*Manager)(nil)
