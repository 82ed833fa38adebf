package input

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/pinball/engine"
)

func TestChargeRampsAndReleasesOnce(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewManager()

	m.Press(ControlLaunch, clock.Now())
	clock.Advance(600 * time.Millisecond)
	m.Press(ControlLaunch, clock.Now()) // auto-repeat keeps the hold
	m.Poll(clock.Now())

	st := m.State()
	if !st.LaunchHeld {
		t.Fatal("Expected launch held")
	}
	if math.Abs(st.LaunchCharge-0.5) > 1e-9 {
		t.Errorf("Expected charge 0.5 at 600ms, got %v", st.LaunchCharge)
	}

	clock.Advance(900 * time.Millisecond)
	m.Release(ControlLaunch, clock.Now())

	rel, ok := m.ConsumeRelease()
	if !ok {
		t.Fatal("Expected release pulse")
	}
	if rel.Charge != 1 {
		t.Errorf("Expected charge clamped to 1, got %v", rel.Charge)
	}
	if _, ok := m.ConsumeRelease(); ok {
		t.Error("Expected release pulse consumed once")
	}
	if m.State().LaunchCharge != 0 {
		t.Errorf("Expected charge reset after release, got %v", m.State().LaunchCharge)
	}
}

func TestLatchExpiryFiresRelease(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewManager()

	m.Press(ControlLaunch, clock.Now())
	clock.Advance(300 * time.Millisecond)
	m.Poll(clock.Now())
	if _, ok := m.ConsumeRelease(); ok {
		t.Fatal("Expected hold to survive the repeat delay")
	}

	clock.Advance(300 * time.Millisecond)
	m.Poll(clock.Now())
	rel, ok := m.ConsumeRelease()
	if !ok {
		t.Fatal("Expected release once the hold window lapsed")
	}
	if math.Abs(rel.Charge-0.5) > 1e-9 {
		t.Errorf("Expected charge 0.5 carried from the last poll, got %v", rel.Charge)
	}
}

func TestFlipperLatch(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewManager()

	m.Press(ControlLeftFlipper, clock.Now())
	if !m.State().LeftFlipper || m.State().RightFlipper {
		t.Fatal("Expected only left flipper down")
	}

	clock.Advance(time.Second)
	m.Poll(clock.Now())
	if m.State().LeftFlipper {
		t.Error("Expected left flipper released after hold window")
	}
	if _, ok := m.ConsumeRelease(); ok {
		t.Error("Expected flipper release not to produce a launch pulse")
	}
}

func TestBlurCancelsCharge(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewManager()

	m.Press(ControlLaunch, clock.Now())
	clock.Advance(400 * time.Millisecond)
	m.Poll(clock.Now())
	m.Blur()

	if st := m.State(); st.LaunchHeld || st.LaunchCharge != 0 {
		t.Errorf("Expected cleared launch after blur, got %+v", st)
	}
	if _, ok := m.ConsumeRelease(); ok {
		t.Error("Expected no pulse after blur")
	}
}
