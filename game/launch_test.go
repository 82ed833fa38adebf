package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/pinball/engine"
	"github.com/lixenwraith/pinball/input"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics/chipmunk"
	"github.com/lixenwraith/pinball/table"
)

const (
	pullSteps   = 144
	settleSteps = 30
	flightSteps = 240
)

// launchResult records one charged launch through the real solver
type launchResult struct {
	inLaneAfterPull bool
	leftLane        bool
	peakSpeed       float64
}

func launchOnTable(t *testing.T, name string, charge float64) launchResult {
	t.Helper()
	def, err := table.NewLoader("").Load(name)
	if err != nil {
		t.Fatalf("Load %s failed: %v", name, err)
	}
	w := chipmunk.New(chipmunk.Config{
		Gravity:    def.Gravity,
		Step:       parameter.FixedStepSeconds,
		Iterations: parameter.SolverIterations,
	})
	in := &stubInput{}
	clock := engine.NewMockTimeProvider(time.Unix(1000, 0))
	s := NewSession(w, def, in, Options{Rand: rand.New(rand.NewSource(1))})
	s.Frame(clock.Now())
	s.StartRun()

	step := func() { s.Frame(clock.Advance(parameter.FixedStep)) }
	for i := 0; i < settleSteps; i++ {
		step()
	}

	for i := 1; i <= pullSteps; i++ {
		in.st = input.State{LaunchHeld: true, LaunchCharge: charge * float64(i) / pullSteps}
		step()
	}

	var res launchResult
	res.inLaneAfterPull = s.Ball().InLane()
	lane := def.ShooterLane
	if p := s.Ball().Position(); lane != nil && !lane.Contains(p[0]) {
		res.inLaneAfterPull = false
	}

	in.st = input.State{}
	in.rel = &input.Release{Charge: charge}
	for i := 0; i < flightSteps && !res.leftLane; i++ {
		step()
		if v := -w.Linvel(s.Ball().Handle())[2]; v > res.peakSpeed {
			res.peakSpeed = v
		}
		res.leftLane = !s.Ball().InLane()
	}
	return res
}

func TestPlungerLaunchOnCadet(t *testing.T) {
	tests := []struct {
		name   string
		charge float64
	}{
		{"low", 0.2},
		{"mid", 0.6},
		{"full", 1.0},
	}

	prev := 0.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := launchOnTable(t, "cadet", tt.charge)
			if !res.inLaneAfterPull {
				t.Fatalf("Expected ball held in shooter lane after pull at charge %.1f", tt.charge)
			}
			if !res.leftLane {
				t.Fatalf("Expected ball to leave shooter lane after release at charge %.1f", tt.charge)
			}
			if res.peakSpeed <= prev {
				t.Errorf("Expected launch speed above %.2f at charge %.1f, got %.2f", prev, tt.charge, res.peakSpeed)
			}
			prev = res.peakSpeed
		})
	}
}
