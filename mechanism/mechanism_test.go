package mechanism

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/physics/physicstest"
	"github.com/lixenwraith/pinball/table"
	"github.com/lixenwraith/pinball/vmath"
)

// flatScorer pays base points at multiplier 1 and records boosts
type flatScorer struct {
	score  int64
	boosts []float64
	bumps  int
}

func (s *flatScorer) Award(base int, boost float64) int64 {
	s.score += int64(base)
	s.boosts = append(s.boosts, boost)
	return int64(base)
}

func (s *flatScorer) BumpMultiplier(n int) { s.bumps += n }

type cueLog []event.GameEvent

func (c *cueLog) Emit(ev event.GameEvent) { *c = append(*c, ev) }

func (c cueLog) count(t event.EventType) int {
	n := 0
	for _, ev := range c {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func newContext() (*Context, *physicstest.World, *flatScorer, *cueLog) {
	w := physicstest.New()
	ball := w.CreateRigidBody(physics.BodyDesc{Kind: physics.BodyDynamic, Position: mgl64.Vec3{0, 0.18, 0}})
	s := &flatScorer{}
	cues := &cueLog{}
	return &Context{World: w, Ball: ball, Score: s, Cues: cues}, w, s, cues
}

func TestPlungerFullChargeStroke(t *testing.T) {
	const rest, pullMax = 5.55, 6.02
	p := NewPlunger(rest, pullMax)
	dt := parameter.FixedStepSeconds

	seen := map[PlungerMode]bool{}
	check := func(step int) {
		lo, hi := p.Bounds()
		if p.Position() < lo-1e-12 || p.Position() > hi+1e-12 {
			t.Fatalf("step %d: position %v outside [%v, %v]", step, p.Position(), lo, hi)
		}
		if p.Position() < rest-parameter.PlungerOvershoot-1e-12 {
			t.Fatalf("step %d: position %v beyond full overshoot", step, p.Position())
		}
		seen[p.Mode()] = true
	}

	// Hold at full charge long enough to settle at max pull
	for i := 0; i < 240; i++ {
		p.Step(dt, PlungerInput{Held: true, Charge: 1, InLane: true})
		check(i)
	}
	if p.Mode() != PlungerPull {
		t.Fatalf("Expected pull while held, got %v", p.Mode())
	}
	if math.Abs(p.Position()-pullMax) > 1e-3 {
		t.Errorf("Expected pull near %v, got %v", pullMax, p.Position())
	}

	if !p.Step(dt, PlungerInput{Released: true, Fired: 1, InLane: true}) {
		t.Fatal("Expected release to start a fire stroke")
	}
	want := parameter.PlungerFireSpeedBase + parameter.PlungerFireSpeedK
	if p.FireSpeed() != want {
		t.Errorf("Expected fire speed %v, got %v", want, p.FireSpeed())
	}

	steps := 0
	for p.Mode() != PlungerIdle {
		p.Step(dt, PlungerInput{})
		check(steps)
		steps++
		if steps > 10_000 {
			t.Fatalf("Plunger never returned to idle, stuck in %v", p.Mode())
		}
	}

	for _, m := range []PlungerMode{PlungerPull, PlungerFire, PlungerReturn, PlungerIdle} {
		if !seen[m] {
			t.Errorf("Expected to pass through %v", m)
		}
	}
	if p.Position() != rest {
		t.Errorf("Expected rest %v after stroke, got %v", rest, p.Position())
	}
}

func TestPlungerIgnoresHoldOutsideLane(t *testing.T) {
	p := NewPlunger(5.55, 6.02)
	for i := 0; i < 30; i++ {
		p.Step(parameter.FixedStepSeconds, PlungerInput{Held: true, Charge: 1, InLane: false})
	}
	if p.Mode() != PlungerIdle || p.Position() != 5.55 {
		t.Errorf("Expected idle at rest, got %v at %v", p.Mode(), p.Position())
	}
	if p.Step(parameter.FixedStepSeconds, PlungerInput{Released: true, Fired: 1}) {
		t.Error("Expected no fire from idle")
	}
}

func TestKickoutCaptureAndEject(t *testing.T) {
	ctx, w, s, cues := newContext()
	def := &table.KickoutDef{
		ID: "kickout", Pos: mgl64.Vec3{-2.05, 0.16, -0.1}, Score: 650, Boost: 0.22,
		Dwell: 900 * time.Millisecond, Impulse: 6.5, Lift: 0.18,
		EjectDir: vmath.PlanarNormalize(mgl64.Vec3{0.85, 0, -0.55}),
	}
	k := NewKickout(def)
	w.SetLinvel(ctx.Ball, mgl64.Vec3{3, 0, 3})

	if !k.Capture(ctx) {
		t.Fatal("Expected capture")
	}
	if k.Capture(ctx) {
		t.Error("Expected second capture ignored while locked")
	}
	if s.score != 650 || len(s.boosts) != 1 || s.boosts[0] != 0.22 {
		t.Errorf("Expected one 650 award with .22 boost, got %d %v", s.score, s.boosts)
	}
	b := w.Bodies[ctx.Ball]
	if b.Enabled {
		t.Error("Expected ball disabled in pocket")
	}
	if b.Position != (mgl64.Vec3{-2.05, parameter.KickoutPocketY, -0.1}) {
		t.Errorf("Expected ball snapped to pocket, got %v", b.Position)
	}

	ctx.Now = 899 * time.Millisecond
	k.Update(ctx)
	if !k.Locked() {
		t.Fatal("Expected lock held before dwell elapses")
	}

	ctx.Now = 900 * time.Millisecond
	k.Update(ctx)
	if k.Locked() || !b.Enabled {
		t.Fatal("Expected unlock and re-enable at dwell")
	}
	imp := w.LastImpulse(ctx.Ball)
	if math.Abs(imp[0]-def.EjectDir[0]*6.5) > 1e-9 || math.Abs(imp[2]-def.EjectDir[2]*6.5) > 1e-9 || imp[1] != 0.18 {
		t.Errorf("Expected eject impulse along eject dir with lift, got %v", imp)
	}
	if b.Linvel != imp {
		t.Errorf("Expected velocity overridden by eject, got %v", b.Linvel)
	}
	if cues.count(event.EventKickoutCapture) != 1 || cues.count(event.EventKickoutEject) != 1 {
		t.Errorf("Expected capture and eject cues, got %v", *cues)
	}
}

func TestKickoutEjectCueAtPocket(t *testing.T) {
	ctx, w, _, cues := newContext()
	def := &table.KickoutDef{ID: "kickout", Pos: mgl64.Vec3{-2.05, 0.16, -0.1}, Dwell: 100 * time.Millisecond, Impulse: 6.5}
	k := NewKickout(def)
	k.Capture(ctx)

	// Ball moved by the solver between capture and eject
	w.SetTranslation(ctx.Ball, mgl64.Vec3{1, 0.18, 2})
	ctx.Now = 100 * time.Millisecond
	k.Update(ctx)

	pocket := mgl64.Vec3{-2.05, parameter.KickoutPocketY, -0.1}
	var found bool
	for _, ev := range *cues {
		if ev.Type != event.EventKickoutEject {
			continue
		}
		found = true
		if ev.Position != pocket {
			t.Errorf("Expected eject cue at pocket %v, got %v", pocket, ev.Position)
		}
	}
	if !found {
		t.Fatal("Expected an eject cue")
	}
}

func bankDef(n int) *table.DropBankDef {
	d := &table.DropBankDef{ID: "drop", Score: 500, Boost: 0.18, Bonus: 2500, BonusBoost: 0.35, ResetDelay: 1800 * time.Millisecond}
	for i := 0; i < n; i++ {
		d.Targets = append(d.Targets, table.TargetDef{ID: "d"})
	}
	return d
}

func TestDropBankIdempotentAndClears(t *testing.T) {
	ctx, _, s, cues := newContext()
	b := NewDropBank(bankDef(4))

	if !b.Hit(ctx, 0) || b.Hit(ctx, 0) {
		t.Fatal("Expected first hit to drop and repeat to be ignored")
	}
	if s.score != 500 {
		t.Errorf("Expected 500 after one drop, got %d", s.score)
	}

	for i := 1; i < 4; i++ {
		b.Hit(ctx, i)
	}
	if s.score != 4*500+2500 {
		t.Errorf("Expected drops plus bank bonus, got %d", s.score)
	}
	if s.bumps != 1 {
		t.Errorf("Expected one multiplier bump, got %d", s.bumps)
	}
	if cues.count(event.EventBankCleared) != 1 {
		t.Errorf("Expected one bank clear cue, got %d", cues.count(event.EventBankCleared))
	}

	// Down targets stay down until the reset
	if b.Hit(ctx, 2) {
		t.Error("Expected hits ignored while cleared")
	}
	ctx.Now = 1799 * time.Millisecond
	b.Update(ctx)
	if !b.Down(0) {
		t.Error("Expected bank still down before reset delay")
	}
	ctx.Now = 1800 * time.Millisecond
	b.Update(ctx)
	for i := 0; i < b.Len(); i++ {
		if b.Down(i) {
			t.Errorf("Expected target %d raised after reset", i)
		}
	}
	if cues.count(event.EventBankReset) != 1 {
		t.Error("Expected reset cue")
	}
}

func TestTargetGroupClearRelights(t *testing.T) {
	ctx, _, s, cues := newContext()
	def := &table.TargetGroupDef{ID: "rollover", Score: 300, Boost: 0.08, Bonus: 1500, BonusBoost: 0.25}
	for i := 0; i < 3; i++ {
		def.Targets = append(def.Targets, table.TargetDef{ID: "t"})
	}
	g := NewTargetGroup(def)

	g.Hit(ctx, 0)
	g.Hit(ctx, 0)
	g.Hit(ctx, 0)
	if s.score != 300 {
		t.Errorf("Expected lit target to pay once, got %d", s.score)
	}

	g.Hit(ctx, 1)
	g.Hit(ctx, 2)
	if cues.count(event.EventGroupCleared) != 1 {
		t.Fatalf("Expected exactly one group clear, got %d", cues.count(event.EventGroupCleared))
	}
	if s.score != 3*300+1500 || s.bumps != 1 {
		t.Errorf("Expected 2400 with one bump, got %d and %d", s.score, s.bumps)
	}
	for i := 0; i < g.Len(); i++ {
		if g.Lit(i) {
			t.Errorf("Expected target %d relit (unlit) after clear", i)
		}
	}

	// Next cycle pays again
	if !g.Hit(ctx, 1) {
		t.Error("Expected target to light again in the next cycle")
	}
}

func TestArcTrackerTwoAndAHalfTurns(t *testing.T) {
	var a ArcTracker
	const steps = 50
	total := 2.5 * vmath.TwoPi
	delta := total / steps

	ticks := a.Observe(0.3) // priming sample
	yaw := 0.3
	for i := 0; i < steps; i++ {
		yaw = vmath.WrapAngle(yaw + delta)
		ticks += a.Observe(yaw)
	}

	if ticks != 2 {
		t.Errorf("Expected 2 ticks, got %d", ticks)
	}
	if math.Abs(a.Arc()-math.Pi) > 1e-9 {
		t.Errorf("Expected remaining arc of half a turn, got %v", a.Arc())
	}
}

func TestArcTrackerCountsBothDirections(t *testing.T) {
	var a ArcTracker
	a.Observe(3.0)
	a.Observe(-3.0) // forward across the seam, 2π-6
	a.Observe(3.0)  // back again
	want := 2 * (vmath.TwoPi - 6.0)
	if math.Abs(a.Arc()-want) > 1e-9 {
		t.Errorf("Expected %v accumulated, got %v", want, a.Arc())
	}
}

func TestSpinnerPaysPerRevolution(t *testing.T) {
	ctx, w, s, cues := newContext()
	body := w.CreateRigidBody(physics.BodyDesc{Kind: physics.BodyDynamic})
	sp := NewSpinner(&table.SpinnerDef{ID: "spinner", Score: 70}, body)

	yaw := 0.0
	sp.Update(ctx)
	for i := 0; i < 40; i++ {
		yaw += vmath.TwoPi / 16
		w.SetYaw(body, vmath.WrapAngle(yaw))
		sp.Update(ctx)
	}

	if sp.Revolutions() != 2 {
		t.Errorf("Expected 2 revolutions, got %d", sp.Revolutions())
	}
	if s.score != 140 {
		t.Errorf("Expected 140 points, got %d", s.score)
	}
	for _, b := range s.boosts {
		if b != 0 {
			t.Errorf("Expected spinner awards without boost, got %v", b)
		}
	}
	if cues.count(event.EventSpinnerSpin) != 2 {
		t.Errorf("Expected 2 spin cues, got %d", cues.count(event.EventSpinnerSpin))
	}
}

func TestLaneDebounce(t *testing.T) {
	d := NewDebounce(parameter.LaneDebounce)
	if !d.Allow("inlane:left", 1000*time.Millisecond) {
		t.Fatal("Expected first trigger allowed")
	}
	if d.Allow("inlane:left", 1100*time.Millisecond) {
		t.Error("Expected trigger 100ms later suppressed")
	}
	if !d.Allow("inlane:right", 1100*time.Millisecond) {
		t.Error("Expected other lane unaffected")
	}

	d2 := NewDebounce(parameter.LaneDebounce)
	d2.Allow("outlane:left", 0)
	if !d2.Allow("outlane:left", 400*time.Millisecond) {
		t.Error("Expected trigger 400ms later allowed")
	}
}
