// Package game orchestrates one pinball session: the fixed-step loop, ball
// lifecycle, collision dispatch, scoring and the phase machine.
package game

import (
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/engine"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/input"
	"github.com/lixenwraith/pinball/mechanism"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/status"
	"github.com/lixenwraith/pinball/table"
)

// Options configures a Session; zero values select the defaults
type Options struct {
	Boost      BoostPolicy
	DrainReset DrainReset
	Balls      int

	// IdlePhysics keeps stepping the world outside playing for ambient motion
	IdlePhysics bool

	// Rand supplies fallback kick directions; seeded from time when nil
	Rand *rand.Rand

	Metrics *status.Registry
}

// Session owns the simulation of one table
// Frame and the control methods must be called from a single goroutine
type Session struct {
	opts   Options
	world  physics.World
	def    *table.Definition
	layout *table.Layout
	input  input.Source

	clock     engine.SimClock
	loop      *engine.FixedLoop
	lastFrame time.Time
	framed    bool
	disposed  bool

	phase Phase
	score *Scorer
	ball  *Ball
	ctx   mechanism.Context

	groups    []*mechanism.TargetGroup
	bank      *mechanism.DropBank
	kickout   *mechanism.Kickout
	spinner   *mechanism.Spinner
	plunger   *mechanism.Plunger
	lanes     *mechanism.Debounce
	flipperOn []bool

	rng   *rand.Rand
	queue *event.EventQueue

	// Per-frame input, read once and shared by every step of the frame
	in         input.State
	release    input.Release
	hasRelease bool

	// drained marks a drain already handled in the current step
	drained bool

	// Hud receives a snapshot at the end of every frame
	Hud event.Hub[Hud]
	// Phases receives every phase change
	Phases event.Hub[Phase]

	metrics      *status.Registry
	statSteps    *atomic.Int64
	statFrames   *atomic.Int64
	statHits     *atomic.Int64
	statIgnored  *atomic.Int64
	statDrains   *atomic.Int64
	statLaunches *atomic.Int64
	statDropped  *atomic.Int64
	statPerFrame *status.AtomicFloat
	statPeak     *status.AtomicFloat
	statPhase    *status.AtomicString
}

// NewSession builds def into w and returns a session in the menu phase
func NewSession(w physics.World, def *table.Definition, src input.Source, opts Options) *Session {
	if opts.Balls <= 0 {
		opts.Balls = parameter.DefaultBalls
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}

	layout := table.Build(w, def)
	s := &Session{
		opts:   opts,
		world:  w,
		def:    def,
		layout: layout,
		input:  src,
		loop:   engine.NewFixedLoop(parameter.FixedStep, parameter.MaxFrameDelta),
		phase:  PhaseMenu,
		score:  NewScorer(opts.Boost, opts.DrainReset),
		ball:   newBall(w, layout.Ball, def),
		lanes:  mechanism.NewDebounce(parameter.LaneDebounce),
		rng:    opts.Rand,
		queue:  event.NewEventQueue(),
	}

	for i := range def.TargetGroups {
		s.groups = append(s.groups, mechanism.NewTargetGroup(&def.TargetGroups[i]))
	}
	if def.DropBank != nil {
		s.bank = mechanism.NewDropBank(def.DropBank)
	}
	if def.Kickout != nil {
		s.kickout = mechanism.NewKickout(def.Kickout)
	}
	if layout.Spinner != nil {
		s.spinner = mechanism.NewSpinner(layout.Spinner.Def, layout.Spinner.Body)
	}
	if layout.Plunger != nil {
		p := layout.Plunger.Def
		s.plunger = mechanism.NewPlunger(p.RestZ(), p.PullMaxZ)
	}
	s.flipperOn = make([]bool, len(layout.Flippers))

	s.ctx = mechanism.Context{World: w, Ball: layout.Ball, Score: s.score, Cues: s}

	m := opts.Metrics
	s.metrics = m
	s.statSteps = m.Ints.Get(status.SimSteps)
	s.statFrames = m.Ints.Get(status.SimFrames)
	s.statHits = m.Ints.Get(status.SimCollisions)
	s.statIgnored = m.Ints.Get(status.SimIgnored)
	s.statDrains = m.Ints.Get(status.BallDrains)
	s.statLaunches = m.Ints.Get(status.BallLaunches)
	s.statDropped = m.Ints.Get(status.CuesDropped)
	s.statPerFrame = m.Floats.Get(status.SimStepsPerFrame)
	s.statPeak = m.Floats.Get(status.SimStepsPeak)
	s.statPhase = m.Strings.Get(status.SessionPhase)
	s.statPhase.Store(s.phase.String())
	m.Strings.Get(status.TableName).Store(def.Name)

	return s
}

// Frame advances the simulation to now, running zero or more fixed steps
func (s *Session) Frame(now time.Time) {
	if s.disposed {
		return
	}
	var delta time.Duration
	if s.framed {
		delta = now.Sub(s.lastFrame)
	}
	s.lastFrame = now
	s.framed = true

	s.in = s.input.State()
	if r, ok := s.input.ConsumeRelease(); ok {
		s.release, s.hasRelease = r, true
	}

	n := s.loop.Advance(delta, s.step)

	// A release outside playing never launches later
	if s.phase != PhasePlaying {
		s.hasRelease = false
	}

	s.statFrames.Add(1)
	s.statPerFrame.Set(float64(n))
	s.statPeak.Max(float64(n))
	s.statDropped.Store(int64(s.queue.Dropped()))
	s.Hud.Publish(s.Snapshot())
}

func (s *Session) step(dt time.Duration) {
	s.clock.Advance(dt)
	s.statSteps.Add(1)
	s.drained = false

	playing := s.phase.Scoring()
	if !playing && !s.opts.IdlePhysics {
		return
	}

	s.ctx.Now = s.clock.Now()
	s.ctx.Step = s.clock.Steps()

	st := s.in
	if !playing {
		st = input.State{}
	}
	s.driveFlippers(st)

	if playing {
		s.launch(dt)
		s.tickScripted()
	}

	s.world.Step()
	s.world.DrainCollisionEvents(s.handleCollision)
	s.postStep()
}

func (s *Session) tickScripted() {
	if s.spinner != nil {
		s.spinner.Update(&s.ctx)
	}
	if s.kickout != nil {
		s.kickout.Update(&s.ctx)
	}
	if s.bank != nil {
		s.bank.Update(&s.ctx)
	}
}

func (s *Session) postStep() {
	p := s.ball.Position()
	s.ball.trackLane(p)
	if s.drained || !Drained(s.def, p) {
		return
	}
	if s.phase == PhasePlaying {
		s.onDrain()
		return
	}
	// Idle physics: keep the ball on the table without scoring
	s.spawn(true)
}

// spawn places the ball at the spawn point and clears ball-bound mechanism state
func (s *Session) spawn(forceLane bool) {
	s.ball.Spawn(forceLane)
	if s.kickout != nil {
		s.kickout.Reset()
	}
	if s.plunger != nil {
		s.plunger.Reset()
		s.world.SetNextKinematicTranslation(s.layout.Plunger.Body, s.layout.Plunger.Def.Pos)
	}
}

func (s *Session) onDrain() {
	if s.phase != PhasePlaying || s.drained {
		return
	}
	s.drained = true
	s.statDrains.Add(1)

	paid := s.score.Settle()
	balls := s.score.Balls()
	s.Emit(event.GameEvent{
		Type:     event.EventBallDrained,
		Position: s.ball.Position(),
		Points:   paid,
		Value:    float64(balls),
	})

	if balls > 0 {
		s.spawn(true)
		return
	}
	s.setPhase(PhaseGameOver)
	s.Emit(event.GameEvent{Type: event.EventGameOver, Points: s.score.Score()})
	log.Printf("[game] game over, score %d", s.score.Score())
}

// StartRun resets score, balls and every mechanism and enters playing
// Calling it while playing restarts the run
func (s *Session) StartRun() {
	if s.disposed {
		return
	}
	s.score.StartRun(s.opts.Balls)
	for _, g := range s.groups {
		g.Reset()
	}
	if s.bank != nil {
		s.bank.Reset()
	}
	if s.spinner != nil {
		s.spinner.Reset()
	}
	s.lanes.Reset()
	s.hasRelease = false
	s.spawn(true)
	s.setPhase(PhasePlaying)
	s.Emit(event.GameEvent{Type: event.EventRunStarted})
	log.Printf("[game] run started, %d balls, boost %s, drain reset %s", s.opts.Balls, s.score.Policy(), s.score.DrainPolicy())
}

// Restart is StartRun under the name the menu uses
func (s *Session) Restart() {
	s.StartRun()
}

// Dispose stops the session; later frames and controls are ignored
func (s *Session) Dispose() {
	s.disposed = true
	s.loop.Reset()
}

func (s *Session) setPhase(p Phase) {
	if !canTransition(s.phase, p) {
		return
	}
	s.phase = p
	s.statPhase.Store(p.String())
	log.Printf("[game] phase %s", p)
	s.Phases.Publish(p)
}

// Emit queues a cue for presentation consumers
func (s *Session) Emit(ev event.GameEvent) {
	if ev.Step == 0 {
		ev.Step = s.clock.Steps()
	}
	s.queue.Push(ev)
}

// Snapshot returns the current HUD values
func (s *Session) Snapshot() Hud {
	return Hud{
		Score:        s.score.Score(),
		Multiplier:   s.score.Multiplier(),
		Balls:        s.score.Balls(),
		LaunchCharge: s.in.LaunchCharge,
		Bonus:        s.score.Bonus(),
		Combo:        s.score.Combo(),
		Phase:        s.phase,
		InLane:       s.ball.InLane(),
	}
}

func (s *Session) Phase() Phase              { return s.phase }
func (s *Session) Scorer() *Scorer           { return s.score }
func (s *Session) Ball() *Ball               { return s.ball }
func (s *Session) Layout() *table.Layout     { return s.layout }
func (s *Session) World() physics.World      { return s.world }
func (s *Session) Cues() *event.EventQueue   { return s.queue }
func (s *Session) Metrics() *status.Registry { return s.metrics }
func (s *Session) Now() time.Duration        { return s.clock.Now() }
func (s *Session) Steps() uint64             { return s.clock.Steps() }

// PlungerPosition returns the commanded plunger Z, false on tables without one
func (s *Session) PlungerPosition() (float64, bool) {
	if s.plunger == nil {
		return 0, false
	}
	return s.plunger.Position(), true
}

// TargetLit reports lit state for presentation
func (s *Session) TargetLit(group, i int) bool {
	return group >= 0 && group < len(s.groups) && s.groups[group].Lit(i)
}

// DropDown reports drop target state for presentation
func (s *Session) DropDown(i int) bool {
	return s.bank != nil && s.bank.Down(i)
}

// KickoutLocked reports a ball held in the kickout
func (s *Session) KickoutLocked() bool {
	return s.kickout != nil && s.kickout.Locked()
}

var _ mechanism.Emitter = (*Session)(nil)

// ballPos is a short hand for dispatch code
func (s *Session) ballPos() mgl64.Vec3 {
	return s.ball.Position()
}
