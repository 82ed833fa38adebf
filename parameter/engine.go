package parameter

import "time"

// Simulation Timing
const (
	// FixedStep is the physics timestep, advanced a whole number of times per frame
	FixedStep = time.Second / 120

	// FixedStepSeconds is FixedStep as float for integrators
	FixedStepSeconds = 1.0 / 120.0

	// MaxFrameDelta clamps a stalled frame so the accumulator cannot spiral
	MaxFrameDelta = 50 * time.Millisecond

	// FrameUpdateInterval is the presentation frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SolverIterations is the physics constraint solver pass count
	SolverIterations = 10

	// InputPollInterval is the terminal input latch refresh rate
	InputPollInterval = 8 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the cue ring buffer
	EventQueueSize = 512

	// EventBufferMask is the bitmask for fast modulo operations (512 - 1)
	EventBufferMask = 511
)

// Session Defaults
const (
	// DefaultBalls is balls per run
	DefaultBalls = 3

	// DefaultTable is the table loaded when none is configured
	DefaultTable = "cadet"
)
