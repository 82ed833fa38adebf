package parameter

import "time"

// Ball & Drain
const (
	// BallRadius matches the rollover sensor depth of both tables
	BallRadius = 0.18

	// FloorDropY is the height below which the ball left the playfield
	FloorDropY = -3.0

	// DrainTolerance extends drainZ before a ball counts as lost
	DrainTolerance = 1.2

	// RailTolerance extends side and back rails
	RailTolerance = 0.35
)

// Impulses
const (
	BumperImpulse = 2.4
	BumperLift    = 0.1
	SlingImpulse  = 2.6
	SlingLift     = 0.12

	// Direct launch for tables without a plunger: base + k*charge^2
	LaunchImpulseBase = 3.25
	LaunchImpulseK    = 18.5

	// OutlaneNudgeX pushes toward center, sign taken from lane side
	OutlaneNudgeX = 0.55
	OutlaneNudgeZ = -0.2
)

// Kickout
const (
	KickoutDwell   = 900 * time.Millisecond
	KickoutImpulse = 6.5
	KickoutLift    = 0.18

	// KickoutPocketY is the height the captured ball rests at
	KickoutPocketY = 0.14
)

// Drop Bank
const (
	DropBankResetDelay = 1800 * time.Millisecond
)

// Lanes
const (
	// LaneDebounce suppresses repeat triggers from a lingering sensor overlap
	LaneDebounce = 350 * time.Millisecond
)

// Plunger
const (
	// PlungerFollowRate is the pull smoothing rate per second
	PlungerFollowRate = 18.0

	// PlungerOvershoot is how far past rest a full-charge stroke travels
	PlungerOvershoot = 0.12

	// Fire speed = base + k*charge^2, damped by exp(-damping*t)
	PlungerFireSpeedBase = 6.0
	PlungerFireSpeedK    = 26.0
	PlungerFireDamping   = 4.0
	PlungerFireMinSpeed  = 0.5

	PlungerReturnSpeed    = 3.0
	PlungerReturnDamping  = 2.5
	PlungerReturnMinSpeed = 0.25

	// PlungerRestEpsilon snaps the return stroke to rest
	PlungerRestEpsilon = 0.002
)

// Flippers
const (
	FlipperStiffness = 180.0
	FlipperDamping   = 18.0
)

// Input
const (
	// MaxChargeTime is the hold duration for a full launch charge
	MaxChargeTime = 1200 * time.Millisecond

	// KeyHoldInitial covers the terminal auto-repeat delay after the first press
	KeyHoldInitial = 520 * time.Millisecond

	// KeyHoldRepeat covers the gap between auto-repeat presses
	KeyHoldRepeat = 110 * time.Millisecond
)
