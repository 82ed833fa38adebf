package parameter

// Multiplier
const (
	// MultiplierMin is the floor and the value a fresh run starts with
	MultiplierMin = 1.0

	// MultiplierMax caps additive and combo growth alike
	MultiplierMax = 8.0

	// DrainBonusUnit is points paid per accumulated lane bonus on drain
	DrainBonusUnit = 100

	// MaxScore bounds accepted leaderboard scores and the in-game counter
	MaxScore = 2_000_000_000
)

// Element scoring, base points before multiplier
const (
	BumperScore = 120
	BumperBoost = 0.15

	SlingScore = 180
	SlingBoost = 0.12

	RolloverTargetScore = 300
	StandupTargetScore  = 250
	TargetBoost         = 0.08

	TargetGroupBonus = 1500
	TargetGroupBoost = 0.25

	DropTargetScore = 500
	DropTargetBoost = 0.18
	DropBankBonus   = 2500
	DropBankBoost   = 0.35

	KickoutScore = 650
	KickoutBoost = 0.22

	// SpinnerScore is paid per full revolution with no boost
	SpinnerScore = 70

	// Every lane rollover shares one boost
	LaneBoost    = 0.04
	InlaneScore  = 220
	OutlaneScore = 120
	GateScore    = 80
)
