package event

// EventType represents the kind of cue emitted by the simulation
type EventType uint8

const (
	// === Playfield ===

	// EventBumperHit signals a bumper kick
	// Trigger: Dispatcher on ball-bumper contact start
	// Consumer: Audio (boom), Render (burst) | Payload: Position, Points
	EventBumperHit EventType = iota

	// EventSlingHit signals a slingshot kick
	// Trigger: Dispatcher on ball-sling contact start
	// Consumer: Audio (boom), Render (burst) | Payload: Position, Points
	EventSlingHit

	// EventTargetLit signals a target lighting for the first time this cycle
	// Trigger: Target group | Consumer: Audio, Render | Payload: ID, Points
	EventTargetLit

	// EventGroupCleared signals every target of a group lit
	// Trigger: Target group | Consumer: Audio, Render | Payload: ID, Points
	EventGroupCleared

	// EventDropDown signals a drop target falling
	// Trigger: Drop bank | Consumer: Audio, Render | Payload: ID, Points
	EventDropDown

	// EventBankCleared signals the full drop bank down
	// Trigger: Drop bank | Consumer: Audio, Render | Payload: ID, Points
	EventBankCleared

	// EventBankReset signals the drop bank raised again
	// Trigger: Drop bank deadline | Consumer: Render | Payload: ID
	EventBankReset

	// EventSpinnerTouch signals ball contact with the spinner flag
	// Trigger: Dispatcher | Consumer: Audio | Payload: Position
	EventSpinnerTouch

	// EventSpinnerSpin signals completed revolutions
	// Trigger: Spinner tracker | Consumer: Audio, Render | Payload: Value (ticks), Points
	EventSpinnerSpin

	// EventKickoutCapture signals the ball locked in the kickout pocket
	// Trigger: Dispatcher | Consumer: Audio, Render | Payload: Position, Points
	EventKickoutCapture

	// EventKickoutEject signals the ball ejected from the pocket
	// Trigger: Kickout deadline | Consumer: Audio, Render | Payload: Position
	EventKickoutEject

	// EventLaneRollover signals a scored lane pass
	// Trigger: Dispatcher after debounce | Consumer: Audio, Render | Payload: ID, Points
	EventLaneRollover

	// === Ball ===

	// EventBallLaunched signals a launch from the shooter lane
	// Trigger: Plunger fire or direct impulse | Consumer: Audio | Payload: Value (charge)
	EventBallLaunched

	// EventBallDrained signals ball loss and bonus settlement
	// Trigger: Ball lifecycle | Consumer: Audio, Render | Payload: Points (settled bonus), Value (balls left)
	EventBallDrained

	// === Session ===

	// EventRunStarted signals a fresh run entering playing
	// Trigger: Session start/restart | Consumer: Audio | Payload: nil
	EventRunStarted

	// EventGameOver signals the last ball drained
	// Trigger: Ball lifecycle | Consumer: Audio, Render, Leaderboard | Payload: Points (final score)
	EventGameOver

	eventTypeCount
)

var typeNames = [eventTypeCount]string{
	EventBumperHit:      "BumperHit",
	EventSlingHit:       "SlingHit",
	EventTargetLit:      "TargetLit",
	EventGroupCleared:   "GroupCleared",
	EventDropDown:       "DropDown",
	EventBankCleared:    "BankCleared",
	EventBankReset:      "BankReset",
	EventSpinnerTouch:   "SpinnerTouch",
	EventSpinnerSpin:    "SpinnerSpin",
	EventKickoutCapture: "KickoutCapture",
	EventKickoutEject:   "KickoutEject",
	EventLaneRollover:   "LaneRollover",
	EventBallLaunched:   "BallLaunched",
	EventBallDrained:    "BallDrained",
	EventRunStarted:     "RunStarted",
	EventGameOver:       "GameOver",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return typeNames[t]
	}
	return "Unknown"
}
