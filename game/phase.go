package game

// Phase is the session phase
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	}
	return "unknown"
}

// Scoring reports whether mechanisms and scoring run in this phase
func (p Phase) Scoring() bool {
	return p == PhasePlaying
}

// canTransition lists the legal phase edges
// menu -> playing, playing -> gameover, gameover -> playing, playing -> playing (restart)
func canTransition(from, to Phase) bool {
	switch to {
	case PhasePlaying:
		return true
	case PhaseGameOver:
		return from == PhasePlaying
	case PhaseMenu:
		return false
	}
	return false
}

// MarshalText encodes the phase name for JSON feeds
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
