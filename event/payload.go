package event

import "github.com/go-gl/mathgl/mgl64"

// GameEvent is a fire-and-forget cue from the simulation to presentation consumers
// Value semantics; nothing in it aliases simulation state
type GameEvent struct {
	Type     EventType
	ID       string     // Mechanism or lane identifier, empty when not applicable
	Position mgl64.Vec3 // World position of the cue source
	Points   int64      // Points awarded by the triggering action
	Value    float64    // Type-specific scalar, see EventType docs
	Step     uint64     // Simulation step the cue was produced on
}
