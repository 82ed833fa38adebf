package game

import (
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/table"
	"github.com/lixenwraith/pinball/vmath"
)

// handleCollision resolves one contact of the step
// Only contact starts involving the ball matter; untracked colliders are ignored
func (s *Session) handleCollision(ev physics.CollisionEvent) {
	if !ev.Started || s.drained {
		return
	}

	var other physics.ColliderHandle
	switch s.layout.BallCollider {
	case ev.A:
		other = ev.B
	case ev.B:
		other = ev.A
	default:
		return
	}
	s.statHits.Add(1)

	meta, ok := s.layout.Catalogue.Lookup(other)
	if !ok {
		s.statIgnored.Add(1)
		return
	}
	if !s.phase.Scoring() {
		return
	}
	s.dispatch(meta)
}

func (s *Session) dispatch(meta table.ColliderMeta) {
	switch meta.Tag {
	case table.TagDrain:
		s.onDrain()

	case table.TagBumper:
		s.kick(meta, event.EventBumperHit, parameter.BumperLift)

	case table.TagSling:
		s.kick(meta, event.EventSlingHit, parameter.SlingLift)

	case table.TagTarget:
		if meta.Group >= 0 && meta.Group < len(s.groups) {
			s.groups[meta.Group].Hit(&s.ctx, meta.Index)
		}

	case table.TagDropTarget:
		if s.bank != nil {
			s.bank.Hit(&s.ctx, meta.Index)
		}

	case table.TagSpinner:
		// Scored by arc tracking
		s.Emit(event.GameEvent{Type: event.EventSpinnerTouch, ID: meta.ID, Position: meta.Position})

	case table.TagKickout:
		if s.kickout != nil {
			s.kickout.Capture(&s.ctx)
		}

	case table.TagLane:
		s.rollover(meta)

	case table.TagWall, table.TagFloor, table.TagBall, table.TagFlipper, table.TagPlunger:
		// Physical response only
	}
}

// kick scores a bumper or sling and pushes the ball away from it
func (s *Session) kick(meta table.ColliderMeta, cue event.EventType, lift float64) {
	pts := s.score.Award(meta.Score, meta.Boost)

	p := s.ballPos()
	dir := vmath.PlanarAway(meta.Position, p, s.randomAngle)
	physics.Kick(s.world, s.ball.handle, dir, &physics.KickProfile{
		Magnitude: meta.Impulse,
		Lift:      lift,
		Mode:      physics.ImpulseAdditive,
	})

	s.Emit(event.GameEvent{Type: cue, ID: meta.ID, Position: p, Points: pts})
}

// rollover scores a debounced lane pass and applies the table's outlane policy
func (s *Session) rollover(meta table.ColliderMeta) {
	if !s.lanes.Allow(meta.ID, s.clock.Now()) {
		return
	}
	pts := s.score.Award(meta.Score, meta.Boost)
	s.score.AddBonus(1)
	s.Emit(event.GameEvent{
		Type:     event.EventLaneRollover,
		ID:       meta.ID,
		Position: s.ballPos(),
		Points:   pts,
		Value:    float64(meta.Lane),
	})

	if meta.Lane != table.LaneOutlane {
		return
	}
	switch s.def.OutlanePolicy {
	case table.OutlaneNudge:
		s.world.ApplyImpulse(s.ball.handle, meta.Nudge)
	case table.OutlaneDrain:
		s.onDrain()
	}
}

func (s *Session) randomAngle() float64 {
	return s.rng.Float64() * vmath.TwoPi
}
