package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/input"
	"github.com/lixenwraith/pinball/mechanism"
	"github.com/lixenwraith/pinball/vmath"
)

// driveFlippers retargets flipper motors when a button changes
func (s *Session) driveFlippers(st input.State) {
	for i, rig := range s.layout.Flippers {
		on := st.RightFlipper
		if rig.Left {
			on = st.LeftFlipper
		}
		if on == s.flipperOn[i] {
			continue
		}
		s.flipperOn[i] = on

		target := rig.Def.RestAngle
		if on {
			target = rig.Def.ActiveAngle
		}
		s.world.ConfigureMotorPosition(rig.Joint, target, rig.Def.Stiffness, rig.Def.Damping)
	}
}

// launch runs the plunger for one step, or the direct impulse on tables without one
func (s *Session) launch(dt time.Duration) {
	released, charge := s.hasRelease, s.release.Charge
	s.hasRelease = false

	if s.plunger != nil {
		fired := s.plunger.Step(dt.Seconds(), mechanism.PlungerInput{
			Held:     s.in.LaunchHeld,
			Charge:   s.in.LaunchCharge,
			Released: released,
			Fired:    charge,
			InLane:   s.ball.InLane(),
		})
		rig := s.layout.Plunger
		pos := rig.Def.Pos
		pos[2] = s.plunger.Position()
		s.world.SetNextKinematicTranslation(rig.Body, pos)
		if fired {
			s.launched(charge)
		}
		return
	}

	if !released || !s.ball.InLane() {
		return
	}
	c := vmath.Clamp01(charge)
	power := s.def.Launch.Base + s.def.Launch.K*c*c
	s.world.ApplyImpulse(s.ball.handle, mgl64.Vec3{0, 0, -power})
	s.launched(c)
}

func (s *Session) launched(charge float64) {
	s.statLaunches.Add(1)
	s.Emit(event.GameEvent{Type: event.EventBallLaunched, Position: s.ballPos(), Value: charge})
}
