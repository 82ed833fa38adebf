package table

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// applyDefaults fills scoring and timing left unset by the YAML
func applyDefaults(d *Definition) {
	if d.Bounds.RailMargin == 0 {
		d.Bounds.RailMargin = parameter.RailTolerance
	}
	d.Launch.Base = orFloat(d.Launch.Base, parameter.LaunchImpulseBase)
	d.Launch.K = orFloat(d.Launch.K, parameter.LaunchImpulseK)
	if d.Ball.Radius == 0 {
		d.Ball.Radius = parameter.BallRadius
	}
	for i := range d.Walls {
		inheritSurface(&d.Walls[i].Surface, d.Wall)
	}
	for i := range d.Bumpers {
		b := &d.Bumpers[i]
		b.Score = orInt(b.Score, parameter.BumperScore)
		b.Boost = orFloat(b.Boost, parameter.BumperBoost)
		b.Impulse = orFloat(b.Impulse, parameter.BumperImpulse)
	}
	for i := range d.Slings {
		s := &d.Slings[i]
		s.Score = orInt(s.Score, parameter.SlingScore)
		s.Boost = orFloat(s.Boost, parameter.SlingBoost)
		s.Impulse = orFloat(s.Impulse, parameter.SlingImpulse)
	}
	for i := range d.TargetGroups {
		g := &d.TargetGroups[i]
		g.Score = orInt(g.Score, parameter.RolloverTargetScore)
		g.Boost = orFloat(g.Boost, parameter.TargetBoost)
		g.Bonus = orInt(g.Bonus, parameter.TargetGroupBonus)
		g.BonusBoost = orFloat(g.BonusBoost, parameter.TargetGroupBoost)
	}
	if b := d.DropBank; b != nil {
		b.Score = orInt(b.Score, parameter.DropTargetScore)
		b.Boost = orFloat(b.Boost, parameter.DropTargetBoost)
		b.Bonus = orInt(b.Bonus, parameter.DropBankBonus)
		b.BonusBoost = orFloat(b.BonusBoost, parameter.DropBankBoost)
		if b.ResetDelay == 0 {
			b.ResetDelay = parameter.DropBankResetDelay
		}
	}
	if s := d.Spinner; s != nil {
		s.Score = orInt(s.Score, parameter.SpinnerScore)
	}
	if k := d.Kickout; k != nil {
		k.Score = orInt(k.Score, parameter.KickoutScore)
		k.Boost = orFloat(k.Boost, parameter.KickoutBoost)
		k.Impulse = orFloat(k.Impulse, parameter.KickoutImpulse)
		k.Lift = orFloat(k.Lift, parameter.KickoutLift)
		if k.Dwell == 0 {
			k.Dwell = parameter.KickoutDwell
		}
		k.EjectDir = vmath.PlanarNormalize(k.EjectDir)
	}
	for i := range d.Lanes {
		l := &d.Lanes[i]
		switch l.Kind {
		case LaneInlane:
			l.Score = orInt(l.Score, parameter.InlaneScore)
		case LaneOutlane:
			l.Score = orInt(l.Score, parameter.OutlaneScore)
			if l.Nudge[0] == 0 && l.Nudge[2] == 0 {
				// Push back toward the centerline
				l.Nudge[0] = -math.Copysign(parameter.OutlaneNudgeX, l.Pos[0])
				l.Nudge[2] = parameter.OutlaneNudgeZ
			}
		case LaneGate:
			l.Score = orInt(l.Score, parameter.GateScore)
		}
		l.Boost = orFloat(l.Boost, parameter.LaneBoost)
	}
	for i := range d.Flippers {
		f := &d.Flippers[i]
		f.Stiffness = orFloat(f.Stiffness, parameter.FlipperStiffness)
		f.Damping = orFloat(f.Damping, parameter.FlipperDamping)
	}
}

func inheritSurface(s *Surface, from Surface) {
	if s.Friction == 0 {
		s.Friction = from.Friction
	}
	if s.Restitution == 0 {
		s.Restitution = from.Restitution
	}
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Validate checks a merged definition for values the simulation cannot run with
func Validate(d *Definition) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if d.Bounds.Width <= 0 || d.Bounds.Length <= 0 {
		add("bounds must be positive, got %vx%v", d.Bounds.Width, d.Bounds.Length)
	}
	if d.Ball.Radius <= 0 {
		add("ball radius must be positive")
	}
	if d.DrainZ <= d.LaneExitZ {
		add("drain_z %v must lie below lane_exit_z %v", d.DrainZ, d.LaneExitZ)
	}
	if d.Ball.Spawn[2] <= d.LaneExitZ {
		add("ball spawn z %v must start inside the shooter lane (> %v)", d.Ball.Spawn[2], d.LaneExitZ)
	}
	if d.Ball.Spawn[2] >= d.DrainZ+parameter.DrainTolerance {
		add("ball spawn z %v lies past the drain", d.Ball.Spawn[2])
	}
	if s := d.ShooterLane; s != nil {
		if s.MinX >= s.MaxX {
			add("shooter_lane min_x must be below max_x")
		} else if !s.Contains(d.Ball.Spawn[0]) {
			add("ball spawn x %v outside shooter_lane", d.Ball.Spawn[0])
		}
	}

	ids := make(map[string]struct{})
	unique := func(kind, id string) {
		if id == "" {
			add("%s without id", kind)
			return
		}
		if _, dup := ids[id]; dup {
			add("duplicate id %q", id)
		}
		ids[id] = struct{}{}
	}

	for _, b := range d.Bumpers {
		unique("bumper", b.ID)
		if b.Radius <= 0 {
			add("bumper %s radius must be positive", b.ID)
		}
	}
	for _, s := range d.Slings {
		unique("sling", s.ID)
	}
	for _, g := range d.TargetGroups {
		unique("target group", g.ID)
		if len(g.Targets) == 0 {
			add("target group %s has no targets", g.ID)
		}
		for _, t := range g.Targets {
			unique("target", t.ID)
		}
	}
	if b := d.DropBank; b != nil {
		unique("drop bank", b.ID)
		if len(b.Targets) == 0 {
			add("drop bank %s has no targets", b.ID)
		}
		for _, t := range b.Targets {
			unique("drop target", t.ID)
		}
	}
	if s := d.Spinner; s != nil {
		unique("spinner", s.ID)
	}
	if k := d.Kickout; k != nil {
		unique("kickout", k.ID)
		if k.EjectDir.Len() == 0 {
			add("kickout %s needs a non-zero eject_dir", k.ID)
		}
	}
	for _, l := range d.Lanes {
		unique("lane", l.ID)
	}
	for i, f := range d.Flippers {
		if f.Side != "left" && f.Side != "right" {
			add("flipper %d side must be left or right, got %q", i, f.Side)
		}
		if f.LimitMin > f.LimitMax {
			add("flipper %s limits inverted", f.Side)
		}
	}
	if p := d.Plunger; p != nil {
		if p.PullMaxZ <= p.RestZ() {
			add("plunger pull_max_z %v must exceed rest %v", p.PullMaxZ, p.RestZ())
		}
	}

	return errors.Join(errs...)
}
