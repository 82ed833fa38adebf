package table

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/physics"
)

// FlipperRig is a built flipper and its motor settings
type FlipperRig struct {
	Def      *FlipperDef
	Left     bool
	Body     physics.BodyHandle
	Collider physics.ColliderHandle
	Joint    physics.JointHandle
}

// SpinnerRig is the free-spinning flag body
type SpinnerRig struct {
	Def      *SpinnerDef
	Body     physics.BodyHandle
	Collider physics.ColliderHandle
}

// PlungerRig is the kinematic plunger body
type PlungerRig struct {
	Def      *PlungerDef
	Body     physics.BodyHandle
	Collider physics.ColliderHandle
}

// Layout is a table instantiated inside a physics world
type Layout struct {
	Def       *Definition
	Catalogue *Catalogue

	Ball         physics.BodyHandle
	BallCollider physics.ColliderHandle

	Flippers []FlipperRig
	Spinner  *SpinnerRig
	Plunger  *PlungerRig
}

// Build creates every body, collider and joint of def inside w
func Build(w physics.World, def *Definition) *Layout {
	cat := NewCatalogue()
	l := &Layout{Def: def, Catalogue: cat}

	floor := w.CreateCollider(physics.ColliderDesc{
		Shape:       physics.ShapeCuboid,
		HalfExtents: mgl64.Vec3{def.Bounds.Width / 2, 0.08, def.Bounds.Length / 2},
		Offset:      mgl64.Vec3{0, -0.08, 0},
		Friction:    def.Floor.Friction,
		Restitution: def.Floor.Restitution,
		Ground:      true,
	}, physics.NoBody)
	cat.Add(floor, ColliderMeta{Tag: TagFloor})

	for i, b := range def.Walls {
		h := w.CreateCollider(boxCollider(b, false), physics.NoBody)
		cat.Add(h, ColliderMeta{Tag: TagWall, Index: i, Position: b.Pos})
	}

	for i, b := range def.Bumpers {
		h := w.CreateCollider(physics.ColliderDesc{
			Shape:       physics.ShapeCylinder,
			Radius:      b.Radius,
			HalfExtents: mgl64.Vec3{0, b.HalfHeight, 0},
			Offset:      b.Pos,
			Friction:    b.Friction,
			Restitution: b.Restitution,
			Events:      true,
		}, physics.NoBody)
		cat.Add(h, ColliderMeta{
			Tag: TagBumper, ID: b.ID, Index: i, Position: b.Pos,
			Score: b.Score, Boost: b.Boost, Impulse: b.Impulse,
		})
	}

	for i, s := range def.Slings {
		h := w.CreateCollider(physics.ColliderDesc{
			Shape:       physics.ShapeCuboid,
			HalfExtents: s.Half,
			Offset:      s.Pos,
			Yaw:         s.Yaw,
			Friction:    s.Friction,
			Restitution: s.Restitution,
			Events:      true,
		}, physics.NoBody)
		cat.Add(h, ColliderMeta{
			Tag: TagSling, ID: s.ID, Index: i, Position: s.Pos,
			Score: s.Score, Boost: s.Boost, Impulse: s.Impulse,
		})
	}

	for g, grp := range def.TargetGroups {
		for i, t := range grp.Targets {
			h := w.CreateCollider(sensor(t.Pos, grp.Half), physics.NoBody)
			cat.Add(h, ColliderMeta{
				Tag: TagTarget, ID: t.ID, Group: g, Index: i, Position: t.Pos,
				Score: grp.Score, Boost: grp.Boost,
			})
		}
	}

	if bank := def.DropBank; bank != nil {
		for i, t := range bank.Targets {
			h := w.CreateCollider(sensor(t.Pos, bank.Half), physics.NoBody)
			cat.Add(h, ColliderMeta{
				Tag: TagDropTarget, ID: t.ID, Index: i, Position: t.Pos,
				Score: bank.Score, Boost: bank.Boost,
			})
		}
	}

	if k := def.Kickout; k != nil {
		h := w.CreateCollider(sensor(k.Pos, k.Half), physics.NoBody)
		cat.Add(h, ColliderMeta{
			Tag: TagKickout, ID: k.ID, Position: k.Pos,
			Score: k.Score, Boost: k.Boost, Impulse: k.Impulse,
		})
	}

	for i, ln := range def.Lanes {
		h := w.CreateCollider(sensor(ln.Pos, ln.Half), physics.NoBody)
		cat.Add(h, ColliderMeta{
			Tag: TagLane, ID: ln.ID, Index: i, Lane: ln.Kind, Position: ln.Pos,
			Score: ln.Score, Boost: ln.Boost, Nudge: ln.Nudge,
		})
	}

	drain := w.CreateCollider(sensor(def.Drain.Pos, def.Drain.Half), physics.NoBody)
	cat.Add(drain, ColliderMeta{Tag: TagDrain, ID: "drain", Position: def.Drain.Pos})

	if s := def.Spinner; s != nil {
		body := w.CreateRigidBody(physics.BodyDesc{
			Kind:           physics.BodyDynamic,
			Position:       s.Pos,
			LinearDamping:  s.LinearDamping,
			AngularDamping: s.AngularDamping,
		})
		col := w.CreateCollider(physics.ColliderDesc{
			Shape:       physics.ShapeCuboid,
			HalfExtents: s.Half,
			Friction:    s.Friction,
			Restitution: s.Restitution,
			Events:      true,
		}, body)
		// Pinned at its center, free to spin about +Y
		w.CreateRevoluteJoint(physics.RevoluteDesc{AnchorA: s.Pos}, physics.NoBody, body)
		cat.Add(col, ColliderMeta{Tag: TagSpinner, ID: s.ID, Position: s.Pos, Score: s.Score})
		l.Spinner = &SpinnerRig{Def: s, Body: body, Collider: col}
	}

	if p := def.Plunger; p != nil {
		body := w.CreateRigidBody(physics.BodyDesc{Kind: physics.BodyKinematic, Position: p.Pos})
		col := w.CreateCollider(physics.ColliderDesc{
			Shape:       physics.ShapeCuboid,
			HalfExtents: p.Half,
			Friction:    p.Friction,
			Restitution: p.Restitution,
		}, body)
		cat.Add(col, ColliderMeta{Tag: TagPlunger, ID: "plunger", Position: p.Pos})
		l.Plunger = &PlungerRig{Def: p, Body: body, Collider: col}
	}

	for i := range def.Flippers {
		f := &def.Flippers[i]
		left := f.Side == "left"
		dir := 1.0
		if !left {
			dir = -1
		}
		hinge := mgl64.Vec3{f.Pos[0] - dir*f.HingeOffset, f.Pos[1], f.Pos[2]}

		body := w.CreateRigidBody(physics.BodyDesc{
			Kind:           physics.BodyDynamic,
			Position:       f.Pos,
			LinearDamping:  f.LinearDamping,
			AngularDamping: f.AngularDamping,
		})
		col := w.CreateCollider(physics.ColliderDesc{
			Shape:       physics.ShapeCuboid,
			HalfExtents: f.Half,
			Friction:    f.Friction,
			Restitution: f.Restitution,
			Events:      true,
		}, body)
		joint := w.CreateRevoluteJoint(physics.RevoluteDesc{
			AnchorA:  hinge,
			AnchorB:  mgl64.Vec3{-dir * f.HingeOffset, 0, 0},
			Limited:  true,
			LimitMin: f.LimitMin,
			LimitMax: f.LimitMax,
		}, physics.NoBody, body)
		w.ConfigureMotorPosition(joint, f.RestAngle, f.Stiffness, f.Damping)

		cat.Add(col, ColliderMeta{Tag: TagFlipper, ID: "flipper:" + f.Side, Group: i, Position: f.Pos})
		l.Flippers = append(l.Flippers, FlipperRig{Def: f, Left: left, Body: body, Collider: col, Joint: joint})
	}

	l.Ball = w.CreateRigidBody(physics.BodyDesc{
		Kind:           physics.BodyDynamic,
		Position:       def.Ball.Spawn,
		LinearDamping:  def.Ball.LinearDamping,
		AngularDamping: def.Ball.AngularDamping,
		CCD:            true,
	})
	l.BallCollider = w.CreateCollider(physics.ColliderDesc{
		Shape:       physics.ShapeBall,
		Radius:      def.Ball.Radius,
		Friction:    def.Ball.Friction,
		Restitution: def.Ball.Restitution,
		Events:      true,
	}, l.Ball)
	cat.Add(l.BallCollider, ColliderMeta{Tag: TagBall, ID: "ball"})

	return l
}

func boxCollider(b Box, isSensor bool) physics.ColliderDesc {
	return physics.ColliderDesc{
		Shape:       physics.ShapeCuboid,
		HalfExtents: b.Half,
		Offset:      b.Pos,
		Yaw:         b.Yaw,
		Friction:    b.Friction,
		Restitution: b.Restitution,
		Sensor:      isSensor,
		Events:      isSensor,
	}
}

func sensor(pos, half mgl64.Vec3) physics.ColliderDesc {
	return boxCollider(Box{Pos: pos, Half: half}, true)
}
