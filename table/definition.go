package table

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Definition is a table variant as authored in YAML
// Positions are world coordinates: X across, Y up, +Z toward the drain
type Definition struct {
	Name          string        `yaml:"name"`
	Title         string        `yaml:"title"`
	Bounds        Bounds        `yaml:"bounds"`
	Gravity       mgl64.Vec3    `yaml:"gravity"`
	Floor         Surface       `yaml:"floor"`
	Wall          Surface       `yaml:"wall"`
	Ball          BallDef       `yaml:"ball"`
	LaneExitZ     float64       `yaml:"lane_exit_z"`
	ShooterLane   *Span         `yaml:"shooter_lane"`
	DrainZ        float64       `yaml:"drain_z"`
	OutlanePolicy OutlanePolicy `yaml:"outlane_policy"`
	Launch        LaunchDef     `yaml:"launch"`

	Walls        []Box            `yaml:"walls"`
	Bumpers      []BumperDef      `yaml:"bumpers"`
	Slings       []SlingDef       `yaml:"slings"`
	TargetGroups []TargetGroupDef `yaml:"target_groups"`
	DropBank     *DropBankDef     `yaml:"drop_bank"`
	Spinner      *SpinnerDef      `yaml:"spinner"`
	Kickout      *KickoutDef      `yaml:"kickout"`
	Lanes        []LaneDef        `yaml:"lanes"`
	Drain        Box              `yaml:"drain"`
	Flippers     []FlipperDef     `yaml:"flippers"`
	Plunger      *PlungerDef      `yaml:"plunger"`
}

type Bounds struct {
	Width      float64 `yaml:"width"`
	Length     float64 `yaml:"length"`
	RailMargin float64 `yaml:"rail_margin"`
}

// Span is a closed X interval
type Span struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
}

func (s Span) Contains(x float64) bool {
	return x >= s.MinX && x <= s.MaxX
}

type Surface struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// Box is an oriented cuboid; zero surface values inherit the table wall surface
type Box struct {
	Pos     mgl64.Vec3 `yaml:"pos"`
	Half    mgl64.Vec3 `yaml:"half"`
	Yaw     float64    `yaml:"yaw"`
	Surface `yaml:",inline"`
}

type BallDef struct {
	Spawn          mgl64.Vec3 `yaml:"spawn"`
	Radius         float64    `yaml:"radius"`
	LinearDamping  float64    `yaml:"linear_damping"`
	AngularDamping float64    `yaml:"angular_damping"`
	Surface        `yaml:",inline"`
}

// LaunchDef is the direct launch impulse base + k*charge^2 used without a plunger
type LaunchDef struct {
	Base float64 `yaml:"base"`
	K    float64 `yaml:"k"`
}

type BumperDef struct {
	ID         string     `yaml:"id"`
	Pos        mgl64.Vec3 `yaml:"pos"`
	Radius     float64    `yaml:"radius"`
	HalfHeight float64    `yaml:"half_height"`
	Score      int        `yaml:"score"`
	Boost      float64    `yaml:"boost"`
	Impulse    float64    `yaml:"impulse"`
	Surface    `yaml:",inline"`
}

type SlingDef struct {
	ID      string     `yaml:"id"`
	Pos     mgl64.Vec3 `yaml:"pos"`
	Half    mgl64.Vec3 `yaml:"half"`
	Yaw     float64    `yaml:"yaw"`
	Score   int        `yaml:"score"`
	Boost   float64    `yaml:"boost"`
	Impulse float64    `yaml:"impulse"`
	Surface `yaml:",inline"`
}

// TargetDef is one sensor of a target group or drop bank
type TargetDef struct {
	ID  string     `yaml:"id"`
	Pos mgl64.Vec3 `yaml:"pos"`
}

type TargetGroupDef struct {
	ID         string      `yaml:"id"`
	Half       mgl64.Vec3  `yaml:"half"`
	Score      int         `yaml:"score"`
	Boost      float64     `yaml:"boost"`
	Bonus      int         `yaml:"bonus"`
	BonusBoost float64     `yaml:"bonus_boost"`
	Targets    []TargetDef `yaml:"targets"`
}

type DropBankDef struct {
	ID         string        `yaml:"id"`
	Half       mgl64.Vec3    `yaml:"half"`
	Score      int           `yaml:"score"`
	Boost      float64       `yaml:"boost"`
	Bonus      int           `yaml:"bonus"`
	BonusBoost float64       `yaml:"bonus_boost"`
	ResetDelay time.Duration `yaml:"reset_delay"`
	Targets    []TargetDef   `yaml:"targets"`
}

type SpinnerDef struct {
	ID             string     `yaml:"id"`
	Pos            mgl64.Vec3 `yaml:"pos"`
	Half           mgl64.Vec3 `yaml:"half"`
	Score          int        `yaml:"score"`
	LinearDamping  float64    `yaml:"linear_damping"`
	AngularDamping float64    `yaml:"angular_damping"`
	Surface        `yaml:",inline"`
}

type KickoutDef struct {
	ID       string        `yaml:"id"`
	Pos      mgl64.Vec3    `yaml:"pos"`
	Half     mgl64.Vec3    `yaml:"half"`
	Score    int           `yaml:"score"`
	Boost    float64       `yaml:"boost"`
	Dwell    time.Duration `yaml:"dwell"`
	Impulse  float64       `yaml:"impulse"`
	Lift     float64       `yaml:"lift"`
	EjectDir mgl64.Vec3    `yaml:"eject_dir"`
}

type LaneDef struct {
	ID    string     `yaml:"id"`
	Kind  LaneKind   `yaml:"kind"`
	Pos   mgl64.Vec3 `yaml:"pos"`
	Half  mgl64.Vec3 `yaml:"half"`
	Score int        `yaml:"score"`
	Boost float64    `yaml:"boost"`
	Nudge mgl64.Vec3 `yaml:"nudge"`
}

type FlipperDef struct {
	Side           string     `yaml:"side"`
	Pos            mgl64.Vec3 `yaml:"pos"`
	Half           mgl64.Vec3 `yaml:"half"`
	HingeOffset    float64    `yaml:"hinge_offset"`
	RestAngle      float64    `yaml:"rest_angle"`
	ActiveAngle    float64    `yaml:"active_angle"`
	LimitMin       float64    `yaml:"limit_min"`
	LimitMax       float64    `yaml:"limit_max"`
	Stiffness      float64    `yaml:"stiffness"`
	Damping        float64    `yaml:"damping"`
	LinearDamping  float64    `yaml:"linear_damping"`
	AngularDamping float64    `yaml:"angular_damping"`
	Surface        `yaml:",inline"`
}

// PlungerDef places the kinematic plunger; Pos.Z is the rest position
type PlungerDef struct {
	Pos      mgl64.Vec3 `yaml:"pos"`
	Half     mgl64.Vec3 `yaml:"half"`
	PullMaxZ float64    `yaml:"pull_max_z"`
	Surface  `yaml:",inline"`
}

// RestZ returns the plunger rest position
func (p *PlungerDef) RestZ() float64 {
	return p.Pos[2]
}

func (k *LaneKind) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "inlane":
		*k = LaneInlane
	case "outlane":
		*k = LaneOutlane
	case "gate":
		*k = LaneGate
	default:
		return fmt.Errorf("line %d: unknown lane kind %q", node.Line, node.Value)
	}
	return nil
}

func (p *OutlanePolicy) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "nudge":
		*p = OutlaneNudge
	case "drain":
		*p = OutlaneDrain
	default:
		return fmt.Errorf("line %d: unknown outlane policy %q", node.Line, node.Value)
	}
	return nil
}
