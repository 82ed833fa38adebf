package input

// State is the control snapshot read by the simulation once per step
type State struct {
	LeftFlipper  bool
	RightFlipper bool
	LaunchHeld   bool
	LaunchCharge float64 // [0,1]
}

// Release is the edge-triggered launch pulse
type Release struct {
	Charge float64 // Charge at the moment of release, [0,1]
}

// Source is what the simulation consumes from input
type Source interface {
	State() State
	// ConsumeRelease returns the pending release pulse once, then false until the next release
	ConsumeRelease() (Release, bool)
}

// Control names a logical input
type Control uint8

const (
	ControlLeftFlipper Control = iota
	ControlRightFlipper
	ControlLaunch

	controlCount
)
