package table

// Tag is the semantic role of a collider
// Closed set: every switch over Tag must name each value
type Tag uint8

const (
	TagWall Tag = iota // Generic static geometry, also the zero value
	TagBall
	TagFloor
	TagBumper
	TagSling
	TagTarget
	TagDropTarget
	TagSpinner
	TagKickout
	TagLane
	TagFlipper
	TagPlunger
	TagDrain

	tagCount
)

var tagNames = [tagCount]string{
	TagWall:       "wall",
	TagBall:       "ball",
	TagFloor:      "floor",
	TagBumper:     "bumper",
	TagSling:      "sling",
	TagTarget:     "target",
	TagDropTarget: "dropTarget",
	TagSpinner:    "spinner",
	TagKickout:    "kickout",
	TagLane:       "lane",
	TagFlipper:    "flipper",
	TagPlunger:    "plunger",
	TagDrain:      "drain",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return "unknown"
}

// LaneKind separates lane scoring and outlane handling
type LaneKind uint8

const (
	LaneInlane LaneKind = iota
	LaneOutlane
	LaneGate
)

func (k LaneKind) String() string {
	switch k {
	case LaneInlane:
		return "inlane"
	case LaneOutlane:
		return "outlane"
	case LaneGate:
		return "gate"
	}
	return "unknown"
}

// OutlanePolicy decides what an outlane rollover does after scoring
type OutlanePolicy uint8

const (
	// OutlaneNudge keeps the ball alive with a push toward center
	OutlaneNudge OutlanePolicy = iota
	// OutlaneDrain ends the ball immediately
	OutlaneDrain
)

func (p OutlanePolicy) String() string {
	if p == OutlaneDrain {
		return "drain"
	}
	return "nudge"
}
