package render

// Priority determines render order. Lower values render first
type Priority int

const (
	PriorityPlayfield Priority = iota
	PriorityElements
	PriorityMovers
	PriorityBall
	PriorityBurst
	PriorityHud
	PriorityOverlay
	PriorityDebug
)
