package game

// Hud is the per-frame snapshot published to presentation consumers
type Hud struct {
	Score        int64   `json:"score"`
	Multiplier   float64 `json:"multiplier"`
	Balls        int     `json:"balls"`
	LaunchCharge float64 `json:"launchCharge"`
	Bonus        int     `json:"bonus"`
	Combo        float64 `json:"combo"`
	Phase        Phase   `json:"phase"`
	InLane       bool    `json:"inLane"`
}
