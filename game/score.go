package game

import (
	"fmt"
	"math"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// BoostPolicy decides how a fractional boost grows the multiplier
type BoostPolicy uint8

const (
	// BoostAdditive adds the boost straight onto the multiplier
	BoostAdditive BoostPolicy = iota
	// BoostCombo banks boosts and raises the multiplier one step per whole unit banked
	BoostCombo
)

func (p BoostPolicy) String() string {
	if p == BoostCombo {
		return "combo"
	}
	return "additive"
}

func ParseBoostPolicy(s string) (BoostPolicy, error) {
	switch s {
	case "", "additive":
		return BoostAdditive, nil
	case "combo":
		return BoostCombo, nil
	}
	return BoostAdditive, fmt.Errorf("unknown boost policy %q", s)
}

// DrainReset decides what the multiplier falls back to when a ball drains
type DrainReset uint8

const (
	// ResetFloor keeps whole multiplier steps and drops the fraction
	ResetFloor DrainReset = iota
	// ResetOne returns the multiplier to 1
	ResetOne
)

func (r DrainReset) String() string {
	if r == ResetOne {
		return "one"
	}
	return "floor"
}

func ParseDrainReset(s string) (DrainReset, error) {
	switch s {
	case "", "floor":
		return ResetFloor, nil
	case "one":
		return ResetOne, nil
	}
	return ResetFloor, fmt.Errorf("unknown drain reset %q", s)
}

// Scorer is the score state of one run
// Not safe for concurrent use; owned by the simulation loop
type Scorer struct {
	boost BoostPolicy
	reset DrainReset

	score      int64
	multiplier float64
	combo      float64
	bonus      int
	balls      int
}

func NewScorer(boost BoostPolicy, reset DrainReset) *Scorer {
	return &Scorer{boost: boost, reset: reset, multiplier: parameter.MultiplierMin}
}

// StartRun zeroes the run and grants balls
func (s *Scorer) StartRun(balls int) {
	s.score = 0
	s.multiplier = parameter.MultiplierMin
	s.combo = 0
	s.bonus = 0
	s.balls = max(0, balls)
}

// Award adds floor(base*multiplier) then applies boost under the configured policy
func (s *Scorer) Award(base int, boost float64) int64 {
	pts := int64(0)
	if base > 0 {
		pts = int64(math.Floor(float64(base) * s.multiplier))
		pts = min(pts, parameter.MaxScore-s.score)
		s.score += pts
	}
	if boost <= 0 {
		return pts
	}

	switch s.boost {
	case BoostAdditive:
		s.multiplier = vmath.Clamp(s.multiplier+boost, parameter.MultiplierMin, parameter.MultiplierMax)
	case BoostCombo:
		s.combo += boost
		if whole := math.Floor(s.combo); whole >= 1 {
			s.combo -= whole
			s.BumpMultiplier(int(whole))
		}
	}
	return pts
}

// BumpMultiplier raises the multiplier by whole steps, capped at the maximum
func (s *Scorer) BumpMultiplier(steps int) {
	if steps <= 0 {
		return
	}
	s.multiplier = math.Min(parameter.MultiplierMax, s.multiplier+float64(steps))
}

// AddBonus banks lane rollovers for drain settlement
func (s *Scorer) AddBonus(n int) {
	if n > 0 {
		s.bonus += n
	}
}

// Settle pays the banked bonus, resets the multiplier and combo, and takes a ball
// Returns the bonus points paid
func (s *Scorer) Settle() int64 {
	paid := int64(s.bonus) * parameter.DrainBonusUnit
	paid = min(paid, parameter.MaxScore-s.score)
	s.score += paid
	s.bonus = 0

	switch s.reset {
	case ResetFloor:
		s.multiplier = math.Max(parameter.MultiplierMin, math.Floor(s.multiplier))
	case ResetOne:
		s.multiplier = parameter.MultiplierMin
	}
	s.combo = 0

	if s.balls > 0 {
		s.balls--
	}
	return paid
}

func (s *Scorer) Score() int64            { return s.score }
func (s *Scorer) Multiplier() float64     { return s.multiplier }
func (s *Scorer) Combo() float64          { return s.combo }
func (s *Scorer) Bonus() int              { return s.bonus }
func (s *Scorer) Balls() int              { return s.balls }
func (s *Scorer) Policy() BoostPolicy     { return s.boost }
func (s *Scorer) DrainPolicy() DrainReset { return s.reset }
