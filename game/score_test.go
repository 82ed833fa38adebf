package game

import (
	"math"
	"testing"

	"github.com/lixenwraith/pinball/parameter"
)

func TestAwardFloorsBaseTimesMultiplier(t *testing.T) {
	s := NewScorer(BoostAdditive, ResetFloor)
	s.StartRun(3)

	if got := s.Award(120, 0.25); got != 120 {
		t.Errorf("Expected 120 at x1, got %d", got)
	}
	if got := s.Award(121, 0); got != 151 {
		t.Errorf("Expected floor(121*1.25)=151, got %d", got)
	}
	if s.Score() != 271 {
		t.Errorf("Expected score 271, got %d", s.Score())
	}
}

func TestMultiplierStaysInRange(t *testing.T) {
	for _, policy := range []BoostPolicy{BoostAdditive, BoostCombo} {
		for _, reset := range []DrainReset{ResetFloor, ResetOne} {
			s := NewScorer(policy, reset)
			s.StartRun(3)
			check := func(where string) {
				if m := s.Multiplier(); m < parameter.MultiplierMin || m > parameter.MultiplierMax {
					t.Fatalf("%s/%s %s: multiplier %v out of range", policy, reset, where, m)
				}
			}
			for i := 0; i < 400; i++ {
				s.Award(500, 0.35)
				check("award")
				if i%7 == 0 {
					s.BumpMultiplier(3)
					check("bump")
				}
				if i%50 == 49 {
					s.Settle()
					check("settle")
				}
			}
		}
	}
}

func TestComboPolicyStepsWholeUnits(t *testing.T) {
	s := NewScorer(BoostCombo, ResetFloor)
	s.StartRun(3)

	s.Award(100, 0.35)
	s.Award(100, 0.35)
	if s.Multiplier() != 1 {
		t.Errorf("Expected x1 below one combo unit, got %v", s.Multiplier())
	}
	s.Award(100, 0.35)
	if s.Multiplier() != 2 {
		t.Errorf("Expected x2 after crossing a unit, got %v", s.Multiplier())
	}
	if math.Abs(s.Combo()-0.05) > 1e-9 {
		t.Errorf("Expected 0.05 combo carried, got %v", s.Combo())
	}
}

func TestSettlePaysBonusAndResets(t *testing.T) {
	s := NewScorer(BoostAdditive, ResetFloor)
	s.StartRun(3)
	s.Award(1000, 1.6) // x2.6
	s.AddBonus(4)
	before := s.Score()

	paid := s.Settle()
	if paid != 400 || s.Score() != before+400 {
		t.Errorf("Expected 400 bonus paid on top of %d, got %d (score %d)", before, paid, s.Score())
	}
	if s.Bonus() != 0 {
		t.Errorf("Expected bonus cleared, got %d", s.Bonus())
	}
	if s.Multiplier() != 2 {
		t.Errorf("Expected floored x2, got %v", s.Multiplier())
	}
	if s.Balls() != 2 {
		t.Errorf("Expected 2 balls left, got %d", s.Balls())
	}

	one := NewScorer(BoostAdditive, ResetOne)
	one.StartRun(1)
	one.Award(10, 3)
	one.Settle()
	one.Settle()
	if one.Multiplier() != 1 || one.Balls() != 0 {
		t.Errorf("Expected x1 and 0 balls, got %v and %d", one.Multiplier(), one.Balls())
	}
}

func TestScoreClampsAtMax(t *testing.T) {
	s := NewScorer(BoostAdditive, ResetFloor)
	s.StartRun(1)
	s.score = parameter.MaxScore - 10
	if got := s.Award(1000, 0); got != 10 {
		t.Errorf("Expected award clipped to 10, got %d", got)
	}
	if s.Score() != parameter.MaxScore {
		t.Errorf("Expected max score, got %d", s.Score())
	}
}

func TestParsePolicies(t *testing.T) {
	if p, err := ParseBoostPolicy("combo"); err != nil || p != BoostCombo {
		t.Errorf("Expected combo, got %v %v", p, err)
	}
	if _, err := ParseBoostPolicy("double"); err == nil {
		t.Error("Expected error for unknown boost policy")
	}
	if r, err := ParseDrainReset("one"); err != nil || r != ResetOne {
		t.Errorf("Expected one, got %v %v", r, err)
	}
	if r, err := ParseDrainReset(""); err != nil || r != ResetFloor {
		t.Errorf("Expected floor default, got %v %v", r, err)
	}
}

func TestScorerReportsPolicies(t *testing.T) {
	s := NewScorer(BoostCombo, ResetOne)
	if s.Policy() != BoostCombo {
		t.Errorf("Expected combo policy, got %v", s.Policy())
	}
	if s.DrainPolicy() != ResetOne {
		t.Errorf("Expected reset to one, got %v", s.DrainPolicy())
	}
}
