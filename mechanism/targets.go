package mechanism

import (
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/table"
)

// TargetGroup is a set of one-shot targets that relight together once all are lit
type TargetGroup struct {
	def *table.TargetGroupDef
	lit []bool
}

func NewTargetGroup(def *table.TargetGroupDef) *TargetGroup {
	return &TargetGroup{def: def, lit: make([]bool, len(def.Targets))}
}

// Hit lights target i, returning false when it was already lit this cycle
func (g *TargetGroup) Hit(ctx *Context, i int) bool {
	if i < 0 || i >= len(g.lit) || g.lit[i] {
		return false
	}
	g.lit[i] = true

	t := g.def.Targets[i]
	pts := ctx.Score.Award(g.def.Score, g.def.Boost)
	ctx.emit(event.GameEvent{Type: event.EventTargetLit, ID: t.ID, Position: t.Pos, Points: pts})

	for _, l := range g.lit {
		if !l {
			return true
		}
	}

	ctx.Score.BumpMultiplier(1)
	bonus := ctx.Score.Award(g.def.Bonus, g.def.BonusBoost)
	g.Reset()
	ctx.emit(event.GameEvent{Type: event.EventGroupCleared, ID: g.def.ID, Position: t.Pos, Points: bonus})
	return true
}

// Lit reports whether target i is lit
func (g *TargetGroup) Lit(i int) bool {
	return i >= 0 && i < len(g.lit) && g.lit[i]
}

func (g *TargetGroup) Len() int {
	return len(g.lit)
}

// Reset unlights every target
func (g *TargetGroup) Reset() {
	for i := range g.lit {
		g.lit[i] = false
	}
}
