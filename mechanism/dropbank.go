package mechanism

import (
	"github.com/lixenwraith/pinball/engine"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/table"
)

// DropBank is a row of drop targets cleared as a set
type DropBank struct {
	def   *table.DropBankDef
	down  []bool
	reset engine.Deadline
}

func NewDropBank(def *table.DropBankDef) *DropBank {
	return &DropBank{def: def, down: make([]bool, len(def.Targets))}
}

// Hit drops target i, returning false when it was already down
func (b *DropBank) Hit(ctx *Context, i int) bool {
	if i < 0 || i >= len(b.down) || b.down[i] {
		return false
	}
	b.down[i] = true

	t := b.def.Targets[i]
	pts := ctx.Score.Award(b.def.Score, b.def.Boost)
	ctx.emit(event.GameEvent{Type: event.EventDropDown, ID: t.ID, Position: t.Pos, Points: pts})

	if !b.Cleared() {
		return true
	}

	bonus := ctx.Score.Award(b.def.Bonus, b.def.BonusBoost)
	ctx.Score.BumpMultiplier(1)
	b.reset.Arm(ctx.Now, b.def.ResetDelay)
	ctx.emit(event.GameEvent{Type: event.EventBankCleared, ID: b.def.ID, Position: t.Pos, Points: bonus})
	return true
}

// Update raises the bank once the reset delay has elapsed
func (b *DropBank) Update(ctx *Context) {
	if !b.reset.Fire(ctx.Now) {
		return
	}
	b.raise()
	ctx.emit(event.GameEvent{Type: event.EventBankReset, ID: b.def.ID})
}

// Cleared reports every target down
func (b *DropBank) Cleared() bool {
	for _, d := range b.down {
		if !d {
			return false
		}
	}
	return true
}

// Down reports whether target i is down
func (b *DropBank) Down(i int) bool {
	return i >= 0 && i < len(b.down) && b.down[i]
}

func (b *DropBank) Len() int {
	return len(b.down)
}

// Reset raises every target and cancels a pending reset
func (b *DropBank) Reset() {
	b.reset.Disarm()
	b.raise()
}

func (b *DropBank) raise() {
	for i := range b.down {
		b.down[i] = false
	}
}
