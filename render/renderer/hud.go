package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/render"
)

// HudRenderer draws the top status line from the frame snapshot
type HudRenderer struct{}

func NewHudRenderer() *HudRenderer {
	return &HudRenderer{}
}

// Render draws segments left to right: score, multiplier, balls, bonus, charge gauge, title
func (r *HudRenderer) Render(ctx render.Context, buf *render.Buffer) {
	if ctx.ScreenHeight < 1 {
		return
	}
	hud := ctx.Hud
	base := tcell.StyleDefault.Background(visual.RgbBackground)
	buf.Fill(0, 0, ctx.ScreenWidth, 1, ' ', base)

	x := 0
	x += segment(buf, x, fmt.Sprintf(" SCORE %d ", hud.Score), visual.RgbHudScoreBg)
	x += segment(buf, x, fmt.Sprintf(" x%.2f ", hud.Multiplier), visual.RgbHudMultBg)
	x += segment(buf, x, fmt.Sprintf(" BALLS %d ", hud.Balls), visual.RgbHudBallsBg)
	x += segment(buf, x, fmt.Sprintf(" BONUS %d ", hud.Bonus), visual.RgbHudBonusBg)
	x++

	if hud.InLane || hud.LaunchCharge > 0 {
		filled := int(hud.LaunchCharge*parameter.ChargeBarWidth + 0.5)
		for i := 0; i < parameter.ChargeBarWidth; i++ {
			if i < filled {
				buf.Set(x+i, 0, visual.ChargeFullChar, base.Foreground(visual.RgbHudChargeBar))
			} else {
				buf.Set(x+i, 0, visual.ChargeOffChar, base.Foreground(visual.RgbHudChargeOff))
			}
		}
		x += parameter.ChargeBarWidth + 1
	}

	if ctx.Title != "" {
		title := []rune(ctx.Title)
		tx := ctx.ScreenWidth - len(title) - 1
		if tx > x {
			buf.DrawText(tx, 0, ctx.Title, base.Foreground(visual.RgbHudTitle))
		}
	}
}

func segment(buf *render.Buffer, x int, text string, bg tcell.Color) int {
	style := tcell.StyleDefault.Background(bg).Foreground(visual.RgbHudText)
	return buf.DrawText(x, 0, text, style)
}
