package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/render"
)

type burst struct {
	pos    mgl64.Vec3
	frames []rune
	fg     tcell.Color
	born   uint64
	ring   bool // Also light the four neighbours on the first frame
}

type banner struct {
	text string
	fg   tcell.Color
	born uint64
}

// BurstRenderer turns cues into short-lived sparks and a banner line
// Cues and frames run on the same goroutine
type BurstRenderer struct {
	bursts []burst
	next   int
	banner banner
}

func NewBurstRenderer() *BurstRenderer {
	return &BurstRenderer{bursts: make([]burst, 0, parameter.BurstMax)}
}

func (r *BurstRenderer) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBumperHit,
		event.EventSlingHit,
		event.EventTargetLit,
		event.EventGroupCleared,
		event.EventDropDown,
		event.EventBankCleared,
		event.EventBankReset,
		event.EventSpinnerSpin,
		event.EventKickoutCapture,
		event.EventKickoutEject,
		event.EventLaneRollover,
		event.EventBallLaunched,
		event.EventBallDrained,
		event.EventRunStarted,
		event.EventGameOver,
	}
}

func (r *BurstRenderer) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventBumperHit:
		r.add(ev, visual.BurstStar, visual.RgbBurstHot, true)
	case event.EventSlingHit, event.EventDropDown:
		r.add(ev, visual.BurstSpark, visual.RgbBurstWarm, false)
	case event.EventTargetLit, event.EventLaneRollover:
		r.add(ev, visual.BurstSpark, visual.RgbBurstCold, false)
	case event.EventSpinnerSpin, event.EventKickoutCapture:
		r.add(ev, visual.BurstRing, visual.RgbBurstCold, false)
	case event.EventKickoutEject, event.EventBallLaunched:
		r.add(ev, visual.BurstStar, visual.RgbBurstWarm, true)
	case event.EventGroupCleared:
		r.add(ev, visual.BurstRing, visual.RgbBurstHot, true)
		r.show(ev, fmt.Sprintf("TARGETS CLEAR +%d", ev.Points), visual.RgbBurstHot)
	case event.EventBankCleared:
		r.add(ev, visual.BurstRing, visual.RgbBurstHot, true)
		r.show(ev, fmt.Sprintf("BANK CLEAR +%d", ev.Points), visual.RgbBurstHot)
	case event.EventBankReset:
		r.show(ev, "BANK RESET", visual.RgbBurstCold)
	case event.EventBallDrained:
		r.show(ev, fmt.Sprintf("BALL LOST  BONUS +%d", ev.Points), visual.RgbBurstLoss)
	case event.EventGameOver:
		r.show(ev, "GAME OVER", visual.RgbBurstLoss)
	case event.EventRunStarted:
		r.bursts = r.bursts[:0]
		r.next = 0
		r.banner = banner{}
	}
}

// add stores a burst, replacing the oldest once BurstMax are live
func (r *BurstRenderer) add(ev event.GameEvent, frames []rune, fg tcell.Color, ring bool) {
	b := burst{pos: ev.Position, frames: frames, fg: fg, born: ev.Step, ring: ring}
	if len(r.bursts) < parameter.BurstMax {
		r.bursts = append(r.bursts, b)
		return
	}
	r.bursts[r.next] = b
	r.next = (r.next + 1) % parameter.BurstMax
}

func (r *BurstRenderer) show(ev event.GameEvent, text string, fg tcell.Color) {
	r.banner = banner{text: text, fg: fg, born: ev.Step}
}

// Live returns the number of bursts still on screen at step
func (r *BurstRenderer) Live(step uint64) int {
	n := 0
	for _, b := range r.bursts {
		if step-b.born < parameter.BurstSteps {
			n++
		}
	}
	return n
}

// Banner returns the banner text shown at step, empty once expired
func (r *BurstRenderer) Banner(step uint64) string {
	if r.banner.text == "" || step-r.banner.born >= parameter.BannerSteps {
		return ""
	}
	return r.banner.text
}

func (r *BurstRenderer) Render(ctx render.Context, buf *render.Buffer) {
	if ctx.View.Valid() {
		for _, b := range r.bursts {
			age := ctx.Step - b.born
			if age >= parameter.BurstSteps {
				continue
			}
			x, y, ok := ctx.View.ToCell(b.pos)
			if !ok {
				continue
			}
			frame := int(age) * len(b.frames) / parameter.BurstSteps
			ch := b.frames[frame]
			buf.SetFg(x, y, ch, b.fg)
			if b.ring && frame == 0 {
				buf.SetFg(x-1, y, ch, b.fg)
				buf.SetFg(x+1, y, ch, b.fg)
				buf.SetFg(x, y-1, ch, b.fg)
				buf.SetFg(x, y+1, ch, b.fg)
			}
		}
	}

	if text := r.Banner(ctx.Step); text != "" {
		x := (ctx.ScreenWidth - len([]rune(text))) / 2
		style := tcell.StyleDefault.Background(visual.RgbBackground).Foreground(r.banner.fg).Bold(true)
		buf.DrawText(x, ctx.ScreenHeight-parameter.BottomMargin, text, style)
	}
}

var _ event.Handler = (*BurstRenderer)(nil)
