package renderer

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/render"
	"github.com/lixenwraith/pinball/status"
)

// DebugRenderer lists registry metrics in the top-left corner, toggled with F3
type DebugRenderer struct {
	metrics *status.Registry
	visible atomic.Bool
}

func NewDebugRenderer(metrics *status.Registry) *DebugRenderer {
	return &DebugRenderer{metrics: metrics}
}

// Toggle flips visibility and returns the new state
func (r *DebugRenderer) Toggle() bool {
	v := !r.visible.Load()
	r.visible.Store(v)
	return v
}

func (r *DebugRenderer) IsVisible() bool {
	return r.visible.Load()
}

func (r *DebugRenderer) Render(ctx render.Context, buf *render.Buffer) {
	style := tcell.StyleDefault.Background(visual.RgbOverlayBg).Foreground(visual.RgbDebugText)
	for i, line := range r.metrics.Lines() {
		y := 1 + i
		if y >= ctx.ScreenHeight {
			break
		}
		buf.DrawText(0, y, line, style)
	}
}
