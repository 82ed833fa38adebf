package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/render"
	"github.com/lixenwraith/pinball/table"
)

// PlayfieldRenderer draws the rails, floor and every static element
type PlayfieldRenderer struct {
	glyphs *render.GlyphTable
	state  TableState
}

func NewPlayfieldRenderer(glyphs *render.GlyphTable, state TableState) *PlayfieldRenderer {
	return &PlayfieldRenderer{glyphs: glyphs, state: state}
}

// Render draws the table surface then static glyphs in catalogue order
func (r *PlayfieldRenderer) Render(ctx render.Context, buf *render.Buffer) {
	v := ctx.View
	if !v.Valid() {
		return
	}

	base := tcell.StyleDefault.Background(visual.RgbBackground)
	dots := base.Foreground(visual.RgbFloorDot)
	for y := 0; y < v.Rows; y += 2 {
		for x := y % 4 / 2; x < v.Cols; x += 4 {
			buf.Set(v.OriginX+x, v.OriginY+y, visual.FloorDotChar, dots)
		}
	}
	drawRails(buf, v, base.Foreground(visual.RgbRail))

	r.glyphs.Each(func(_ physics.ColliderHandle, g render.Glyph) {
		switch g.Meta.Tag {
		case table.TagBall, table.TagFlipper, table.TagPlunger, table.TagSpinner:
			return
		}

		ch, fg := r.appearance(g)
		cx, cy, ok := v.ToCell(g.Meta.Position)
		if !ok {
			return
		}
		if !g.Fill {
			buf.SetFg(cx, cy, ch, fg)
			return
		}
		ex, ez := v.Extent(g.Half.X(), g.Half.Z())
		for y := cy - ez; y <= cy+ez; y++ {
			for x := cx - ex; x <= cx+ex; x++ {
				buf.SetFg(x, y, ch, fg)
			}
		}
	})
}

// appearance applies mechanism state to the base glyph
func (r *PlayfieldRenderer) appearance(g render.Glyph) (rune, tcell.Color) {
	switch g.Meta.Tag {
	case table.TagTarget:
		if r.state.TargetLit(g.Meta.Group, g.Meta.Index) {
			return visual.TargetLitChar, visual.RgbTargetLit
		}
	case table.TagDropTarget:
		if r.state.DropDown(g.Meta.Index) {
			return visual.DropDownChar, visual.RgbDropDown
		}
	case table.TagKickout:
		if r.state.KickoutLocked() {
			return visual.KickoutLockChar, visual.RgbKickoutLock
		}
	}
	return g.Rune, g.Fg
}

func drawRails(buf *render.Buffer, v render.Projection, style tcell.Style) {
	left, right := v.OriginX-1, v.OriginX+v.Cols
	top, bottom := v.OriginY-1, v.OriginY+v.Rows
	for x := left + 1; x < right; x++ {
		buf.Set(x, top, visual.RailHorizChar, style)
		buf.Set(x, bottom, visual.RailHorizChar, style)
	}
	for y := top + 1; y < bottom; y++ {
		buf.Set(left, y, visual.RailVertChar, style)
		buf.Set(right, y, visual.RailVertChar, style)
	}
	buf.Set(left, top, visual.RailCornerTL, style)
	buf.Set(right, top, visual.RailCornerTR, style)
	buf.Set(left, bottom, visual.RailCornerBL, style)
	buf.Set(right, bottom, visual.RailCornerBR, style)
}
