package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/render"
	"github.com/lixenwraith/pinball/table"
	"github.com/lixenwraith/pinball/vmath"
)

// MoverRenderer draws bodies whose pose changes every step: flippers, spinner, plunger
type MoverRenderer struct {
	glyphs *render.GlyphTable
	world  physics.World
	state  TableState
}

func NewMoverRenderer(glyphs *render.GlyphTable, world physics.World, state TableState) *MoverRenderer {
	return &MoverRenderer{glyphs: glyphs, world: world, state: state}
}

func (r *MoverRenderer) Render(ctx render.Context, buf *render.Buffer) {
	if !ctx.View.Valid() {
		return
	}
	r.glyphs.Each(func(h physics.ColliderHandle, g render.Glyph) {
		switch g.Meta.Tag {
		case table.TagFlipper:
			body := r.world.ColliderParent(h)
			r.drawBar(ctx.View, buf, g, r.world.Translation(body), r.world.Rotation(body))
		case table.TagSpinner:
			body := r.world.ColliderParent(h)
			r.drawSpinner(ctx.View, buf, g, r.world.Translation(body), r.world.Rotation(body))
		case table.TagPlunger:
			z, ok := r.state.PlungerPosition()
			if !ok {
				return
			}
			p := g.Meta.Position
			p[2] = z
			if x, y, visible := ctx.View.ToCell(p); visible {
				buf.SetFg(x, y, g.Rune, g.Fg)
			}
		}
	})
}

// drawBar samples the body's local X axis across its full length
func (r *MoverRenderer) drawBar(v render.Projection, buf *render.Buffer, g render.Glyph, pos mgl64.Vec3, rot mgl64.Quat) {
	axis := rot.Rotate(mgl64.Vec3{1, 0, 0})
	half := g.Half.X()
	cells, _ := v.Extent(half, 0)
	n := max(2, 2*cells)
	for i := 0; i <= n; i++ {
		t := -half + 2*half*float64(i)/float64(n)
		if x, y, ok := v.ToCell(pos.Add(axis.Mul(t))); ok {
			buf.SetFg(x, y, g.Rune, g.Fg)
		}
	}
}

func (r *MoverRenderer) drawSpinner(v render.Projection, buf *render.Buffer, g render.Glyph, pos mgl64.Vec3, rot mgl64.Quat) {
	x, y, ok := v.ToCell(pos)
	if !ok {
		return
	}
	buf.SetFg(x, y, SpinnerRune(vmath.YawFromQuat(rot)), g.Fg)
}

// SpinnerRune picks the flag glyph nearest to yaw, symmetric under half turns
func SpinnerRune(yaw float64) rune {
	a := math.Mod(yaw, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	i := int(math.Round(a/(math.Pi/4))) % len(visual.SpinnerChars)
	return visual.SpinnerChars[i]
}
