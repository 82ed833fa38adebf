package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/table"
)

// Glyph is the presentation handle of one collider
type Glyph struct {
	Rune rune
	Fg   tcell.Color
	Meta table.ColliderMeta
	Half mgl64.Vec3 // World half-extent used for fill
	Fill bool       // Paint the whole extent rather than the center cell
}

// GlyphTable maps collider handles to glyphs
// Owned by the presentation side; the simulation never sees it
type GlyphTable struct {
	glyphs map[physics.ColliderHandle]Glyph
	order  []physics.ColliderHandle
}

// NewGlyphTable builds glyphs for every catalogued collider with a visual
func NewGlyphTable(l *table.Layout) *GlyphTable {
	t := &GlyphTable{glyphs: make(map[physics.ColliderHandle]Glyph, l.Catalogue.Len())}
	l.Catalogue.Each(func(h physics.ColliderHandle, m table.ColliderMeta) {
		g, ok := glyphFor(l.Def, m)
		if !ok {
			return
		}
		t.glyphs[h] = g
		t.order = append(t.order, h)
	})
	return t
}

// Lookup returns the glyph for h
func (t *GlyphTable) Lookup(h physics.ColliderHandle) (Glyph, bool) {
	g, ok := t.glyphs[h]
	return g, ok
}

// Each visits glyphs in catalogue order
func (t *GlyphTable) Each(fn func(h physics.ColliderHandle, g Glyph)) {
	for _, h := range t.order {
		fn(h, t.glyphs[h])
	}
}

func (t *GlyphTable) Len() int {
	return len(t.order)
}

// glyphFor picks rune, color and extent per tag
func glyphFor(def *table.Definition, m table.ColliderMeta) (Glyph, bool) {
	g := Glyph{Meta: m}
	switch m.Tag {
	case table.TagWall:
		if m.Index >= len(def.Walls) {
			return g, false
		}
		g.Rune, g.Fg, g.Half, g.Fill = visual.WallFillChar, visual.RgbWall, def.Walls[m.Index].Half, true
	case table.TagBall:
		r := def.Ball.Radius
		g.Rune, g.Fg, g.Half = visual.BallChar, visual.RgbBall, mgl64.Vec3{r, r, r}
	case table.TagFloor:
		return g, false
	case table.TagBumper:
		if m.Index >= len(def.Bumpers) {
			return g, false
		}
		r := def.Bumpers[m.Index].Radius
		g.Rune, g.Fg, g.Half, g.Fill = visual.BumperChar, visual.RgbBumper, mgl64.Vec3{r, 0, r}, true
	case table.TagSling:
		if m.Index >= len(def.Slings) {
			return g, false
		}
		g.Rune, g.Fg, g.Half, g.Fill = visual.SlingChar, visual.RgbSling, def.Slings[m.Index].Half, true
	case table.TagTarget:
		if m.Group >= len(def.TargetGroups) {
			return g, false
		}
		g.Rune, g.Fg, g.Half = visual.TargetChar, visual.RgbTargetDark, def.TargetGroups[m.Group].Half
	case table.TagDropTarget:
		if def.DropBank == nil {
			return g, false
		}
		g.Rune, g.Fg, g.Half = visual.DropUpChar, visual.RgbDropUp, def.DropBank.Half
	case table.TagSpinner:
		if def.Spinner == nil {
			return g, false
		}
		g.Rune, g.Fg, g.Half = visual.SpinnerChar, visual.RgbSpinner, def.Spinner.Half
	case table.TagKickout:
		if def.Kickout == nil {
			return g, false
		}
		g.Rune, g.Fg, g.Half = visual.KickoutChar, visual.RgbKickout, def.Kickout.Half
	case table.TagLane:
		if m.Index >= len(def.Lanes) {
			return g, false
		}
		g.Half = def.Lanes[m.Index].Half
		switch m.Lane {
		case table.LaneInlane:
			g.Rune, g.Fg = visual.InlaneChar, visual.RgbInlane
		case table.LaneOutlane:
			g.Rune, g.Fg = visual.OutlaneChar, visual.RgbOutlane
		case table.LaneGate:
			g.Rune, g.Fg = visual.ShooterChar, visual.RgbShooter
		}
	case table.TagFlipper:
		if m.Group >= len(def.Flippers) {
			return g, false
		}
		g.Rune, g.Fg, g.Half = visual.FlipperChar, visual.RgbFlipper, def.Flippers[m.Group].Half
	case table.TagPlunger:
		if def.Plunger == nil {
			return g, false
		}
		g.Rune, g.Fg, g.Half = visual.PlungerChar, visual.RgbPlunger, def.Plunger.Half
	case table.TagDrain:
		g.Rune, g.Fg, g.Half, g.Fill = visual.DrainChar, visual.RgbDrainZone, def.Drain.Half, true
	default:
		return g, false
	}
	return g, true
}
