package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/physics/physicstest"
	"github.com/lixenwraith/pinball/table"
)

func TestProjectionFitsByHeight(t *testing.T) {
	p := NewProjection(table.Bounds{Width: 10, Length: 20}, 40, 22)

	if p.Cols != 20 || p.Rows != 20 {
		t.Fatalf("Expected 20x20 playfield, got %dx%d", p.Cols, p.Rows)
	}
	if p.OriginX != 10 || p.OriginY != 1 {
		t.Errorf("Expected origin (10,1), got (%d,%d)", p.OriginX, p.OriginY)
	}

	x, y, ok := p.ToCell(mgl64.Vec3{0, 0, 0})
	if !ok || x != 20 || y != 11 {
		t.Errorf("Expected center at (20,11), got (%d,%d) visible=%v", x, y, ok)
	}

	x, y, ok = p.ToCell(mgl64.Vec3{-5, 0, -10})
	if !ok || x != 10 || y != 1 {
		t.Errorf("Expected far-left corner at origin, got (%d,%d) visible=%v", x, y, ok)
	}

	if _, _, ok := p.ToCell(mgl64.Vec3{5, 0, 0}); ok {
		t.Error("Expected right rail edge to be outside the playfield")
	}
	if _, _, ok := p.ToCell(mgl64.Vec3{0, 0, 10.5}); ok {
		t.Error("Expected point past the drain end to be outside the playfield")
	}

	_, far, _ := p.ToCell(mgl64.Vec3{0, 0, -8})
	_, near, _ := p.ToCell(mgl64.Vec3{0, 0, 8})
	if far >= near {
		t.Errorf("Expected far end above drain end, got rows %d and %d", far, near)
	}
}

func TestProjectionFitsByWidth(t *testing.T) {
	p := NewProjection(table.Bounds{Width: 40, Length: 10}, 40, 22)

	if p.Cols != 40 || p.Rows != 5 {
		t.Fatalf("Expected 40x5 playfield, got %dx%d", p.Cols, p.Rows)
	}
	if p.OriginY != 8 {
		t.Errorf("Expected vertically centered origin row 8, got %d", p.OriginY)
	}
	if p.Valid() {
		t.Error("Expected playfield below minimum rows to be invalid")
	}
}

func TestProjectionDegenerate(t *testing.T) {
	p := NewProjection(table.Bounds{Width: 6, Length: 12}, 40, 2)
	if p.Valid() {
		t.Error("Expected no playfield when the screen has no rows left")
	}
	if _, _, ok := p.ToCell(mgl64.Vec3{}); ok {
		t.Error("Expected nothing visible on an empty projection")
	}
}

func TestBufferWrites(t *testing.T) {
	b := NewBuffer(4, 2)

	b.Set(1, 0, 'x', tcell.StyleDefault.Background(tcell.ColorRed))
	b.SetFg(1, 0, 'y', tcell.ColorGreen)
	c := b.Get(1, 0)
	fg, bg, _ := c.Style.Decompose()
	if c.Rune != 'y' || fg != tcell.ColorGreen || bg != tcell.ColorRed {
		t.Errorf("Expected y green on red, got %q %v on %v", c.Rune, fg, bg)
	}

	b.Set(9, 9, 'z', tcell.StyleDefault)
	if got := b.Get(9, 9).Rune; got != ' ' {
		t.Errorf("Expected blank for out of bounds read, got %q", got)
	}

	if n := b.DrawText(2, 1, "héllo", tcell.StyleDefault); n != 5 {
		t.Errorf("Expected 5 cells, got %d", n)
	}
	if got := b.Get(3, 1).Rune; got != 'é' {
		t.Errorf("Expected 'é' at (3,1), got %q", got)
	}

	b.Clear()
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if b.Get(x, y) != blankCell {
				t.Fatalf("Expected blank cell at (%d,%d) after clear", x, y)
			}
		}
	}
}

func TestBufferFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 3)

	b := NewBuffer(10, 3)
	b.DrawText(0, 1, "ball", tcell.StyleDefault)
	b.Flush(screen)

	r, _, _, _ := screen.GetContent(2, 1)
	if r != 'l' {
		t.Errorf("Expected 'l' on screen, got %q", r)
	}
}

type recordLayer struct {
	name    string
	log     *[]string
	visible bool
}

func (l *recordLayer) Render(ctx Context, buf *Buffer) { *l.log = append(*l.log, l.name) }
func (l *recordLayer) IsVisible() bool                 { return l.visible }

func TestOrchestratorOrder(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 10)

	var log []string
	o := NewOrchestrator(screen)
	o.Register(&recordLayer{name: "hud", log: &log, visible: true}, PriorityHud)
	o.Register(&recordLayer{name: "field", log: &log, visible: true}, PriorityPlayfield)
	o.Register(&recordLayer{name: "debug", log: &log, visible: false}, PriorityDebug)
	o.Register(&recordLayer{name: "field2", log: &log, visible: true}, PriorityPlayfield)

	o.RenderFrame(Context{})

	want := []string{"field", "field2", "hud"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, log)
			break
		}
	}

	if w, h := o.Size(); w != 20 || h != 10 {
		t.Errorf("Expected 20x10 buffer, got %dx%d", w, h)
	}
	screen.SetSize(30, 12)
	o.Resize()
	if w, h := o.Size(); w != 30 || h != 12 {
		t.Errorf("Expected 30x12 after resize, got %dx%d", w, h)
	}
}

func TestGlyphTable(t *testing.T) {
	def, err := table.NewLoader("").Load("cadet")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	l := table.Build(physicstest.New(), def)
	glyphs := NewGlyphTable(l)

	if glyphs.Len() != l.Catalogue.Len()-1 {
		t.Errorf("Expected every collider but the floor, got %d of %d", glyphs.Len(), l.Catalogue.Len())
	}

	h, ok := l.Catalogue.Find(table.TagBumper, "bumper:0")
	if !ok {
		t.Fatal("Expected bumper:0 in catalogue")
	}
	g, ok := glyphs.Lookup(h)
	if !ok || g.Rune != visual.BumperChar || !g.Fill {
		t.Errorf("Expected filled bumper glyph, got %+v", g)
	}
	if g.Half.X() != def.Bumpers[0].Radius {
		t.Errorf("Expected bumper extent %v, got %v", def.Bumpers[0].Radius, g.Half.X())
	}

	if g, ok := glyphs.Lookup(l.BallCollider); !ok || g.Rune != visual.BallChar {
		t.Errorf("Expected ball glyph, got %+v", g)
	}

	walls := 0
	glyphs.Each(func(_ physics.ColliderHandle, g Glyph) {
		if g.Meta.Tag == table.TagWall {
			if g.Half != def.Walls[g.Meta.Index].Half {
				t.Errorf("Expected wall %d extent from its definition", g.Meta.Index)
			}
			walls++
		}
	})
	if walls != len(def.Walls) {
		t.Errorf("Expected %d wall glyphs, got %d", len(def.Walls), walls)
	}
}
