package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/game"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/table"
)

// Context provides frame state for layers, passed by value
type Context struct {
	Step  uint64 // Simulation step, the clock for transient effects
	Phase game.Phase
	Hud   game.Hud
	Title string

	View Projection

	ScreenWidth  int
	ScreenHeight int
}

// Projection maps the table plane (X across, Z toward the drain) onto terminal cells
// The far end of the table is the top row; the drain is at the bottom
type Projection struct {
	// Screen cell of the table corner (-width/2, -length/2)
	OriginX int
	OriginY int

	Cols int
	Rows int

	scaleX float64 // cells per world unit across
	scaleZ float64 // rows per world unit along
	halfW  float64
	halfL  float64
}

// NewProjection fits the table into the screen below the HUD line, keeping cell aspect
func NewProjection(b table.Bounds, screenW, screenH int) Projection {
	availRows := screenH - parameter.TopMargin - parameter.BottomMargin
	if availRows <= 0 || screenW <= 0 || b.Width <= 0 || b.Length <= 0 {
		return Projection{}
	}

	scaleZ := float64(availRows) / b.Length
	scaleX := scaleZ * parameter.CellAspect
	if b.Width*scaleX > float64(screenW) {
		scaleX = float64(screenW) / b.Width
		scaleZ = scaleX / parameter.CellAspect
	}

	p := Projection{
		Cols:   int(math.Floor(b.Width*scaleX + 1e-9)),
		Rows:   int(math.Floor(b.Length*scaleZ + 1e-9)),
		scaleX: scaleX,
		scaleZ: scaleZ,
		halfW:  b.Width / 2,
		halfL:  b.Length / 2,
	}
	p.OriginX = (screenW - p.Cols) / 2
	p.OriginY = parameter.TopMargin + (availRows-p.Rows)/2
	return p
}

// Valid reports whether the playfield has room to draw
func (p Projection) Valid() bool {
	return p.Cols > 0 && p.Rows >= parameter.MinPlayfieldRows
}

// ToCell converts a world position to a screen cell
// Returns visible=false for points outside the table rectangle
func (p Projection) ToCell(pos mgl64.Vec3) (int, int, bool) {
	fx := math.Floor((pos.X() + p.halfW) * p.scaleX)
	fz := math.Floor((pos.Z() + p.halfL) * p.scaleZ)
	if fx < 0 || fz < 0 || fx >= float64(p.Cols) || fz >= float64(p.Rows) {
		return 0, 0, false
	}
	return p.OriginX + int(fx), p.OriginY + int(fz), true
}

// Extent returns the cell half-span of a world half-extent in X and Z, never below zero
func (p Projection) Extent(halfX, halfZ float64) (int, int) {
	return max(0, int(halfX*p.scaleX)), max(0, int(halfZ*p.scaleZ))
}
