package renderer

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pinball/game"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/render"
)

// BoardRow is one leaderboard line on the overlay
type BoardRow struct {
	Name  string
	Score int64
}

// OverlayRenderer draws the menu and game over panels
// The board is written by the leaderboard goroutine, guarded by mu
type OverlayRenderer struct {
	mu     sync.Mutex
	board  []BoardRow
	status string
}

func NewOverlayRenderer() *OverlayRenderer {
	return &OverlayRenderer{}
}

// SetBoard replaces the rows shown under the panel text
func (r *OverlayRenderer) SetBoard(rows []BoardRow, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = append(r.board[:0], rows...)
	r.status = status
}

// Lines returns the panel text for a phase; playing has no panel
func (r *OverlayRenderer) Lines(ctx render.Context) []string {
	var lines []string
	switch ctx.Phase {
	case game.PhaseMenu:
		lines = append(lines, ctx.Title, "", "ENTER start   Q quit", "Z/LEFT  M/RIGHT  flippers", "SPACE/DOWN hold to launch")
	case game.PhaseGameOver:
		lines = append(lines, "GAME OVER", "", fmt.Sprintf("SCORE %d", ctx.Hud.Score), "", "ENTER play again   Q quit")
	default:
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.board) > 0 || r.status != "" {
		lines = append(lines, "", "HIGH SCORES")
	}
	if r.status != "" {
		lines = append(lines, r.status)
	}
	for i, row := range r.board {
		if i >= parameter.OverlayBoardRows {
			break
		}
		lines = append(lines, fmt.Sprintf("%2d. %-12s %10d", i+1, row.Name, row.Score))
	}
	return lines
}

func (r *OverlayRenderer) Render(ctx render.Context, buf *render.Buffer) {
	lines := r.Lines(ctx)
	if len(lines) == 0 {
		return
	}

	width := int(float64(ctx.ScreenWidth) * parameter.OverlayWidthPercent)
	for _, l := range lines {
		width = max(width, len([]rune(l))+2*parameter.OverlayPaddingX+2)
	}
	width = min(width, ctx.ScreenWidth)
	height := min(len(lines)+2*parameter.OverlayPaddingY+2, ctx.ScreenHeight)
	x0 := (ctx.ScreenWidth - width) / 2
	y0 := (ctx.ScreenHeight - height) / 2

	bg := tcell.StyleDefault.Background(visual.RgbOverlayBg)
	border := bg.Foreground(visual.RgbOverlayBorder)
	buf.Fill(x0, y0, width, height, ' ', bg)
	for x := x0; x < x0+width; x++ {
		buf.Set(x, y0, visual.RailHorizChar, border)
		buf.Set(x, y0+height-1, visual.RailHorizChar, border)
	}
	for y := y0; y < y0+height; y++ {
		buf.Set(x0, y, visual.RailVertChar, border)
		buf.Set(x0+width-1, y, visual.RailVertChar, border)
	}
	buf.Set(x0, y0, visual.RailCornerTL, border)
	buf.Set(x0+width-1, y0, visual.RailCornerTR, border)
	buf.Set(x0, y0+height-1, visual.RailCornerBL, border)
	buf.Set(x0+width-1, y0+height-1, visual.RailCornerBR, border)

	for i, l := range lines {
		y := y0 + 1 + parameter.OverlayPaddingY + i
		if y >= y0+height-1 {
			break
		}
		style := bg.Foreground(visual.RgbOverlayText)
		if i == 0 {
			style = bg.Foreground(visual.RgbOverlayAccent).Bold(true)
		}
		x := x0 + (width-len([]rune(l)))/2
		buf.DrawText(x, y, l, style)
	}
}
