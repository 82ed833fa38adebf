package renderer

import (
	"github.com/lixenwraith/pinball/parameter/visual"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/render"
)

// BallRenderer draws the ball on top of the playfield
type BallRenderer struct {
	world physics.World
	ball  physics.BodyHandle
}

func NewBallRenderer(world physics.World, ball physics.BodyHandle) *BallRenderer {
	return &BallRenderer{world: world, ball: ball}
}

func (r *BallRenderer) Render(ctx render.Context, buf *render.Buffer) {
	if !ctx.View.Valid() {
		return
	}
	if x, y, ok := ctx.View.ToCell(r.world.Translation(r.ball)); ok {
		buf.SetFg(x, y, visual.BallChar, visual.RgbBall)
	}
}
