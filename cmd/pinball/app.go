package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/lixenwraith/pinball/audio"
	"github.com/lixenwraith/pinball/core"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/game"
	"github.com/lixenwraith/pinball/input"
	"github.com/lixenwraith/pinball/leaderboard"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/render"
	"github.com/lixenwraith/pinball/render/renderer"
	"github.com/lixenwraith/pinball/table"
)

// command is a UI request applied on the frame goroutine
type command uint8

const (
	cmdStart command = iota
	cmdResize
)

type appConfig struct {
	World   physics.World
	Def     *table.Definition
	Screen  render.Screen
	Voice   audio.Voice           // nil plays nothing
	Board   *leaderboard.Fallback // nil disables score keeping
	Player  string
	Options game.Options
}

// app owns the session and the layers drawn from it
// Session state is touched only by frame; the event loop reaches it through commands
type app struct {
	session *game.Session
	input   *input.Manager
	router  *event.Router
	orch    *render.Orchestrator
	overlay *renderer.OverlayRenderer
	debug   *renderer.DebugRenderer
	board   *leaderboard.Fallback
	def     *table.Definition
	player  string

	commands chan command
}

func newApp(cfg appConfig) *app {
	in := input.NewManager()
	s := game.NewSession(cfg.World, cfg.Def, in, cfg.Options)

	a := &app{
		session:  s,
		input:    in,
		router:   event.NewRouter(s.Cues()),
		orch:     render.NewOrchestrator(cfg.Screen),
		overlay:  renderer.NewOverlayRenderer(),
		debug:    renderer.NewDebugRenderer(s.Metrics()),
		board:    cfg.Board,
		def:      cfg.Def,
		player:   leaderboard.SanitizeName(cfg.Player),
		commands: make(chan command, 16),
	}

	bursts := renderer.NewBurstRenderer()
	a.router.Register(bursts)
	if cfg.Voice != nil {
		a.router.Register(audio.NewCuePlayer(cfg.Voice, rand.New(rand.NewSource(time.Now().UnixNano()))))
	}

	glyphs := render.NewGlyphTable(s.Layout())
	a.orch.Register(renderer.NewPlayfieldRenderer(glyphs, s), render.PriorityPlayfield)
	a.orch.Register(renderer.NewMoverRenderer(glyphs, s.World(), s), render.PriorityMovers)
	a.orch.Register(renderer.NewBallRenderer(s.World(), s.Ball().Handle()), render.PriorityBall)
	a.orch.Register(bursts, render.PriorityBurst)
	a.orch.Register(renderer.NewHudRenderer(), render.PriorityHud)
	a.orch.Register(a.overlay, render.PriorityOverlay)
	a.orch.Register(a.debug, render.PriorityDebug)

	s.Phases.Subscribe(a.onPhase)
	return a
}

// frame is the engine.Runner callback
func (a *app) frame(now time.Time, _ time.Duration) {
	a.applyCommands()
	a.input.Poll(now)
	a.session.Frame(now)
	a.router.DispatchAll()
	a.draw()
}

func (a *app) send(c command) {
	select {
	case a.commands <- c:
	default:
	}
}

func (a *app) applyCommands() {
	for {
		select {
		case c := <-a.commands:
			switch c {
			case cmdStart:
				if a.session.Phase() != game.PhasePlaying {
					a.input.Blur()
					a.session.StartRun()
				}
			case cmdResize:
				a.orch.Resize()
			}
		default:
			return
		}
	}
}

func (a *app) draw() {
	w, h := a.orch.Size()
	a.orch.RenderFrame(render.Context{
		Step:         a.session.Steps(),
		Phase:        a.session.Phase(),
		Hud:          a.session.Snapshot(),
		Title:        a.def.Title,
		View:         render.NewProjection(a.def.Bounds, w, h),
		ScreenWidth:  w,
		ScreenHeight: h,
	})
}

func (a *app) onPhase(p game.Phase) {
	if p == game.PhaseGameOver {
		a.submit(a.session.Scorer().Score())
	}
}

// loadBoard fills the menu panel with the current top list
func (a *app) loadBoard() {
	if a.board == nil {
		return
	}
	core.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), parameter.ClientTimeout)
		defer cancel()
		top, src, err := a.board.TopWithSource(ctx, parameter.TopDefault)
		if err != nil {
			log.Printf("[leaderboard] load failed: %v", err)
		}
		a.overlay.SetBoard(boardRows(top), boardStatus(nil, src))
	})
}

func (a *app) submit(score int64) {
	if a.board == nil {
		return
	}
	a.overlay.SetBoard(nil, "saving...")
	a.board.SubmitAsync(leaderboard.Entry{Name: a.player, Score: score}, func(err error, top []leaderboard.Entry, src leaderboard.Source) {
		if err != nil {
			log.Printf("[leaderboard] submit %d: %v", score, err)
		}
		a.overlay.SetBoard(boardRows(top), boardStatus(err, src))
	})
}

func boardRows(top []leaderboard.Entry) []renderer.BoardRow {
	rows := make([]renderer.BoardRow, len(top))
	for i, e := range top {
		rows[i] = renderer.BoardRow{Name: e.Name, Score: e.Score}
	}
	return rows
}

func boardStatus(err error, src leaderboard.Source) string {
	switch {
	case errors.Is(err, leaderboard.ErrInvalidScore):
		return "no score recorded"
	case errors.Is(err, leaderboard.ErrRateLimited):
		return "saved locally, rate limited"
	case err != nil:
		return "saved locally, offline"
	case src == leaderboard.SourceOnline:
		return "online"
	}
	return "local"
}
