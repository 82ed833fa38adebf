package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/game"
	"github.com/lixenwraith/pinball/leaderboard"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics/physicstest"
	"github.com/lixenwraith/pinball/render"
	"github.com/lixenwraith/pinball/table"
)

type fixture struct {
	a      *app
	world  *physicstest.World
	screen tcell.SimulationScreen
	def    *table.Definition
	local  *leaderboard.LocalStore
	now    time.Time
}

func newFixture(t *testing.T, balls int) *fixture {
	t.Helper()
	def, err := table.NewLoader("").Load("cadet")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 48)

	f := &fixture{
		world:  physicstest.New(),
		screen: screen,
		def:    def,
		local:  leaderboard.NewLocalStore(filepath.Join(t.TempDir(), "scores.msgpack")),
		now:    time.Unix(5000, 0),
	}
	f.a = newApp(appConfig{
		World:   f.world,
		Def:     def,
		Screen:  screen,
		Board:   leaderboard.NewFallback(nil, f.local),
		Player:  "tester",
		Options: game.Options{Balls: balls},
	})
	return f
}

func (f *fixture) frame() {
	f.now = f.now.Add(20 * time.Millisecond)
	f.a.frame(f.now, 20*time.Millisecond)
}

func (f *fixture) text() string {
	w, h := f.screen.Size()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := f.screen.GetContent(x, y)
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestAppDrawsMenu(t *testing.T) {
	f := newFixture(t, 3)
	f.frame()

	out := f.text()
	if !strings.Contains(out, f.def.Title) {
		t.Errorf("Expected table title on the menu, got\n%s", out)
	}
	if !strings.Contains(out, "ENTER start") {
		t.Errorf("Expected start hint on the menu, got\n%s", out)
	}
}

func TestAppEnterStartsRun(t *testing.T) {
	f := newFixture(t, 3)
	f.frame()

	if !f.a.handleEvent(key(tcell.KeyEnter, 0), f.now) {
		t.Fatal("Expected enter to keep running")
	}
	f.frame()

	if p := f.a.session.Phase(); p != game.PhasePlaying {
		t.Fatalf("Expected playing, got %s", p)
	}
	out := f.text()
	if !strings.Contains(out, "BALLS 3") {
		t.Errorf("Expected HUD with 3 balls, got\n%s", out)
	}
	if strings.Contains(out, "ENTER start") {
		t.Error("Expected menu panel hidden while playing")
	}
}

func TestAppKeys(t *testing.T) {
	f := newFixture(t, 3)

	f.a.handleEvent(key(tcell.KeyRune, 'Z'), f.now)
	f.a.handleEvent(key(tcell.KeyRight, 0), f.now)
	st := f.a.input.State()
	if !st.LeftFlipper || !st.RightFlipper {
		t.Errorf("Expected both flippers held, got %+v", st)
	}

	f.a.handleEvent(tcell.NewEventFocus(false), f.now)
	if st := f.a.input.State(); st.LeftFlipper || st.RightFlipper {
		t.Errorf("Expected focus loss to drop holds, got %+v", st)
	}

	if f.a.debug.IsVisible() {
		t.Fatal("Expected debug hidden by default")
	}
	f.a.handleEvent(key(tcell.KeyF3, 0), f.now)
	if !f.a.debug.IsVisible() {
		t.Error("Expected F3 to show debug")
	}

	for _, ev := range []*tcell.EventKey{key(tcell.KeyRune, 'q'), key(tcell.KeyEscape, 0), key(tcell.KeyCtrlC, 0)} {
		if f.a.handleEvent(ev, f.now) {
			t.Errorf("Expected %v to quit", ev.Name())
		}
	}
}

func TestAppResize(t *testing.T) {
	f := newFixture(t, 3)
	f.screen.SetSize(100, 30)
	f.a.handleEvent(tcell.NewEventResize(100, 30), f.now)
	f.frame()

	if w, h := f.a.orch.Size(); w != 100 || h != 30 {
		t.Errorf("Expected 100x30, got %dx%d", w, h)
	}
}

func TestAppGameOverRecordsScore(t *testing.T) {
	f := newFixture(t, 1)
	f.frame()
	f.a.send(cmdStart)
	f.frame()

	f.a.session.Scorer().Award(100, 0)
	f.world.SetTranslation(f.a.session.Ball().Handle(), mgl64.Vec3{0, 0.18, f.def.DrainZ + parameter.DrainTolerance + 0.5})
	f.frame()

	if p := f.a.session.Phase(); p != game.PhaseGameOver {
		t.Fatalf("Expected game over, got %s", p)
	}

	ctx := render.Context{Phase: game.PhaseGameOver}
	deadline := time.Now().Add(5 * time.Second)
	for {
		lines := strings.Join(f.a.overlay.Lines(ctx), "\n")
		if strings.Contains(lines, "tester") {
			if !strings.Contains(lines, "local") {
				t.Errorf("Expected local source, got\n%s", lines)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected the score on the board, got\n%s", lines)
		}
		time.Sleep(10 * time.Millisecond)
	}

	top, err := f.local.Top(t.Context(), 5)
	if err != nil || len(top) != 1 || top[0].Name != "tester" || top[0].Score <= 0 {
		t.Errorf("Expected one stored score for tester, got %v %v", top, err)
	}
}

func TestBoardStatus(t *testing.T) {
	tests := []struct {
		err  error
		src  leaderboard.Source
		want string
	}{
		{nil, leaderboard.SourceOnline, "online"},
		{nil, leaderboard.SourceLocal, "local"},
		{leaderboard.ErrInvalidScore, leaderboard.SourceLocal, "no score recorded"},
		{wrap(leaderboard.ErrRateLimited), leaderboard.SourceOnline, "saved locally, rate limited"},
		{wrap(errTest), leaderboard.SourceLocal, "saved locally, offline"},
	}
	for _, tt := range tests {
		if got := boardStatus(tt.err, tt.src); got != tt.want {
			t.Errorf("boardStatus(%v, %s): expected %q, got %q", tt.err, tt.src, tt.want, got)
		}
	}
}

var errTest = errors.New("connection refused")

func wrap(err error) error {
	return fmt.Errorf("saved locally: %w", err)
}
