package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pinball/audio"
	"github.com/lixenwraith/pinball/config"
	"github.com/lixenwraith/pinball/core"
	"github.com/lixenwraith/pinball/engine"
	"github.com/lixenwraith/pinball/game"
	"github.com/lixenwraith/pinball/leaderboard"
	"github.com/lixenwraith/pinball/network"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics/chipmunk"
	"github.com/lixenwraith/pinball/table"
)

var (
	tableFlag    = flag.String("table", "", "Table name: cadet, neon")
	tableDirFlag = flag.String("tables", "", "Directory of table YAML overrides")
	boostFlag    = flag.String("boost", "", "Boost policy: additive, combo")
	drainFlag    = flag.String("drain-reset", "", "Multiplier after a drain: floor, one")
	ballsFlag    = flag.Int("balls", 0, "Balls per run")
	nameFlag     = flag.String("name", "", "Player name for the leaderboard")
	boardFlag    = flag.String("leaderboard", "", "Remote leaderboard base URL")
	scoresFlag   = flag.String("scores", "", "Local score file")
	spectateFlag = flag.String("spectate", "", "Spectator feed listen address, e.g. :8090")
	muteFlag     = flag.Bool("mute", false, "Disable audio")
	debugFlag    = flag.Bool("debug", false, "Write logs/pinball.log")
)

// applyFlags lets explicitly set flags override the environment
func applyFlags(cfg *config.Config) {
	if *tableFlag != "" {
		cfg.Table = *tableFlag
	}
	if *tableDirFlag != "" {
		cfg.TableDir = *tableDirFlag
	}
	if *boostFlag != "" {
		cfg.Boost = *boostFlag
	}
	if *drainFlag != "" {
		cfg.DrainReset = *drainFlag
	}
	if *ballsFlag > 0 {
		cfg.Balls = *ballsFlag
	}
	if *nameFlag != "" {
		cfg.Player = *nameFlag
	}
	if *boardFlag != "" {
		cfg.LeaderboardURL = *boardFlag
	}
	if *scoresFlag != "" {
		cfg.ScoresPath = *scoresFlag
	}
	if *spectateFlag != "" {
		cfg.SpectateAddr = *spectateFlag
	}
	if *muteFlag {
		cfg.Mute = true
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	cfg := config.Load()
	applyFlags(cfg)

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	boost, err := game.ParseBoostPolicy(cfg.Boost)
	if err != nil {
		fail("Invalid boost policy: %v", err)
	}
	reset, err := game.ParseDrainReset(cfg.DrainReset)
	if err != nil {
		fail("Invalid drain reset: %v", err)
	}

	def, err := table.NewLoader(cfg.TableDir).Load(cfg.Table)
	if err != nil {
		fail("Failed to load table: %v", err)
	}
	log.Printf("[table] loaded %s (%s)", def.Name, def.Title)

	world := chipmunk.New(chipmunk.Config{
		Gravity:    def.Gravity,
		Step:       parameter.FixedStepSeconds,
		Iterations: parameter.SolverIterations,
	})

	scoresPath := cfg.ScoresPath
	if scoresPath == "" {
		scoresPath = leaderboard.DefaultLocalPath()
	}
	var remote leaderboard.Store
	if cfg.LeaderboardURL != "" {
		remote = leaderboard.NewClient(cfg.LeaderboardURL)
	}
	board := leaderboard.NewFallback(remote, leaderboard.NewLocalStore(scoresPath))

	screen, err := tcell.NewScreen()
	if err != nil {
		fail("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		fail("Failed to initialize terminal: %v", err)
	}
	core.SetCrashFinalizer(screen)
	defer func() {
		core.SetCrashFinalizer(nil)
		screen.Fini()
	}()
	screen.EnableFocus()

	var voice audio.Voice
	if !cfg.Mute {
		synth := audio.NewSynth()
		if err := synth.Initialize(); err != nil {
			// Non-fatal, the game runs silent
			log.Printf("[audio] init failed: %v", err)
		} else {
			defer synth.Cleanup()
			voice = synth
		}
	}

	a := newApp(appConfig{
		World:  world,
		Def:    def,
		Screen: screen,
		Voice:  voice,
		Board:  board,
		Player: cfg.Player,
		Options: game.Options{
			Boost:       boost,
			DrainReset:  reset,
			Balls:       cfg.Balls,
			IdlePhysics: cfg.IdlePhysics,
		},
	})
	defer a.session.Dispose()
	a.loadBoard()

	if cfg.SpectateAddr != "" {
		feed := network.NewFeed(nil, def.Name)
		detach := feed.Attach(&a.session.Hud, &a.session.Phases)
		srv := network.NewServer(feed)
		if err := srv.Start(cfg.SpectateAddr); err != nil {
			log.Printf("[network] spectator feed disabled: %v", err)
			detach()
		} else {
			log.Printf("[network] spectators on %s", srv.Addr())
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				srv.Stop(ctx)
				detach()
			}()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := engine.NewMonotonicTimeProvider()
	runner := engine.NewRunner(parameter.FrameUpdateInterval, clock, a.frame)
	runner.Start(ctx)
	defer runner.Stop()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.handleEvent(ev, clock.Now()) {
			return
		}
	}
}
