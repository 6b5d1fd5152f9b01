// Command wheelie is an endless lane runner in the terminal
//
// Without -headless it opens a tcell screen; with it the autopilot rides one
// run in simulated time and the result is printed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wheelie/audio"
	"github.com/lixenwraith/wheelie/config"
	"github.com/lixenwraith/wheelie/core"
	"github.com/lixenwraith/wheelie/engine"
	"github.com/lixenwraith/wheelie/game"
	"github.com/lixenwraith/wheelie/input"
	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/parameter"
	"github.com/lixenwraith/wheelie/render"
	"github.com/lixenwraith/wheelie/status"
)

var (
	configPath = flag.String("config", "", "TOML configuration file")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/wheelie.log")
	headless   = flag.Bool("headless", false, "Ride one autopilot run without a terminal and print the result")
	duration   = flag.Duration("duration", 2*time.Minute, "Simulated time limit for -headless")
	seedFlag   = flag.Uint64("seed", 0, "Spawn seed; 0 keeps the configured one")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
	dumpConfig = flag.Bool("dump-config", false, "Print the effective configuration as TOML and exit")
	statsFlag  = flag.Bool("stats", false, "Show telemetry beside the road, or print it after -headless")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	os.Exit(run())
}

func run() int {
	flag.Parse()
	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wheelie: %v\n", err)
		return 2
	}
	if *seedFlag != 0 {
		cfg.Spawn.Seed = *seedFlag
	}

	switch {
	case *dumpConfig:
		err = cfg.Write(os.Stdout)
	case *headless:
		err = runHeadless(cfg)
	default:
		err = runInteractive(cfg)
	}
	if err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "wheelie: %v\n", err)
		return 1
	}
	return 0
}

func runHeadless(cfg config.File) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := game.NewSession(cfg, game.Options{Driver: game.NewAutopilot(cfg.Motion())})
	if err != nil {
		return err
	}
	res, err := game.Simulate(ctx, s, parameter.TickInterval.Seconds(), duration.Seconds())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	outcome := "still riding"
	if res.Ended {
		outcome = "fell: " + res.Reason.String()
	}
	fmt.Printf("steps %d, simulated %.1fs, racing %.1fs, odometer %.1f\n", res.Steps, res.Elapsed, res.RunTime, res.Odometer)
	fmt.Printf("%s, score %d (points %d, coins %d)\n", outcome, res.Summary.Score, res.Summary.Points, res.Summary.Coins)
	if top, ok := s.Registry().Floats.Lookup(status.KeyTopSpeed); ok {
		fmt.Printf("top speed %.1f\n", top.Get())
	}
	if *statsFlag {
		for _, e := range s.Registry().Snapshot() {
			fmt.Printf("  %-22s %s\n", e.Key, e.Value)
		}
	}
	return nil
}

func runInteractive(cfg config.File) error {
	table, err := input.LoadKeyTable(cfg.Keys)
	if err != nil {
		return err
	}
	audioCfg, err := audio.LoadConfig(cfg.Audio, os.Getenv)
	if err != nil {
		return err
	}
	if *muteFlag {
		audioCfg.Enabled = false
	}

	player := audio.NewPlayer(audioCfg)
	if audioCfg.Enabled {
		if err := player.Start(); err != nil {
			log.Printf("audio: %v (continuing without sound)", err)
		}
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)
	screen.HideCursor()

	kb := input.NewKeyboard(table, engine.NewMonotonicTimeProvider(), parameter.KeyHoldWindow)
	s, err := game.NewSession(cfg, game.Options{
		Driver: game.DriverFunc(func(*game.Session, float64) motion.InputSource { return kb.Poll() }),
		Events: []motion.EventSink{player},
	})
	if err != nil {
		return err
	}

	runner := game.NewRunner(s, engine.NewPausableClock(nil), parameter.TickInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	core.Go(func() { done <- runner.Run(ctx) })
	stopRunner := func() error {
		cancel()
		return <-done
	}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() { screen.ChannelEvents(events, quit) })

	renderer := render.NewTerminalRenderer(screen)
	view := render.NewView(cfg.Motion())
	draw := func() {
		v := view
		v.Paused = runner.Paused()
		v.Muted = player.Muted()
		if *statsFlag {
			v.Debug = s.Registry().Snapshot()
		}
		renderer.RenderFrame(s.Frame(), v)
	}

	frameTicker := time.NewTicker(parameter.FrameInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				draw()
			case *tcell.EventKey:
				switch kb.Handle(ev) {
				case input.ActionQuit:
					return stopRunner()
				case input.ActionPause:
					kb.Clear()
					runner.TogglePause()
				case input.ActionRestart:
					kb.Clear()
					runner.Restart()
				}
			}
		case <-frameTicker.C:
			draw()
		case err := <-done:
			return err
		}
	}
}
