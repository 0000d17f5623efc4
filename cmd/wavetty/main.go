// Terminal wave viewer - runs the simulation headless and draws particles
// as a projection with tcell.
//
// Usage: go run ./cmd/wavetty [-config path] [-log wavetty.log]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wavefx/config"
	"github.com/pthm-cable/wavefx/sim"
)

// App couples the simulation with the terminal.
type App struct {
	screen tcell.Screen
	sim    *sim.Sim
	view   *View
	paused bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logPath := flag.String("log", "", "Write JSON logs to this file (empty = discard)")
	scale := flag.Float64("scale", 6, "Columns per world unit")
	seed := flag.Int64("seed", 0, "RNG seed for particle scatter (0 = time-based)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	s, err := sim.New(sim.Options{Seed: rngSeed, Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	app := &App{screen: screen, sim: s, view: NewView(*scale)}
	app.run(time.Duration(float64(time.Second) * float64(cfg.Derived.TickDT)))
}

func (a *App) run(tickEvery time.Duration) {
	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}
			a.draw()

		case <-ticker.C:
			if !a.paused {
				a.sim.Step()
			}
			a.draw()
		}
	}
}

// handleInput returns false when the viewer should quit.
func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.view.Pan(-4, 0)
		case tcell.KeyRight:
			a.view.Pan(4, 0)
		case tcell.KeyUp:
			a.view.Pan(0, -2)
		case tcell.KeyDown:
			a.view.Pan(0, 2)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.paused = !a.paused
			case 'n':
				if a.paused {
					a.sim.Step()
				}
			case 'v':
				a.view.Projection = 1 - a.view.Projection
			case '+', '=':
				a.view.Zoom(1.25)
			case '-':
				a.view.Zoom(0.8)
			case 'r':
				if err := a.sim.Restart(); err != nil {
					slog.Error("restart failed", "error", err)
				}
			}
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) draw() {
	var anchors [][3]float64
	for _, w := range a.sim.Waves() {
		if loc, ok := a.sim.Anchors().Location(w.Entity); ok {
			anchors = append(anchors, [3]float64{loc.Pos.X, loc.Pos.Y, loc.Pos.Z})
		}
	}

	particles := a.sim.Particles()
	status := statusLine(a.sim.Tick(), len(particles), len(anchors), a.sim.Effects().Active(), a.view, a.paused)
	a.view.Draw(a.screen, particles, anchors, status)
	a.screen.Show()
}
