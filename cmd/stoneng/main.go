package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stoneng/stoneng/internal/config"
	"github.com/stoneng/stoneng/internal/core/event"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/data"
	"github.com/stoneng/stoneng/internal/game"
	"github.com/stoneng/stoneng/internal/input"
	"github.com/stoneng/stoneng/internal/render"
	"github.com/stoneng/stoneng/internal/render/term"
	"github.com/stoneng/stoneng/internal/scripting"
	"github.com/stoneng/stoneng/internal/system"
	"github.com/stoneng/stoneng/internal/world"
)

func main() {
	// The drawing context belongs to the goroutine that created it.
	runtime.LockOSThread()

	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()
	stop, err := startProfile(*prof, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	err = run()
	// os.Exit skips deferred calls; the profile must be flushed first.
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// startProfile starts the named profile writing into dir and returns the
// function that flushes it. An empty mode profiles nothing.
func startProfile(mode, dir string) (stop func(), err error) {
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet).Stop, nil
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet).Stop, nil
	}
	return nil, fmt.Errorf("unknown profile mode %q", mode)
}

// frontend is the drawing and input side of the loop.
type frontend interface {
	render.Renderer
	// poll translates pending terminal input into bus events.
	poll(now time.Time)
	close()
}

func run() error {
	// 1. Load config
	cfgPath := "config/stoneng.toml"
	if p := os.Getenv("STONENG_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging, cfg.Engine.Headless)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Assets and scripts
	sheet, err := data.LoadSpriteSheet(cfg.Assets.SpriteSheet)
	if err != nil {
		return fmt.Errorf("load spritesheet: %w", err)
	}
	log.Info("spritesheet loaded",
		zap.Int("sprites", sheet.Count()),
		zap.Int("schemas", sheet.SchemaCount()),
		zap.Int("animations", sheet.AnimationCount()),
	)

	lua, err := scripting.NewEngine(cfg.Assets.Scripts, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()

	// 4. World, bus and game
	ws := world.NewState(sheet)
	bus := event.NewBus()
	g, err := game.New(ws, bus, lua, cfg, log)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	defer g.Close()

	// 5. Frontend
	var fe frontend
	if cfg.Engine.Headless {
		fe = &headless{Recorder: render.NewRecorder()}
	} else {
		t, err := newTerminal(ws, bus)
		if err != nil {
			return err
		}
		fe = t
	}
	defer fe.close()

	// 6. Scheduler
	b := coresys.NewBuilder(log)
	if cfg.Engine.Workers > 0 {
		b.Workers(cfg.Engine.Workers)
	}
	sched, err := system.Install(b, ws, fe, system.Options{
		Seed:      cfg.World.Seed,
		TileScale: float32(cfg.World.TileScale),
	}).Build()
	if err != nil {
		return fmt.Errorf("build scheduler: %w", err)
	}

	// 7. Main loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	var frame <-chan time.Time
	if cfg.Engine.FrameCap > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.Engine.FrameCap))
		defer ticker.Stop()
		frame = ticker.C
	}

	log.Info("main loop started",
		zap.String("title", cfg.Engine.Title),
		zap.Int("frame_cap", cfg.Engine.FrameCap),
		zap.Bool("headless", cfg.Engine.Headless),
	)

	last := time.Now()
	for {
		select {
		case sig := <-shutdownCh:
			log.Info("signal received", zap.String("signal", sig.String()))
			return nil
		default:
		}
		if frame != nil {
			select {
			case <-frame:
			case sig := <-shutdownCh:
				log.Info("signal received", zap.String("signal", sig.String()))
				return nil
			}
		}

		now := time.Now()
		fe.poll(now)
		g.Step(sched, now.Sub(last).Seconds())
		last = now

		if err := fe.Present(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
		if g.Quit() {
			log.Info("quit", zap.Uint64("ticks", g.Ticks()))
			return nil
		}
		if limit := cfg.Engine.MaxTicks; limit > 0 && g.Ticks() >= limit {
			log.Info("tick limit reached", zap.Uint64("ticks", g.Ticks()))
			return nil
		}
	}
}

type headless struct {
	*render.Recorder
}

func (h *headless) poll(time.Time) {}
func (h *headless) close()         {}

type terminal struct {
	*term.Renderer
	ws     *world.State
	tr     *input.Translator
	events chan tcell.Event
	quit   chan struct{}
}

func newTerminal(ws *world.State, bus *event.Bus) (*terminal, error) {
	screen, err := term.Open()
	if err != nil {
		return nil, err
	}
	t := &terminal{
		Renderer: term.New(screen),
		ws:       ws,
		events:   make(chan tcell.Event, 256),
		quit:     make(chan struct{}),
	}
	for _, m := range []struct {
		name  string
		glyph rune
	}{
		{game.SpriteGrass, '.'},
		{game.SpriteBrick, '#'},
		{game.SpriteWater, '~'},
		{game.SpriteZombie, 'Z'},
		{game.SpriteCursor, '+'},
		{game.SpriteFlash, '*'},
		{game.SpritePlayer, '@'},
	} {
		if schema, err := ws.Sheet.Sprite(m.name); err == nil {
			t.MapSprite(schema, m.glyph)
		}
	}
	t.tr = input.NewTranslator(bus, func(col, row int) (float64, float64) {
		return t.Grid(ws.ECS.Resources.Window).CellToWindow(col, row)
	}, input.DefaultHoldTimeout)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case t.events <- ev:
			case <-t.quit:
				return
			}
		}
	}()
	return t, nil
}

// poll drains terminal events on the loop goroutine, so the translator
// never sees concurrent calls.
func (t *terminal) poll(now time.Time) {
	for {
		select {
		case ev := <-t.events:
			t.tr.Translate(ev)
		default:
			t.tr.Expire(now)
			return
		}
	}
}

func (t *terminal) close() {
	close(t.quit)
	t.Renderer.Close()
}

func newLogger(cfg config.LoggingConfig, toStderr bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	// The terminal frontend owns stdout and stderr while it runs.
	if !toStderr {
		zapCfg.OutputPaths = []string{"stoneng.log"}
		zapCfg.ErrorOutputPaths = []string{"stoneng.log"}
	}
	return zapCfg.Build()
}
