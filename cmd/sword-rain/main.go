package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/sword-rain/audio"
	"github.com/lixenwraith/sword-rain/config"
	"github.com/lixenwraith/sword-rain/core"
	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/input"
	"github.com/lixenwraith/sword-rain/internal/log"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/network"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/render"
	"github.com/lixenwraith/sword-rain/render/renderers"
	"github.com/lixenwraith/sword-rain/service"
	"github.com/lixenwraith/sword-rain/status"
)

const defaultLogFile = "logs/sword-rain.log"

var (
	envFile  = flag.String("env", ".env", "dotenv file, missing is fine")
	serve    = flag.String("serve", "", "also accept remote landmarks on this address (overrides SWORDRAIN_SERVER_ADDR)")
	muteFlag = flag.Bool("mute", false, "start muted")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *serve != "" {
		cfg.ServerAddr = *serve
	}

	// The terminal owns stdout, so logs go to a file
	logOut, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer logOut.Close()
	logger := log.Setup(log.Options{Level: cfg.LogLevel, Output: logOut})

	keys := input.DefaultKeyTable()
	if cfg.Keymap != "" {
		override, err := input.LoadKeyConfig(cfg.Keymap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keymap: %v\n", err)
			os.Exit(2)
		}
		keys = input.MergeKeyTable(keys, override)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.RegisterCleanup(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	width, height := screen.Size()
	pointer := input.NewPointerSource(width, height-render.StatusRows)

	// Remote landmarks take over while they stream; the pointer drives otherwise
	remote := landmark.NewMailbox()
	source := landmark.NewFallback(remote, pointer, parameter.RemoteHandHold)

	reg := status.NewRegistry()
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	game := engine.NewGame(engine.GameConfig{
		Seed:            cfg.Seed,
		CollisionRadius: cfg.CollisionRadius,
		KillsToCharge:   cfg.KillsToCharge,
	}, clock, source, reg)

	audioSvc := audio.NewService(reg, logger)
	netSvc := network.NewService(reg, logger)
	hub := service.NewHub(logger)
	for _, svc := range []service.Service{audioSvc, netSvc} {
		if err := hub.Register(svc); err != nil {
			panic(err)
		}
	}

	audioCfg := audio.LoadAudioConfig(os.LookupEnv)
	audioCfg.MasterVolume = cfg.MasterVolume

	netCfg := network.DefaultConfig()
	netCfg.Address = cfg.ServerAddr
	netCfg.CORSOrigins = cfg.CORSOrigins
	tuning := network.DefaultTuning()
	tuning.Seed = cfg.Seed
	tuning.CollisionRadius = cfg.CollisionRadius
	tuning.KillsToCharge = cfg.KillsToCharge

	if err := hub.InitAll(map[string][]any{
		"audio":   {audioCfg, *muteFlag || !cfg.AudioEnabled},
		"network": {netCfg, remote, game, tuning},
	}); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	if err := hub.StartAll(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}
	defer hub.StopAll()

	game.OnEvent(audioSvc.OnEvent)
	game.OnFrame(audioSvc.OnFrame)
	netSvc.Attach(game)

	scheduler := engine.NewClockScheduler(game, cfg.FrameInterval, cfg.PollInterval)
	scheduler.SetPauseCheck(clock.IsPaused)
	scheduler.Start()
	defer scheduler.Stop()

	orchestrator := render.NewRenderOrchestrator(screen)
	renderers.Register(orchestrator)

	bridgeAddr := ""
	if b := netSvc.Bridge(); b != nil {
		bridgeAddr = b.Addr()
	}

	logger.Info("sword-rain started", "width", width, "height", height, "seed", cfg.Seed, "bridge", bridgeAddr)

	events := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	core.Go(func() { screen.ChannelEvents(events, quit) })

	machine := input.NewMachine(keys)
	frameTicker := time.NewTicker(cfg.FrameInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			in := machine.Process(ev)
			switch in.Type {
			case input.IntentNone:
			case input.IntentQuit:
				close(quit)
				logger.Info("sword-rain exiting", "ticks", scheduler.TickCount(), "kills", reg.Ints.Get(status.EncounterKills).Load())
				return
			case input.IntentTogglePause:
				paused := clock.Toggle()
				logger.Debug("pause toggled", "paused", paused)
			case input.IntentToggleMute:
				audible := audioSvc.ToggleMute()
				logger.Debug("mute toggled", "audible", audible)
			case input.IntentResize:
				screen.Sync()
				orchestrator.Resize()
				w, h := screen.Size()
				pointer.Resize(w, h-render.StatusRows)
			default:
				pointer.Apply(in)
			}

		case <-frameTicker.C:
			w, h := screen.Size()
			ctx := render.NewRenderContext(game.Snapshot(), w, h)
			ctx.Paused = clock.IsPaused()
			ctx.Bridge = bridgeAddr
			if sm := audioSvc.Manager(); sm != nil {
				ctx.Backend = sm.Backend()
				ctx.Muted = sm.IsMuted()
			}
			orchestrator.RenderFrame(ctx)
		}
	}
}

// openLog opens the log file, creating its directory; "-" discards
func openLog(path string) (io.WriteCloser, error) {
	if path == "" {
		path = defaultLogFile
	}
	if path == "-" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
