// Command sword-rain-server runs the simulation headless behind the landmark bridge
// A browser or camera client streams landmarks to /ws/landmarks and renders /ws/state
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/sword-rain/config"
	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/internal/log"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/network"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/service"
	"github.com/lixenwraith/sword-rain/status"
)

var (
	envFile     = flag.String("env", ".env", "dotenv file, missing is fine")
	addr        = flag.String("addr", "", "listen address (overrides SWORDRAIN_SERVER_ADDR, default "+parameter.DefaultBridgeAddr+")")
	reportEvery = flag.Duration("report", 10*time.Second, "status log interval, 0 disables")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	switch {
	case *addr != "":
		cfg.ServerAddr = *addr
	case cfg.ServerAddr == "":
		cfg.ServerAddr = parameter.DefaultBridgeAddr
	}

	log.Init(cfg.LogLevel)
	logger := log.L()

	if err := run(cfg); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logger := log.With("cmd", "sword-rain-server")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := status.NewRegistry()
	mailbox := landmark.NewMailbox()
	game := engine.NewGame(engine.GameConfig{
		Seed:            cfg.Seed,
		CollisionRadius: cfg.CollisionRadius,
		KillsToCharge:   cfg.KillsToCharge,
	}, engine.NewMonotonicTimeProvider(), mailbox, reg)

	netSvc := network.NewService(reg, log.L())
	hub := service.NewHub(log.L())
	if err := hub.Register(netSvc); err != nil {
		return err
	}

	netCfg := network.DefaultConfig()
	netCfg.Address = cfg.ServerAddr
	netCfg.CORSOrigins = cfg.CORSOrigins
	tuning := network.DefaultTuning()
	tuning.Seed = cfg.Seed
	tuning.CollisionRadius = cfg.CollisionRadius
	tuning.KillsToCharge = cfg.KillsToCharge

	if err := hub.InitAll(map[string][]any{"network": {netCfg, mailbox, game, tuning}}); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer hub.StopAll()
	netSvc.Attach(game)

	if *reportEvery > 0 {
		go report(ctx, reg, *reportEvery)
	}

	logger.Info("serving", "addr", netSvc.Bridge().Addr(), "seed", cfg.Seed)
	scheduler := engine.NewClockScheduler(game, cfg.FrameInterval, cfg.PollInterval)
	scheduler.Run(ctx)

	published, overwritten := mailbox.Stats()
	logger.Info("shutting down", "ticks", scheduler.TickCount(), "frames", published, "overwritten", overwritten)
	return nil
}

func report(ctx context.Context, reg *status.Registry, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			log.Info("status",
				"clients", reg.Ints.Get(status.NetworkClients).Load(),
				"frames_in", reg.Ints.Get(status.NetworkFramesIn).Load(),
				"kills", reg.Ints.Get(status.EncounterKills).Load(),
				"mode", reg.Strings.Get(status.EngineMode).Load(),
				"meter", reg.Floats.Get(status.EngineMeter).Get(),
			)
		}
	}
}
