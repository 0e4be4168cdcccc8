package network

import (
	"log/slog"
	"sync/atomic"

	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/status"
)

// Service wraps Bridge as a hub-managed service
// An empty address leaves it disabled; bind failures are returned from Start
type Service struct {
	config *Config
	bridge *Bridge
	reg    *status.Registry
	logger *slog.Logger

	disabled atomic.Bool
}

// NewService creates a network service; reg and logger may be nil
func NewService(reg *status.Registry, logger *slog.Logger) *Service {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		config: DefaultConfig(),
		reg:    reg,
		logger: logger,
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (nil keeps defaults); args[1]: FrameSink; args[2]: SnapshotSource; args[3]: Tuning
func (s *Service) Init(args ...any) error {
	var (
		sink  FrameSink
		snaps SnapshotSource
	)
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}
	if len(args) > 1 {
		sink, _ = args[1].(FrameSink)
	}
	if len(args) > 2 {
		snaps, _ = args[2].(SnapshotSource)
	}

	if s.config.Address == "" {
		s.disabled.Store(true)
		return nil
	}

	s.bridge = NewBridge(s.config, sink, snaps, s.reg, s.logger)
	if len(args) > 3 {
		if t, ok := args[3].(Tuning); ok {
			s.bridge.SetTuning(t)
		}
	}
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.bridge == nil {
		return nil
	}
	return s.bridge.Start()
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.bridge != nil {
		return s.bridge.Stop()
	}
	return nil
}

// Attach subscribes the bridge to a game's frames and events
func (s *Service) Attach(g *engine.Game) {
	if s.disabled.Load() || s.bridge == nil || g == nil {
		return
	}
	g.OnFrame(s.bridge.OnFrame)
	g.OnEvent(s.bridge.OnEvent)
}

// IsDisabled reports whether the bridge was configured off
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Bridge returns the underlying bridge, nil when disabled
func (s *Service) Bridge() *Bridge {
	return s.bridge
}

// ClientCount returns connected session count
func (s *Service) ClientCount() int {
	if s.bridge == nil {
		return 0
	}
	return len(s.bridge.Sessions())
}

// IsRunning returns true if the bridge is accepting connections
func (s *Service) IsRunning() bool {
	return s.bridge != nil && s.bridge.Running()
}
