package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/event"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/status"
)

// Message types on the state stream; landmark frames use landmark.MsgLandmarks
const (
	MsgState = "state"
	MsgEvent = "event"
)

var ErrAlreadyRunning = errors.New("bridge already running")

// FrameSink receives decoded landmark frames; Publish must not block
type FrameSink interface {
	Publish(f *landmark.HandFrame)
}

// SnapshotSource returns the latest snapshot, nil before the first tick
type SnapshotSource interface {
	Snapshot() *engine.Snapshot
}

// EventMessage is the wire form of a game event
type EventMessage struct {
	Type    string  `json:"type"`
	TimeMs  float64 `json:"time_ms"`
	Payload any     `json:"payload,omitempty"`
}

// Bridge accepts landmark frames over websocket and streams snapshots back
type Bridge struct {
	cfg    *Config
	app    *fiber.App
	logger *slog.Logger

	sink      FrameSink
	snapshots SnapshotSource
	reg       *status.Registry
	tuning    Tuning

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	listener net.Listener

	running     atomic.Bool
	lastState   atomic.Int64 // Elapsed of the last broadcast snapshot, -1 before the first
	stateCount  atomic.Int32
	statIn      *atomic.Int64
	statDropped *atomic.Int64
	statClients *atomic.Int64
}

// NewBridge builds the fiber app and its routes; sink, snapshots and reg may be nil
func NewBridge(cfg *Config, sink FrameSink, snapshots SnapshotSource, reg *status.Registry, logger *slog.Logger) *Bridge {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bridge{
		cfg:         cfg.withDefaults(),
		logger:      logger.With("component", "network"),
		sink:        sink,
		snapshots:   snapshots,
		reg:         reg,
		tuning:      DefaultTuning(),
		sessions:    make(map[uuid.UUID]*Session),
		statIn:      reg.Ints.Get(status.NetworkFramesIn),
		statDropped: reg.Ints.Get(status.NetworkFramesDropped),
		statClients: reg.Ints.Get(status.NetworkClients),
	}
	b.lastState.Store(-1)

	app := fiber.New(fiber.Config{
		AppName:               "sword-rain bridge",
		DisableStartupMessage: true,
	})
	app.Use(cors.New(cors.Config{AllowOrigins: b.cfg.CORSOrigins}))

	api := app.Group("/api")
	api.Get("/status", b.handleStatus)
	api.Get("/snapshot", b.handleSnapshot)
	api.Get("/tuning", b.handleTuning)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/landmarks", websocket.New(b.handleLandmarks))
	app.Get("/ws/state", websocket.New(b.handleState))

	b.app = app
	return b
}

// SetTuning replaces the values served at /api/tuning
func (b *Bridge) SetTuning(t Tuning) {
	b.mu.Lock()
	b.tuning = t
	b.mu.Unlock()
}

// App exposes the fiber app for tests and extra routes
func (b *Bridge) App() *fiber.App { return b.app }

// Start binds the address synchronously and serves in the background
func (b *Bridge) Start() error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	ln, err := net.Listen("tcp", b.cfg.Address)
	if err != nil {
		b.running.Store(false)
		return fmt.Errorf("bridge listen %s: %w", b.cfg.Address, err)
	}
	b.mu.Lock()
	b.listener = ln
	b.mu.Unlock()

	b.logger.Info("bridge listening", "addr", ln.Addr().String())
	go func() {
		if err := b.app.Listener(ln); err != nil && b.running.Load() {
			b.logger.Error("bridge serve failed", "error", err)
		}
	}()
	return nil
}

// Stop closes every session then shuts the server down
func (b *Bridge) Stop() error {
	if !b.running.CompareAndSwap(true, false) {
		return nil
	}
	b.mu.Lock()
	sessions := make([]*Session, 0, len(b.sessions))
	for _, s := range b.sessions {
		sessions = append(sessions, s)
	}
	b.listener = nil
	b.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	if err := b.app.ShutdownWithTimeout(parameter.BridgeShutdownTimeout); err != nil {
		return fmt.Errorf("bridge shutdown: %w", err)
	}
	b.logger.Info("bridge stopped")
	return nil
}

// Addr returns the bound address, empty when not running
func (b *Bridge) Addr() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.listener == nil {
		return ""
	}
	return b.listener.Addr().String()
}

// Running reports whether the server is accepting connections
func (b *Bridge) Running() bool { return b.running.Load() }

// Sessions returns a view of connected sessions sorted by connect time
func (b *Bridge) Sessions() []SessionInfo {
	b.mu.RLock()
	out := make([]SessionInfo, 0, len(b.sessions))
	for _, s := range b.sessions {
		out = append(out, s.Info())
	}
	b.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Connected.Before(out[j].Connected) })
	return out
}

// OnFrame is an engine.FrameListener; broadcasts at most once per StateInterval of sim time
func (b *Bridge) OnFrame(snap *engine.Snapshot) {
	if snap == nil || b.stateCount.Load() == 0 {
		return
	}
	last := b.lastState.Load()
	if last >= 0 && snap.Elapsed-time.Duration(last) < b.cfg.StateInterval {
		return
	}
	b.lastState.Store(int64(snap.Elapsed))

	msg, err := envelope(MsgState, snap)
	if err != nil {
		b.logger.Warn("snapshot encode failed", "error", err)
		return
	}
	b.broadcast(msg)
}

// OnEvent is an engine.EventListener; events are never rate-limited
func (b *Bridge) OnEvent(ev event.GameEvent) {
	if b.stateCount.Load() == 0 {
		return
	}
	msg, err := envelope(MsgEvent, EventMessage{
		Type:    ev.Type.String(),
		TimeMs:  float64(ev.Time) / float64(time.Millisecond),
		Payload: ev.Payload,
	})
	if err != nil {
		b.logger.Warn("event encode failed", "event", ev.Type.String(), "error", err)
		return
	}
	b.broadcast(msg)
}

func (b *Bridge) broadcast(msg []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.sessions {
		if s.Kind == SessionState {
			s.Enqueue(msg)
		}
	}
}

// register adds a session unless the client limit is reached
func (b *Bridge) register(s *Session) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sessions) >= b.cfg.MaxClients {
		return false
	}
	b.sessions[s.ID] = s
	b.statClients.Store(int64(len(b.sessions)))
	if s.Kind == SessionState {
		b.stateCount.Add(1)
	}
	return true
}

func (b *Bridge) unregister(s *Session) {
	b.mu.Lock()
	if _, ok := b.sessions[s.ID]; ok {
		delete(b.sessions, s.ID)
		if s.Kind == SessionState {
			b.stateCount.Add(-1)
		}
	}
	b.statClients.Store(int64(len(b.sessions)))
	b.mu.Unlock()
}

func (b *Bridge) finish(s *Session, wait func()) {
	s.Close()
	wait()
	b.unregister(s)
	b.logger.Info("client disconnected", "session", s.ID.String(), "kind", s.Kind.String(),
		"received", s.received.Load(), "sent", s.sent.Load(), "dropped", s.dropped.Load())
}

func (b *Bridge) handleLandmarks(c *websocket.Conn) {
	b.run(c, SessionLandmarks, b.ingest)
}

func (b *Bridge) handleState(c *websocket.Conn) {
	b.run(c, SessionState, nil)
}

// run owns the connection for the lifetime of the handler
// The handler must not return while writePump still uses the conn
func (b *Bridge) run(c *websocket.Conn, kind SessionKind, onMessage func([]byte)) {
	s := newSession(kind, c, b.cfg)
	if !b.register(s) {
		b.logger.Warn("client rejected, limit reached", "kind", kind.String(), "remote", s.Remote)
		_ = c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many clients"))
		s.Close()
		return
	}
	b.logger.Info("client connected", "session", s.ID.String(), "kind", kind.String(), "remote", s.Remote)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writePump()
	}()

	if kind == SessionState && b.snapshots != nil {
		if snap := b.snapshots.Snapshot(); snap != nil {
			if msg, err := envelope(MsgState, snap); err == nil {
				s.Enqueue(msg)
			}
		}
	}

	s.readPump(onMessage)
	b.finish(s, wg.Wait)
}

// ingest decodes one landmark message; malformed messages are counted and dropped
func (b *Bridge) ingest(data []byte) {
	f, err := landmark.Decode(data)
	if err != nil {
		b.statDropped.Add(1)
		b.logger.Debug("landmark frame dropped", "error", err)
		return
	}
	b.statIn.Add(1)
	if b.sink != nil {
		b.sink.Publish(f)
	}
}

func envelope(t string, payload any) ([]byte, error) {
	p, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(landmark.Envelope{T: t, P: p})
}
