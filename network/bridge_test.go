package network

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/status"
	"github.com/lixenwraith/sword-rain/vmath"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.StateInterval = 0
	return cfg
}

func startBridge(t *testing.T, cfg *Config, sink FrameSink, snaps SnapshotSource, reg *status.Registry) *Bridge {
	t.Helper()
	b := NewBridge(cfg, sink, snaps, reg, nil)
	if err := b.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = b.Stop() })
	return b
}

func dial(t *testing.T, b *Bridge, path string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial("ws://"+b.Addr()+path, nil)
	if err != nil {
		t.Fatalf("Dial %s failed: %v", path, err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func oneHandFrame() *landmark.HandFrame {
	return &landmark.HandFrame{
		Hands:     []landmark.Hand{landmark.NewHand(vmath.Vec2F{X: 0.5, Y: 0.6}, 0, -1, 0.15)},
		Timestamp: 40 * time.Millisecond,
	}
}

func TestBridgeIngestLandmarks(t *testing.T) {
	reg := status.NewRegistry()
	mb := landmark.NewMailbox()
	b := startBridge(t, testConfig(), mb, nil, reg)

	ws := dial(t, b, "/ws/landmarks")

	data, err := landmark.Encode(oneHandFrame())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"t":"landmarks","p":{"hands":[[[0,0,0]]]}}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	in := reg.Ints.Get(status.NetworkFramesIn)
	dropped := reg.Ints.Get(status.NetworkFramesDropped)
	waitFor(t, "ingest counters", func() bool { return in.Load() == 1 && dropped.Load() == 1 })

	f := mb.Detect()
	if f == nil {
		t.Fatal("Expected frame in mailbox, got nil")
	}
	if f.Count() != 1 {
		t.Errorf("Expected 1 hand, got %d", f.Count())
	}
	if f.Timestamp != 40*time.Millisecond {
		t.Errorf("Expected timestamp 40ms, got %v", f.Timestamp)
	}
	t.Logf("✓ Landmark frame decoded into mailbox, malformed frame counted")
}

func TestBridgeStateBroadcast(t *testing.T) {
	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	game := engine.NewGame(engine.GameConfig{Seed: 7}, mock, nil, nil)
	b := startBridge(t, testConfig(), nil, game, nil)
	game.OnFrame(b.OnFrame)
	game.OnEvent(b.OnEvent)

	ws := dial(t, b, "/ws/state")
	waitFor(t, "state session", func() bool { return len(b.Sessions()) == 1 })

	for i := 0; i < 3; i++ {
		game.Step(mock, 20*time.Millisecond)
	}

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		var env landmark.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("Envelope decode failed: %v", err)
		}
		if env.T != MsgState {
			continue
		}
		var snap struct {
			Frame uint64 `json:"frame"`
			Mode  string `json:"mode"`
			Meter float64
		}
		if err := json.Unmarshal(env.P, &snap); err != nil {
			t.Fatalf("Snapshot decode failed: %v", err)
		}
		if snap.Mode != "single" {
			t.Errorf("Expected mode single, got %q", snap.Mode)
		}
		t.Logf("✓ State frame %d received", snap.Frame)
		return
	}
}

func TestBridgeStateRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.StateInterval = 100 * time.Millisecond
	b := NewBridge(cfg, nil, nil, nil, nil)

	// Fake a connected state client without a socket
	s := newSession(SessionState, nil, b.cfg)
	if !b.register(s) {
		t.Fatal("register failed")
	}

	for i := 0; i < 10; i++ {
		b.OnFrame(&engine.Snapshot{Frame: uint64(i), Elapsed: time.Duration(i) * 20 * time.Millisecond})
	}
	// 0ms, 100ms
	if got := len(s.send); got != 2 {
		t.Errorf("Expected 2 queued snapshots, got %d", got)
	}
	t.Logf("✓ Snapshot broadcast limited to StateInterval")
}

func TestSessionQueueDropsWhenFull(t *testing.T) {
	cfg := testConfig().withDefaults()
	cfg.SendQueueSize = 2
	s := newSession(SessionState, nil, cfg)

	for i := 0; i < 5; i++ {
		s.Enqueue([]byte("x"))
	}
	if got := s.Info().Dropped; got != 3 {
		t.Errorf("Expected 3 dropped, got %d", got)
	}

	s.Close()
	s.Close()
	if s.Enqueue([]byte("y")) {
		t.Error("Expected Enqueue to fail after Close")
	}
	t.Logf("✓ Full queue drops without blocking, Close idempotent")
}

func TestBridgeClientLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxClients = 1
	b := startBridge(t, cfg, nil, nil, nil)

	dial(t, b, "/ws/state")
	waitFor(t, "first session", func() bool { return len(b.Sessions()) == 1 })

	second := dial(t, b, "/ws/state")
	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := second.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		t.Errorf("Expected close 1013, got %v", err)
	}
	if len(b.Sessions()) != 1 {
		t.Errorf("Expected 1 session, got %d", len(b.Sessions()))
	}
	t.Logf("✓ Extra client rejected with try-again-later")
}

func TestBridgeStatusEndpoint(t *testing.T) {
	reg := status.NewRegistry()
	b := NewBridge(testConfig(), nil, nil, reg, nil)
	reg.Ints.Get(status.EngineTicks).Store(42)

	resp, err := b.App().Test(httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)

	var got StatusResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v, ok := got.Metrics[status.EngineTicks].(float64); !ok || v != 42 {
		t.Errorf("Expected engine.ticks 42, got %v", got.Metrics[status.EngineTicks])
	}
	if _, ok := got.Metrics[status.NetworkFramesIn]; !ok {
		t.Error("Expected network.frames_in in metrics")
	}
	t.Logf("✓ Status endpoint serves registry snapshot")
}

func TestBridgeSnapshotAndTuning(t *testing.T) {
	b := NewBridge(testConfig(), nil, nil, nil, nil)

	resp, err := b.App().Test(httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without engine, got %d", resp.StatusCode)
	}

	tuning := DefaultTuning()
	tuning.Seed = 99
	b.SetTuning(tuning)
	resp, err = b.App().Test(httptest.NewRequest(http.MethodGet, "/api/tuning", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var got Tuning
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Seed != 99 || got.KillsToCharge != 8 {
		t.Errorf("Expected seed 99 kills 8, got %d %d", got.Seed, got.KillsToCharge)
	}
	if got.ArrayEnterThreshold != 99 || got.LaunchThreshold != 98 {
		t.Errorf("Expected thresholds 99/98, got %v/%v", got.ArrayEnterThreshold, got.LaunchThreshold)
	}
	t.Logf("✓ Snapshot and tuning endpoints")
}

func TestBridgeRequiresUpgrade(t *testing.T) {
	b := NewBridge(testConfig(), nil, nil, nil, nil)
	resp, err := b.App().Test(httptest.NewRequest(http.MethodGet, "/ws/state", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Errorf("Expected 426, got %d", resp.StatusCode)
	}
}

func TestServiceDisabledWithoutAddress(t *testing.T) {
	svc := NewService(nil, nil)
	cfg := DefaultConfig()
	cfg.Address = ""
	if err := svc.Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !svc.IsDisabled() {
		t.Error("Expected disabled service")
	}
	if err := svc.Start(); err != nil {
		t.Errorf("Start on disabled service: %v", err)
	}
	if svc.IsRunning() {
		t.Error("Expected not running")
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

func TestServiceLifecycle(t *testing.T) {
	svc := NewService(nil, nil)
	mb := landmark.NewMailbox()
	if err := svc.Init(testConfig(), mb); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !svc.IsRunning() {
		t.Fatal("Expected running")
	}
	if err := svc.Bridge().Start(); err != ErrAlreadyRunning {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}
	if err := svc.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if svc.IsRunning() {
		t.Error("Expected stopped")
	}
	t.Logf("✓ Service start/stop")
}
