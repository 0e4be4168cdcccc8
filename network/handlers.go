package network

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lixenwraith/sword-rain/parameter"
)

// Tuning is the read-only view served at /api/tuning
type Tuning struct {
	CollisionRadius     float64 `json:"collision_radius"`
	KillsToCharge       int     `json:"kills_to_charge"`
	ArrayEnterThreshold float64 `json:"array_enter_threshold"`
	LaunchThreshold     float64 `json:"launch_threshold"`
	GestureDebounceMs   int64   `json:"gesture_debounce_ms"`
	FrameIntervalMs     int64   `json:"frame_interval_ms"`
	PollIntervalMs      int64   `json:"poll_interval_ms"`
	ViewWidth           float64 `json:"view_width"`
	ViewHeight          float64 `json:"view_height"`
	RainCount           int     `json:"rain_count"`
	RainDurationMs      int64   `json:"rain_duration_ms"`
	Seed                uint64  `json:"seed"`
}

// DefaultTuning reports the built-in constants
func DefaultTuning() Tuning {
	return Tuning{
		CollisionRadius:     parameter.CollisionRadius,
		KillsToCharge:       parameter.MonstersToKill,
		ArrayEnterThreshold: parameter.ArrayEnterThreshold,
		LaunchThreshold:     parameter.LaunchThreshold,
		GestureDebounceMs:   parameter.GestureDebounce.Milliseconds(),
		FrameIntervalMs:     parameter.FrameUpdateInterval.Milliseconds(),
		PollIntervalMs:      parameter.GesturePollInterval.Milliseconds(),
		ViewWidth:           parameter.ViewWidth,
		ViewHeight:          parameter.ViewHeight,
		RainCount:           parameter.RainCount,
		RainDurationMs:      parameter.RainDuration.Milliseconds(),
	}
}

// StatusResponse is the body of GET /api/status
type StatusResponse struct {
	Time     time.Time      `json:"time"`
	Metrics  map[string]any `json:"metrics"`
	Sessions []SessionInfo  `json:"sessions"`
}

func (b *Bridge) handleStatus(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		Time:     time.Now(),
		Metrics:  b.reg.Snapshot(),
		Sessions: b.Sessions(),
	})
}

func (b *Bridge) handleSnapshot(c *fiber.Ctx) error {
	if b.snapshots == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no engine attached")
	}
	snap := b.snapshots.Snapshot()
	if snap == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(snap)
}

func (b *Bridge) handleTuning(c *fiber.Ctx) error {
	b.mu.RLock()
	t := b.tuning
	b.mu.RUnlock()
	return c.JSON(t)
}
