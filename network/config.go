package network

import (
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
)

// Config holds bridge configuration
type Config struct {
	// Address to bind; empty disables the bridge
	Address string

	// CORSOrigins is passed to the cors middleware ("*" allows all)
	CORSOrigins string

	// Timing
	WriteTimeout  time.Duration
	PongTimeout   time.Duration
	PingInterval  time.Duration
	StateInterval time.Duration

	// Limits
	MaxMessageSize int
	SendQueueSize  int
	MaxClients     int
}

// DefaultConfig returns a bridge bound to the default port
func DefaultConfig() *Config {
	return &Config{
		Address:        parameter.DefaultBridgeAddr,
		CORSOrigins:    "*",
		WriteTimeout:   parameter.BridgeWriteWait,
		PongTimeout:    parameter.BridgePongWait,
		PingInterval:   parameter.BridgePingPeriod,
		StateInterval:  parameter.BridgeStateInterval,
		MaxMessageSize: parameter.BridgeMaxMessage,
		SendQueueSize:  parameter.BridgeSendQueue,
		MaxClients:     16,
	}
}

// withDefaults fills zero fields
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	out := *c
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.PongTimeout <= 0 {
		out.PongTimeout = d.PongTimeout
	}
	if out.PingInterval <= 0 || out.PingInterval >= out.PongTimeout {
		out.PingInterval = (out.PongTimeout * 9) / 10
	}
	if out.StateInterval < 0 {
		out.StateInterval = 0
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.SendQueueSize <= 0 {
		out.SendQueueSize = d.SendQueueSize
	}
	if out.MaxClients <= 0 {
		out.MaxClients = d.MaxClients
	}
	if out.CORSOrigins == "" {
		out.CORSOrigins = d.CORSOrigins
	}
	return &out
}
