package parameter

import "time"

// Landmark bridge
const (
	DefaultBridgeAddr = ":7777"

	BridgeWriteWait = 5 * time.Second
	// BridgePongWait drops a client that misses pongs for this long
	BridgePongWait   = 60 * time.Second
	BridgePingPeriod = (BridgePongWait * 9) / 10

	// BridgeMaxMessage bounds one landmark message (two hands of 21 points fit in ~2KB)
	BridgeMaxMessage = 64 * 1024

	// BridgeSendQueue is the per-client outbound buffer; full queues drop frames
	BridgeSendQueue = 32

	// BridgeStateInterval rate-limits snapshot broadcast (~30 Hz)
	BridgeStateInterval = 33 * time.Millisecond

	BridgeShutdownTimeout = 2 * time.Second
)

// RemoteHandHold keeps bridge landmarks in charge of the terminal demo after the last frame
const RemoteHandHold = 500 * time.Millisecond
