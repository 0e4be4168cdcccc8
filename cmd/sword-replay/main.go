// Command sword-replay streams recorded or synthetic landmark frames to a running bridge
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/sword-rain/internal/log"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/network"
)

var (
	addr     = flag.String("addr", "localhost:7777", "bridge host:port")
	file     = flag.String("file", "", "JSON-lines landmark script; empty plays the built-in demo")
	rate     = flag.Int("rate", 30, "frames per second")
	loop     = flag.Bool("loop", false, "repeat the script until interrupted")
	watch    = flag.Bool("watch", false, "log game events from /ws/state")
	logLevel = flag.String("log", "info", "log level")
)

func main() {
	flag.Parse()
	log.Init(*logLevel)

	frames, err := script()
	if err != nil {
		fmt.Fprintf(os.Stderr, "script: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := replay(ctx, frames); err != nil {
		log.Error("replay failed", "error", err)
		os.Exit(1)
	}
}

func script() ([][]byte, error) {
	if *file == "" {
		return synthScript(*rate, 6*time.Second, 4*time.Second)
	}
	f, err := os.Open(*file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadScript(f)
}

func dial(path string) (*websocket.Conn, error) {
	u := url.URL{Scheme: "ws", Host: *addr, Path: path}
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	return ws, nil
}

func replay(ctx context.Context, frames [][]byte) error {
	if len(frames) == 0 {
		return fmt.Errorf("empty script")
	}
	ws, err := dial("/ws/landmarks")
	if err != nil {
		return err
	}
	defer ws.Close()

	if *watch {
		state, err := dial("/ws/state")
		if err != nil {
			return err
		}
		defer state.Close()
		go watchEvents(state)
	}

	ticker := time.NewTicker(time.Second / time.Duration(max(*rate, 1)))
	defer ticker.Stop()

	sent := 0
	for i := 0; ; i++ {
		if i == len(frames) {
			if !*loop {
				break
			}
			i = 0
		}
		select {
		case <-ctx.Done():
			log.Info("interrupted", "sent", sent)
			return closeGracefully(ws)
		case <-ticker.C:
		}
		_ = ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := ws.WriteMessage(websocket.TextMessage, frames[i]); err != nil {
			return fmt.Errorf("send frame %d: %w", i, err)
		}
		sent++
	}
	log.Info("replay complete", "sent", sent)
	return closeGracefully(ws)
}

func closeGracefully(ws *websocket.Conn) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// watchEvents logs event envelopes until the connection drops; state frames are ignored
func watchEvents(ws *websocket.Conn) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var env landmark.Envelope
		if json.Unmarshal(data, &env) != nil || env.T != network.MsgEvent {
			continue
		}
		var ev network.EventMessage
		if json.Unmarshal(env.P, &ev) == nil {
			log.Info("event", "type", ev.Type, "time_ms", ev.TimeMs, "payload", ev.Payload)
		}
	}
}
