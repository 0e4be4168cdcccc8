package network

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// SessionKind separates landmark producers from state consumers
type SessionKind uint8

const (
	SessionLandmarks SessionKind = iota
	SessionState
)

func (k SessionKind) String() string {
	switch k {
	case SessionLandmarks:
		return "landmarks"
	case SessionState:
		return "state"
	default:
		return "unknown"
	}
}

// SessionInfo is the JSON view of a session for /api/status
type SessionInfo struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Remote    string    `json:"remote"`
	Connected time.Time `json:"connected"`
	Received  uint64    `json:"received"`
	Sent      uint64    `json:"sent"`
	Dropped   uint64    `json:"dropped"`
}

// Session is one websocket connection
// Only writePump writes to conn
type Session struct {
	ID        uuid.UUID
	Kind      SessionKind
	Remote    string
	Connected time.Time

	conn *websocket.Conn
	cfg  *Config
	send chan []byte

	done     chan struct{}
	doneOnce sync.Once

	received atomic.Uint64
	sent     atomic.Uint64
	dropped  atomic.Uint64
}

func newSession(kind SessionKind, conn *websocket.Conn, cfg *Config) *Session {
	s := &Session{
		ID:        uuid.New(),
		Kind:      kind,
		Connected: time.Now(),
		conn:      conn,
		cfg:       cfg,
		send:      make(chan []byte, cfg.SendQueueSize),
		done:      make(chan struct{}),
	}
	if conn != nil {
		if addr := conn.RemoteAddr(); addr != nil {
			s.Remote = addr.String()
		}
	}
	return s
}

// Enqueue offers a message without blocking; a full queue drops it
func (s *Session) Enqueue(msg []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- msg:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Close ends the session; safe to call more than once
func (s *Session) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// Done is closed when the session ends
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ID:        s.ID.String(),
		Kind:      s.Kind.String(),
		Remote:    s.Remote,
		Connected: s.Connected,
		Received:  s.received.Load(),
		Sent:      s.sent.Load(),
		Dropped:   s.dropped.Load(),
	}
}

// readPump calls onMessage for every inbound message until the peer goes away
func (s *Session) readPump(onMessage func(data []byte)) {
	defer s.Close()

	s.conn.SetReadLimit(int64(s.cfg.MaxMessageSize))
	_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
		s.received.Add(1)
		if onMessage != nil {
			onMessage(data)
		}
	}
}

// writePump drains the send queue and keeps the connection alive with pings
func (s *Session) writePump() {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case <-s.done:
			return

		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
			s.sent.Add(1)

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
