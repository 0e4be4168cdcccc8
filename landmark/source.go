package landmark

import (
	"sync"
	"sync/atomic"
	"time"
)

// Source produces hand frames; Detect must not block
// nil means no result yet, which callers treat as a no-op tick
type Source interface {
	Detect() *HandFrame
}

// NullSource never produces a frame
type NullSource struct{}

func (NullSource) Detect() *HandFrame { return nil }

// Mailbox holds only the newest published frame
// Publish may be called from any goroutine; Detect takes the frame, so each frame is seen once
type Mailbox struct {
	latest    atomic.Pointer[HandFrame]
	published atomic.Uint64
	dropped   atomic.Uint64
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Publish replaces any unread frame
func (m *Mailbox) Publish(f *HandFrame) {
	if f == nil {
		return
	}
	m.published.Add(1)
	if prev := m.latest.Swap(f); prev != nil {
		m.dropped.Add(1)
	}
}

func (m *Mailbox) Detect() *HandFrame {
	return m.latest.Swap(nil)
}

// Stats returns published and overwritten-before-read counts
func (m *Mailbox) Stats() (published, dropped uint64) {
	return m.published.Load(), m.dropped.Load()
}

// ScriptedSource replays a fixed frame list, one per Detect call
// nil entries simulate detector not-ready ticks
type ScriptedSource struct {
	mu     sync.Mutex
	frames []*HandFrame
	pos    int
	loop   bool
}

func NewScriptedSource(frames []*HandFrame, loop bool) *ScriptedSource {
	return &ScriptedSource{frames: frames, loop: loop}
}

func (s *ScriptedSource) Detect() *HandFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.frames) {
		if !s.loop || len(s.frames) == 0 {
			return nil
		}
		s.pos = 0
	}
	f := s.frames[s.pos]
	s.pos++
	return f
}

// Remaining reports frames left before exhaustion; always len(frames) when looping
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loop {
		return len(s.frames)
	}
	return len(s.frames) - s.pos
}

// Fallback prefers primary and yields to fallback once primary has been quiet for hold
// While primary is active, its quiet polls return nil rather than a fallback frame
type Fallback struct {
	primary  Source
	fallback Source
	hold     time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewFallback(primary, fallback Source, hold time.Duration) *Fallback {
	return &Fallback{primary: primary, fallback: fallback, hold: hold, now: time.Now}
}

func (s *Fallback) Detect() *HandFrame {
	now := s.now()
	if f := s.primary.Detect(); f != nil {
		s.mu.Lock()
		s.last = now
		s.mu.Unlock()
		return f
	}
	if s.Active() {
		return nil
	}
	return s.fallback.Detect()
}

// Active reports whether primary produced a frame within hold
func (s *Fallback) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.last.IsZero() && s.now().Sub(s.last) < s.hold
}
