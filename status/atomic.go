package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// AtomicFloat is a float64 stored as its IEEE bits; the zero value reads 0
type AtomicFloat struct {
	v atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) { f.v.Store(math.Float64bits(val)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.v.Load()) }

// Add applies delta with a CAS loop and returns the result
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.v.Load()
		next := math.Float64frombits(old) + delta
		if f.v.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// MaxStringLen bounds AtomicString values in bytes; mode and phase names fit
const MaxStringLen = 24

// AtomicString holds a short label; the zero value reads ""
type AtomicString struct {
	p atomic.Pointer[string]
}

// Store truncates to MaxStringLen bytes without splitting a rune
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.p.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return ""
}
