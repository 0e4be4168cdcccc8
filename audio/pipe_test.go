package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/gopxl/beep"
)

func TestFloatToBytes(t *testing.T) {
	in := [][2]float64{{0, 0}, {0.5, -0.5}, {2, -2}}
	out := make([]byte, len(in)*4)
	floatToBytes(in, out)

	read := func(i int) int16 { return int16(binary.LittleEndian.Uint16(out[i*2:])) }

	if read(0) != 0 || read(1) != 0 {
		t.Errorf("Expected silence, got %d %d", read(0), read(1))
	}
	if read(2) != 16383 || read(3) != -16383 {
		t.Errorf("Expected +/-16383, got %d %d", read(2), read(3))
	}
	// Soft limiter keeps overdriven input below full scale
	if read(4) <= 16383 || read(4) > 32767 || read(5) >= -16383 {
		t.Errorf("Expected limited peaks, got %d %d", read(4), read(5))
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestPipePumpPadsSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	var out bytes.Buffer
	src := NewOscillator(0, 0, WaveSquare, rate) // drained immediately
	p := newPipeOutput(src, &sync.Mutex{}, &out, rate)

	buf := make([][2]float64, p.frames)
	raw := make([]byte, p.frames*4)
	if err := p.pump(buf, raw); err != nil {
		t.Fatalf("pump failed: %v", err)
	}
	if out.Len() != p.frames*4 {
		t.Errorf("Expected %d bytes, got %d", p.frames*4, out.Len())
	}
	for i, b := range out.Bytes() {
		if b != 0 {
			t.Fatalf("Expected silence padding, byte %d = %d", i, b)
		}
	}
	if p.written.Load() != uint64(p.frames) {
		t.Errorf("Expected %d frames written, got %d", p.frames, p.written.Load())
	}

	bad := newPipeOutput(src, &sync.Mutex{}, failWriter{}, rate)
	if err := bad.pump(buf, raw); !errors.Is(err, ErrPipeClosed) {
		t.Errorf("Expected ErrPipeClosed, got %v", err)
	}
}

func TestDetectBackendPriority(t *testing.T) {
	have := map[string]bool{"aplay": true, "ffplay": true}
	look := func(name string) (string, error) {
		if have[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	b, err := detectBackend(48000, look)
	if err != nil {
		t.Fatalf("Expected backend, got %v", err)
	}
	if b.Type != BackendALSA || b.Path != "/usr/bin/aplay" {
		t.Errorf("Expected aplay, got %s at %s", b.Name, b.Path)
	}
	found := false
	for _, a := range b.Args {
		if a == "48000" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected sample rate in args, got %v", b.Args)
	}

	if _, err := detectBackend(44100, func(string) (string, error) { return "", errors.New("none") }); err != nil && !errors.Is(err, ErrNoAudioBackend) {
		t.Errorf("Expected ErrNoAudioBackend, got %v", err)
	}
}
