package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/sword-rain/core"
	"github.com/lixenwraith/sword-rain/parameter"
)

// pipeOutput pulls PCM from a beep streamer on a fixed cadence and writes s16le to a CLI player
type pipeOutput struct {
	source beep.Streamer
	lock   sync.Locker // guards source against concurrent mixer edits
	out    io.Writer
	period time.Duration
	frames int

	cmd    *exec.Cmd
	closer io.Closer

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	failed   atomic.Bool
	written  atomic.Uint64
}

func newPipeOutput(source beep.Streamer, lock sync.Locker, out io.Writer, rate beep.SampleRate) *pipeOutput {
	return &pipeOutput{
		source:   source,
		lock:     lock,
		out:      out,
		period:   parameter.AudioBufferDuration,
		frames:   rate.N(parameter.AudioBufferDuration),
		stopChan: make(chan struct{}),
	}
}

// startPipeBackend launches the detected backend and returns an output streaming into it
func startPipeBackend(backend *BackendConfig, source beep.Streamer, lock sync.Locker, rate beep.SampleRate) (*pipeOutput, error) {
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", backend.Path, err)
		}
		p := newPipeOutput(source, lock, f, rate)
		p.closer = f
		return p, nil
	}

	cmd := exec.Command(backend.Path, backend.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%s stdin: %w", backend.Name, err)
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("start %s: %w", backend.Name, err)
	}

	p := newPipeOutput(source, lock, stdin, rate)
	p.cmd = cmd
	p.closer = stdin
	return p, nil
}

func (p *pipeOutput) start() {
	p.wg.Add(1)
	core.Go(func() {
		defer p.wg.Done()
		p.loop()
	})
}

func (p *pipeOutput) loop() {
	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	buf := make([][2]float64, p.frames)
	outBytes := make([]byte, p.frames*parameter.AudioBytesPerFrame)

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			if err := p.pump(buf, outBytes); err != nil {
				p.failed.Store(true)
				return
			}
		}
	}
}

// pump renders one buffer; silence pads whatever the source did not fill
func (p *pipeOutput) pump(buf [][2]float64, outBytes []byte) error {
	p.lock.Lock()
	n, _ := p.source.Stream(buf)
	p.lock.Unlock()
	for i := n; i < len(buf); i++ {
		buf[i] = [2]float64{}
	}

	floatToBytes(buf, outBytes)
	if _, err := p.out.Write(outBytes); err != nil {
		return fmt.Errorf("%w: %v", ErrPipeClosed, err)
	}
	p.written.Add(uint64(len(buf)))
	return nil
}

func (p *pipeOutput) stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
		p.wg.Wait()
		if p.closer != nil {
			p.closer.Close()
		}
		if p.cmd != nil && p.cmd.Process != nil {
			p.cmd.Process.Kill()
			_ = p.cmd.Wait()
		}
	})
}

// floatToBytes converts stereo float frames to interleaved int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in [][2]float64, out []byte) {
	for i, frame := range in {
		for ch, v := range frame {
			if v > 0.8 {
				v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
			}
			v = min(1, max(-1, v))

			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(v*32767)))
		}
	}
}
