package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/vmath"
)

const replayPalm = 0.15

// loadScript reads one landmark envelope per line; blank lines and # comments are skipped
// Every line is decoded up front so a bad file fails before anything is sent
func loadScript(r io.Reader) ([][]byte, error) {
	var out [][]byte
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 || b[0] == '#' {
			continue
		}
		if _, err := landmark.Decode(b); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, append([]byte(nil), b...))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// synthScript builds a demo session: a circling single hand, then two hands
// drawn together and apart
func synthScript(rate int, sweep, array time.Duration) ([][]byte, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("rate must be positive, got %d", rate)
	}
	step := time.Second / time.Duration(rate)
	var out [][]byte
	emit := func(ts time.Duration, hands ...landmark.Hand) error {
		b, err := landmark.Encode(&landmark.HandFrame{Hands: hands, Timestamp: ts})
		if err != nil {
			return err
		}
		out = append(out, b)
		return nil
	}

	var ts time.Duration
	for ; ts < sweep; ts += step {
		a := 2 * math.Pi * ts.Seconds()
		if err := emit(ts, tipHand(0.5+0.25*math.Cos(a), 0.45+0.2*math.Sin(a))); err != nil {
			return nil, err
		}
	}
	end := ts + array
	for ; ts < end; ts += step {
		// Spread oscillates between 0.25 and 0.55 of the frame width
		p := (ts - sweep).Seconds() / array.Seconds()
		spread := 0.4 - 0.15*math.Cos(2*math.Pi*p)
		if err := emit(ts, tipHand(0.5-spread/2, 0.5), tipHand(0.5+spread/2, 0.5)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// tipHand is an upright hand with its index tip at (x, y)
func tipHand(x, y float64) landmark.Hand {
	x, y = vmath.Clamp(x, 0, 1), vmath.Clamp(y, 0, 1)
	return landmark.NewHand(vmath.Vec2F{X: x, Y: y + 2*replayPalm}, 0, -1, replayPalm)
}
