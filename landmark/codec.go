package landmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// MsgLandmarks is the envelope type for hand frames
const MsgLandmarks = "landmarks"

var ErrMalformedFrame = errors.New("malformed landmark frame")

// Envelope wraps every message on the landmark stream
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// wireFrame is the JSON payload; each hand is 21 [x,y,z] triples
type wireFrame struct {
	TimestampMs float64        `json:"ts"`
	Hands       [][][3]float64 `json:"hands"`
}

// Encode serializes a frame into an envelope
func Encode(f *HandFrame) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrMalformedFrame)
	}
	w := wireFrame{
		TimestampMs: float64(f.Timestamp) / float64(time.Millisecond),
		Hands:       make([][][3]float64, len(f.Hands)),
	}
	for i := range f.Hands {
		pts := make([][3]float64, parameter.LandmarkCount)
		for j, p := range f.Hands[i] {
			pts[j] = [3]float64{p.X, p.Y, p.Z}
		}
		w.Hands[i] = pts
	}
	pb, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: MsgLandmarks, P: pb})
}

// Decode parses an envelope into a frame
// Wrong type, wrong point counts, too many hands and non-finite values are rejected with ErrMalformedFrame
func Decode(b []byte) (*HandFrame, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty message", ErrMalformedFrame)
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if env.T != MsgLandmarks {
		return nil, fmt.Errorf("%w: unexpected type %q", ErrMalformedFrame, env.T)
	}
	if len(env.P) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedFrame)
	}

	var w wireFrame
	if err := json.Unmarshal(env.P, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(w.Hands) > parameter.MaxHands {
		return nil, fmt.Errorf("%w: %d hands", ErrMalformedFrame, len(w.Hands))
	}
	if !vmath.Finite(w.TimestampMs) || w.TimestampMs < 0 {
		return nil, fmt.Errorf("%w: bad timestamp", ErrMalformedFrame)
	}

	f := &HandFrame{
		Hands:     make([]Hand, len(w.Hands)),
		Timestamp: time.Duration(w.TimestampMs * float64(time.Millisecond)),
	}
	for i, pts := range w.Hands {
		if len(pts) != parameter.LandmarkCount {
			return nil, fmt.Errorf("%w: hand %d has %d points", ErrMalformedFrame, i, len(pts))
		}
		for j, p := range pts {
			if !vmath.Finite(p[0]) || !vmath.Finite(p[1]) || !vmath.Finite(p[2]) {
				return nil, fmt.Errorf("%w: hand %d point %d not finite", ErrMalformedFrame, i, j)
			}
			f.Hands[i][j] = Point3D{X: p[0], Y: p[1], Z: p[2]}
		}
	}
	return f, nil
}
