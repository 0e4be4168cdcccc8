package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Synthetic hand geometry in normalized camera units
const (
	pointerPalm      = 0.15
	defaultSpread    = 0.35
	spreadStep       = 0.05
	minSpread        = 0.2 // stays clear of the hand merge distance
	maxSpread        = 0.6
)

// PointerSource turns a screen pointer into hand frames
// Implements landmark.Source; Detect returns the current pose on every poll
// The camera is mirrored: screen left is image right
type PointerSource struct {
	mu sync.Mutex

	width, height int // play field in cells

	// Index fingertip in normalized image coordinates
	tipX, tipY float64

	secondHand bool
	handsShown bool
	spread     float64

	start time.Time
	now   func() time.Time
}

// NewPointerSource creates a source for a play field of the given cell size
// The hand starts centered and raised
func NewPointerSource(width, height int) *PointerSource {
	return &PointerSource{
		width:      max(width, 1),
		height:     max(height, 1),
		tipX:       0.5,
		tipY:       0.5,
		handsShown: true,
		spread:     defaultSpread,
		start:      time.Now(),
		now:        time.Now,
	}
}

// Resize updates the play field size
func (p *PointerSource) Resize(width, height int) {
	p.mu.Lock()
	p.width, p.height = max(width, 1), max(height, 1)
	p.mu.Unlock()
}

// Apply updates hand state from an intent; returns true if the intent was consumed
func (p *PointerSource) Apply(in Intent) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch in.Type {
	case IntentPointer:
		p.tipX, p.tipY = p.cellToImage(float64(in.X)+0.5, float64(in.Y)+0.5)
	case IntentMove:
		p.tipX = vmath.Clamp(p.tipX-float64(in.X)/float64(p.width), 0, 1)
		p.tipY = vmath.Clamp(p.tipY+float64(in.Y)/float64(p.height), 0, 1)
	case IntentToggleSecondHand:
		p.secondHand = !p.secondHand
		p.handsShown = true
	case IntentToggleHands:
		p.handsShown = !p.handsShown
	case IntentSpreadIn:
		p.spread = vmath.Clamp(p.spread-spreadStep, minSpread, maxSpread)
	case IntentSpreadOut:
		p.spread = vmath.Clamp(p.spread+spreadStep, minSpread, maxSpread)
	default:
		return false
	}
	return true
}

// cellToImage maps a screen cell to mirrored image coordinates
func (p *PointerSource) cellToImage(cx, cy float64) (float64, float64) {
	x := 1 - cx/float64(p.width)
	y := cy / float64(p.height)
	return vmath.Clamp(x, 0, 1), vmath.Clamp(y, 0, 1)
}

// Detect implements landmark.Source
func (p *PointerSource) Detect() *landmark.HandFrame {
	p.mu.Lock()
	defer p.mu.Unlock()

	f := &landmark.HandFrame{Timestamp: p.now().Sub(p.start)}
	if !p.handsShown {
		f.Hands = []landmark.Hand{}
		return f
	}

	f.Hands = append(f.Hands, handAtTip(p.tipX, p.tipY))
	if p.secondHand {
		x2 := p.tipX + p.spread
		if x2 > 1 {
			x2 = p.tipX - p.spread
		}
		f.Hands = append(f.Hands, handAtTip(x2, p.tipY))
	}
	return f
}

// State reports the synthetic hand layout for the HUD and tests
func (p *PointerSource) State() (tipX, tipY float64, hands int, spread float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case !p.handsShown:
		hands = 0
	case p.secondHand:
		hands = 2
	default:
		hands = 1
	}
	return p.tipX, p.tipY, hands, p.spread
}

// handAtTip builds an upright hand whose index tip is at (x, y)
func handAtTip(x, y float64) landmark.Hand {
	wrist := vmath.Vec2F{X: x, Y: y + 2*pointerPalm}
	return landmark.NewHand(wrist, 0, -1, pointerPalm)
}
