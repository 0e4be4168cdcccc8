package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
// RenderFrame and Resize may be called from different goroutines
type RenderOrchestrator struct {
	mu        sync.Mutex
	screen    tcell.Screen
	buffer    *RenderBuffer
	renderers []rendererEntry
	regCount  int
	frames    uint64
}

// NewRenderOrchestrator creates an orchestrator sized to the screen
func NewRenderOrchestrator(screen tcell.Screen) *RenderOrchestrator {
	w, h := screen.Size()
	return &RenderOrchestrator{
		screen:    screen,
		buffer:    NewRenderBuffer(w, h),
		renderers: make([]rendererEntry, 0, 8),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry := rendererEntry{renderer: r, priority: priority, index: o.regCount}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}
	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Resize matches the buffer to the current screen size
func (o *RenderOrchestrator) Resize() {
	o.mu.Lock()
	defer o.mu.Unlock()
	w, h := o.screen.Size()
	o.buffer.Resize(w, h)
	o.screen.Sync()
}

// RenderFrame executes the render pipeline: clear, render all, flush, show
// ctx dimensions are taken from the buffer
func (o *RenderOrchestrator) RenderFrame(ctx RenderContext) {
	o.mu.Lock()
	defer o.mu.Unlock()

	base := NewRenderContext(ctx.Snap, o.buffer.Width(), o.buffer.Height())
	ctx.ScreenWidth, ctx.ScreenHeight, ctx.FieldHeight = base.ScreenWidth, base.ScreenHeight, base.FieldHeight
	if ctx.Time == 0 {
		ctx.Time = base.Time
	}

	o.buffer.Clear()
	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, o.buffer)
	}
	o.buffer.FlushToScreen(o.screen)
	o.screen.Show()
	o.frames++
}

// Frames returns the number of frames rendered
func (o *RenderOrchestrator) Frames() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.frames
}

// Buffer exposes the compositor for tests
func (o *RenderOrchestrator) Buffer() *RenderBuffer { return o.buffer }
