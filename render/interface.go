package render

// SystemRenderer draws one layer; layers run in RenderPriority order on a shared buffer
type SystemRenderer interface {
	Render(ctx RenderContext, buf *RenderBuffer)
}

// VisibilityToggle lets a layer be switched off without unregistering it
type VisibilityToggle interface {
	IsVisible() bool
}
