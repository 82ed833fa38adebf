package render

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	screen   Screen
	buffer   *Buffer
	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator sized to the screen
func NewOrchestrator(screen Screen) *Orchestrator {
	w, h := screen.Size()
	return &Orchestrator{
		screen: screen,
		buffer: NewBuffer(w, h),
		layers: make([]layerEntry, 0, 8),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority Priority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Resize picks up the current screen size and syncs the terminal
func (o *Orchestrator) Resize() {
	w, h := o.screen.Size()
	o.buffer.Resize(w, h)
	o.screen.Sync()
}

// Size returns the buffer dimensions used for the next frame
func (o *Orchestrator) Size() (int, int) {
	return o.buffer.Bounds()
}

// RenderFrame executes the render pipeline: clear, render all, flush
func (o *Orchestrator) RenderFrame(ctx Context) {
	o.buffer.Clear()

	for _, entry := range o.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(ctx, o.buffer)
	}

	o.buffer.Flush(o.screen)
}
