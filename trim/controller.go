package trim

import (
	"math"

	"github.com/cwbudde/algo-trim/analyze"
	"github.com/cwbudde/algo-trim/audio"
	"github.com/cwbudde/algo-trim/timebase"
)

// DragState tracks which boundary a pointer gesture is currently moving.
type DragState int

const (
	DragIdle DragState = iota
	DraggingStart
	DraggingEnd
)

// String returns a readable drag state name.
func (d DragState) String() string {
	switch d {
	case DragIdle:
		return "idle"
	case DraggingStart:
		return "dragging-start"
	case DraggingEnd:
		return "dragging-end"
	default:
		return "unknown"
	}
}

// Renderer receives a fresh analysis result plus the two boundary markers,
// expressed in the current display unit, after every selection change.
type Renderer interface {
	Render(res analyze.Result, startDisplay, endDisplay float64)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(res analyze.Result, startDisplay, endDisplay float64)

// Render calls f.
func (f RendererFunc) Render(res analyze.Result, startDisplay, endDisplay float64) {
	f(res, startDisplay, endDisplay)
}

// Controller orchestrates selection updates. It owns the selection, the
// drag state, and the re-entrancy guard; all input events are normalized
// into one update path that re-analyzes the slice and pushes the result to
// the renderer.
//
// The engine is single-threaded by contract: every method must be called
// from the same goroutine that dispatches UI events.
type Controller struct {
	buf      *audio.Buffer
	sel      Selection
	drag     DragState
	analyzer *analyze.Analyzer
	renderer Renderer

	// updating suppresses slider change events that the renderer itself
	// triggers while reflecting a new selection back into the widgets.
	updating bool
}

// NewController creates a controller pushing to the given renderer.
// Analyzer options configure channel handling and windowing.
func NewController(r Renderer, opts ...analyze.Option) *Controller {
	return &Controller{
		analyzer: analyze.New(opts...),
		renderer: r,
	}
}

// Load decodes a file and installs it as the current buffer. The selection
// resets to the full range and the drag state to idle; on failure the prior
// buffer and selection stay untouched.
func (c *Controller) Load(path string) error {
	buf, err := audio.Load(path)
	if err != nil {
		return err
	}

	c.SetBuffer(buf)

	return nil
}

// SetBuffer atomically replaces the buffer and resets the selection to
// [0, DurationMs]. A nil buffer unloads.
func (c *Controller) SetBuffer(buf *audio.Buffer) {
	c.buf = buf
	c.drag = DragIdle

	if buf == nil {
		c.sel.Reset(0)
		return
	}

	c.sel.Reset(buf.DurationMs())
	c.refresh()
}

// Buffer returns the currently loaded buffer, or nil.
func (c *Controller) Buffer() *audio.Buffer { return c.buf }

// Selection returns a copy of the current selection.
func (c *Controller) Selection() Selection { return c.sel }

// Drag returns the current drag state.
func (c *Controller) Drag() DragState { return c.drag }

// SetUnit switches the display unit and re-renders with the boundary
// values re-expressed in the new unit. Canonical values do not move.
func (c *Controller) SetUnit(u timebase.Unit) {
	c.sel.SetUnit(u)

	if c.buf != nil {
		c.refresh()
	}
}

// StartSliderChanged handles a start-slider change in display units.
// Programmatic updates issued during a render are ignored.
func (c *Controller) StartSliderChanged(value float64) {
	c.sliderChanged(value, (*Selection).SetStart)
}

// EndSliderChanged handles an end-slider change in display units.
func (c *Controller) EndSliderChanged(value float64) {
	c.sliderChanged(value, (*Selection).SetEnd)
}

func (c *Controller) sliderChanged(value float64, set func(*Selection, int)) {
	if c.updating || c.buf == nil {
		return
	}

	set(&c.sel, timebase.ToMs(value, c.sel.Unit()))
	c.refresh()
}

// PointerPress starts a drag at position x in the display's time
// coordinate. The boundary nearer to x is grabbed and immediately moved
// there. hasCoord is false for presses outside the plotted axes, which are
// ignored.
func (c *Controller) PointerPress(x float64, hasCoord bool) {
	if c.buf == nil || !hasCoord {
		return
	}

	ms := timebase.ToMs(x, c.sel.Unit())

	if math.Abs(x-c.sel.StartDisplay()) < math.Abs(x-c.sel.EndDisplay()) {
		c.drag = DraggingStart
		c.sel.SetStart(ms)
	} else {
		c.drag = DraggingEnd
		c.sel.SetEnd(ms)
	}

	c.refresh()
}

// PointerMove drags the grabbed boundary to x. Without an active drag or a
// valid coordinate it is a no-op.
func (c *Controller) PointerMove(x float64, hasCoord bool) {
	if c.buf == nil || !hasCoord || c.drag == DragIdle {
		return
	}

	ms := timebase.ToMs(x, c.sel.Unit())

	switch c.drag {
	case DraggingStart:
		c.sel.SetStart(ms)
	case DraggingEnd:
		c.sel.SetEnd(ms)
	}

	c.refresh()
}

// PointerRelease ends the drag gesture without moving a boundary.
func (c *Controller) PointerRelease() {
	c.drag = DragIdle
}

// Export writes the selected range to outPath in the format implied by its
// extension. See Export in export.go for the validation rules.
func (c *Controller) Export(outPath string) error {
	return Export(c.buf, &c.sel, outPath)
}

// refresh re-derives the analysis for the current range, possibly inverted,
// and pushes it to the renderer. The updating flag keeps slider callbacks
// fired by the renderer from re-entering the update path.
func (c *Controller) refresh() {
	if c.renderer == nil {
		return
	}

	c.updating = true
	defer func() { c.updating = false }()

	slice := c.buf.Slice(c.sel.StartMs(), c.sel.EndMs())
	res := c.analyzer.Analyze(slice, c.buf.SampleRate(), c.sel.StartDisplay(), c.sel.EndDisplay())

	c.renderer.Render(res, c.sel.StartDisplay(), c.sel.EndDisplay())
}
