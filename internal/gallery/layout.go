// Package gallery holds the presentation engine behind the public gallery: the masonry
// row-span layout, the deterministic card heights, the shared image cache ledger, the
// lightbox navigator, infinite-scroll pagination and the filter reducer.
//
// Nothing in here talks to the database or to HTTP directly. Host code feeds it the
// ordered asset list and forwards pointer, keyboard, resize and load events.
package gallery

import (
	"sync"

	"go.uber.org/zap"
)

// MasonryConfig describes the quantized grid every card is snapped to.
type MasonryConfig struct {
	// RowHeight is the base row unit in pixels. Smaller values give finer control.
	RowHeight int
	// Gap between cards below Breakpoint.
	Gap int
	// GapMd is the gap at or above Breakpoint.
	GapMd int
	// Breakpoint is the viewport width where the wider gap kicks in.
	Breakpoint int
	// WideBreakpoint is the viewport width where the grid switches to ColumnsWide.
	WideBreakpoint int
	ColumnsNarrow  int
	ColumnsWide    int
}

var DefaultMasonryConfig = MasonryConfig{
	RowHeight:      8,
	Gap:            16,
	GapMd:          24,
	Breakpoint:     768,
	WideBreakpoint: 1024,
	ColumnsNarrow:  2,
	ColumnsWide:    3,
}

// IsMobile reports whether width is below the gap breakpoint.
func (c MasonryConfig) IsMobile(width int) bool {
	return width < c.Breakpoint
}

// GapFor returns the gap in effect at the given viewport width.
func (c MasonryConfig) GapFor(width int) int {
	if c.IsMobile(width) {
		return c.Gap
	}
	return c.GapMd
}

// ColumnsFor returns the column count in effect at the given viewport width.
func (c MasonryConfig) ColumnsFor(width int) int {
	if width >= c.WideBreakpoint {
		return c.ColumnsWide
	}
	return c.ColumnsNarrow
}

// RowSpan is the number of base rows a card of desiredHeight must occupy.
func RowSpan(desiredHeight, rowUnit, gap int) int {
	if desiredHeight < 0 {
		desiredHeight = 0
	}
	step := rowUnit + gap
	if step <= 0 {
		return 0
	}
	return (desiredHeight + gap + step - 1) / step
}

// SpanHeight is the exact pixel height a row span provides, gaps included.
func SpanHeight(rowSpan, rowUnit, gap int) int {
	if rowSpan <= 0 {
		return 0
	}
	return rowSpan*rowUnit + (rowSpan-1)*gap
}

// Descriptor is the per-card outcome of one layout pass. It is never persisted.
type Descriptor struct {
	DesiredHeight int `json:"desiredHeight"`
	RowSpan       int `json:"rowSpan"`
	SnappedHeight int `json:"snappedHeight"`
}

// Snap quantizes desiredHeight onto the grid for the given gap.
func (c MasonryConfig) Snap(desiredHeight, gap int) Descriptor {
	span := RowSpan(desiredHeight, c.RowHeight, gap)
	return Descriptor{
		DesiredHeight: desiredHeight,
		RowSpan:       span,
		SnappedHeight: SpanHeight(span, c.RowHeight, gap),
	}
}

// SnapToGrid snaps with the default config, picking the gap by viewport class.
func SnapToGrid(desiredHeight int, mobile bool) Descriptor {
	gap := DefaultMasonryConfig.GapMd
	if mobile {
		gap = DefaultMasonryConfig.Gap
	}
	return DefaultMasonryConfig.Snap(desiredHeight, gap)
}

// Cell is one child of the grid container. ContentHeight mirrors the content
// height marker; nil means the child has no marker and is left alone.
type Cell struct {
	Key           int
	ContentHeight *int
}

type Placement struct {
	Key int `json:"key"`
	Descriptor
}

// Layout is the result of a layout pass.
type Layout struct {
	RowHeight  int         `json:"rowHeight"`
	Gap        int         `json:"gap"`
	Columns    int         `json:"columns"`
	Placements []Placement `json:"placements"`
	// Skipped lists keys of cells without a usable height marker.
	Skipped []int `json:"skipped,omitempty"`
}

// Engine keeps the current grid children and recomputes their row spans whenever
// a trigger fires. Recalculate is a pure function of the current cells and viewport
// width, so it is safe to call any number of times from any goroutine.
type Engine struct {
	cfg    MasonryConfig
	logger *zap.Logger

	mu     sync.Mutex
	width  int
	cells  []Cell
	ready  bool
	layout Layout
	passes int

	subs   map[int]func(Layout)
	nextID int
}

func NewEngine(cfg MasonryConfig, viewportWidth int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		logger: logger,
		width:  viewportWidth,
		subs:   make(map[int]func(Layout)),
	}
}

func (e *Engine) Config() MasonryConfig { return e.cfg }

// SetCells replaces the container children. A pass runs only when the child set
// changed; re-rendering identical children is free.
func (e *Engine) SetCells(cells []Cell) {
	e.mu.Lock()
	changed := !sameCells(e.cells, cells)
	e.cells = append(e.cells[:0:0], cells...)
	e.mu.Unlock()

	if changed {
		e.Recalculate()
	}
}

// Resize records a new viewport width and recalculates. Crossing the breakpoint
// changes the gap and therefore every row span.
func (e *Engine) Resize(viewportWidth int) {
	e.mu.Lock()
	e.width = viewportWidth
	e.mu.Unlock()
	e.Recalculate()
}

// OnImageLoad is the signal cards forward when their media finished loading.
func (e *Engine) OnImageLoad() {
	e.Recalculate()
}

// Recalculate runs a layout pass over the current cells.
func (e *Engine) Recalculate() Layout {
	e.mu.Lock()
	if len(e.cells) == 0 {
		l := e.layout
		e.mu.Unlock()
		return l
	}

	gap := e.cfg.GapFor(e.width)
	l := Layout{
		RowHeight:  e.cfg.RowHeight,
		Gap:        gap,
		Columns:    e.cfg.ColumnsFor(e.width),
		Placements: make([]Placement, 0, len(e.cells)),
	}
	for _, c := range e.cells {
		if c.ContentHeight == nil || *c.ContentHeight <= 0 {
			l.Skipped = append(l.Skipped, c.Key)
			continue
		}
		l.Placements = append(l.Placements, Placement{Key: c.Key, Descriptor: e.cfg.Snap(*c.ContentHeight, gap)})
	}
	e.layout = l
	e.passes++
	firstPass := !e.ready
	e.ready = true
	subs := make([]func(Layout), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()

	if firstPass {
		e.logger.Debug("masonry ready", zap.Int("cells", len(l.Placements)), zap.Int("gap", gap))
	}
	for _, fn := range subs {
		fn(l)
	}
	return l
}

// Ready flips true after the first layout pass over a non-empty container and
// stays true. The container uses it to fade in.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

func (e *Engine) Layout() Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout
}

func (e *Engine) Gap() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.GapFor(e.width)
}

func (e *Engine) Columns() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.ColumnsFor(e.width)
}

func (e *Engine) IsMobile() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.IsMobile(e.width)
}

// Passes reports how many layout passes ran.
func (e *Engine) Passes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.passes
}

// Observe registers fn to receive every layout pass until the subscription is closed.
func (e *Engine) Observe(fn func(Layout)) *Subscription {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.mu.Unlock()

	return newSubscription(func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	})
}

func sameCells(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
		ah, bh := a[i].ContentHeight, b[i].ContentHeight
		if (ah == nil) != (bh == nil) || (ah != nil && *ah != *bh) {
			return false
		}
	}
	return true
}
