package gallery

import (
	"math"
	"sync"
	"time"
)

const (
	labelDuration = 400 * time.Millisecond
	labelSteps    = 20
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Card is a single grid cell. Its hover state is private to it; content inside the
// card reaches hover and the load signal only through the handle it is given.
type Card struct {
	engine  *Engine
	clock   Clock
	height  int
	onClick func()

	mu         sync.Mutex
	hovered    bool
	hoverSince time.Time
	bounds     [2]float64
	dims       Dimensions
}

// NewCard creates a card whose load signal feeds this engine.
func (e *Engine) NewCard(height int, onClick func()) *Card {
	return &Card{engine: e, clock: SystemClock, height: height, onClick: onClick}
}

// WithClock swaps the clock driving the dimension label.
func (c *Card) WithClock(clock Clock) *Card {
	c.clock = clock
	return c
}

func (c *Card) Height() int { return c.height }

// IsButton reports whether the card has click semantics.
func (c *Card) IsButton() bool { return c.onClick != nil }

// SetBounds records the card's rendered bounding box.
func (c *Card) SetBounds(width, height float64) {
	c.mu.Lock()
	c.bounds = [2]float64{width, height}
	if c.hovered {
		c.dims = roundDims(c.bounds)
	}
	c.mu.Unlock()
}

func (c *Card) PointerEnter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hovered {
		return
	}
	c.hovered = true
	c.hoverSince = c.clock.Now()
	c.dims = roundDims(c.bounds)
}

func (c *Card) PointerLeave() {
	c.mu.Lock()
	c.hovered = false
	c.mu.Unlock()
}

func (c *Card) IsHovered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

// Click invokes the caller's handler, if any.
func (c *Card) Click() {
	if c.onClick != nil {
		c.onClick()
	}
}

// KeyDown activates the card on Enter or Space when it has button semantics.
// It reports whether the key was consumed.
func (c *Card) KeyDown(key string) bool {
	if c.onClick == nil {
		return false
	}
	if key == "Enter" || key == " " {
		c.onClick()
		return true
	}
	return false
}

// DimensionLabel returns the animated width and height shown in the hover overlay.
// Both count up from zero over 400ms while hovered and read zero otherwise.
func (c *Card) DimensionLabel() Dimensions {
	c.mu.Lock()
	hovered, since, dims := c.hovered, c.hoverSince, c.dims
	c.mu.Unlock()

	if !hovered {
		return Dimensions{}
	}
	elapsed := c.clock.Now().Sub(since)
	return Dimensions{
		Width:  AnimatedValue(dims.Width, elapsed, true),
		Height: AnimatedValue(dims.Height, elapsed, true),
	}
}

// Handle is what the card hands to its content.
func (c *Card) Handle() CardHandle {
	return CardHandle{card: c}
}

// CardHandle exposes the hover state of one card and the shared load signal.
type CardHandle struct {
	card *Card
}

func (h CardHandle) IsHovered() bool {
	if h.card == nil {
		return false
	}
	return h.card.IsHovered()
}

// OnImageLoad tells the owning layout engine that content size may have changed.
func (h CardHandle) OnImageLoad() {
	if h.card == nil || h.card.engine == nil {
		return
	}
	h.card.engine.OnImageLoad()
}

// AnimatedValue is the count-up value after elapsed time: 20 equal increments,
// one every 20ms, clamped to value on the step that reaches it.
func AnimatedValue(value int, elapsed time.Duration, visible bool) int {
	if !visible || elapsed <= 0 {
		return 0
	}
	ticks := int(elapsed / (labelDuration / labelSteps))
	if ticks <= 0 {
		return 0
	}
	current := float64(ticks) * float64(value) / labelSteps
	if ticks >= labelSteps || current >= float64(value) {
		return value
	}
	return int(math.Round(current))
}

func roundDims(b [2]float64) Dimensions {
	return Dimensions{Width: int(math.Round(b[0])), Height: int(math.Round(b[1]))}
}
