package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnimatedValue(t *testing.T) {
	assert.Equal(t, 0, AnimatedValue(300, 10*time.Millisecond, true))
	assert.Equal(t, 75, AnimatedValue(300, 100*time.Millisecond, true))
	assert.Equal(t, 300, AnimatedValue(300, 400*time.Millisecond, true))
	assert.Equal(t, 300, AnimatedValue(300, time.Second, true))
	assert.Equal(t, 1, AnimatedValue(7, 60*time.Millisecond, true))
	assert.Equal(t, 0, AnimatedValue(300, time.Second, false))
}

func TestCardHoverAndDimensionLabel(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	c := e.NewCard(375, nil).WithClock(clock)
	c.SetBounds(412.6, 375.2)

	assert.Equal(t, Dimensions{}, c.DimensionLabel())

	c.PointerEnter()
	assert.True(t, c.Handle().IsHovered())
	assert.Equal(t, Dimensions{}, c.DimensionLabel())

	clock.Advance(200 * time.Millisecond)
	d := c.DimensionLabel()
	assert.Greater(t, d.Width, 0)
	assert.Less(t, d.Width, 413)

	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, Dimensions{Width: 413, Height: 375}, c.DimensionLabel())

	c.PointerLeave()
	assert.False(t, c.IsHovered())
	assert.Equal(t, Dimensions{}, c.DimensionLabel())
}

func TestCardKeyboardActivation(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	clicks := 0
	c := e.NewCard(250, func() { clicks++ })

	assert.True(t, c.IsButton())
	assert.True(t, c.KeyDown("Enter"))
	assert.True(t, c.KeyDown(" "))
	assert.False(t, c.KeyDown("a"))
	c.Click()
	assert.Equal(t, 3, clicks)

	plain := e.NewCard(250, nil)
	assert.False(t, plain.IsButton())
	assert.False(t, plain.KeyDown("Enter"))
	plain.Click()
}

func TestCardHandleForwardsImageLoad(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	e.SetCells([]Cell{{Key: 1, ContentHeight: intPtr(250)}})
	before := e.Passes()

	c := e.NewCard(250, nil)
	c.Handle().OnImageLoad()
	assert.Equal(t, before+1, e.Passes())

	var zero CardHandle
	zero.OnImageLoad()
	assert.False(t, zero.IsHovered())
}

func TestCardHoverIsLocalToEachCard(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	e.SetCells([]Cell{{Key: 1, ContentHeight: intPtr(250)}, {Key: 2, ContentHeight: intPtr(300)}})

	a := e.NewCard(250, nil).WithClock(clock)
	b := e.NewCard(300, nil).WithClock(clock)
	a.SetBounds(400, 250)
	b.SetBounds(400, 300)

	a.PointerEnter()
	clock.Advance(400 * time.Millisecond)
	assert.True(t, a.Handle().IsHovered())
	assert.False(t, b.Handle().IsHovered())
	assert.NotEqual(t, Dimensions{}, a.DimensionLabel())
	assert.Equal(t, Dimensions{}, b.DimensionLabel())

	b.PointerEnter()
	a.PointerLeave()
	assert.False(t, a.Handle().IsHovered())
	assert.True(t, b.Handle().IsHovered())

	before := e.Passes()
	a.Handle().OnImageLoad()
	assert.Equal(t, before+1, e.Passes())
	b.Handle().OnImageLoad()
	assert.Equal(t, before+2, e.Passes())
}
