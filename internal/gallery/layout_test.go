package gallery

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestRowSpan(t *testing.T) {
	tests := []struct {
		name    string
		desired int
		gap     int
		span    int
		snapped int
	}{
		{"exact fit desktop", 200, 24, 7, 200},
		{"rounds up mobile", 300, 16, 14, 320},
		{"zero height", 0, 16, 1, 8},
		{"negative clamps", -40, 16, 1, 8},
		{"one pixel", 1, 24, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultMasonryConfig.Snap(tt.desired, tt.gap)
			assert.Equal(t, tt.span, d.RowSpan)
			assert.Equal(t, tt.snapped, d.SnappedHeight)
		})
	}
}

func TestSnapNeverShrinks(t *testing.T) {
	for _, gap := range []int{16, 24} {
		for h := 0; h <= 2000; h++ {
			d := DefaultMasonryConfig.Snap(h, gap)
			require.GreaterOrEqual(t, d.SnappedHeight, h, "h=%d gap=%d", h, gap)
			require.Equal(t, d.RowSpan*8+(d.RowSpan-1)*gap, d.SnappedHeight)
			// One row fewer would not fit.
			if d.RowSpan > 1 {
				require.Less(t, SpanHeight(d.RowSpan-1, 8, gap), h)
			}
		}
	}
}

func TestSnapToGridPicksGapByViewport(t *testing.T) {
	assert.Equal(t, DefaultMasonryConfig.Snap(375, 16), SnapToGrid(375, true))
	assert.Equal(t, DefaultMasonryConfig.Snap(375, 24), SnapToGrid(375, false))
}

func TestMasonryConfigBreakpoints(t *testing.T) {
	cfg := DefaultMasonryConfig
	assert.Equal(t, 16, cfg.GapFor(767))
	assert.Equal(t, 24, cfg.GapFor(768))
	assert.Equal(t, 2, cfg.ColumnsFor(1023))
	assert.Equal(t, 3, cfg.ColumnsFor(1024))
	assert.True(t, cfg.IsMobile(400))
	assert.False(t, cfg.IsMobile(1280))
}

func TestEngineEmptyContainerIsNoop(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	e.Recalculate()
	e.OnImageLoad()
	e.Resize(500)

	assert.False(t, e.Ready())
	assert.Zero(t, e.Passes())
	assert.Empty(t, e.Layout().Placements)
}

func TestEngineSkipsCellsWithoutMarker(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	e.SetCells([]Cell{
		{Key: 1, ContentHeight: intPtr(200)},
		{Key: 2},
		{Key: 3, ContentHeight: intPtr(0)},
		{Key: 4, ContentHeight: intPtr(425)},
	})

	l := e.Layout()
	require.Len(t, l.Placements, 2)
	assert.Equal(t, 1, l.Placements[0].Key)
	assert.Equal(t, 7, l.Placements[0].RowSpan)
	assert.Equal(t, 4, l.Placements[1].Key)
	assert.Equal(t, []int{2, 3}, l.Skipped)
	assert.Equal(t, 24, l.Gap)
	assert.Equal(t, 3, l.Columns)
	assert.True(t, e.Ready())
}

func TestEngineResizeAcrossBreakpoint(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	e.SetCells([]Cell{{Key: 1, ContentHeight: intPtr(300)}})
	assert.Equal(t, 24, e.Layout().Gap)

	e.Resize(600)
	l := e.Layout()
	assert.Equal(t, 16, l.Gap)
	assert.Equal(t, 2, l.Columns)
	assert.Equal(t, 320, l.Placements[0].SnappedHeight)
	assert.True(t, e.IsMobile())
}

func TestEngineSetCellsUnchangedDoesNotRecalculate(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	cells := []Cell{{Key: 1, ContentHeight: intPtr(300)}, {Key: 2, ContentHeight: intPtr(250)}}
	e.SetCells(cells)
	require.Equal(t, 1, e.Passes())

	e.SetCells([]Cell{{Key: 1, ContentHeight: intPtr(300)}, {Key: 2, ContentHeight: intPtr(250)}})
	assert.Equal(t, 1, e.Passes())

	e.SetCells([]Cell{{Key: 1, ContentHeight: intPtr(300)}, {Key: 2, ContentHeight: intPtr(260)}})
	assert.Equal(t, 2, e.Passes())
}

func TestEngineRecalculateIsIdempotent(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 900, nil)
	e.SetCells([]Cell{{Key: 1, ContentHeight: intPtr(375)}, {Key: 2, ContentHeight: intPtr(425)}})
	first := e.Layout()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.OnImageLoad()
		}()
	}
	wg.Wait()
	assert.Equal(t, first, e.Layout())
}

func TestEngineObserve(t *testing.T) {
	e := NewEngine(DefaultMasonryConfig, 1280, nil)
	var got []Layout
	sub := e.Observe(func(l Layout) { got = append(got, l) })

	e.SetCells([]Cell{{Key: 1, ContentHeight: intPtr(200)}})
	require.Len(t, got, 1)

	sub.Close()
	sub.Close()
	<-sub.Done()
	e.OnImageLoad()
	assert.Len(t, got, 1)
}

func TestHeightRatio(t *testing.T) {
	assert.Equal(t, 1.0, HeightRatio(0))
	assert.InDelta(t, 1.7, HeightRatio(1), 1e-9)
	assert.InDelta(t, 1.5, HeightRatio(2), 1e-9)
	assert.Equal(t, 1.0, HeightRatio(9))
	assert.InDelta(t, 1.2, HeightRatio(-1), 1e-9)
}

func TestCardHeightDeterministicAndBounded(t *testing.T) {
	for _, mobile := range []bool{true, false} {
		base := BaseUnitDesktop
		if mobile {
			base = BaseUnitMobile
		}
		for id := -50; id <= 500; id++ {
			h := CardHeight(id, mobile)
			require.Equal(t, h, CardHeight(id, mobile))
			require.GreaterOrEqual(t, h, base)
			require.LessOrEqual(t, float64(h), 1.8*float64(base))
		}
	}
	assert.Equal(t, 425, CardHeight(1, false))
	assert.Equal(t, 255, CardHeight(1, true))
}
