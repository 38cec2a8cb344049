package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notchFloor returns the smallest positive height above y0 in the outline,
// which for a single bottom notch is the notch depth
func notchFloor(pg Polygon, y0 float64) float64 {
	floor := math.Inf(1)
	for _, p := range pg {
		if d := p.Y - y0; d > Epsilon && d < floor {
			floor = d
		}
	}
	return floor
}

func TestNotchedOutlineDepthFractions(t *testing.T) {
	board, err := NewRect(0, 0, 100, 50)
	require.NoError(t, err)

	for _, f := range []float64{0.1, 0.2, 0.5} {
		n := CenteredNotch(board, EdgeBottom, 20, f)
		outline, err := NotchedOutline(board, []Notch{n})
		require.NoError(t, err, "fraction %g", f)

		assert.Len(t, outline, 8)
		assert.False(t, outline.SelfIntersects(), "fraction %g", f)
		assert.True(t, outline.CounterClockwise(), "fraction %g", f)
		assert.InDelta(t, f*50, notchFloor(outline, 0), 1e-9, "fraction %g", f)
		assert.InDelta(t, f*50, n.Depth(board), 1e-12)
		// removed material is exactly the notch rectangle
		assert.InDelta(t, 100*50-20*f*50, outline.Area(), 1e-9)
	}
}

func TestNotchedOutlineVertices(t *testing.T) {
	board, err := NewRect(0, 0, 100, 50)
	require.NoError(t, err)

	outline, err := NotchedOutline(board, []Notch{CenteredNotch(board, EdgeBottom, 20, 0.2)})
	require.NoError(t, err)

	want := Polygon{{0, 0}, {40, 0}, {40, 10}, {60, 10}, {60, 0}, {100, 0}, {100, 50}, {0, 50}}
	if diff := cmp.Diff(want, outline, approx); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestNotchedOutlineEveryEdge(t *testing.T) {
	board, err := NewRect(10, 20, 120, 60)
	require.NoError(t, err)

	notches := []Notch{
		CenteredNotch(board, EdgeBottom, 20, 0.25),
		CenteredNotch(board, EdgeRight, 10, 0.1),
		{Edge: EdgeTop, Offset: 10, Width: 15, DepthFraction: 0.3},
		{Edge: EdgeTop, Offset: 80, Width: 15, DepthFraction: 0.3},
		CenteredNotch(board, EdgeLeft, 20, 0.2),
	}
	outline, err := NotchedOutline(board, notches)
	require.NoError(t, err)

	assert.Len(t, outline, 4+4*len(notches))
	assert.False(t, outline.SelfIntersects())
	assert.True(t, outline.CounterClockwise())

	removed := 0.0
	for _, n := range notches {
		r := n.Rect(board)
		removed += r.Width * r.Height
	}
	assert.InDelta(t, 120*60-removed, outline.Area(), 1e-9)

	lo, hi := outline.Bounds()
	assert.Equal(t, Point{10, 20}, lo)
	assert.Equal(t, Point{130, 80}, hi)
}

func TestNotchedOutlineRejectsBadNotches(t *testing.T) {
	board, err := NewRect(0, 0, 100, 50)
	require.NoError(t, err)

	bad := map[string][]Notch{
		"zero fraction":   {{Edge: EdgeBottom, Offset: 10, Width: 10, DepthFraction: 0}},
		"full fraction":   {{Edge: EdgeBottom, Offset: 10, Width: 10, DepthFraction: 1}},
		"zero width":      {{Edge: EdgeBottom, Offset: 10, Width: 0, DepthFraction: 0.5}},
		"touches corner":  {{Edge: EdgeBottom, Offset: 0, Width: 10, DepthFraction: 0.5}},
		"past the end":    {{Edge: EdgeRight, Offset: 40, Width: 10, DepthFraction: 0.5}},
		"unknown edge":    {{Edge: Edge(9), Offset: 10, Width: 10, DepthFraction: 0.5}},
		"overlap on edge": {{Edge: EdgeTop, Offset: 10, Width: 20, DepthFraction: 0.2}, {Edge: EdgeTop, Offset: 25, Width: 20, DepthFraction: 0.2}},
		"cuts through": {
			{Edge: EdgeBottom, Offset: 40, Width: 20, DepthFraction: 0.5},
			{Edge: EdgeTop, Offset: 40, Width: 20, DepthFraction: 0.5},
		},
		"corner collision": {
			{Edge: EdgeBottom, Offset: 80, Width: 15, DepthFraction: 0.5},
			{Edge: EdgeRight, Offset: 5, Width: 20, DepthFraction: 0.3},
		},
	}
	for name, notches := range bad {
		_, err := NotchedOutline(board, notches)
		assert.ErrorIs(t, err, ErrInvalidGeometry, name)
	}
}

func TestParseEdge(t *testing.T) {
	e, err := ParseEdge("top")
	require.NoError(t, err)
	assert.Equal(t, EdgeTop, e)
	_, err = ParseEdge("middle")
	assert.Error(t, err)
}
