package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestRectCornersCounterClockwise(t *testing.T) {
	r, err := NewRect(10, 10, 100, 50)
	require.NoError(t, err)

	want := []Point{{10, 10}, {110, 10}, {110, 60}, {10, 60}}
	if diff := cmp.Diff(want, r.Corners(), approx); diff != "" {
		t.Errorf("corners mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, Polygon(r.Corners()).CounterClockwise())
	assert.InDelta(t, 5000, Polygon(r.Corners()).Area(), 1e-9)
}

func TestRectRejectsNonPositiveSize(t *testing.T) {
	for _, tc := range []struct{ w, h float64 }{{0, 10}, {10, 0}, {-5, 10}, {10, -1}} {
		_, err := NewRect(0, 0, tc.w, tc.h)
		assert.ErrorIs(t, err, ErrInvalidGeometry, "size %gx%g", tc.w, tc.h)
	}
	_, err := NewRect(math.NaN(), 0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestRectFromCenter(t *testing.T) {
	r, err := RectFromCenter(150, 50, 40, 40)
	require.NoError(t, err)
	assert.Equal(t, Point{130, 30}, r.Origin)
	assert.Equal(t, Point{150, 50}, r.Center())
}

func TestRectFromCornersAnyOrder(t *testing.T) {
	cases := [][4]float64{
		{10, 20, 60, 80},
		{60, 80, 10, 20},
		{60, 20, 10, 80},
		{10, 80, 60, 20},
		{-5, -5, -50, 7.5},
	}
	for _, c := range cases {
		x1, y1, x2, y2 := c[0], c[1], c[2], c[3]
		got, err := RectFromCorners(x1, y1, x2, y2)
		require.NoError(t, err)

		want, err := NewRect(math.Min(x1, x2), math.Min(y1, y2), math.Abs(x2-x1), math.Abs(y2-y1))
		require.NoError(t, err)

		if diff := cmp.Diff(want.Corners(), got.Corners(), approx); diff != "" {
			t.Errorf("corners for %v mismatch (-want +got):\n%s", c, diff)
		}
	}
}

func TestRectFromCornersDegenerate(t *testing.T) {
	_, err := RectFromCorners(10, 10, 10, 50)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestCircleFromDiameter(t *testing.T) {
	for _, d := range []float64{0.5, 40, 1234.5} {
		got, err := CircleFromDiameter(3, 4, d)
		require.NoError(t, err)
		want, err := NewCircle(3, 4, d/2)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.InDelta(t, d, got.Diameter(), 1e-12)
	}
	_, err := CircleFromDiameter(0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

// bisectorOracle intersects the perpendicular bisectors of p1p2 and p2p3 in
// point-direction form, independently of the production formula.
func bisectorOracle(p1, p2, p3 Point) Point {
	m1, m2 := p1.Midpoint(p2), p2.Midpoint(p3)
	// direction of each bisector is the segment rotated by 90 degrees
	d1 := Point{-(p2.Y - p1.Y), p2.X - p1.X}
	d2 := Point{-(p3.Y - p2.Y), p3.X - p2.X}
	// solve m1 + t d1 = m2 + s d2 for t
	den := d1.X*d2.Y - d1.Y*d2.X
	t := ((m2.X-m1.X)*d2.Y - (m2.Y-m1.Y)*d2.X) / den
	return Point{m1.X + t*d1.X, m1.Y + t*d1.Y}
}

func TestCircleThroughPointsWoodworkingExample(t *testing.T) {
	p1, p2, p3 := Point{0, 0}, Point{100, 0}, Point{50, 50}
	c, err := CircleThroughPoints(p1, p2, p3)
	require.NoError(t, err)

	want := bisectorOracle(p1, p2, p3)
	assert.InDelta(t, want.X, c.Center.X, 1e-9)
	assert.InDelta(t, want.Y, c.Center.Y, 1e-9)
	assert.InDelta(t, 50, c.Center.X, 1e-9)
	assert.InDelta(t, 0, c.Center.Y, 1e-9)
	assert.InDelta(t, 50, c.Radius, 1e-9)

	for _, p := range []Point{p1, p2, p3} {
		assert.True(t, c.OnCircumference(p, 1e-9), "point %v not on circle", p)
	}
}

func TestCircleThroughPointsRecoversKnownCircles(t *testing.T) {
	circles := []Circle{
		{Center: Point{0, 0}, Radius: 1},
		{Center: Point{-12.5, 300}, Radius: 42},
		{Center: Point{1e4, -3e3}, Radius: 0.25},
	}
	angles := [][3]float64{{0.1, 2.0, 4.0}, {3.0, 0.5, 5.5}, {1.0, 1.5, 2.0}}
	for i, want := range circles {
		var pts [3]Point
		for k, a := range angles[i] {
			pts[k] = Point{want.Center.X + want.Radius*math.Cos(a), want.Center.Y + want.Radius*math.Sin(a)}
		}
		got, err := CircleThroughPoints(pts[0], pts[1], pts[2])
		require.NoError(t, err)
		tol := 1e-9 * math.Max(1, math.Abs(want.Center.X)+math.Abs(want.Center.Y))
		assert.InDelta(t, want.Center.X, got.Center.X, tol)
		assert.InDelta(t, want.Center.Y, got.Center.Y, tol)
		assert.InDelta(t, want.Radius, got.Radius, tol)
	}
}

func TestCircleThroughCollinearPoints(t *testing.T) {
	_, err := CircleThroughPoints(Point{0, 0}, Point{50, 0}, Point{100, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	assert.Contains(t, err.Error(), "collinear")

	_, err = CircleThroughPoints(Point{1, 1}, Point{1, 1}, Point{5, 9})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestCircleThroughPointsIgnoresScale(t *testing.T) {
	// a micron-sized circle is still a circle
	c, err := CircleThroughPoints(Point{0, 0}, Point{1e-6, 0}, Point{5e-7, 5e-7})
	require.NoError(t, err)
	assert.InDelta(t, 5e-7, c.Center.X, 1e-15)
	assert.InDelta(t, 0, c.Center.Y, 1e-15)
	assert.InDelta(t, 5e-7, c.Radius, 1e-15)

	// 10 units of area spread over two million units of length is a straight line
	_, err = CircleThroughPoints(Point{0, 0}, Point{1e6, 0}, Point{2e6, 1e-5})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = CircleThroughPoints(Point{3, 3}, Point{3, 3}, Point{3, 3})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestSelfIntersects(t *testing.T) {
	square := Polygon{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assert.False(t, square.SelfIntersects())

	bowtie := Polygon{{0, 0}, {1, 1}, {1, 0}, {0, 1}}
	assert.True(t, bowtie.SelfIntersects())

	foldBack := Polygon{{0, 0}, {2, 0}, {1, 0}, {1, 1}}
	assert.True(t, foldBack.SelfIntersects())

	touching := Polygon{{0, 0}, {4, 0}, {4, 2}, {2, 0}, {0, 2}}
	assert.True(t, touching.SelfIntersects())
}
