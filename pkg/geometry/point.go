package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is wrapped by every error caused by degenerate input:
// non-positive sizes, zero-length segments, collinear points, impossible notches.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Epsilon is the tolerance used for degeneracy tests
const Epsilon = 1e-10

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
}

///////////////////////////////////////////////////////////////////////////////
/// POINT
///////////////////////////////////////////////////////////////////////////////

// Point represents a 2D point with X and Y coordinates in drawing units
type Point struct {
	X, Y float64
}

func NewPoint(x float64, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the euclidean distance between p and q
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// LengthSq is the squared length of p taken as a vector
func (p Point) LengthSq() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Midpoint returns the point half way between p and q
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Near reports whether p and q are within tol of each other on both axes
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// cross returns the z component of (b-a) x (c-a)
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func isFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
