package geometry

import "math"

// Circle is a center and a radius
type Circle struct {
	Center Point
	Radius float64
}

func NewCircle(cx, cy, radius float64) (Circle, error) {
	if !isFinite(cx, cy, radius) {
		return Circle{}, invalid("circle parameters must be finite")
	}
	if radius <= 0 {
		return Circle{}, invalid("circle radius must be positive, got %g", radius)
	}
	return Circle{Center: Point{X: cx, Y: cy}, Radius: radius}, nil
}

func CircleFromDiameter(cx, cy, diameter float64) (Circle, error) {
	return NewCircle(cx, cy, diameter/2)
}

// CircleThroughPoints returns the unique circle through three non-collinear points.
//
// The center is the intersection of the perpendicular bisectors of p1p3 and p2p3.
// Relative to p3 both bisectors are lines 2c.u = |u|^2 and 2c.v = |v|^2, whose
// determinant is twice the signed area of the triangle. When that area is tiny
// compared with the longest side squared the triangle is flat, the bisectors are
// parallel and no circle exists. The test depends on shape only, not on scale.
func CircleThroughPoints(p1, p2, p3 Point) (Circle, error) {
	if !isFinite(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y) {
		return Circle{}, invalid("circle points must be finite")
	}
	area2 := cross(p3, p1, p2)
	longest := math.Max(p1.Sub(p2).LengthSq(), math.Max(p2.Sub(p3).LengthSq(), p3.Sub(p1).LengthSq()))
	if math.Abs(area2) <= Epsilon*longest {
		return Circle{}, invalid("points %v, %v, %v are collinear and cannot form a circle", p1, p2, p3)
	}

	u := p1.Sub(p3)
	v := p2.Sub(p3)
	uu := u.LengthSq()
	vv := v.LengthSq()
	d := 2 * area2

	center := Point{
		X: p3.X + (v.Y*uu-u.Y*vv)/d,
		Y: p3.Y + (u.X*vv-v.X*uu)/d,
	}
	return Circle{Center: center, Radius: center.Distance(p1)}, nil
}

// OnCircumference reports whether p lies on the circle within tol
func (c Circle) OnCircumference(p Point, tol float64) bool {
	return math.Abs(c.Center.Distance(p)-c.Radius) <= tol
}

// Diameter returns twice the radius
func (c Circle) Diameter() float64 {
	return 2 * c.Radius
}
