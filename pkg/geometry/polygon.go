package geometry

import "math"

// Polygon is a closed ring of vertices. The closing edge from the last vertex
// back to the first is implied; the first vertex is not repeated.
type Polygon []Point

// SignedArea is positive for counter-clockwise rings (shoelace formula)
func (pg Polygon) SignedArea() float64 {
	n := len(pg)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pg[i].X*pg[j].Y - pg[j].X*pg[i].Y
	}
	return sum / 2
}

func (pg Polygon) Area() float64 {
	return math.Abs(pg.SignedArea())
}

func (pg Polygon) CounterClockwise() bool {
	return pg.SignedArea() > 0
}

// Bounds returns the lower-left and upper-right corners of the bounding box
func (pg Polygon) Bounds() (Point, Point) {
	if len(pg) == 0 {
		return Point{}, Point{}
	}
	lo, hi := pg[0], pg[0]
	for _, p := range pg[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Edge returns the i-th edge, wrapping around to close the ring
func (pg Polygon) Edge(i int) (Point, Point) {
	n := len(pg)
	return pg[i%n], pg[(i+1)%n]
}

// SelfIntersects reports whether the ring touches or crosses itself anywhere
// other than at the shared vertex of consecutive edges. Repeated vertices and
// edges that fold back onto their neighbour count as self intersections.
func (pg Polygon) SelfIntersects() bool {
	n := len(pg)
	if n < 3 {
		return true
	}
	for i := 0; i < n; i++ {
		a, b := pg.Edge(i)
		if a.Near(b, Epsilon) {
			return true
		}
		// consecutive edge: only a fold back is a problem
		_, c := pg.Edge(i + 1)
		if math.Abs(cross(a, b, c)) < Epsilon && dot(b.Sub(a), c.Sub(b)) < 0 {
			return true
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			c, d := pg.Edge(j)
			if segmentsIntersect(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

func dot(u, v Point) float64 {
	return u.X*v.X + u.Y*v.Y
}

// segmentsIntersect reports whether segments ab and cd share any point, touching included
func segmentsIntersect(a, b, c, d Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)

	if ((d1 > Epsilon && d2 < -Epsilon) || (d1 < -Epsilon && d2 > Epsilon)) &&
		((d3 > Epsilon && d4 < -Epsilon) || (d3 < -Epsilon && d4 > Epsilon)) {
		return true
	}
	return (math.Abs(d1) <= Epsilon && onSegment(c, d, a)) ||
		(math.Abs(d2) <= Epsilon && onSegment(c, d, b)) ||
		(math.Abs(d3) <= Epsilon && onSegment(a, b, c)) ||
		(math.Abs(d4) <= Epsilon && onSegment(a, b, d))
}

// onSegment assumes p is collinear with ab
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X)-Epsilon && p.X <= math.Max(a.X, b.X)+Epsilon &&
		p.Y >= math.Min(a.Y, b.Y)-Epsilon && p.Y <= math.Max(a.Y, b.Y)+Epsilon
}
