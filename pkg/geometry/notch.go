package geometry

import (
	"fmt"
	"sort"
)

// Edge names a side of a rectangle
type Edge int

const (
	EdgeBottom Edge = iota
	EdgeRight
	EdgeTop
	EdgeLeft
)

func (e Edge) String() string {
	switch e {
	case EdgeBottom:
		return "bottom"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	default:
		return fmt.Sprintf("edge(%d)", int(e))
	}
}

// ParseEdge accepts bottom, right, top or left
func ParseEdge(s string) (Edge, error) {
	for e := EdgeBottom; e <= EdgeLeft; e++ {
		if e.String() == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}

// Notch is a rectangular step cut into one edge of a rectangle.
//
// Offset is measured along the edge from its lower (bottom/top) or left-most
// (left/right) end. Depth is a fraction of the dimension perpendicular to the
// edge: the height for bottom and top notches, the width for left and right.
type Notch struct {
	Edge          Edge
	Offset        float64
	Width         float64
	DepthFraction float64
}

// CenteredNotch returns a notch of the given width centered on the edge
func CenteredNotch(r Rect, edge Edge, width, fraction float64) Notch {
	return Notch{
		Edge:          edge,
		Offset:        (edgeLength(r, edge) - width) / 2,
		Width:         width,
		DepthFraction: fraction,
	}
}

// Depth returns the notch depth in drawing units for rectangle r
func (n Notch) Depth(r Rect) float64 {
	if n.Edge == EdgeBottom || n.Edge == EdgeTop {
		return n.DepthFraction * r.Height
	}
	return n.DepthFraction * r.Width
}

// Rect returns the material removed by the notch as a rectangle
func (n Notch) Rect(r Rect) Rect {
	d := n.Depth(r)
	x0, y0 := r.Origin.X, r.Origin.Y
	x1, y1 := x0+r.Width, y0+r.Height
	switch n.Edge {
	case EdgeBottom:
		return Rect{Origin: Point{x0 + n.Offset, y0}, Width: n.Width, Height: d}
	case EdgeTop:
		return Rect{Origin: Point{x0 + n.Offset, y1 - d}, Width: n.Width, Height: d}
	case EdgeRight:
		return Rect{Origin: Point{x1 - d, y0 + n.Offset}, Width: d, Height: n.Width}
	default:
		return Rect{Origin: Point{x0, y0 + n.Offset}, Width: d, Height: n.Width}
	}
}

func edgeLength(r Rect, e Edge) float64 {
	if e == EdgeBottom || e == EdgeTop {
		return r.Width
	}
	return r.Height
}

func (n Notch) validate(r Rect) error {
	if n.Edge < EdgeBottom || n.Edge > EdgeLeft {
		return invalid("unknown notch edge %d", int(n.Edge))
	}
	if !isFinite(n.Offset, n.Width, n.DepthFraction) {
		return invalid("notch parameters must be finite")
	}
	if n.DepthFraction <= 0 || n.DepthFraction >= 1 {
		return invalid("notch depth fraction must be between 0 and 1 exclusive, got %g", n.DepthFraction)
	}
	if n.Width <= 0 {
		return invalid("notch width must be positive, got %g", n.Width)
	}
	span := edgeLength(r, n.Edge)
	if n.Offset <= Epsilon || n.Offset+n.Width >= span-Epsilon {
		return invalid("%s notch [%g, %g] must lie strictly inside the edge length %g",
			n.Edge, n.Offset, n.Offset+n.Width, span)
	}
	return nil
}

// NotchedOutline traces the boundary of r counter-clockwise from its origin with
// every notch cut in as a rectangular step. The result never self-intersects:
// notches that overlap, reach a corner, or meet another notch are rejected.
func NotchedOutline(r Rect, notches []Notch) (Polygon, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, invalid("rectangle size must be positive, got %gx%g", r.Width, r.Height)
	}

	byEdge := make(map[Edge][]Notch, 4)
	for i, n := range notches {
		if err := n.validate(r); err != nil {
			return nil, fmt.Errorf("notch %d: %w", i, err)
		}
		byEdge[n.Edge] = append(byEdge[n.Edge], n)
	}
	for e, ns := range byEdge {
		sort.Slice(ns, func(i, j int) bool { return ns[i].Offset < ns[j].Offset })
		for i := 1; i < len(ns); i++ {
			if ns[i-1].Offset+ns[i-1].Width >= ns[i].Offset-Epsilon {
				return nil, invalid("%s notches at %g and %g overlap", e, ns[i-1].Offset, ns[i].Offset)
			}
		}
	}

	x0, y0 := r.Origin.X, r.Origin.Y
	x1, y1 := x0+r.Width, y0+r.Height
	outline := Polygon{{x0, y0}}

	for _, n := range byEdge[EdgeBottom] {
		s, e, d := x0+n.Offset, x0+n.Offset+n.Width, n.Depth(r)
		outline = append(outline, Point{s, y0}, Point{s, y0 + d}, Point{e, y0 + d}, Point{e, y0})
	}
	outline = append(outline, Point{x1, y0})

	for _, n := range byEdge[EdgeRight] {
		s, e, d := y0+n.Offset, y0+n.Offset+n.Width, n.Depth(r)
		outline = append(outline, Point{x1, s}, Point{x1 - d, s}, Point{x1 - d, e}, Point{x1, e})
	}
	outline = append(outline, Point{x1, y1})

	top := byEdge[EdgeTop]
	for i := len(top) - 1; i >= 0; i-- {
		n := top[i]
		s, e, d := x0+n.Offset+n.Width, x0+n.Offset, n.Depth(r)
		outline = append(outline, Point{s, y1}, Point{s, y1 - d}, Point{e, y1 - d}, Point{e, y1})
	}
	outline = append(outline, Point{x0, y1})

	left := byEdge[EdgeLeft]
	for i := len(left) - 1; i >= 0; i-- {
		n := left[i]
		s, e, d := y0+n.Offset+n.Width, y0+n.Offset, n.Depth(r)
		outline = append(outline, Point{x0, s}, Point{x0 + d, s}, Point{x0 + d, e}, Point{x0, e})
	}

	if outline.SelfIntersects() {
		return nil, invalid("notches cut through the board or meet each other")
	}
	return outline, nil
}
