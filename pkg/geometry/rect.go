package geometry

import "math"

// Rect is an axis aligned rectangle given by its lower-left origin and size
type Rect struct {
	Origin        Point
	Width, Height float64
}

// NewRect validates the size and returns the rectangle
func NewRect(x, y, width, height float64) (Rect, error) {
	if !isFinite(x, y, width, height) {
		return Rect{}, invalid("rectangle coordinates must be finite")
	}
	if width <= 0 || height <= 0 {
		return Rect{}, invalid("rectangle size must be positive, got %gx%g", width, height)
	}
	return Rect{Origin: Point{X: x, Y: y}, Width: width, Height: height}, nil
}

// RectFromCenter places a width x height rectangle so that its center is (cx, cy)
func RectFromCenter(cx, cy, width, height float64) (Rect, error) {
	return NewRect(cx-width/2, cy-height/2, width, height)
}

// RectFromCorners normalises two opposite corners given in any order
func RectFromCorners(x1, y1, x2, y2 float64) (Rect, error) {
	return NewRect(math.Min(x1, x2), math.Min(y1, y2), math.Abs(x2-x1), math.Abs(y2-y1))
}

// Corners returns the four corners counter-clockwise starting at the origin:
// bottom-left, bottom-right, top-right, top-left.
func (r Rect) Corners() []Point {
	x0, y0 := r.Origin.X, r.Origin.Y
	x1, y1 := x0+r.Width, y0+r.Height
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Width/2, Y: r.Origin.Y + r.Height/2}
}

func (r Rect) Max() Point {
	return Point{X: r.Origin.X + r.Width, Y: r.Origin.Y + r.Height}
}
