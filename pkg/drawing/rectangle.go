package drawing

import (
	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
)

// Rectangle is an axis aligned rectangle drawn as a 4 vertex polyline
type Rectangle struct {
	Style
	geometry.Rect
	// Closed is true unless the rectangle was built with Open
	Closed bool
}

// NewRectangle returns a rectangle with its bottom-left corner at (x, y)
func NewRectangle(x, y, width, height float64, layer string) (Rectangle, error) {
	r, err := geometry.NewRect(x, y, width, height)
	if err != nil {
		return Rectangle{}, err
	}
	return Rectangle{Style: newStyle(layer), Rect: r, Closed: true}, nil
}

// RectangleFromCenter returns a rectangle centered on (cx, cy)
func RectangleFromCenter(cx, cy, width, height float64, layer string) (Rectangle, error) {
	r, err := geometry.RectFromCenter(cx, cy, width, height)
	if err != nil {
		return Rectangle{}, err
	}
	return Rectangle{Style: newStyle(layer), Rect: r, Closed: true}, nil
}

// RectangleFromCorners returns the rectangle spanned by two opposite corners in any order
func RectangleFromCorners(x1, y1, x2, y2 float64, layer string) (Rectangle, error) {
	r, err := geometry.RectFromCorners(x1, y1, x2, y2)
	if err != nil {
		return Rectangle{}, err
	}
	return Rectangle{Style: newStyle(layer), Rect: r, Closed: true}, nil
}

// Open returns a copy that is emitted as an open polyline
func (r Rectangle) Open() Rectangle {
	r.Closed = false
	return r
}

// WithLayer returns a copy on another layer
func (r Rectangle) WithLayer(layer string) Rectangle {
	r.Style.Layer = newStyle(layer).Layer
	return r
}

// WithColor returns a copy with an entity colour override
func (r Rectangle) WithColor(aci int) Rectangle {
	r.Style.Color = aci
	return r
}

// Points returns the corners counter-clockwise from the bottom-left
func (r Rectangle) Points() []geometry.Point {
	return r.Corners()
}

func (r Rectangle) Emit(d *Drawing) error {
	d.add(&dxf.Polyline{
		Common:   r.common(),
		Vertices: r.Corners(),
		Closed:   r.Closed,
	})
	return nil
}
