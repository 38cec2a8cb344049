package drawing

import (
	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
)

// Circle is drawn as a DXF CIRCLE entity
type Circle struct {
	Style
	geometry.Circle
}

func NewCircle(cx, cy, radius float64, layer string) (Circle, error) {
	c, err := geometry.NewCircle(cx, cy, radius)
	if err != nil {
		return Circle{}, err
	}
	return Circle{Style: newStyle(layer), Circle: c}, nil
}

func CircleFromDiameter(cx, cy, diameter float64, layer string) (Circle, error) {
	c, err := geometry.CircleFromDiameter(cx, cy, diameter)
	if err != nil {
		return Circle{}, err
	}
	return Circle{Style: newStyle(layer), Circle: c}, nil
}

// CircleFromThreePoints returns the circle passing through all three points.
// Collinear points fail with geometry.ErrInvalidGeometry.
func CircleFromThreePoints(x1, y1, x2, y2, x3, y3 float64, layer string) (Circle, error) {
	c, err := geometry.CircleThroughPoints(
		geometry.NewPoint(x1, y1),
		geometry.NewPoint(x2, y2),
		geometry.NewPoint(x3, y3),
	)
	if err != nil {
		return Circle{}, err
	}
	return Circle{Style: newStyle(layer), Circle: c}, nil
}

func (c Circle) WithLayer(layer string) Circle {
	c.Style.Layer = newStyle(layer).Layer
	return c
}

func (c Circle) WithColor(aci int) Circle {
	c.Style.Color = aci
	return c
}

func (c Circle) Emit(d *Drawing) error {
	d.add(&dxf.Circle{
		Common: c.common(),
		Center: c.Center,
		Radius: c.Radius,
	})
	return nil
}
