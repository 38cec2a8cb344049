package drawing

import (
	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
)

// NotchedRectangle is a rectangle with rectangular steps cut into its edges,
// drawn as one closed polyline tracing the remaining material.
type NotchedRectangle struct {
	Style
	Base    geometry.Rect
	Notches []geometry.Notch
	outline geometry.Polygon
}

// NewNotchedRectangle cuts the notches into base. The base rectangle's layer
// and colour are used for the outline.
func NewNotchedRectangle(base Rectangle, notches ...geometry.Notch) (NotchedRectangle, error) {
	outline, err := geometry.NotchedOutline(base.Rect, notches)
	if err != nil {
		return NotchedRectangle{}, err
	}
	return NotchedRectangle{
		Style:   base.Style,
		Base:    base.Rect,
		Notches: append([]geometry.Notch(nil), notches...),
		outline: outline,
	}, nil
}

// NewLapNotch cuts a single notch of notchWidth, centered on edge, whose depth
// is fraction of the dimension perpendicular to that edge.
func NewLapNotch(base Rectangle, edge geometry.Edge, notchWidth, fraction float64) (NotchedRectangle, error) {
	return NewNotchedRectangle(base, geometry.CenteredNotch(base.Rect, edge, notchWidth, fraction))
}

// Outline returns the closed outline counter-clockwise from the base origin
func (n NotchedRectangle) Outline() geometry.Polygon {
	return append(geometry.Polygon(nil), n.outline...)
}

// Depths returns the depth of each notch in drawing units, in construction order
func (n NotchedRectangle) Depths() []float64 {
	out := make([]float64, len(n.Notches))
	for i, notch := range n.Notches {
		out[i] = notch.Depth(n.Base)
	}
	return out
}

func (n NotchedRectangle) WithLayer(layer string) NotchedRectangle {
	n.Style.Layer = newStyle(layer).Layer
	return n
}

func (n NotchedRectangle) Emit(d *Drawing) error {
	d.add(&dxf.Polyline{
		Common:   n.common(),
		Vertices: n.Outline(),
		Closed:   true,
	})
	return nil
}
