package drawing

import (
	"fmt"

	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
)

// Layers used by the lap joint board annotations
const (
	LayerReference  = "reference_lines"
	LayerCenterline = "centerline"
	LayerLabel      = "label"
)

// SampleShapes returns two rectangles and two circles spread over the standard layers
func SampleShapes() ([]Shape, error) {
	r1, err := NewRectangle(10, 10, 100, 50, LayerCut)
	if err != nil {
		return nil, err
	}
	r2, err := RectangleFromCenter(150, 50, 40, 40, LayerConstruction)
	if err != nil {
		return nil, err
	}
	c1, err := NewCircle(50, 100, 25, LayerCut)
	if err != nil {
		return nil, err
	}
	c2, err := CircleFromDiameter(150, 100, 40, LayerDimension)
	if err != nil {
		return nil, err
	}
	return []Shape{r1, r2, c1, c2}, nil
}

// NewSampleDrawing returns a drawing with the configured defaults holding SampleShapes
func NewSampleDrawing(filename string) (*Drawing, error) {
	d, err := NewDefault(filename)
	if err != nil {
		return nil, err
	}
	shapes, err := SampleShapes()
	if err != nil {
		return nil, err
	}
	if err := d.AddShapes(shapes...); err != nil {
		return nil, err
	}
	return d, nil
}

// LapJointOptions describes a board with two notches on each long side
type LapJointOptions struct {
	Origin        geometry.Point
	Length        float64 // along x
	Width         float64 // along y
	NotchWidth    float64
	DepthFraction float64 // of Width
	// Overlay draws the board and each notch as separate rectangles instead of
	// a single outline. Needed when opposite notches meet (DepthFraction >= 0.5).
	Overlay bool
	// Annotate adds depth reference lines, a centerline and labels
	Annotate bool
}

// DefaultLapJointOptions is a 200x50 board with 30 wide notches at 20% depth
func DefaultLapJointOptions() LapJointOptions {
	return LapJointOptions{
		Length:        200,
		Width:         50,
		NotchWidth:    30,
		DepthFraction: 0.2,
		Annotate:      true,
	}
}

// notches returns the four notches: two on the bottom edge then two on the top,
// evenly spaced so the gaps before, between and after them are equal.
func (o LapJointOptions) notches() ([]geometry.Notch, error) {
	gap := (o.Length - 2*o.NotchWidth) / 3
	if gap <= 0 {
		return nil, fmt.Errorf("%w: two %g wide notches do not fit on a %g long board",
			geometry.ErrInvalidGeometry, o.NotchWidth, o.Length)
	}
	var out []geometry.Notch
	for _, edge := range []geometry.Edge{geometry.EdgeBottom, geometry.EdgeTop} {
		out = append(out,
			geometry.Notch{Edge: edge, Offset: gap, Width: o.NotchWidth, DepthFraction: o.DepthFraction},
			geometry.Notch{Edge: edge, Offset: 2*gap + o.NotchWidth, Width: o.NotchWidth, DepthFraction: o.DepthFraction},
		)
	}
	return out, nil
}

// LapJointShapes builds the board shapes on cut_layer plus, when requested,
// the annotations on the reference_lines, centerline and label layers.
func LapJointShapes(o LapJointOptions) ([]Shape, error) {
	base, err := NewRectangle(o.Origin.X, o.Origin.Y, o.Length, o.Width, LayerCut)
	if err != nil {
		return nil, err
	}
	notches, err := o.notches()
	if err != nil {
		return nil, err
	}

	var shapes []Shape
	if o.Overlay {
		shapes = append(shapes, base)
		for _, n := range notches {
			// validates the fraction; the outline itself is not drawn
			if _, err := NewNotchedRectangle(base, n); err != nil {
				return nil, err
			}
			r := n.Rect(base.Rect)
			nr, err := NewRectangle(r.Origin.X, r.Origin.Y, r.Width, r.Height, LayerCut)
			if err != nil {
				return nil, err
			}
			shapes = append(shapes, nr)
		}
	} else {
		board, err := NewNotchedRectangle(base, notches...)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, board)
	}

	if !o.Annotate {
		return shapes, nil
	}

	x0, y0 := o.Origin.X, o.Origin.Y
	depth := o.Width * o.DepthFraction
	topRef := y0 + o.Width - depth
	bottomRef := y0 + depth
	percent := fmt.Sprintf("%d%%", int(o.DepthFraction*100+0.5))

	lines := [][4]float64{
		{x0 - 10, topRef, x0 + o.Length + 10, topRef},
		{x0 - 10, bottomRef, x0 + o.Length + 10, bottomRef},
	}
	for _, l := range lines {
		ln, err := NewLine(l[0], l[1], l[2], l[3], LayerReference)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, ln)
	}
	center, err := NewLine(x0-10, y0+o.Width/2, x0+o.Length+10, y0+o.Width/2, LayerCenterline)
	if err != nil {
		return nil, err
	}
	shapes = append(shapes, center)

	title, err := NewText(fmt.Sprintf("Notched Rectangle - %s Depth Joint Example", percent), x0, y0+o.Width+15, 5, LayerLabel)
	if err != nil {
		return nil, err
	}
	shapes = append(shapes, title)
	for _, y := range []float64{topRef, bottomRef} {
		label, err := NewText(percent, x0+o.Length+15, y, 3.5, LayerLabel)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, label.WithAlign(dxf.AlignLeft, dxf.AlignMiddle))
	}
	return shapes, nil
}

// AddLapJointBoard registers the annotation layers and adds the board to d
func AddLapJointBoard(d *Drawing, o LapJointOptions) error {
	shapes, err := LapJointShapes(o)
	if err != nil {
		return err
	}
	if o.Annotate {
		if _, err := d.GetOrCreateLayer(LayerReference, WithColor(dxf.ColorCyan), WithLinetype("DASHED")); err != nil {
			return err
		}
		if _, err := d.GetOrCreateLayer(LayerCenterline, WithColor(dxf.ColorMagenta), WithLinetype("DASHED")); err != nil {
			return err
		}
		if _, err := d.GetOrCreateLayer(LayerLabel, WithColor(dxf.ColorGreen)); err != nil {
			return err
		}
	}
	logger.Debug("Adding lap joint board", len(shapes), "shapes")
	return d.AddShapes(shapes...)
}
