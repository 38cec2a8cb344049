package drawing

import (
	"fmt"
	"strings"

	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
)

// Line is a single straight segment, used for reference and center lines
type Line struct {
	Style
	Start, End geometry.Point
}

func NewLine(x1, y1, x2, y2 float64, layer string) (Line, error) {
	start, end := geometry.NewPoint(x1, y1), geometry.NewPoint(x2, y2)
	if start.Near(end, geometry.Epsilon) {
		return Line{}, fmt.Errorf("%w: line from %v to itself", geometry.ErrInvalidGeometry, start)
	}
	return Line{Style: newStyle(layer), Start: start, End: end}, nil
}

func (l Line) Length() float64 {
	return l.Start.Distance(l.End)
}

func (l Line) Emit(d *Drawing) error {
	d.add(&dxf.Line{Common: l.common(), Start: l.Start, End: l.End})
	return nil
}

// Text is a single line label
type Text struct {
	Style
	Value  string
	Insert geometry.Point
	Height float64
	HAlign int
	VAlign int
}

func NewText(value string, x, y, height float64, layer string) (Text, error) {
	if strings.TrimSpace(value) == "" {
		return Text{}, fmt.Errorf("%w: empty text", geometry.ErrInvalidGeometry)
	}
	if strings.ContainsAny(value, "\r\n") {
		return Text{}, fmt.Errorf("%w: text must be a single line", geometry.ErrInvalidGeometry)
	}
	if height <= 0 {
		return Text{}, fmt.Errorf("%w: text height must be positive, got %g", geometry.ErrInvalidGeometry, height)
	}
	return Text{
		Style:  newStyle(layer),
		Value:  value,
		Insert: geometry.NewPoint(x, y),
		Height: height,
	}, nil
}

// WithAlign returns a copy using the dxf.Align* horizontal and vertical codes
func (t Text) WithAlign(h, v int) Text {
	t.HAlign, t.VAlign = h, v
	return t
}

func (t Text) Emit(d *Drawing) error {
	d.add(&dxf.Text{
		Common: t.common(),
		Insert: t.Insert,
		Height: t.Height,
		Value:  t.Value,
		HAlign: t.HAlign,
		VAlign: t.VAlign,
	})
	return nil
}
