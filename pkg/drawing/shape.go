package drawing

import (
	"fmt"

	"github.com/richard-senior/dxfshapes/pkg/dxf"
)

// Shape is anything that can place itself on a Drawing.
//
// Implementations are immutable values validated at construction time, so
// Emit only fails for reasons outside the shape itself. New shapes only need
// to satisfy this interface; the Drawing does not know about concrete types.
type Shape interface {
	// Emit adds the shape's entities to d on the shape's layer
	Emit(d *Drawing) error
	// LayerName is the layer the shape is drawn on
	LayerName() string
}

// Style is the part of a shape that is not geometry: its layer and an
// optional colour override (0 means use the layer colour).
type Style struct {
	Layer string
	Color int
}

func newStyle(layer string) Style {
	if layer == "" {
		layer = LayerDefault
	}
	return Style{Layer: layer}
}

func (s Style) LayerName() string {
	return s.Layer
}

func (s Style) style() Style { return s }

// CheckColor rejects entity colours that are not ACI values. 0 and 256 both mean BYLAYER.
func CheckColor(aci int) error {
	if aci < 0 || aci > dxf.ColorByLayer {
		return fmt.Errorf("%w: %d outside 0-%d", ErrInvalidColor, aci, dxf.ColorByLayer)
	}
	return nil
}

func (s Style) check() error {
	return CheckColor(s.Color)
}

// styled is implemented by every shape that embeds Style
type styled interface {
	style() Style
}

func (s Style) common() dxf.Common {
	return dxf.Common{Layer: s.Layer, Color: s.Color}
}
