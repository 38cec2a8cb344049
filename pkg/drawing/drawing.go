package drawing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/richard-senior/dxfshapes/internal/config"
	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/dxf"
)

var (
	// ErrIO wraps failures writing the drawing to disk
	ErrIO = errors.New("drawing i/o failure")
	// ErrInvalidLayer is returned for unusable layer names
	ErrInvalidLayer = errors.New("invalid layer")
	// ErrInvalidColor is returned for entity colours outside the ACI range
	ErrInvalidColor = errors.New("invalid colour")
)

// characters DXF does not allow in symbol table names
const forbiddenLayerChars = "<>/\\\":;?*|=`"

// Standard layer names created by New when setupLayers is true
const (
	LayerDefault      = "0"
	LayerCut          = "cut_layer"
	LayerConstruction = "construction"
	LayerDimension    = "dimension"
)

// Drawing manages a DXF document, its layers and saving it to disk
type Drawing struct {
	filename string
	units    string
	doc      *dxf.Document
	shapes   []Shape
}

// New creates a drawing.
//
// version is a DXF release such as R2010; units one of mm, cm, m, in, ft or yd.
// Unknown units fall back to millimetres. With setupLayers the standard layer
// set (0, cut_layer, construction, dimension) is registered.
func New(filename, version, units string, setupLayers bool) (*Drawing, error) {
	v, err := dxf.ParseVersion(version)
	if err != nil {
		return nil, err
	}

	u, ok := dxf.ParseUnits(units)
	name := strings.ToLower(strings.TrimSpace(units))
	if !ok {
		logger.Warn("Unrecognised units, defaulting to mm:", units)
		u, name = dxf.Millimeters, "mm"
	}

	d := &Drawing{
		filename: filename,
		units:    name,
		doc:      dxf.NewDocument(v, u),
	}

	if setupLayers {
		standard := []struct {
			name string
			opts []LayerOption
		}{
			{LayerDefault, []LayerOption{WithColor(dxf.ColorWhite)}},
			{LayerCut, []LayerOption{WithColor(dxf.ColorRed)}},
			{LayerConstruction, []LayerOption{WithColor(dxf.ColorGreen), WithLinetype("DASHED")}},
			{LayerDimension, []LayerOption{WithColor(dxf.ColorBlue)}},
		}
		for _, l := range standard {
			if _, err := d.GetOrCreateLayer(l.name, l.opts...); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("Created drawing", filename, v.Name, name)
	return d, nil
}

// NewDefault creates a drawing with the configured version and units and the standard layers
func NewDefault(filename string) (*Drawing, error) {
	return New(filename, config.Config.Version, config.Config.Units, true)
}

// LayerOption sets an attribute on a layer that is being created
type LayerOption func(*dxf.Layer)

// WithColor sets the ACI colour (1-255)
func WithColor(aci int) LayerOption {
	return func(l *dxf.Layer) { l.Color = aci }
}

// WithLinetype sets a standard linetype such as DASHED; unknown names become CONTINUOUS
func WithLinetype(name string) LayerOption {
	return func(l *dxf.Layer) {
		lt, ok := dxf.LookupLinetype(name)
		if !ok {
			logger.Warn("Unknown linetype, using CONTINUOUS:", name)
			l.Linetype = dxf.Continuous
			return
		}
		l.Linetype = lt.Name
	}
}

// WithLineweight sets the lineweight in hundredths of a millimetre (25 = 0.25mm)
func WithLineweight(w int) LayerOption {
	return func(l *dxf.Layer) { l.Lineweight = w }
}

// WithPlot sets whether the layer is plotted
func WithPlot(plot bool) LayerOption {
	return func(l *dxf.Layer) { l.Plot = plot }
}

// GetOrCreateLayer returns the layer called name, creating it with opts if it
// does not exist yet. Options are ignored for an existing layer.
func (d *Drawing) GetOrCreateLayer(name string, opts ...LayerOption) (*dxf.Layer, error) {
	if err := CheckLayerName(name); err != nil {
		return nil, err
	}
	if l, ok := d.doc.Layer(name); ok {
		return l, nil
	}

	l := dxf.NewLayer(name)
	for _, opt := range opts {
		opt(l)
	}
	if l.Color < 1 || l.Color > 255 {
		return nil, fmt.Errorf("%w: %s colour %d outside 1-255", ErrInvalidLayer, name, l.Color)
	}
	logger.Debug("Adding layer", l.Name, l.Color, l.Linetype)
	return d.doc.AddLayer(l), nil
}

// CheckLayerName rejects names that are empty, padded with spaces, or
// contain control characters or any of <>/\":;?*|=`
func CheckLayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidLayer)
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: %q has leading or trailing spaces", ErrInvalidLayer, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune(forbiddenLayerChars, r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidLayer, name, r)
		}
	}
	return nil
}

// AddLayer is GetOrCreateLayer under its older name
func (d *Drawing) AddLayer(name string, opts ...LayerOption) (*dxf.Layer, error) {
	return d.GetOrCreateLayer(name, opts...)
}

// Layer looks up an existing layer
func (d *Drawing) Layer(name string) (*dxf.Layer, bool) {
	return d.doc.Layer(name)
}

// Layers returns all layers in the order they were created
func (d *Drawing) Layers() []*dxf.Layer {
	return d.doc.Layers()
}

// AddShape emits shape into the drawing. The shape's layer is created with
// default attributes if it does not exist. On error nothing is added.
func (d *Drawing) AddShape(shape Shape) error {
	if s, ok := shape.(styled); ok {
		if err := s.style().check(); err != nil {
			return err
		}
	}
	if _, err := d.GetOrCreateLayer(shape.LayerName()); err != nil {
		return err
	}
	if err := shape.Emit(d); err != nil {
		return fmt.Errorf("failed to add %T: %w", shape, err)
	}
	d.shapes = append(d.shapes, shape)
	return nil
}

// AddShapes adds each shape in turn, stopping at the first error
func (d *Drawing) AddShapes(shapes ...Shape) error {
	for _, s := range shapes {
		if err := d.AddShape(s); err != nil {
			return err
		}
	}
	return nil
}

// add is the single entry point shapes use to place entities on the drawing
func (d *Drawing) add(es ...dxf.Entity) {
	d.doc.Add(es...)
}

// Shapes returns the shapes added so far
func (d *Drawing) Shapes() []Shape {
	return append([]Shape(nil), d.shapes...)
}

// Entities returns the DXF entities in model space
func (d *Drawing) Entities() []dxf.Entity {
	return d.doc.Entities()
}

func (d *Drawing) Filename() string     { return d.filename }
func (d *Drawing) Units() string        { return d.units }
func (d *Drawing) Version() dxf.Version { return d.doc.Version }

// WriteTo encodes the drawing as DXF
func (d *Drawing) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// Save writes the drawing to filename, or to the drawing's own filename when
// none is given. A .dxf extension is appended if missing. Returns the path written.
func (d *Drawing) Save(filename ...string) (string, error) {
	path := d.filename
	if len(filename) > 0 && filename[0] != "" {
		path = filename[0]
	}
	if path == "" {
		return "", fmt.Errorf("%w: no filename given", ErrIO)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".dxf") {
		path += ".dxf"
	}

	if err := d.writeFile(path); err != nil {
		logger.Error("Failed to save drawing", path, err)
		return "", err
	}
	logger.Info("Saved drawing", path, len(d.doc.Entities()), "entities")
	return path, nil
}

func (d *Drawing) writeFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := d.doc.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
