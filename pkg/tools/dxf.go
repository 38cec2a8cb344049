package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/richard-senior/dxfshapes/internal/config"
	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/catalog"
	"github.com/richard-senior/dxfshapes/pkg/drawing"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
	"github.com/richard-senior/dxfshapes/pkg/inspect"
	"github.com/richard-senior/dxfshapes/pkg/protocol"
	"github.com/richard-senior/dxfshapes/pkg/util"
)

var (
	catalogMu sync.Mutex
	drawings  *catalog.Catalog
)

// SetCatalog makes dxf_draw record every saved file in c. nil disables recording.
func SetCatalog(c *catalog.Catalog) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	drawings = c
}

func currentCatalog() *catalog.Catalog {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	return drawings
}

// DxfDrawTool returns the dxf_draw tool definition
func DxfDrawTool() protocol.Tool {
	return protocol.Tool{
		Name: "dxf_draw",
		Description: "Creates a DXF drawing from a list of shapes and saves it. " +
			"Each shape is an object with a 'type' and its parameters: " +
			"rectangle {x,y,width,height} or {cx,cy,width,height} or {x1,y1,x2,y2}; " +
			"circle {cx,cy,radius} or {cx,cy,diameter}; circle3p {x1,y1,x2,y2,x3,y3}; " +
			"notched {x,y,width,height,edge,notch_width,depth_fraction[,offset]}; " +
			"lap_joint {x,y,length,width,notch_width,depth_fraction[,overlay,annotate]}; " +
			"line {x1,y1,x2,y2}; text {value,x,y,height}. " +
			"Every shape accepts an optional 'layer' (default cut_layer) and ACI 'color'.",
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"path": {
					Type:        "string",
					Description: "Output file; relative paths are resolved against the output directory and .dxf is appended if missing",
				},
				"units": {
					Type:        "string",
					Description: "Drawing units",
					Enum:        []string{"mm", "cm", "m", "in", "ft", "yd"},
				},
				"version": {
					Type:        "string",
					Description: "DXF version such as R2010 or R12",
				},
				"shapes": {
					Type:        "array",
					Description: "The shapes to draw",
					Items:       &protocol.ToolProperty{Type: "object"},
				},
			},
			Required: []string{"path", "shapes"},
		},
	}
}

// HandleDxfDraw builds, saves and optionally catalogs a drawing
func HandleDxfDraw(params any) (any, error) {
	logger.Info("Handling dxf_draw tool invocation")

	paramsMap, ok := params.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid parameters format")
	}
	p := util.Params(paramsMap)

	path, err := p.String("path", "")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path parameter is required and must be a string")
	}
	units, err := p.String("units", config.Config.Units)
	if err != nil {
		return nil, err
	}
	version, err := p.String("version", config.Config.Version)
	if err != nil {
		return nil, err
	}
	rawShapes, ok := paramsMap["shapes"].([]any)
	if !ok || len(rawShapes) == 0 {
		return nil, fmt.Errorf("shapes parameter is required and must be a non-empty array")
	}

	// build every shape before touching the drawing so a bad one leaves nothing behind
	var shapes []drawing.Shape
	for i, raw := range rawShapes {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("shape %d is not an object", i)
		}
		built, err := buildShape(util.Params(m))
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, built)
	}

	d, err := drawing.New(resolvePath(path), version, units, true)
	if err != nil {
		return nil, err
	}
	if err := d.AddShapes(shapes...); err != nil {
		return nil, err
	}

	written, err := d.Save()
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"path":     written,
		"entities": len(d.Entities()),
		"layers":   len(d.Layers()),
		"units":    d.Units(),
		"version":  d.Version().Name,
	}
	if c := currentCatalog(); c != nil {
		entry, err := c.Record(context.Background(), catalog.Entry{
			Path:     written,
			Version:  d.Version().Name,
			Units:    d.Units(),
			Layers:   len(d.Layers()),
			Entities: len(d.Entities()),
		})
		if err != nil {
			// the file exists even when recording fails
			logger.Warn("Failed to record drawing in catalog", err)
		} else {
			result["id"] = entry.ID
		}
	}
	return result, nil
}

// lapJointMarker adds a whole lap joint board, annotation layers included
type lapJointMarker struct {
	opts drawing.LapJointOptions
}

func (l lapJointMarker) Emit(d *drawing.Drawing) error { return drawing.AddLapJointBoard(d, l.opts) }
func (l lapJointMarker) LayerName() string             { return drawing.LayerCut }

func buildShape(p util.Params) (drawing.Shape, error) {
	kind, err := p.String("type", "")
	if err != nil {
		return nil, err
	}
	layer, err := p.String("layer", drawing.LayerCut)
	if err != nil {
		return nil, err
	}
	color, err := p.Int("color", 0)
	if err != nil {
		return nil, err
	}
	if err := drawing.CheckLayerName(layer); err != nil {
		return nil, err
	}
	if err := drawing.CheckColor(color); err != nil {
		return nil, err
	}

	switch strings.ToLower(kind) {
	case "rectangle", "rect":
		r, err := buildRectangle(p, layer)
		if err != nil {
			return nil, err
		}
		return r.WithColor(color), nil

	case "circle":
		cx, err := p.Float("cx")
		if err != nil {
			return nil, err
		}
		cy, err := p.Float("cy")
		if err != nil {
			return nil, err
		}
		var c drawing.Circle
		if _, ok := p["diameter"]; ok {
			dia, err := p.Float("diameter")
			if err != nil {
				return nil, err
			}
			c, err = drawing.CircleFromDiameter(cx, cy, dia, layer)
			if err != nil {
				return nil, err
			}
		} else {
			r, err := p.Float("radius")
			if err != nil {
				return nil, err
			}
			c, err = drawing.NewCircle(cx, cy, r, layer)
			if err != nil {
				return nil, err
			}
		}
		return c.WithColor(color), nil

	case "circle3p":
		v, err := p.Floats("x1", "y1", "x2", "y2", "x3", "y3")
		if err != nil {
			return nil, err
		}
		c, err := drawing.CircleFromThreePoints(v[0], v[1], v[2], v[3], v[4], v[5], layer)
		if err != nil {
			return nil, err
		}
		return c.WithColor(color), nil

	case "notched":
		v, err := p.Floats("x", "y", "width", "height", "notch_width", "depth_fraction")
		if err != nil {
			return nil, err
		}
		edgeName, err := p.String("edge", "bottom")
		if err != nil {
			return nil, err
		}
		edge, err := geometry.ParseEdge(edgeName)
		if err != nil {
			return nil, err
		}
		base, err := drawing.NewRectangle(v[0], v[1], v[2], v[3], layer)
		if err != nil {
			return nil, err
		}
		notch := geometry.CenteredNotch(base.Rect, edge, v[4], v[5])
		if _, ok := p["offset"]; ok {
			if notch.Offset, err = p.Float("offset"); err != nil {
				return nil, err
			}
		}
		n, err := drawing.NewNotchedRectangle(base.WithColor(color), notch)
		if err != nil {
			return nil, err
		}
		return n, nil

	case "lap_joint", "lapjoint":
		o := drawing.DefaultLapJointOptions()
		if o.Origin.X, err = p.FloatOr("x", 0); err != nil {
			return nil, err
		}
		if o.Origin.Y, err = p.FloatOr("y", 0); err != nil {
			return nil, err
		}
		if o.Length, err = p.FloatOr("length", o.Length); err != nil {
			return nil, err
		}
		if o.Width, err = p.FloatOr("width", o.Width); err != nil {
			return nil, err
		}
		if o.NotchWidth, err = p.FloatOr("notch_width", o.NotchWidth); err != nil {
			return nil, err
		}
		if o.DepthFraction, err = p.FloatOr("depth_fraction", o.DepthFraction); err != nil {
			return nil, err
		}
		if o.Overlay, err = p.Bool("overlay", o.DepthFraction >= 0.5); err != nil {
			return nil, err
		}
		if o.Annotate, err = p.Bool("annotate", o.Annotate); err != nil {
			return nil, err
		}
		// validate now; the board is rebuilt when it is added
		if _, err := drawing.LapJointShapes(o); err != nil {
			return nil, err
		}
		return lapJointMarker{opts: o}, nil

	case "line":
		v, err := p.Floats("x1", "y1", "x2", "y2")
		if err != nil {
			return nil, err
		}
		l, err := drawing.NewLine(v[0], v[1], v[2], v[3], layer)
		if err != nil {
			return nil, err
		}
		l.Color = color
		return l, nil

	case "text":
		value, err := p.String("value", "")
		if err != nil {
			return nil, err
		}
		v, err := p.Floats("x", "y")
		if err != nil {
			return nil, err
		}
		h, err := p.FloatOr("height", 2.5)
		if err != nil {
			return nil, err
		}
		t, err := drawing.NewText(value, v[0], v[1], h, layer)
		if err != nil {
			return nil, err
		}
		t.Color = color
		return t, nil

	case "":
		return nil, fmt.Errorf("type is required")
	default:
		return nil, fmt.Errorf("unknown shape type: %s", kind)
	}
}

func buildRectangle(p util.Params, layer string) (drawing.Rectangle, error) {
	if _, ok := p["x1"]; ok {
		v, err := p.Floats("x1", "y1", "x2", "y2")
		if err != nil {
			return drawing.Rectangle{}, err
		}
		return drawing.RectangleFromCorners(v[0], v[1], v[2], v[3], layer)
	}
	if _, ok := p["cx"]; ok {
		v, err := p.Floats("cx", "cy", "width", "height")
		if err != nil {
			return drawing.Rectangle{}, err
		}
		return drawing.RectangleFromCenter(v[0], v[1], v[2], v[3], layer)
	}
	v, err := p.Floats("x", "y", "width", "height")
	if err != nil {
		return drawing.Rectangle{}, err
	}
	return drawing.NewRectangle(v[0], v[1], v[2], v[3], layer)
}

// resolvePath puts relative paths under the configured output directory
func resolvePath(path string) string {
	if filepath.IsAbs(path) || config.Config.OutputDir == "" {
		return path
	}
	return filepath.Join(config.Config.OutputDir, path)
}

// DxfInspectTool returns the dxf_inspect tool definition
func DxfInspectTool() protocol.Tool {
	return protocol.Tool{
		Name:        "dxf_inspect",
		Description: "Reads a DXF file and lists its circles, polylines and lines",
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"path": {
					Type:        "string",
					Description: "The DXF file to read",
				},
			},
			Required: []string{"path"},
		},
	}
}

// HandleDxfInspect handles the dxf_inspect tool invocation
func HandleDxfInspect(params any) (any, error) {
	logger.Info("Handling dxf_inspect tool invocation")

	paramsMap, ok := params.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid parameters format")
	}
	path, ok := paramsMap["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("path parameter is required and must be a string")
	}
	summary, err := inspect.File(resolvePath(path))
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// DxfCatalogTool returns the dxf_catalog tool definition
func DxfCatalogTool() protocol.Tool {
	return protocol.Tool{
		Name:        "dxf_catalog",
		Description: "Lists the drawings saved by dxf_draw, most recent first",
		InputSchema: protocol.InputSchema{
			Type:     "object",
			Required: []string{},
		},
	}
}

// HandleDxfCatalog lists the catalog entries
func HandleDxfCatalog(params any) (any, error) {
	logger.Info("Handling dxf_catalog tool invocation")
	c := currentCatalog()
	if c == nil {
		return nil, fmt.Errorf("no catalog configured, set DXFSHAPES_CATALOG")
	}
	entries, err := c.List(context.Background())
	if err != nil {
		return nil, err
	}
	return map[string]any{"drawings": entries}, nil
}
