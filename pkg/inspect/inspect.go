package inspect

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
	dxf_document "github.com/rpaloschi/dxf-go/document"
	dxf_entities "github.com/rpaloschi/dxf-go/entities"
)

// CircleInfo is a circle found in a DXF file
type CircleInfo struct {
	Center geometry.Point `json:"center"`
	Radius float64        `json:"radius"`
	Layer  string         `json:"layer"`
}

// PolylineInfo is a polyline found in a DXF file
type PolylineInfo struct {
	Vertices []geometry.Point `json:"vertices"`
	Closed   bool             `json:"closed"`
	Layer    string           `json:"layer"`
}

// LineInfo is a line found in a DXF file
type LineInfo struct {
	Start geometry.Point `json:"start"`
	End   geometry.Point `json:"end"`
	Layer string         `json:"layer"`
}

// Summary lists the geometry of a DXF file's model space
type Summary struct {
	Circles   []CircleInfo   `json:"circles"`
	Polylines []PolylineInfo `json:"polylines"`
	Lines     []LineInfo     `json:"lines"`
	// Other counts entities without a geometry summary by Go type name
	Other map[string]int `json:"other,omitempty"`
}

// Total is the number of entities in the summary
func (s *Summary) Total() int {
	n := len(s.Circles) + len(s.Polylines) + len(s.Lines)
	for _, c := range s.Other {
		n += c
	}
	return n
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d entities\n", s.Total())
	for _, c := range s.Circles {
		fmt.Fprintf(&b, "CIRCLE %s center=%v r=%g\n", c.Layer, c.Center, c.Radius)
	}
	for _, p := range s.Polylines {
		kind := "open"
		if p.Closed {
			kind = "closed"
		}
		fmt.Fprintf(&b, "POLYLINE %s %s %d vertices %v\n", p.Layer, kind, len(p.Vertices), p.Vertices)
	}
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "LINE %s %v -> %v\n", l.Layer, l.Start, l.End)
	}
	for name, n := range s.Other {
		fmt.Fprintf(&b, "%s x%d\n", name, n)
	}
	return b.String()
}

// File opens and summarises the DXF file at path
func File(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DXF file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a DXF stream and summarises its entities
func Read(r io.Reader) (*Summary, error) {
	doc, err := dxf_document.DxfDocumentFromStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DXF: %w", err)
	}

	s := &Summary{Other: map[string]int{}}
	for _, entity := range doc.Entities.Entities {
		if polyline, ok := entity.(*dxf_entities.Polyline); ok {
			p := PolylineInfo{Closed: polyline.Closed, Layer: polyline.LayerName}
			for _, v := range polyline.Vertices {
				p.Vertices = append(p.Vertices, geometry.NewPoint(v.Location.X, v.Location.Y))
			}
			s.Polylines = append(s.Polylines, p)
		} else if circle, ok := entity.(*dxf_entities.Circle); ok {
			s.Circles = append(s.Circles, CircleInfo{
				Center: geometry.NewPoint(circle.Center.X, circle.Center.Y),
				Radius: circle.Radius,
				Layer:  circle.LayerName,
			})
		} else if line, ok := entity.(*dxf_entities.Line); ok {
			s.Lines = append(s.Lines, LineInfo{
				Start: geometry.NewPoint(line.Start.X, line.Start.Y),
				End:   geometry.NewPoint(line.End.X, line.End.Y),
				Layer: line.LayerName,
			})
		} else {
			s.Other[fmt.Sprintf("%T", entity)]++
		}
	}
	logger.Debug("Inspected DXF", s.Total(), "entities")
	return s, nil
}
