package dxf

import "github.com/richard-senior/dxfshapes/pkg/geometry"

// Entity is anything that can be written to the ENTITIES section
type Entity interface {
	Type() string
	LayerName() string
	encode(w *groupWriter, v Version)
}

// Common holds the attributes shared by all entities
type Common struct {
	Layer string
	// Color overrides the layer colour; 0 means BYLAYER
	Color int
}

func (c Common) LayerName() string {
	if c.Layer == "" {
		return "0"
	}
	return c.Layer
}

func (c Common) encode(w *groupWriter, v Version) {
	w.handle()
	if v.Modern() {
		w.str(100, "AcDbEntity")
	}
	w.str(8, c.LayerName())
	if c.Color > 0 && c.Color != ColorByLayer {
		w.num(62, c.Color)
	}
}

// Polyline is a 2D polyline written as POLYLINE/VERTEX/SEQEND
type Polyline struct {
	Common
	Vertices []geometry.Point
	Closed   bool
}

func (p *Polyline) Type() string { return "POLYLINE" }

func (p *Polyline) encode(w *groupWriter, v Version) {
	w.str(0, "POLYLINE")
	p.Common.encode(w, v)
	if v.Modern() {
		w.str(100, "AcDb2dPolyline")
	}
	w.num(66, 1)
	w.point(10, geometry.Point{})
	flags := 0
	if p.Closed {
		flags |= 1
	}
	w.num(70, flags)

	for _, pt := range p.Vertices {
		w.str(0, "VERTEX")
		p.Common.encode(w, v)
		if v.Modern() {
			w.str(100, "AcDbVertex")
			w.str(100, "AcDb2dVertex")
		}
		w.point(10, pt)
		w.num(70, 0)
	}

	w.str(0, "SEQEND")
	p.Common.encode(w, v)
}

// Circle is a CIRCLE entity
type Circle struct {
	Common
	Center geometry.Point
	Radius float64
}

func (c *Circle) Type() string { return "CIRCLE" }

func (c *Circle) encode(w *groupWriter, v Version) {
	w.str(0, "CIRCLE")
	c.Common.encode(w, v)
	if v.Modern() {
		w.str(100, "AcDbCircle")
	}
	w.point(10, c.Center)
	w.float(40, c.Radius)
}

// Line is a LINE entity
type Line struct {
	Common
	Start, End geometry.Point
}

func (l *Line) Type() string { return "LINE" }

func (l *Line) encode(w *groupWriter, v Version) {
	w.str(0, "LINE")
	l.Common.encode(w, v)
	if v.Modern() {
		w.str(100, "AcDbLine")
	}
	w.point(10, l.Start)
	w.point(11, l.End)
}

// Text alignment codes (groups 72 and 73)
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2

	AlignBaseline = 0
	AlignBottom   = 1
	AlignMiddle   = 2
	AlignTop      = 3
)

// Text is a single line TEXT entity
type Text struct {
	Common
	Insert geometry.Point
	Height float64
	Value  string
	HAlign int
	VAlign int
	Rotate float64
}

func (t *Text) Type() string { return "TEXT" }

func (t *Text) encode(w *groupWriter, v Version) {
	w.str(0, "TEXT")
	t.Common.encode(w, v)
	if v.Modern() {
		w.str(100, "AcDbText")
	}
	w.point(10, t.Insert)
	w.float(40, t.Height)
	w.str(1, t.Value)
	if t.Rotate != 0 {
		w.float(50, t.Rotate)
	}
	if t.HAlign != AlignLeft {
		w.num(72, t.HAlign)
	}
	// any non-default alignment needs the second alignment point
	if t.HAlign != AlignLeft || t.VAlign != AlignBaseline {
		w.point(11, t.Insert)
	}
	if v.Modern() {
		w.str(100, "AcDbText")
	}
	if t.VAlign != AlignBaseline {
		w.num(73, t.VAlign)
	}
}
