package dxf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/richard-senior/dxfshapes/pkg/geometry"
)

// firstHandle leaves room below it for handles CAD programs reserve
const firstHandle = 0x20

// Document is an in-memory DXF drawing: header variables, the LTYPE and
// LAYER tables, and the model space entities in insertion order.
type Document struct {
	Version  Version
	Units    Units
	layers   map[string]*Layer
	order    []string
	entities []Entity
}

// NewDocument returns an empty document that already contains layer "0"
func NewDocument(version Version, units Units) *Document {
	d := &Document{
		Version: version,
		Units:   units,
		layers:  make(map[string]*Layer),
	}
	d.AddLayer(NewLayer("0"))
	return d
}

// Layer looks up a layer by exact name
func (d *Document) Layer(name string) (*Layer, bool) {
	l, ok := d.layers[name]
	return l, ok
}

// AddLayer registers l unless a layer of the same name exists, in which case
// the existing layer is returned untouched.
func (d *Document) AddLayer(l *Layer) *Layer {
	if existing, ok := d.layers[l.Name]; ok {
		return existing
	}
	d.layers[l.Name] = l
	d.order = append(d.order, l.Name)
	return l
}

// Layers returns the layers in registration order
func (d *Document) Layers() []*Layer {
	out := make([]*Layer, 0, len(d.order))
	for _, n := range d.order {
		out = append(out, d.layers[n])
	}
	return out
}

// Add appends entities to model space
func (d *Document) Add(es ...Entity) {
	d.entities = append(d.entities, es...)
}

// Entities returns the model space entities in insertion order
func (d *Document) Entities() []Entity {
	return append([]Entity(nil), d.entities...)
}

// usedLinetypes returns CONTINUOUS plus every linetype referenced by a layer, sorted
func (d *Document) usedLinetypes() []Linetype {
	seen := map[string]Linetype{Continuous: linetypes[Continuous]}
	for _, l := range d.layers {
		if lt, ok := LookupLinetype(l.Linetype); ok {
			seen[lt.Name] = lt
		}
	}
	out := make([]Linetype, 0, len(seen))
	for _, lt := range seen {
		out = append(out, lt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// WriteTo encodes the document as ASCII DXF
func (d *Document) WriteTo(out io.Writer) (int64, error) {
	cw := &countingWriter{w: out}
	bw := bufio.NewWriter(cw)
	w := &groupWriter{w: bw}

	// entities and tables are encoded first so that $HANDSEED is known
	var body strings.Builder
	bodyWriter := &groupWriter{w: bufio.NewWriter(&body), next: firstHandle}
	d.writeTables(bodyWriter)
	d.writeEntities(bodyWriter)
	bodyWriter.str(0, "EOF")
	if err := bodyWriter.flush(); err != nil {
		return cw.n, err
	}

	w.str(0, "SECTION")
	w.str(2, "HEADER")
	w.str(9, "$ACADVER")
	w.str(1, d.Version.Code)
	if d.Version.Modern() {
		w.str(9, "$HANDSEED")
		w.str(5, strconv.FormatUint(bodyWriter.next, 16))
	}
	w.str(9, "$INSUNITS")
	w.num(70, int(d.Units))
	w.str(9, "$MEASUREMENT")
	w.num(70, measurement(d.Units))
	w.str(0, "ENDSEC")
	if _, err := bw.WriteString(body.String()); err != nil {
		return cw.n, err
	}
	if err := w.flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// measurement is 0 for imperial and 1 for metric drawings
func measurement(u Units) int {
	switch u {
	case Inches, Feet, Yards:
		return 0
	default:
		return 1
	}
}

func (d *Document) writeTables(w *groupWriter) {
	w.str(0, "SECTION")
	w.str(2, "TABLES")

	lts := d.usedLinetypes()
	w.str(0, "TABLE")
	w.str(2, "LTYPE")
	w.handle()
	if d.Version.Modern() {
		w.str(100, "AcDbSymbolTable")
	}
	w.num(70, len(lts))
	for _, lt := range lts {
		w.str(0, "LTYPE")
		w.handle()
		if d.Version.Modern() {
			w.str(100, "AcDbSymbolTableRecord")
			w.str(100, "AcDbLinetypeTableRecord")
		}
		w.str(2, lt.Name)
		w.num(70, 0)
		w.str(3, lt.Description)
		w.num(72, 65)
		w.num(73, len(lt.Pattern))
		w.float(40, lt.TotalLength())
		for _, p := range lt.Pattern {
			w.float(49, p)
			if d.Version.Modern() {
				w.num(74, 0)
			}
		}
	}
	w.str(0, "ENDTAB")

	layers := d.Layers()
	w.str(0, "TABLE")
	w.str(2, "LAYER")
	w.handle()
	if d.Version.Modern() {
		w.str(100, "AcDbSymbolTable")
	}
	w.num(70, len(layers))
	for _, l := range layers {
		w.str(0, "LAYER")
		w.handle()
		if d.Version.Modern() {
			w.str(100, "AcDbSymbolTableRecord")
			w.str(100, "AcDbLayerTableRecord")
		}
		w.str(2, l.Name)
		w.num(70, 0)
		w.num(62, l.Color)
		w.str(6, l.Linetype)
		if d.Version.Modern() {
			w.num(290, boolFlag(l.Plot))
			w.num(370, l.Lineweight)
		}
	}
	w.str(0, "ENDTAB")

	w.str(0, "ENDSEC")
}

func (d *Document) writeEntities(w *groupWriter) {
	w.str(0, "SECTION")
	w.str(2, "ENTITIES")
	for _, e := range d.entities {
		e.encode(w, d.Version)
	}
	w.str(0, "ENDSEC")
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

///////////////////////////////////////////////////////////////////////////////
/// GROUP CODE WRITER
///////////////////////////////////////////////////////////////////////////////

// groupWriter emits code/value line pairs and hands out entity handles.
// The first write error sticks and is reported by flush.
type groupWriter struct {
	w    *bufio.Writer
	next uint64
	err  error
}

func (g *groupWriter) pair(code int, value string) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, "%3d\n%s\n", code, value)
}

func (g *groupWriter) str(code int, s string) {
	g.pair(code, s)
}

func (g *groupWriter) num(code int, i int) {
	g.pair(code, strconv.Itoa(i))
}

func (g *groupWriter) float(code int, f float64) {
	g.pair(code, formatFloat(f))
}

// point writes x, y and z (always 0) using code, code+10 and code+20
func (g *groupWriter) point(code int, p geometry.Point) {
	g.float(code, p.X)
	g.float(code+10, p.Y)
	g.float(code+20, 0)
}

func (g *groupWriter) handle() {
	g.pair(5, strconv.FormatUint(g.next, 16))
	g.next++
}

func (g *groupWriter) flush() error {
	if g.err != nil {
		return g.err
	}
	return g.w.Flush()
}

// formatFloat prints the shortest round-tripping form, always with a decimal point
func formatFloat(f float64) string {
	if f == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
