package dxf

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedVersion is returned for DXF version tags we cannot write
var ErrUnsupportedVersion = errors.New("unsupported DXF version")

///////////////////////////////////////////////////////////////////////////////
/// VERSION
///////////////////////////////////////////////////////////////////////////////

// Version is a release name such as R2010 paired with its $ACADVER code
type Version struct {
	Name string
	Code string
}

var versions = []Version{
	{"R12", "AC1009"},
	{"R2000", "AC1015"},
	{"R2004", "AC1018"},
	{"R2007", "AC1021"},
	{"R2010", "AC1024"},
	{"R2013", "AC1027"},
	{"R2018", "AC1032"},
}

// DefaultVersion is broadly compatible with CAM software
var DefaultVersion = Version{"R2010", "AC1024"}

// ParseVersion accepts either a release name (R2010) or an $ACADVER code (AC1024)
func ParseVersion(s string) (Version, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, v := range versions {
		if v.Name == s || v.Code == s {
			return v, nil
		}
	}
	return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
}

// Versions lists the supported releases, oldest first
func Versions() []Version {
	return append([]Version(nil), versions...)
}

// Modern reports whether the version uses subclass markers, lineweights and plot flags (R2000+)
func (v Version) Modern() bool {
	return v.Code >= "AC1015"
}

func (v Version) String() string {
	return v.Name
}

///////////////////////////////////////////////////////////////////////////////
/// UNITS
///////////////////////////////////////////////////////////////////////////////

// Units is the $INSUNITS drawing unit code
type Units int

const (
	Unitless    Units = 0
	Inches      Units = 1
	Feet        Units = 2
	Millimeters Units = 4
	Centimeters Units = 5
	Meters      Units = 6
	Yards       Units = 10
)

var unitNames = map[string]Units{
	"mm": Millimeters,
	"cm": Centimeters,
	"m":  Meters,
	"in": Inches,
	"ft": Feet,
	"yd": Yards,
}

// ParseUnits maps a short unit name (mm, cm, m, in, ft, yd) to its code
func ParseUnits(s string) (Units, bool) {
	u, ok := unitNames[strings.ToLower(strings.TrimSpace(s))]
	return u, ok
}

// UnitNames returns the accepted unit names in sorted order
func UnitNames() []string {
	names := make([]string, 0, len(unitNames))
	for n := range unitNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (u Units) String() string {
	for n, code := range unitNames {
		if code == u {
			return n
		}
	}
	return fmt.Sprintf("units(%d)", int(u))
}

///////////////////////////////////////////////////////////////////////////////
/// LINETYPE
///////////////////////////////////////////////////////////////////////////////

// Linetype is an LTYPE table entry. Pattern holds dash lengths: positive for
// a drawn dash, negative for a gap, zero for a dot.
type Linetype struct {
	Name        string
	Description string
	Pattern     []float64
}

const Continuous = "CONTINUOUS"

var linetypes = map[string]Linetype{
	"CONTINUOUS": {"CONTINUOUS", "Solid line", nil},
	"DASHED":     {"DASHED", "Dashed __ __ __ __ __ __ __ __", []float64{0.5, -0.25}},
	"HIDDEN":     {"HIDDEN", "Hidden __ __ __ __ __ __ __ __", []float64{0.25, -0.125}},
	"CENTER":     {"CENTER", "Center ____ _ ____ _ ____ _ ____", []float64{1.25, -0.25, 0.25, -0.25}},
	"DASHDOT":    {"DASHDOT", "Dash dot __ . __ . __ . __ . __", []float64{0.5, -0.25, 0, -0.25}},
	"DOT":        {"DOT", "Dot . . . . . . . . . . . . . .", []float64{0, -0.25}},
	"PHANTOM":    {"PHANTOM", "Phantom ______  __  __  ______", []float64{1.25, -0.25, 0.25, -0.25, 0.25, -0.25}},
}

// LookupLinetype finds a standard linetype by case-insensitive name
func LookupLinetype(name string) (Linetype, bool) {
	lt, ok := linetypes[strings.ToUpper(strings.TrimSpace(name))]
	return lt, ok
}

// LinetypeNames lists the standard linetypes alphabetically
func LinetypeNames() []string {
	names := make([]string, 0, len(linetypes))
	for name := range linetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalLength is the sum of the absolute pattern element lengths
func (lt Linetype) TotalLength() float64 {
	var total float64
	for _, p := range lt.Pattern {
		if p < 0 {
			total -= p
		} else {
			total += p
		}
	}
	return total
}

///////////////////////////////////////////////////////////////////////////////
/// LAYER
///////////////////////////////////////////////////////////////////////////////

// ACI colour numbers used by the standard layer set
const (
	ColorByBlock = 0
	ColorRed     = 1
	ColorYellow  = 2
	ColorGreen   = 3
	ColorCyan    = 4
	ColorBlue    = 5
	ColorMagenta = 6
	ColorWhite   = 7
	ColorByLayer = 256
)

// DefaultLineweight is 0.25mm, in hundredths of a millimetre
const DefaultLineweight = 25

// Layer is a LAYER table entry
type Layer struct {
	Name       string `json:"name"`
	Color      int    `json:"color"`
	Linetype   string `json:"linetype"`
	Lineweight int    `json:"lineweight"`
	Plot       bool   `json:"plot"`
}

// NewLayer returns a layer with the library defaults: white, continuous, 0.25mm, plotted
func NewLayer(name string) *Layer {
	return &Layer{
		Name:       name,
		Color:      ColorWhite,
		Linetype:   Continuous,
		Lineweight: DefaultLineweight,
		Plot:       true,
	}
}
