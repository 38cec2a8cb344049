package dxf

import (
	"bufio"
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/richard-senior/dxfshapes/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct {
	code  int
	value string
}

func readTags(t *testing.T, data []byte) []tag {
	t.Helper()
	var tags []tag
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		code, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		require.NoError(t, err)
		require.True(t, sc.Scan(), "group code %d has no value", code)
		tags = append(tags, tag{code, sc.Text()})
	}
	require.NoError(t, sc.Err())
	return tags
}

// valueAfter returns the value of the first code that follows the marker pair
func valueAfter(tags []tag, markerCode int, marker string, code int) (string, bool) {
	for i, tg := range tags {
		if tg.code == markerCode && tg.value == marker {
			for _, next := range tags[i+1:] {
				if next.code == code {
					return next.value, true
				}
			}
		}
	}
	return "", false
}

func count(tags []tag, code int, value string) int {
	n := 0
	for _, tg := range tags {
		if tg.code == code && tg.value == value {
			n++
		}
	}
	return n
}

func encode(t *testing.T, d *Document) []tag {
	t.Helper()
	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return readTags(t, buf.Bytes())
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("r2010")
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, v)

	v, err = ParseVersion("AC1009")
	require.NoError(t, err)
	assert.Equal(t, "R12", v.Name)
	assert.False(t, v.Modern())

	_, err = ParseVersion("R14")
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))
	assert.Len(t, Versions(), 7)
}

func TestParseUnits(t *testing.T) {
	u, ok := ParseUnits("IN")
	assert.True(t, ok)
	assert.Equal(t, Inches, u)
	assert.Equal(t, "in", u.String())

	_, ok = ParseUnits("furlong")
	assert.False(t, ok)
	assert.Equal(t, []string{"cm", "ft", "in", "m", "mm", "yd"}, UnitNames())
}

func TestHeaderVariables(t *testing.T) {
	d := NewDocument(DefaultVersion, Centimeters)
	tags := encode(t, d)

	v, ok := valueAfter(tags, 9, "$ACADVER", 1)
	require.True(t, ok)
	assert.Equal(t, "AC1024", v)

	v, ok = valueAfter(tags, 9, "$INSUNITS", 70)
	require.True(t, ok)
	assert.Equal(t, "5", v)

	assert.Equal(t, tag{0, "EOF"}, tags[len(tags)-1])
}

func TestLayerTable(t *testing.T) {
	d := NewDocument(DefaultVersion, Millimeters)
	d.AddLayer(&Layer{Name: "construction", Color: ColorGreen, Linetype: "DASHED", Lineweight: 25, Plot: true})
	d.AddLayer(&Layer{Name: "hidden", Color: ColorBlue, Linetype: Continuous, Lineweight: 13, Plot: false})
	// ignored: name exists
	again := d.AddLayer(&Layer{Name: "construction", Color: ColorRed})
	assert.Equal(t, ColorGreen, again.Color)

	tags := encode(t, d)
	assert.Equal(t, 3, count(tags, 0, "LAYER"))
	assert.Equal(t, 1, count(tags, 2, "construction"))

	v, _ := valueAfter(tags, 2, "construction", 6)
	assert.Equal(t, "DASHED", v)
	v, _ = valueAfter(tags, 2, "hidden", 290)
	assert.Equal(t, "0", v)
	v, _ = valueAfter(tags, 2, "hidden", 370)
	assert.Equal(t, "13", v)

	// DASHED is referenced so it must be defined
	assert.Equal(t, 1, count(tags, 2, "DASHED"))
	assert.Equal(t, 1, count(tags, 2, "CONTINUOUS"))
}

func TestEntitiesAndHandles(t *testing.T) {
	d := NewDocument(DefaultVersion, Millimeters)
	d.Add(
		&Polyline{Common: Common{Layer: "cut_layer"}, Closed: true, Vertices: []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 50}}},
		&Circle{Common: Common{Layer: "cut_layer", Color: ColorRed}, Center: geometry.Point{X: 50, Y: 25}, Radius: 20},
		&Line{Start: geometry.Point{X: -10, Y: 25}, End: geometry.Point{X: 110, Y: 25}},
		&Text{Insert: geometry.Point{X: 0, Y: 65}, Height: 5, Value: "Board", VAlign: AlignMiddle},
	)
	tags := encode(t, d)

	assert.Equal(t, 1, count(tags, 0, "POLYLINE"))
	assert.Equal(t, 4, count(tags, 0, "VERTEX"))
	assert.Equal(t, 1, count(tags, 0, "SEQEND"))
	assert.Equal(t, 1, count(tags, 0, "CIRCLE"))
	assert.Equal(t, 1, count(tags, 0, "LINE"))
	assert.Equal(t, 1, count(tags, 0, "TEXT"))

	v, _ := valueAfter(tags, 0, "POLYLINE", 70)
	assert.Equal(t, "1", v)
	v, _ = valueAfter(tags, 0, "CIRCLE", 40)
	assert.Equal(t, "20.0", v)
	v, _ = valueAfter(tags, 0, "CIRCLE", 62)
	assert.Equal(t, "1", v)
	v, _ = valueAfter(tags, 0, "LINE", 8)
	assert.Equal(t, "0", v)

	handles := map[string]bool{}
	for i, tg := range tags {
		// $HANDSEED carries its value under code 5 too
		if i > 0 && tags[i-1] == (tag{9, "$HANDSEED"}) {
			continue
		}
		if tg.code == 5 {
			assert.False(t, handles[tg.value], "duplicate handle %s", tg.value)
			handles[tg.value] = true
		}
	}
	seed, ok := valueAfter(tags, 9, "$HANDSEED", 5)
	require.True(t, ok)
	assert.False(t, handles[seed], "handle seed %s already in use", seed)
}

func TestR12OmitsModernGroups(t *testing.T) {
	v, err := ParseVersion("R12")
	require.NoError(t, err)
	d := NewDocument(v, Inches)
	d.Add(&Circle{Center: geometry.Point{X: 1, Y: 1}, Radius: 1})
	tags := encode(t, d)

	for _, tg := range tags {
		assert.NotEqual(t, 100, tg.code)
		assert.NotEqual(t, 370, tg.code)
		assert.NotEqual(t, 290, tg.code)
	}
	m, _ := valueAfter(tags, 9, "$MEASUREMENT", 70)
	assert.Equal(t, "0", m)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.0", formatFloat(0))
	assert.Equal(t, "12.0", formatFloat(12))
	assert.Equal(t, "-0.25", formatFloat(-0.25))
	assert.Equal(t, "33.333333333333336", formatFloat(100.0/3))
}

func TestLinetypeLookup(t *testing.T) {
	lt, ok := LookupLinetype("dashed")
	require.True(t, ok)
	assert.Equal(t, "DASHED", lt.Name)
	assert.InDelta(t, 0.75, lt.TotalLength(), 1e-12)

	_, ok = LookupLinetype("ZIGZAG")
	assert.False(t, ok)
}
