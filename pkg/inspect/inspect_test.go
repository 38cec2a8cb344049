package inspect

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, version string, es ...dxf.Entity) *bytes.Buffer {
	t.Helper()
	v, err := dxf.ParseVersion(version)
	require.NoError(t, err)
	doc := dxf.NewDocument(v, dxf.Millimeters)
	doc.Add(es...)
	var buf bytes.Buffer
	_, err = doc.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestReadSummarisesEntities(t *testing.T) {
	for _, version := range []string{"R12", "R2010"} {
		square := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
		buf := encode(t, version,
			&dxf.Polyline{Common: dxf.Common{Layer: "cut"}, Vertices: square, Closed: true},
			&dxf.Polyline{Common: dxf.Common{Layer: "guide"}, Vertices: square[:3]},
			&dxf.Circle{Center: geometry.NewPoint(5, 5), Radius: 2.5},
			&dxf.Line{Start: geometry.NewPoint(0, 0), End: geometry.NewPoint(3, 4)},
		)

		s, err := Read(buf)
		require.NoError(t, err, version)
		require.Len(t, s.Polylines, 2, version)
		assert.Equal(t, PolylineInfo{Vertices: square, Closed: true, Layer: "cut"}, s.Polylines[0], version)
		assert.Equal(t, PolylineInfo{Vertices: square[:3], Layer: "guide"}, s.Polylines[1], version)
		require.Len(t, s.Circles, 1)
		assert.Equal(t, CircleInfo{Center: geometry.NewPoint(5, 5), Radius: 2.5, Layer: "0"}, s.Circles[0])
		require.Len(t, s.Lines, 1)
		assert.Equal(t, geometry.NewPoint(3, 4), s.Lines[0].End)
		assert.Equal(t, "0", s.Lines[0].Layer)
		assert.Equal(t, 4, s.Total())
		assert.Contains(t, s.String(), "4 entities")
		assert.Contains(t, s.String(), "POLYLINE cut closed 4 vertices")
	}
}

func TestFileErrors(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.dxf"))
	assert.Error(t, err)
}
