package drawing

import (
	"bytes"
	"testing"

	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/geometry"
	"github.com/richard-senior/dxfshapes/pkg/inspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDrawing(t *testing.T) {
	d, err := NewSampleDrawing("sample")
	require.NoError(t, err)
	require.Len(t, d.Shapes(), 4)

	var buf bytes.Buffer
	_, err = d.WriteTo(&buf)
	require.NoError(t, err)
	summary, err := inspect.Read(&buf)
	require.NoError(t, err)
	assert.Len(t, summary.Polylines, 2)
	require.Len(t, summary.Circles, 2)
	assert.InDelta(t, 20, summary.Circles[1].Radius, 1e-9, "from diameter 40")
}

func TestLapJointOutline(t *testing.T) {
	for _, f := range []float64{0.1, 0.2, 0.3} {
		o := DefaultLapJointOptions()
		o.DepthFraction = f
		o.Annotate = false

		shapes, err := LapJointShapes(o)
		require.NoError(t, err)
		require.Len(t, shapes, 1)

		board, ok := shapes[0].(NotchedRectangle)
		require.True(t, ok)
		assert.Equal(t, LayerCut, board.LayerName())
		require.Len(t, board.Depths(), 4)
		for _, depth := range board.Depths() {
			assert.InDelta(t, f*o.Width, depth, 1e-9)
		}

		outline := board.Outline()
		assert.Len(t, outline, 4+4*4)
		assert.False(t, outline.SelfIntersects())
		assert.InDelta(t, o.Length*o.Width-4*o.NotchWidth*f*o.Width, outline.Area(), 1e-6)
	}
}

func TestLapJointNotchPositions(t *testing.T) {
	o := DefaultLapJointOptions()
	notches, err := o.notches()
	require.NoError(t, err)
	require.Len(t, notches, 4)

	gap := (200.0 - 60) / 3
	assert.Equal(t, geometry.EdgeBottom, notches[0].Edge)
	assert.InDelta(t, gap, notches[0].Offset, 1e-9)
	assert.InDelta(t, 2*gap+30, notches[1].Offset, 1e-9)
	assert.Equal(t, geometry.EdgeTop, notches[3].Edge)

	o.NotchWidth = 100
	_, err = o.notches()
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry)
}

func TestLapJointHalfDepth(t *testing.T) {
	o := DefaultLapJointOptions()
	o.DepthFraction = 0.5
	o.Annotate = false

	_, err := LapJointShapes(o)
	assert.ErrorIs(t, err, geometry.ErrInvalidGeometry, "opposite notches meet in the middle")

	o.Overlay = true
	shapes, err := LapJointShapes(o)
	require.NoError(t, err)
	require.Len(t, shapes, 5)
	notch := shapes[1].(Rectangle)
	assert.InDelta(t, 25, notch.Height, 1e-9)
	assert.InDelta(t, 30, notch.Width, 1e-9)
}

func TestAddLapJointBoardAnnotations(t *testing.T) {
	d := newTestDrawing(t)
	require.NoError(t, AddLapJointBoard(d, DefaultLapJointOptions()))

	ref, ok := d.Layer(LayerReference)
	require.True(t, ok)
	assert.Equal(t, dxf.ColorCyan, ref.Color)
	assert.Equal(t, "DASHED", ref.Linetype)
	label, ok := d.Layer(LayerLabel)
	require.True(t, ok)
	assert.Equal(t, dxf.ColorGreen, label.Color)

	var lines, texts []dxf.Entity
	for _, e := range d.Entities() {
		switch e.(type) {
		case *dxf.Line:
			lines = append(lines, e)
		case *dxf.Text:
			texts = append(texts, e)
		}
	}
	assert.Len(t, lines, 3)
	require.Len(t, texts, 3)
	assert.Equal(t, "Notched Rectangle - 20% Depth Joint Example", texts[0].(*dxf.Text).Value)
	assert.Equal(t, "20%", texts[1].(*dxf.Text).Value)

	top := lines[0].(*dxf.Line)
	assert.InDelta(t, 40, top.Start.Y, 1e-9)
	assert.InDelta(t, -10, top.Start.X, 1e-9)
	assert.Equal(t, LayerReference, top.LayerName())
}
