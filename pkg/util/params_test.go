package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAsFloat(t *testing.T) {
	for in, want := range map[any]float64{1.5: 1.5, 3: 3, int64(-2): -2, " 2.25 ": 2.25, float32(0.5): 0.5} {
		got, err := GetAsFloat(in)
		require.NoError(t, err, "%v", in)
		assert.Equal(t, want, got)
	}
	for _, bad := range []any{nil, "abc", true, math.NaN(), math.Inf(1), []int{1}} {
		_, err := GetAsFloat(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestGetAsInteger(t *testing.T) {
	n, err := GetAsInteger(4.0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = GetAsInteger("12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = GetAsInteger(4.5)
	assert.Error(t, err)
	_, err = GetAsInteger(nil)
	assert.Error(t, err)
}

func TestGetAsStringAndBool(t *testing.T) {
	s, err := GetAsString(2.5)
	require.NoError(t, err)
	assert.Equal(t, "2.5", s)
	_, err = GetAsString(nil)
	assert.Error(t, err)

	b, err := GetAsBool("true")
	require.NoError(t, err)
	assert.True(t, b)
	_, err = GetAsBool(1)
	assert.Error(t, err)
}

func TestParams(t *testing.T) {
	p := Params{"x": 1.0, "name": "cut", "flag": "false", "n": 3.0}

	v, err := p.Floats("x", "n")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, v)

	_, err = p.Float("missing")
	assert.EqualError(t, err, "missing parameter is required")

	f, err := p.FloatOr("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	s, err := p.String("name", "")
	require.NoError(t, err)
	assert.Equal(t, "cut", s)
	s, err = p.String("other", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", s)

	b, err := p.Bool("flag", true)
	require.NoError(t, err)
	assert.False(t, b)

	i, err := p.Int("n", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}
