package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, WARN)

	l.Info("not shown")
	l.Warn("shown", 42)

	out := buf.String()
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, "[WARN] logger_test.go:")
	assert.Contains(t, out, "shown 42")
}

func TestWriterLoggerDumpsStructsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, DEBUG)

	l.Debug("layer", struct {
		Name  string `json:"name"`
		Color int    `json:"color"`
	}{"cut_layer", 1})

	out := buf.String()
	assert.Contains(t, out, "[Object of type struct")
	assert.Contains(t, out, `"name": "cut_layer"`)
}

func TestFormatsErrorsAndFloats(t *testing.T) {
	prims, objs := processArgs(errors.New("boom"), 1.5, nil)
	assert.Equal(t, []string{"boom", "1.500", "nil"}, prims)
	assert.Empty(t, objs)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetLogOutputRejectsUnknownType(t *testing.T) {
	assert.Error(t, SetLogOutput('x'))
}

func TestConsoleWriterTakesInfoOutput(t *testing.T) {
	var buf bytes.Buffer
	SetConsoleWriter(&buf)
	t.Cleanup(func() {
		SetConsoleWriter(os.Stdout)
		_ = SetLogOutput('c')
	})
	require.NoError(t, SetLogOutput('c'))

	Info("Saved drawing", "part.dxf")
	assert.Contains(t, buf.String(), "Saved drawing part.dxf")
}
