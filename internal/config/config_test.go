package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DXFSHAPES_VERSION", "DXFSHAPES_UNITS", "DXFSHAPES_CATALOG", "DXFSHAPES_LOG_OUTPUT", "DXFSHAPES_LOG_TIME"} {
		t.Setenv(k, "")
	}

	s := Load()
	assert.Equal(t, "R2010", s.Version)
	assert.Equal(t, "mm", s.Units)
	assert.Equal(t, "", s.CatalogPath)
	assert.False(t, s.ShowTime)
	assert.Equal(t, 'f', s.LogOutputRune('f'))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DXFSHAPES_VERSION", "R2000")
	t.Setenv("DXFSHAPES_UNITS", "IN")
	t.Setenv("DXFSHAPES_LOG_OUTPUT", "b")
	t.Setenv("DXFSHAPES_LOG_TIME", "true")

	s := Load()
	assert.Equal(t, "R2000", s.Version)
	assert.Equal(t, "in", s.Units)
	assert.Equal(t, 'b', s.LogOutputRune('c'))
	assert.True(t, s.ShowTime)
}

func TestLogOutputRuneIgnoresGarbage(t *testing.T) {
	s := &Settings{LogOutput: "stdout"}
	assert.Equal(t, 'c', s.LogOutputRune('c'))
}
