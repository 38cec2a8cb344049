package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

// Settings holds process-wide defaults. Library callers can ignore it and pass
// everything explicitly; the CLI and the MCP server read it once at start-up.
type Settings struct {
	Version     string // DXF version tag for new drawings, e.g. R2010
	Units       string // drawing units for new drawings, e.g. mm
	OutputDir   string // where relative output paths are resolved
	CatalogPath string // sqlite catalog of saved drawings, empty disables it
	LogOutput   string // c (console), f (file) or b (both)
	LogFile     string
	LogLevel    string
	ShowTime    bool
}

// Config is the active configuration, loaded from the environment at init
var Config = Load()

// Load reads the environment, falling back to the defaults for unset keys
func Load() *Settings {
	return &Settings{
		Version:     getEnv("DXFSHAPES_VERSION", "R2010"),
		Units:       strings.ToLower(getEnv("DXFSHAPES_UNITS", "mm")),
		OutputDir:   getEnv("DXFSHAPES_OUTPUT_DIR", "."),
		CatalogPath: getEnv("DXFSHAPES_CATALOG", ""),
		LogOutput:   getEnv("DXFSHAPES_LOG_OUTPUT", ""),
		LogFile:     getEnv("DXFSHAPES_LOG_FILE", "/tmp/dxfshapes.log"),
		LogLevel:    getEnv("DXFSHAPES_LOG_LEVEL", "INFO"),
		ShowTime:    getEnvAsBool("DXFSHAPES_LOG_TIME", false),
	}
}

// LogOutputRune returns the logger output selector, using def when unset or invalid
func (s *Settings) LogOutputRune(def rune) rune {
	switch s.LogOutput {
	case "c", "f", "b":
		return rune(s.LogOutput[0])
	}
	return def
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
