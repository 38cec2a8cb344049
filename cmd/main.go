package main

import (
	"fmt"
	"os"

	"github.com/richard-senior/dxfshapes/internal/config"
	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/catalog"
	"github.com/richard-senior/dxfshapes/pkg/server"
	"github.com/richard-senior/dxfshapes/pkg/tools"
)

// The MCP server. stdout carries the protocol so logging goes to file by default.
func main() {
	cfg := config.Config
	logger.SetShowDateTime(true)
	logger.SetLogFile(cfg.LogFile)
	logger.SetConsoleWriter(os.Stderr)
	if err := logger.SetLogOutput(cfg.LogOutputRune('f')); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("Starting dxfshapes MCP server", server.Version)
	for i, arg := range os.Args[1:] {
		logger.Debug(fmt.Sprintf("Argument %d:", i+1), arg)
	}

	if err := run(cfg); err != nil {
		logger.Error("Server error:", err)
		os.Exit(1)
	}
	logger.Info("MCP server shutting down")
}

// run serves until the client goes away; the catalog is closed before returning
func run(cfg *config.Settings) error {
	if cfg.CatalogPath != "" {
		c, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			logger.Error("Catalog disabled:", err)
		} else {
			defer func() {
				tools.SetCatalog(nil)
				if err := c.Close(); err != nil {
					logger.Warn("Failed to close catalog:", err)
				}
			}()
			tools.SetCatalog(c)
		}
	}
	return server.GetInstance().Start()
}
