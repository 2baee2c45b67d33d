// Wayfare: travel-planning MCP server.
//
// Exposes destination guides, personalized itineraries, scored
// recommendations, and seasonal/local insights as MCP tools over stdio,
// backed by SQLite with optional Gemini enrichment.
//
// Usage:
//
//	wayfare serve     # Start MCP server (stdio transport)
//	wayfare version   # Print version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wayfarelabs/wayfare/internal/config"
	wayserver "github.com/wayfarelabs/wayfare/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
	case "--version", "-v", "version":
		fmt.Printf("wayfare v%s\n", wayserver.Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "wayfare.yaml", "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Logs go to stderr — stdout belongs to the MCP stdio transport.
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: cfg.ServerName})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s, cleanup, err := wayserver.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	logger.Info("serving", "db", cfg.DBPath, "version", wayserver.Version)
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Wayfare v%s — travel-planning MCP server

Usage:
  wayfare serve [-config wayfare.yaml]   Start the MCP server (stdio transport)
  wayfare version                        Print version

Environment:
  GEMINI_API_KEY    Enables generative content enrichment (optional)
  WAYFARE_DB_PATH   Overrides the SQLite database path

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "wayfare": {
        "command": "wayfare",
        "args": ["serve"]
      }
    }
  }
`, wayserver.Version)
}
