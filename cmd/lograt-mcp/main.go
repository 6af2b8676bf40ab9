package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Tsames/lograt/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// lograt-mcp runs the MCP server over stdio against a remote Lograt
// instance. Useful for pointing a local MCP client at data living on a
// server reachable over Tailscale.
func main() {
	serverURL := flag.String("server", "", "Lograt server URL (e.g. https://lograt.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("lograt-mcp", Version)
		return
	}

	// Logs go to stderr: stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: lograt-mcp -server <URL>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ds := mcp.NewHTTPClient(strings.TrimRight(*serverURL, "/"))
	s := mcp.New(ds, Version, log)

	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
