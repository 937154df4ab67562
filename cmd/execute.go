package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/project-mangla/apsaiassistant/internal/log"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "0.0.1"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

// Execute is the main entry point for the assistant binary.
// It handles flag parsing and command routing; main() stays minimal.
func Execute() error {
	// Handle special flags before full initialization so --version and
	// --help work even when configuration is invalid.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			printVersionInfo()
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		}
	}

	// Serving is the default (and only) mode.
	return runServe(initLogger())
}

// initLogger initializes the structured logger.
//
// Log level is controlled by the DEBUG environment variable:
//   - DEBUG set (any value): debug level logging
//   - DEBUG not set: info level logging
func initLogger() log.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level})
}

// printVersionInfo displays version information.
func printVersionInfo() {
	fmt.Printf("apsaiassistant v%s\n", AppVersion)
	fmt.Printf("Build: %s\n", BuildTime)
	fmt.Printf("Commit: %s\n", GitCommit)
}

// printHelp displays usage information.
func printHelp() {
	fmt.Println("APS Mangla assistant — school information chatbot")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  apsaiassistant                  Start the HTTP server (default)")
	fmt.Println("  apsaiassistant serve :5000      Start on a specific address")
	fmt.Println("  apsaiassistant --version        Show version information")
	fmt.Println("  apsaiassistant --help           Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY     Optional: enables AI-enhanced answers")
	fmt.Println("  SESSION_SECRET     Recommended: cookie signing secret")
	fmt.Println("  PORT               Optional: overrides the listen port")
	fmt.Println("  APSBOT_DATA_DIR    Optional: knowledge base directory (default ./data)")
	fmt.Println("  DEBUG              Optional: enable debug logging")
}
