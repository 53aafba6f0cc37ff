package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/webserver/core/logger"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "webserver",
	Short:   "HTTP server with path-routed WebSocket endpoints",
	Long: `webserver serves plain HTTP routes and WebSocket endpoints from one listener.
Upgrade requests are routed by path; unmatched upgrades are dropped without a handshake.

Settings are read from the environment (and a .env file) and can be overridden by flags.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env", "", "environment: development, staging, production (env: APP_ENV)")
}

// newLogger picks the handler for env: colored text for development, JSON otherwise.
func newLogger(appName, env, level string) *slog.Logger {
	opts := make([]logger.Option, 0, 2)
	switch strings.ToLower(env) {
	case "production", "prod":
		opts = append(opts, logger.WithProduction(appName))
	case "staging", "stage":
		opts = append(opts, logger.WithStaging(appName))
	default:
		opts = append(opts, logger.WithDevelopment(appName))
	}
	if level != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(level)))
	}
	return logger.New(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
