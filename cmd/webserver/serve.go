package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dmitrymomot/webserver/app/webserver"
	"github.com/dmitrymomot/webserver/core/config"
	"github.com/dmitrymomot/webserver/core/health"
	"github.com/dmitrymomot/webserver/core/logger"
	"github.com/dmitrymomot/webserver/core/wsrouter"
	"github.com/dmitrymomot/webserver/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the web server with the demo /echo and /chat/:room WebSocket routes and /health.`,
	RunE:  runServe,
}

func init() {
	addServerFlags(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

// addServerFlags defines the flags shared by serve and routes.
func addServerFlags(f *pflag.FlagSet) {
	f.String("addr", "", "listen address, overrides --host and --port (env: BIND_ADDR)")
	f.String("host", "", "bind host (env: BIND_HOST, default 0.0.0.0)")
	f.Int("port", 0, "bind port (env: BIND_PORT, default 80 or 443 with TLS)")
	f.String("tls-cert", "", "TLS certificate file (env: SERVER_TLS_CERT_FILE)")
	f.String("tls-key", "", "TLS key file (env: SERVER_TLS_KEY_FILE)")
	f.String("cors", "", "allowed CORS origins, comma separated (env: CORS_DOMAIN)")
	f.String("request-logging", "", "request logging: false, true, full (env: REQUEST_LOGGING)")
	f.Bool("csp", false, "send Content-Security-Policy: default-src 'self' (env: USE_CSP)")
	f.Bool("allow-any-origin", false, "accept WebSocket handshakes from any origin (env: WS_ALLOW_ANY_ORIGIN)")
	f.String("static", "", "directory served under /static/")
	f.String("htpasswd", "", "htpasswd file guarding /admin/")
}

// loadConfig reads the environment and applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (webserver.Config, error) {
	var cfg webserver.Config
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	boolean := func(name string, dst *bool) {
		if flags.Changed(name) {
			*dst, _ = flags.GetBool(name)
		}
	}

	str("log-level", &cfg.LogLevel)
	str("env", &cfg.Env)
	str("addr", &cfg.Addr)
	str("host", &cfg.Host)
	str("tls-cert", &cfg.Server.TLSCertFile)
	str("tls-key", &cfg.Server.TLSKeyFile)
	str("cors", &cfg.CORSDomain)
	str("request-logging", &cfg.RequestLogging)
	boolean("csp", &cfg.ContentSecurityPolicy)
	boolean("allow-any-origin", &cfg.WSAllowAnyOrigin)
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

	app, err := webserver.New(cfg,
		webserver.WithLogger(log),
		webserver.WithWSOptions(wsrouter.WithSubprotocols("echo")),
	)
	if err != nil {
		return fmt.Errorf("create web server: %w", err)
	}

	if err := registerRoutes(app, cmd.Flags()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start web server: %w", err)
	}

	<-ctx.Done()
	log.Info("shutting down", logger.Event("shutdown"), logger.Error(context.Cause(ctx)))

	return app.Stop()
}

// registerRoutes wires the demo routes, plus the optional static and admin handlers.
func registerRoutes(app *webserver.App, flags *pflag.FlagSet) error {
	app.Use(connectionLog(app.Logger()))
	app.Handle("/echo", echo)
	app.Handle("/chat/:room", chatRoom)

	app.HTTP().Get("/health", health.Readiness(app.Logger(), app.Healthcheck))
	app.HTTP().Get("/health/live", health.Liveness)

	if dir, _ := flags.GetString("static"); dir != "" {
		if err := app.Static("/static/", dir); err != nil {
			return err
		}
	}

	if path, _ := flags.GetString("htpasswd"); path != "" {
		provider, err := middleware.HtpasswdProvider(path)
		if err != nil {
			return fmt.Errorf("load htpasswd: %w", err)
		}
		app.HTTP().With(middleware.Protected(provider)).Get("/admin/routes", listRoutes(app.WS()))
	}

	return nil
}
