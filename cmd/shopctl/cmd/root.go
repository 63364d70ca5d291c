// Package cmd provides the CLI commands for shopctl.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shopforge/shopctl/internal/adapter/outbound/state"
	"github.com/shopforge/shopctl/internal/api"
	"github.com/shopforge/shopctl/internal/config"
	"github.com/shopforge/shopctl/internal/domain/session"
	"github.com/shopforge/shopctl/internal/service"
)

var cfgFile string
var assumeYes bool

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "shopctl - marketplace admin client",
	Long: `shopctl is a command-line client for the marketplace admin API.

It manages sellers, seller registrations, shops, user accounts, promotional
banners, user reports, and revenue analytics from the terminal.

Quick start:
  1. Point it at your API: export SHOPCTL_API_BASE_URL=https://api.example.com
  2. Log in: shopctl login --email admin@example.com
  3. Explore: shopctl sellers list

Configuration:
  Config is loaded from shopctl.yaml in the current directory,
  $HOME/.shopctl/, or /etc/shopctl/.

  Environment variables can override config values with the SHOPCTL_ prefix.
  Example: SHOPCTL_API_BASE_URL=https://api.example.com

The login session is persisted to $HOME/.shopctl/session.json and reused
until it expires or you run shopctl logout.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./shopctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func initConfig() {
	config.InitViper(cfgFile)
}

// app bundles the wired-up pieces every command needs: configuration, the
// structured logger, the session owner, and the API client.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions *service.SessionService
	client   *api.Client
}

// newApp loads config and wires the session store, session service, and API
// client together. The client pulls its bearer token from the session
// service and reports forced invalidations back to it, which clears the
// persisted session so the next command starts logged out.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Debug("loaded config", "file", configFile)
	}

	store := stateStore(cfg, logger)
	sessions := service.NewSessionService(store, logger)

	errOut := cmd.ErrOrStderr()
	sessions.SetForcedLogoutHandler(func(reason string) {
		fmt.Fprintf(errOut, "Your session is no longer valid (%s). Run 'shopctl login' to sign in again.\n", reason)
	})

	reg := prometheus.NewRegistry()
	metrics := api.NewMetrics(reg)
	if cfg.Metrics.Addr != "" {
		serveMetrics(cfg.Metrics.Addr, reg, logger)
	}

	client := api.NewClient(
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithTimeout(cfg.APITimeout()),
		api.WithTokenFunc(sessions.Token),
		api.WithSessionInvalidHandler(sessions.HandleSessionInvalid),
		api.WithLogger(logger),
		api.WithMetrics(metrics),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		client:   client,
	}, nil
}

func stateStore(cfg *config.Config, logger *slog.Logger) session.Store {
	return state.NewFileSessionStore(cfg.Session.Path, logger)
}

// requireAuth refuses to proceed without a valid login. Mirrors the route
// guard: anonymous callers are pointed at the login flow.
func (a *app) requireAuth(attempted string) error {
	d := session.RequireAuth(a.sessions.Current(), attempted)
	if !d.Allowed {
		return fmt.Errorf("not logged in; run 'shopctl login' first")
	}
	return nil
}

// requireAdmin additionally checks the admin role. Non-admins are allowed to
// stay logged in but are refused the command.
func (a *app) requireAdmin(attempted string) error {
	d := session.RequireRole(a.sessions.Current(), session.RoleAdmin, attempted)
	if !d.Allowed {
		if d.RedirectTo == session.RouteLogin {
			return fmt.Errorf("not logged in; run 'shopctl login' first")
		}
		return fmt.Errorf("this command requires the admin role")
	}
	return nil
}

// serveMetrics exposes the Prometheus registry on /metrics. Best effort: a
// busy port logs a warning and the command proceeds without metrics.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry: reg,
	}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics listener stopped", "addr", addr, "error", err)
		}
	}()
	logger.Debug("metrics listener started", "addr", addr)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
