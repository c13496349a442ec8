// Package cmd provides the CLI commands for the totem client.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/doistemposcafe/totem/internal/adapter/outbound/api"
	"github.com/doistemposcafe/totem/internal/adapter/outbound/state"
	"github.com/doistemposcafe/totem/internal/config"
	"github.com/doistemposcafe/totem/internal/domain/session"
)

var cfgFile string
var sessionFilePath string

var rootCmd = &cobra.Command{
	Use:   "totem",
	Short: "Totem - Dois Tempos Café client",
	Long: `Totem is the client for the Dois Tempos Café ordering system.

It signs in against the café backend, keeps the session token in a
local credentials file, and exposes the backend's resources as
role-gated commands. "totem serve" additionally runs a local front
server with the web app's page routes and guards.

Quick start:
  1. Point the client at a backend: totem init, then edit totem.yaml
  2. Sign in: totem login --email you@example.com
  3. Check who you are: totem whoami

Configuration:
  Config is loaded from totem.yaml in the current directory,
  $HOME/.totem/, or /etc/totem/.

  Environment variables can override config values with the TOTEM_ prefix.
  Example: TOTEM_BACKEND_BASE_URL=http://localhost:8081/api

Commands:
  serve       Run the local front server
  login       Sign in and store the session
  logout      Clear the stored session
  whoami      Show the current session
  register    Create an account
  init        Write a starter config file
  reset       Remove the stored session file
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./totem.yaml)")
	rootCmd.PersistentFlags().StringVar(&sessionFilePath, "session", "", "path to session.json file (default: ~/.totem/session.json)")
}

func initConfig() {
	config.InitViper(cfgFile)
}

// deps bundles the wired client-side components a command needs.
type deps struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *state.FileCredentialStore
	client   *api.Client
	sessions *session.Manager
}

// buildDeps loads config and wires the store, REST client, and session
// manager the way every command consumes them.
func buildDeps() (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logLevel := parseLogLevel(cfg.Server.LogLevel)
	if cfg.DevMode {
		logLevel = slog.LevelDebug // DevMode always forces debug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Resolve session file path: CLI flag > env var > config default.
	sessionPath := sessionFilePath
	if sessionPath == "" {
		sessionPath = os.Getenv("TOTEM_SESSION_PATH")
	}
	if sessionPath == "" {
		sessionPath = cfg.Session.Path
	}

	store := state.NewFileCredentialStore(sessionPath, logger)
	sessions := session.NewManager(store, nil, logger)
	client := api.NewClient(cfg.Backend.BaseURL, sessions, cfg.Backend.RequestTimeout(), logger)

	// The manager logs in through the client, the client fetches its
	// bearer token from the manager. Wire the loop closed here.
	sessions.SetAuthAPI(client)

	return &deps{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		client:   client,
		sessions: sessions,
	}, nil
}

// parseLogLevel maps a config string to a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
