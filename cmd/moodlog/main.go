// ABOUTME: Entry point for the moodlog CLI
// ABOUTME: Wires config, logging, the SQLite store, the password gate, and the command tree

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moodlog/internal/auth"
	"moodlog/internal/config"
	"moodlog/internal/journal"
	"moodlog/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "moodlog",
		Short:         "A password-gated personal mood journal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newAddCmd(&configPath),
		newEditCmd(&configPath),
		newDeleteCmd(&configPath),
		newListCmd(&configPath),
		newShowCmd(&configPath),
		newReportCmd(&configPath),
		newPasswdCmd(&configPath),
		newExportCmd(&configPath),
	)
	return root
}

// app bundles the per-invocation resources every command needs.
type app struct {
	cfg     *config.Config
	store   *store.SQLiteStore
	gate    *auth.Gate
	journal *journal.Service
}

func openApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Logging)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	gate, err := auth.NewGateWithAttempts(ctx, st, cfg.Auth.MaxAttempts)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   st,
		gate:    gate,
		journal: journal.NewService(st),
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

// withApp wraps a command body with the open/unlock/close lifecycle.
// No journal operation runs unless the gate reaches the unlocked state.
func withApp(configPath *string, fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx, *configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.unlock(ctx); err != nil {
			return err
		}
		return fn(ctx, a, cmd, args)
	}
}

// unlock drives the gate to the unlocked state: first run prompts for a new
// password, otherwise it prompts until verified or locked out.
func (a *app) unlock(ctx context.Context) error {
	if a.gate.State() == auth.StateUninitialized {
		fmt.Println("No password is set yet.")
		secret, err := promptPassword("Choose a password (empty cancels): ")
		if err != nil {
			return err
		}
		if err := a.gate.Setup(ctx, secret); err != nil {
			return err
		}
		color.New(color.FgGreen).Println("Password set.")
		return nil
	}

	for a.gate.State() == auth.StateLocked {
		attempt, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		err = a.gate.Verify(ctx, attempt)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, auth.ErrBadCredential):
			color.New(color.FgYellow).Printf("Wrong password, %d attempt(s) left.\n", a.gate.Remaining())
		default:
			return err
		}
	}
	return nil
}

// loadConfig reads the config file, falling back to defaults when none exists.
// Priority: --config flag > MOODLOG_CONFIG > XDG_CONFIG_HOME/moodlog/moodlog.yaml
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func defaultConfigPath() string {
	if envPath := os.Getenv("MOODLOG_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "moodlog.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "moodlog", "moodlog.yaml")
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
