package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csams/chatmark/internal/config"
	"github.com/csams/chatmark/internal/models"
	"github.com/csams/chatmark/internal/ui"
	"pkt.systems/pslog"
)

func newTUICmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Compose messages with live markup and send them to a local chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// The terminal belongs to the UI, so logs go to a file
			logFile, err := openLogFile(cfg.Logging.File)
			if err != nil {
				return err
			}
			defer logFile.Close()

			logger := newFileLogger(logFile, cfg.Logging.Level)
			ctx := pslog.ContextWithLogger(cmd.Context(), logger)
			log.SetOutput(pslog.LogLogger(logger).Writer())

			app := ui.NewApp(cfg, models.NewConversation(cfg.History.Limit), logger)
			if err := app.Run(ctx); err != nil {
				return fmt.Errorf("failed to run tui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default is the user config dir)")
	return cmd
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func newFileLogger(w io.Writer, level string) pslog.Logger {
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: parseLevel(level),
	})
}

// parseLevel maps a config level name to pslog, defaulting to info
func parseLevel(level string) pslog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return pslog.TraceLevel
	case "debug":
		return pslog.DebugLevel
	case "warn":
		return pslog.WarnLevel
	case "error":
		return pslog.ErrorLevel
	default:
		return pslog.InfoLevel
	}
}
