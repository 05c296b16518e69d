package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"crmdash/internal/app"
	"crmdash/internal/config"
	"crmdash/internal/logging"
	"crmdash/internal/notifications"
)

func newUICmd(wiring commandWiring) *cobra.Command {
	var (
		logPath      string
		startBackend bool
	)
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, c, err := wiring.clientFromConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := openUILog(logPath, cfg.LogLevel())
			if err != nil {
				return err
			}
			defer closeLog()
			if startBackend {
				if err := c.EnsureBackend(cmd.Context()); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			feed := notifications.New(c, notifications.Options{
				Interval:           cfg.PollInterval(),
				MarkAllConcurrency: cfg.MarkAllConcurrency(),
				Logger:             logger,
			})
			feed.Start(ctx)
			defer func() {
				feed.Stop()
				feed.Wait()
			}()

			logger.Info("ui_started",
				logging.F("version", wiring.version),
				logging.F("api", c.BaseURL()),
			)
			return wiring.runUI(ctx, app.Options{
				Feed:           feed,
				Records:        c,
				Breakpoints:    cfg.Breakpoints(),
				CellWidthPx:    cfg.CellWidthPx(),
				ResizeDebounce: cfg.ResizeDebounce(),
				UserLabel:      cfg.UserLabel(),
				Logger:         logger,
			})
		},
	}
	cmd.Flags().StringVar(&logPath, "log-file", "", "write UI logs here (default <data dir>/ui.log)")
	cmd.Flags().BoolVar(&startBackend, "start-backend", false, "start the development backend when a local one is not running")
	return cmd
}

// openUILog sends UI logs to a file; the terminal belongs to the dashboard.
func openUILog(path, level string) (logging.Logger, func(), error) {
	if path == "" {
		defaultPath, err := config.UILogPath()
		if err != nil {
			return nil, nil, err
		}
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewWithFormat(file, logging.ParseLevel(level), logging.FormatJSON), func() { _ = file.Close() }, nil
}
