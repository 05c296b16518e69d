package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"crmdash/internal/daemon"
	"crmdash/internal/logging"
	"crmdash/internal/store"
)

func newDaemonCmd(wiring commandWiring) *cobra.Command {
	var (
		addr   string
		dbPath string
		token  string
	)
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the development CRM backend",
		Long:  "Serve the notification feed and CRUD collections over HTTP, backed by a local bbolt file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := wiring.loadConfig()
			if err != nil {
				return err
			}
			logger := newStderrLogger(cmd.ErrOrStderr(), cfg.LogLevel()).With(logging.F("component", "daemon"))
			if strings.TrimSpace(addr) == "" {
				addr = cfg.DaemonAddress()
			}
			if strings.TrimSpace(dbPath) == "" {
				if dbPath, err = cfg.ResolveDBPath(); err != nil {
					return err
				}
			}
			if strings.TrimSpace(token) == "" {
				token = cfg.API.Token
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
				return err
			}
			repo, err := store.NewBboltRepository(dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("daemon_starting",
				logging.F("addr", addr),
				logging.F("db", dbPath),
				logging.F("auth", token != ""),
				logging.F("version", wiring.version),
			)
			return daemon.New(daemon.Options{
				Address:    addr,
				Token:      token,
				Version:    wiring.version,
				Repository: repo,
				Logger:     logger,
			}).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "bbolt database path (default <data dir>/crm.db)")
	cmd.Flags().StringVar(&token, "token", "", "require this bearer token on /api routes")
	return cmd
}
