// Package daemon serves the development CRM backend: the notification feed
// endpoints and CRUD collections for every CRM resource.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crmdash/internal/logging"
	"crmdash/internal/store"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Address    string
	Token      string
	Version    string
	Repository store.Repository
	Logger     logging.Logger
}

type Daemon struct {
	addr   string
	token  string
	api    *API
	logger logging.Logger
	server *http.Server
}

func New(opts Options) *Daemon {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	gin.SetMode(gin.ReleaseMode)
	return &Daemon{
		addr:   opts.Address,
		token:  opts.Token,
		api:    NewAPI(opts.Version, opts.Repository, logger),
		logger: logger,
	}
}

func (d *Daemon) Handler() http.Handler {
	return NewRouter(d.api, d.token)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (d *Daemon) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", d.addr)
	if err != nil {
		return err
	}
	return d.Serve(ctx, listener)
}

func (d *Daemon) Serve(ctx context.Context, listener net.Listener) error {
	d.server = &http.Server{
		Handler:           d.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("daemon listening", logging.F("addr", "http://"+listener.Addr().String()))
		errCh <- d.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := d.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		d.logger.Info("daemon stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
