package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"crmdash/internal/config"
)

const (
	backendStartTimeout = 4 * time.Second
	backendProbeEvery   = 150 * time.Millisecond
)

var startBackgroundBackend = StartBackgroundBackend

// StartBackgroundBackend launches the development backend as a detached
// "crmdash daemon" process logging to <data dir>/daemon.log.
func StartBackgroundBackend() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, "daemon")
	applyDaemonSysProcAttr(cmd)

	logWriter := io.Discard
	var logFile *os.File
	if dataDir, err := config.DataDir(); err == nil {
		if err := os.MkdirAll(dataDir, 0o700); err == nil {
			logPath := filepath.Join(dataDir, "daemon.log")
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				logWriter = file
				logFile = file
			}
		}
	}
	cmd.Stdout = logWriter
	cmd.Stderr = logWriter

	err = cmd.Start()
	if logFile != nil {
		_ = logFile.Close()
	}
	return err
}

// EnsureBackend checks the backend health endpoint. When nothing answers on a
// loopback base URL it starts the development backend and waits for it.
// Remote backends are never started.
func (c *Client) EnsureBackend(ctx context.Context) error {
	resp, err := c.Health(ctx)
	if err == nil && resp.OK {
		return nil
	}
	if !isLoopbackURL(c.baseURL) {
		if err == nil {
			err = errors.New("backend reported unhealthy")
		}
		return fmt.Errorf("backend %s unavailable: %w", c.baseURL, err)
	}
	if err := startBackgroundBackend(); err != nil {
		return err
	}

	deadline := time.Now().Add(backendStartTimeout)
	var lastErr error
	for time.Now().Before(deadline) {
		resp, err := c.Health(ctx)
		if err == nil && resp.OK {
			return nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backendProbeEvery):
		}
	}
	if lastErr == nil {
		lastErr = errors.New("backend not healthy after start")
	}
	return lastErr
}

func isLoopbackURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
