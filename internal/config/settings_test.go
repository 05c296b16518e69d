package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(homeEnvVar, t.TempDir())
	t.Chdir(t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:5000/api", cfg.APIBaseURL())
	require.Equal(t, 10*time.Second, cfg.PollInterval())
	require.Equal(t, 50*time.Millisecond, cfg.ResizeDebounce())
	require.Equal(t, 8, cfg.CellWidthPx())
	require.Equal(t, "/notifications/global", cfg.NotificationsListPath())
	require.Equal(t, "/notifications/read/{id}", cfg.NotificationsReadPath())
	require.Equal(t, 640, cfg.Shell.MobileMaxWidth)
	require.Equal(t, 1024, cfg.Shell.BurgerMaxWidth)
	require.Equal(t, "127.0.0.1:5000", cfg.DaemonAddress())
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(homeEnvVar, dir)
	t.Chdir(t.TempDir())
	content := strings.Join([]string{
		"[api]",
		`base_url = "crm.local:8080/api/"`,
		`user_id = "u-7"`,
		`notifications_list_path = "/notifications/{userId}"`,
		"[notifications]",
		`poll_interval = "30s"`,
		"[shell]",
		"burger_max_width = 1700",
		`resize_debounce = "0"`,
		"[daemon]",
		`address = "http://127.0.0.1:9999/"`,
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://crm.local:8080/api", cfg.APIBaseURL())
	require.Equal(t, "/notifications/u-7", cfg.NotificationsListPath())
	require.Equal(t, 30*time.Second, cfg.PollInterval())
	require.Equal(t, 1700, cfg.Shell.BurgerMaxWidth)
	require.Equal(t, 640, cfg.Shell.MobileMaxWidth)
	require.Zero(t, cfg.ResizeDebounce())
	require.Equal(t, "127.0.0.1:9999", cfg.DaemonAddress())
	require.Equal(t, "u-7", cfg.UserLabel())

	bp := cfg.Breakpoints()
	require.Equal(t, 1700, bp.BurgerMax)
	require.Equal(t, 1024, bp.TabletMax)
	require.Equal(t, 1200, bp.DefaultWidth)
}

func TestLoadAppliesDotEnvOverrides(t *testing.T) {
	t.Setenv(homeEnvVar, t.TempDir())
	workDir := t.TempDir()
	t.Chdir(workDir)
	t.Setenv(envAPIURL, "")
	os.Unsetenv(envAPIURL)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"), []byte("CRMDASH_API_URL=http://env.example/api\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://env.example/api", cfg.APIBaseURL())
}

func TestInvalidDurationsFallBack(t *testing.T) {
	cfg := Default()
	cfg.Notifications.PollInterval = "soon"
	cfg.API.Timeout = "-1s"
	require.Equal(t, defaultPollInterval, cfg.PollInterval())
	require.Equal(t, defaultAPITimeout, cfg.APITimeout())
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.API.UserID = "u-1"
	data, err := cfg.Encode()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
