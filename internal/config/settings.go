package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"crmdash/internal/shell"
)

const (
	defaultAPIBaseURL          = "http://127.0.0.1:5000/api"
	defaultDaemonAddress       = "127.0.0.1:5000"
	defaultAPITimeout          = 10 * time.Second
	defaultRequestsPerSecond   = 20
	defaultPollInterval        = 10 * time.Second
	defaultMarkAllConcurrency  = 4
	defaultResizeDebounce      = 50 * time.Millisecond
	defaultMobileMaxWidth      = 640
	defaultTabletMaxWidth      = 1024
	defaultBurgerMaxWidth      = 1024
	defaultViewportWidth       = 1200
	defaultCellWidthPx         = 8
	defaultNotificationsList   = "/notifications/global"
	defaultNotificationsRead   = "/notifications/read/{id}"
	defaultNotificationsCreate = "/notifications"
)

const (
	envAPIURL   = "CRMDASH_API_URL"
	envUserID   = "CRMDASH_USER_ID"
	envLogLevel = "CRMDASH_LOG_LEVEL"
	envToken    = "CRMDASH_TOKEN"
)

type Config struct {
	API           APIConfig           `toml:"api"`
	Shell         ShellConfig         `toml:"shell"`
	Notifications NotificationsConfig `toml:"notifications"`
	Daemon        DaemonConfig        `toml:"daemon"`
	Logging       LoggingConfig       `toml:"logging"`
}

type APIConfig struct {
	BaseURL                 string  `toml:"base_url"`
	UserID                  string  `toml:"user_id"`
	Token                   string  `toml:"token,omitempty"`
	Timeout                 string  `toml:"timeout"`
	RequestsPerSecond       float64 `toml:"requests_per_second"`
	NotificationsListPath   string  `toml:"notifications_list_path"`
	NotificationsReadPath   string  `toml:"notifications_read_path"`
	NotificationsCreatePath string  `toml:"notifications_create_path"`
}

type ShellConfig struct {
	MobileMaxWidth int    `toml:"mobile_max_width"`
	TabletMaxWidth int    `toml:"tablet_max_width"`
	BurgerMaxWidth int    `toml:"burger_max_width"`
	DefaultWidth   int    `toml:"default_width"`
	CellWidthPx    int    `toml:"cell_width_px"`
	ResizeDebounce string `toml:"resize_debounce"`
	UserLabel      string `toml:"user_label,omitempty"`
}

type NotificationsConfig struct {
	PollInterval       string `toml:"poll_interval"`
	MarkAllConcurrency int    `toml:"mark_all_concurrency"`
}

type DaemonConfig struct {
	Address string `toml:"address"`
	DBPath  string `toml:"db_path,omitempty"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:                 defaultAPIBaseURL,
			Timeout:                 defaultAPITimeout.String(),
			RequestsPerSecond:       defaultRequestsPerSecond,
			NotificationsListPath:   defaultNotificationsList,
			NotificationsReadPath:   defaultNotificationsRead,
			NotificationsCreatePath: defaultNotificationsCreate,
		},
		Shell: ShellConfig{
			MobileMaxWidth: defaultMobileMaxWidth,
			TabletMaxWidth: defaultTabletMaxWidth,
			BurgerMaxWidth: defaultBurgerMaxWidth,
			DefaultWidth:   defaultViewportWidth,
			CellWidthPx:    defaultCellWidthPx,
			ResizeDebounce: defaultResizeDebounce.String(),
		},
		Notifications: NotificationsConfig{
			PollInterval:       defaultPollInterval.String(),
			MarkAllConcurrency: defaultMarkAllConcurrency,
		},
		Daemon: DaemonConfig{
			Address: defaultDaemonAddress,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads .env from the working directory, then the TOML config file, then
// applies environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return Config{}, err
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func LoadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) applyEnv(getenv func(string) string) {
	if value := strings.TrimSpace(getenv(envAPIURL)); value != "" {
		c.API.BaseURL = value
	}
	if value := strings.TrimSpace(getenv(envUserID)); value != "" {
		c.API.UserID = value
	}
	if value := strings.TrimSpace(getenv(envToken)); value != "" {
		c.API.Token = value
	}
	if value := strings.TrimSpace(getenv(envLogLevel)); value != "" {
		c.Logging.Level = value
	}
}

func (c Config) APIBaseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if base == "" {
		return defaultAPIBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return base
}

func (c Config) APITimeout() time.Duration {
	return parseDuration(c.API.Timeout, defaultAPITimeout)
}

func (c Config) RequestsPerSecond() float64 {
	if c.API.RequestsPerSecond <= 0 {
		return defaultRequestsPerSecond
	}
	return c.API.RequestsPerSecond
}

// NotificationsListPath resolves the list endpoint, substituting {userId}.
func (c Config) NotificationsListPath() string {
	path := orDefault(c.API.NotificationsListPath, defaultNotificationsList)
	return strings.ReplaceAll(path, "{userId}", strings.TrimSpace(c.API.UserID))
}

func (c Config) NotificationsReadPath() string {
	return orDefault(c.API.NotificationsReadPath, defaultNotificationsRead)
}

func (c Config) NotificationsCreatePath() string {
	return orDefault(c.API.NotificationsCreatePath, defaultNotificationsCreate)
}

func (c Config) PollInterval() time.Duration {
	return parseDuration(c.Notifications.PollInterval, defaultPollInterval)
}

func (c Config) MarkAllConcurrency() int {
	if c.Notifications.MarkAllConcurrency <= 0 {
		return defaultMarkAllConcurrency
	}
	return c.Notifications.MarkAllConcurrency
}

func (c Config) ResizeDebounce() time.Duration {
	raw := strings.TrimSpace(c.Shell.ResizeDebounce)
	if raw == "0" {
		return 0
	}
	return parseDuration(raw, defaultResizeDebounce)
}

func (c Config) CellWidthPx() int {
	if c.Shell.CellWidthPx <= 0 {
		return defaultCellWidthPx
	}
	return c.Shell.CellWidthPx
}

func (c Config) Breakpoints() shell.Breakpoints {
	return shell.Breakpoints{
		MobileMax:    c.Shell.MobileMaxWidth,
		TabletMax:    c.Shell.TabletMaxWidth,
		BurgerMax:    c.Shell.BurgerMaxWidth,
		DefaultWidth: c.Shell.DefaultWidth,
	}.Normalize()
}

// UserLabel is the name shown in the top bar, falling back to the user id.
func (c Config) UserLabel() string {
	if label := strings.TrimSpace(c.Shell.UserLabel); label != "" {
		return label
	}
	return strings.TrimSpace(c.API.UserID)
}

func (c Config) DaemonAddress() string {
	addr := strings.TrimSpace(c.Daemon.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c Config) ResolveDBPath() (string, error) {
	if path := strings.TrimSpace(c.Daemon.DBPath); path != "" {
		return path, nil
	}
	return DBPath()
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
