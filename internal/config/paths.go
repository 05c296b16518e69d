package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = ".crmdash"
	homeEnvVar = "CRMDASH_HOME"
)

// DataDir returns the base data directory for crmdash.
func DataDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv(homeEnvVar)); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	return dataPath("config.toml")
}

// TokenPath returns the path to the API session token file.
func TokenPath() (string, error) {
	return dataPath("token")
}

// DBPath returns the default path of the development backend database.
func DBPath() (string, error) {
	return dataPath("crm.db")
}

// UILogPath returns the path the terminal UI logs to.
func UILogPath() (string, error) {
	return dataPath("ui.log")
}

func dataPath(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
