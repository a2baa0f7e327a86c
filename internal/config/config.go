// Package config loads MathForge settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application settings. LLM provider settings live in
// llm.Config and are read separately.
type Config struct {
	DBPath   string
	BankPath string
	Auth     AuthConfig
	Log      LogConfig
}

// AuthConfig holds the identity token handed over by the hosted sign-in
// flow and the secret used to verify it.
type AuthConfig struct {
	Token  string
	Secret string
}

// LogConfig configures the file logger.
type LogConfig struct {
	File  string
	Level string
}

// Load reads a .env file from the working directory if one exists, then
// builds a Config from the environment. Variables already set in the
// environment take precedence over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// LoadFile is like Load but reads the named env files, which must exist.
func LoadFile(paths ...string) (*Config, error) {
	if err := godotenv.Load(paths...); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	dbPath, err := defaultPath("MATHFORGE_DB", "XDG_DATA_HOME", []string{".local", "share"}, "mathforge.db")
	if err != nil {
		return nil, err
	}
	logPath, err := defaultPath("MATHFORGE_LOG_FILE", "XDG_STATE_HOME", []string{".local", "state"}, "mathforge.log")
	if err != nil {
		return nil, err
	}

	return &Config{
		DBPath:   dbPath,
		BankPath: getEnv("MATHFORGE_BANK", ""),
		Auth: AuthConfig{
			Token:  getEnv("MATHFORGE_AUTH_TOKEN", ""),
			Secret: getEnv("MATHFORGE_AUTH_SECRET", ""),
		},
		Log: LogConfig{
			File:  logPath,
			Level: getEnv("MATHFORGE_LOG_LEVEL", "info"),
		},
	}, nil
}

// defaultPath resolves a file path in priority order:
// 1. the override environment variable
// 2. $<xdgVar>/mathforge/<name>
// 3. ~/<fallback...>/mathforge/<name>
func defaultPath(override, xdgVar string, fallback []string, name string) (string, error) {
	if p := os.Getenv(override); p != "" {
		return p, nil
	}

	base := os.Getenv(xdgVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, "mathforge", name), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
