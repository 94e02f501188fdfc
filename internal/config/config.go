package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lpernett/godotenv"
)

// Environment overrides. They win over config.json; a .env file next to
// .mazeprobe/ fills in any that are not already set in the environment.
const (
	EnvMaxDelay         = "MAZEPROBE_MAX_DELAY"
	EnvTimeout          = "MAZEPROBE_TIMEOUT"
	EnvDetectExhaustion = "MAZEPROBE_DETECT_EXHAUSTION"
	EnvDBPath           = "MAZEPROBE_DB_PATH"
)

// Defaults for a directory without config.json.
const (
	DefaultMaxDelay = 50 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

// Config represents the flat mazeprobe configuration in .mazeprobe/config.json
type Config struct {
	Version          string `json:"version"`
	MaxDelay         string `json:"max_delay"`         // Upper bound of the random probe delay, e.g. "50ms"
	Timeout          string `json:"timeout"`           // Per-run timeout, e.g. "30s"; "0" disables it
	DetectExhaustion bool   `json:"detect_exhaustion"` // Report no_exit instead of waiting for the timeout
	DBPath           string `json:"db_path,omitempty"` // Overrides ~/.mazeprobe/mazeprobe.db
	Actor            string `json:"actor,omitempty"`   // Recorded as requester on runs
}

// Settings is the resolved, typed configuration.
type Settings struct {
	MaxDelay         time.Duration
	Timeout          time.Duration
	DetectExhaustion bool
	DBPath           string
	Actor            string
}

// DefaultConfig returns the configuration written by `mazeprobe init`.
func DefaultConfig() *Config {
	return &Config{
		Version:  "1.0",
		MaxDelay: DefaultMaxDelay.String(),
		Timeout:  DefaultTimeout.String(),
	}
}

// LoadConfig reads .mazeprobe/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".mazeprobe", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	configDir := filepath.Join(dir, ".mazeprobe")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create .mazeprobe dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Resolve builds Settings for dir: config.json (or defaults), then dir/.env,
// then the process environment.
func Resolve(dir string) (*Settings, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}

	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	return cfg.settings()
}

func (c *Config) settings() (*Settings, error) {
	s := &Settings{
		MaxDelay:         DefaultMaxDelay,
		Timeout:          DefaultTimeout,
		DetectExhaustion: c.DetectExhaustion,
		DBPath:           c.DBPath,
		Actor:            c.Actor,
	}

	maxDelay := firstNonEmpty(os.Getenv(EnvMaxDelay), c.MaxDelay)
	if maxDelay != "" {
		d, err := parseDuration(maxDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid max delay %q: %w", maxDelay, err)
		}
		s.MaxDelay = d
	}

	timeout := firstNonEmpty(os.Getenv(EnvTimeout), c.Timeout)
	if timeout != "" {
		d, err := parseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
		s.Timeout = d
	}

	if v := os.Getenv(EnvDetectExhaustion); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s not a truthy value: %q", EnvDetectExhaustion, v)
		}
		s.DetectExhaustion = b
	}

	if v := os.Getenv(EnvDBPath); v != "" {
		s.DBPath = v
	}

	return s, nil
}

// parseDuration accepts Go durations and bare integers as milliseconds.
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative duration")
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
