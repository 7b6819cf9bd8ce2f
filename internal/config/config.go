// Package config loads plenario's YAML configuration and its environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/example/plenario/internal/core/attendance"
	"github.com/example/plenario/internal/core/schedule"
	"github.com/example/plenario/internal/core/tally"
)

// Environment variables read by Load.
const (
	EnvConfig = "PLENARIO_CONFIG"
	EnvDB     = "PLENARIO_DB"
	EnvBind   = "PLENARIO_BIND"
	EnvQuorum = "PLENARIO_QUORUM"
	EnvLog    = "PLENARIO_LOG"
)

// Config is the chamber's runtime configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Quorum   QuorumConfig   `yaml:"quorum"`
	Voting   VotingConfig   `yaml:"voting"`
	Log      LogConfig      `yaml:"log"`
	Calendar CalendarConfig `yaml:"calendar"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // empty selects ~/.plenario/plenario.db
}

type HTTPConfig struct {
	Bind           string   `yaml:"bind"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type QuorumConfig struct {
	Rule    string `yaml:"rule"` // fixed | majority
	Minimum int    `yaml:"minimum"`
}

type VotingConfig struct {
	TieBreak string `yaml:"tie_break"` // reject | stand
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// CalendarConfig lists municipal holidays as "MM-DD" on top of the national ones.
type CalendarConfig struct {
	Holidays []string `yaml:"holidays"`
}

// Default returns the configuration used when no file is present: a nine-seat
// chamber with a fixed quorum of five.
func Default() *Config {
	return &Config{
		HTTP:   HTTPConfig{Bind: "127.0.0.1:8080"},
		Quorum: QuorumConfig{Rule: "fixed", Minimum: 5},
		Voting: VotingConfig{TieBreak: "reject"},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.plenario/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".plenario", "config.yaml"), nil
}

// Load builds the configuration. Resolution order for the file: path, then
// $PLENARIO_CONFIG, then DefaultPath. An explicitly named file must exist; the
// default one is optional. A .env file in the working directory is loaded
// first, and environment variables override the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		explicit = false
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. PLENARIO_QUORUM is either
// "majority" or a fixed minimum.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := getenv(EnvBind); v != "" {
		c.HTTP.Bind = v
	}
	if v := getenv(EnvLog); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvQuorum)); v != "" {
		if v == "majority" {
			c.Quorum = QuorumConfig{Rule: "majority"}
		} else {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: want \"majority\" or a number, got %q", EnvQuorum, v)
			}
			c.Quorum = QuorumConfig{Rule: "fixed", Minimum: n}
		}
	}
	return nil
}

// Validate checks every policy name and the holiday list.
func (c *Config) Validate() error {
	if _, err := c.QuorumPolicy(); err != nil {
		return err
	}
	if _, err := c.TieBreaker(); err != nil {
		return err
	}
	if _, err := c.HolidayCalendar(); err != nil {
		return err
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// QuorumPolicy resolves the configured quorum rule.
func (c *Config) QuorumPolicy() (attendance.QuorumPolicy, error) {
	return attendance.ParseQuorumPolicy(c.Quorum.Rule, c.Quorum.Minimum)
}

// TieBreaker resolves the configured tie-break policy.
func (c *Config) TieBreaker() (tally.TieBreaker, error) {
	return tally.ParseTieBreaker(c.Voting.TieBreak)
}

// HolidayCalendar builds the chamber calendar with the configured municipal holidays.
func (c *Config) HolidayCalendar() (*schedule.Calendar, error) {
	return schedule.NewCalendar(c.Calendar.Holidays)
}

// LogLevel returns the slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Save writes cfg as YAML, creating the directory as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
