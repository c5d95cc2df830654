// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cyrilhamel/caly/internal/schedule"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	LLM      LLMConfig      `toml:"llm"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds the work calendar and engine tuning.
type ScheduleConfig struct {
	// Windows maps lowercase weekday names to "HH:MM-HH:MM" work windows.
	// Days absent from the map have no windows.
	Windows map[string][]string `toml:"windows"`

	BreakMinutes        int `toml:"break_minutes"`         // inter-unit break for long units
	BreakThreshold      int `toml:"break_threshold"`       // minutes above which the break applies
	LookaheadDays       int `toml:"lookahead_days"`        // forward search horizon
	RecurringWindowDays int `toml:"recurring_window_days"` // week pinning for recurring units
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LLMConfig holds LLM provider settings for the briefing command.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "dark" or "light"
}

// Default returns the default configuration. The default work calendar
// matches schedule.DefaultWeekTemplate.
func Default() *Config {
	full := []string{"09:00-11:30", "13:00-16:30"}
	weekend := []string{"08:00-11:30", "13:00-16:30"}
	return &Config{
		Schedule: ScheduleConfig{
			Windows: map[string][]string{
				"monday":    full,
				"tuesday":   full,
				"wednesday": {"09:30-11:30"},
				"thursday":  full,
				"friday":    full,
				"saturday":  weekend,
				"sunday":    weekend,
			},
			BreakMinutes:        schedule.DefaultBreakMinutes,
			BreakThreshold:      schedule.DefaultBreakThreshold,
			LookaheadDays:       schedule.DefaultLookaheadDays,
			RecurringWindowDays: schedule.DefaultRecurringWindowDays,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "caly.db"
	}
	return filepath.Join(home, ".local", "share", "caly", "caly.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "caly", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CALY_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("CALY_LOOKAHEAD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.LookaheadDays = n
		}
	}
	if v := os.Getenv("CALY_BREAK_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.BreakMinutes = n
		}
	}
	if v := os.Getenv("CALY_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("CALY_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("CALY_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("CALY_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Schedule.Windows) == 0 {
		return errors.New("at least one work window must be configured")
	}
	for day, windows := range c.Schedule.Windows {
		if _, ok := weekdayNames[strings.ToLower(day)]; !ok {
			return fmt.Errorf("invalid weekday: %s", day)
		}
		for _, w := range windows {
			if _, _, err := splitWindow(w); err != nil {
				return fmt.Errorf("%s window %q: %w", day, w, err)
			}
		}
	}
	if c.Schedule.BreakMinutes < 0 {
		return errors.New("break_minutes must not be negative")
	}
	if c.Schedule.LookaheadDays <= 0 {
		return errors.New("lookahead_days must be positive")
	}
	if c.Schedule.RecurringWindowDays <= 0 {
		return errors.New("recurring_window_days must be positive")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// WeekTemplate builds the engine's work calendar from the configured
// windows. Call after Validate; malformed windows still return an error.
func (c *Config) WeekTemplate() (*schedule.WeekTemplate, error) {
	days := make(map[time.Weekday][]schedule.Window, len(c.Schedule.Windows))
	for name, windows := range c.Schedule.Windows {
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", name)
		}
		for _, w := range windows {
			start, end, err := splitWindow(w)
			if err != nil {
				return nil, fmt.Errorf("%s window %q: %w", name, w, err)
			}
			days[day] = append(days[day], schedule.Window{Start: start, End: end})
		}
	}
	return schedule.NewWeekTemplate(days)
}

// SchedulerParams returns the engine tuning from the config.
func (c *Config) SchedulerParams() schedule.Params {
	return schedule.Params{
		BreakMinutes:        c.Schedule.BreakMinutes,
		BreakThreshold:      c.Schedule.BreakThreshold,
		LookaheadDays:       c.Schedule.LookaheadDays,
		RecurringWindowDays: c.Schedule.RecurringWindowDays,
	}
}

// splitWindow parses "HH:MM-HH:MM" into start and end times.
func splitWindow(s string) (start, end string, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return "", "", errors.New("window must be in HH:MM-HH:MM format")
	}
	start, end = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if err := validateTime(start); err != nil {
		return "", "", err
	}
	if err := validateTime(end); err != nil {
		return "", "", err
	}
	if start >= end {
		return "", "", errors.New("window start must be before window end")
	}
	return start, end, nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("time must be in HH:MM format, got %q", t)
	}
	if !isDigits(t[0:2]) || !isDigits(t[3:5]) {
		return fmt.Errorf("time must be in HH:MM format, got %q", t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
