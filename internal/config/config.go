package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "planner_config.yaml"
	dateLayout     = "2006-01-02"
)

// Store drivers
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StoreConfig selects where allocation runs are persisted
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=none sqlite postgres"`
	DSN    string `yaml:"dsn,omitempty" validate:"required_if=Driver postgres"`
}

// Config represents the application configuration
type Config struct {
	InputPath        string      `yaml:"inputPath" validate:"required"`
	SemesterStart    string      `yaml:"semesterStart,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TeachingDaysRule string      `yaml:"teachingDaysRule,omitempty"`
	Store            StoreConfig `yaml:"store"`
	ExportDir        string      `yaml:"exportDir,omitempty"`
	MetricsFile      string      `yaml:"metricsFile,omitempty"`
	LogLevel         string      `yaml:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from planner_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile(configFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadWithEnv loads planner_config_<env>.yaml, falling back to planner_config.yaml
func LoadWithEnv(env string) (*Config, error) {
	if env != "" {
		if configPath, err := findConfigFile(fmt.Sprintf("planner_config_%s.yaml", env)); err == nil {
			return LoadFromPath(configPath)
		}
	}
	return Load()
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DriverNone
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.TeachingDaysRule != "" {
		if _, err := rrule.StrToRRule(cfg.TeachingDaysRule); err != nil {
			return fmt.Errorf("invalid rrule in teachingDaysRule: %w", err)
		}
	}

	return nil
}

// StartDate returns the parsed semester start, or false when none is configured
func (c *Config) StartDate() (time.Time, bool, error) {
	if c.SemesterStart == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(dateLayout, c.SemesterStart)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid semesterStart: %w", err)
	}
	return t, true, nil
}

// findConfigFile searches for the named file in current directory and home directory
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
