package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// TopRangeLimit is how many contiguous time ranges the results view
	// shows for time-scheduling polls.
	TopRangeLimit int `yaml:"topRangeLimit,omitempty" validate:"omitempty,min=1"`

	// UpcomingWeeks bounds how far ahead recurring polls project concrete
	// meeting dates for their recommended weekdays.
	UpcomingWeeks int `yaml:"upcomingWeeks,omitempty" validate:"omitempty,min=1"`
}

const (
	defaultTopRangeLimit = 5
	defaultUpcomingWeeks = 4
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from moyeo_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
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

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.TopRangeLimit == 0 {
		cfg.TopRangeLimit = defaultTopRangeLimit
	}
	if cfg.UpcomingWeeks == 0 {
		cfg.UpcomingWeeks = defaultUpcomingWeeks
	}
}

// findConfigFile searches for moyeo_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "moyeo_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
