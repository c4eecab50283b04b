package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// RoomConfig defines one physical room
type RoomConfig struct {
	ID    string `yaml:"id" validate:"required"`
	Title string `yaml:"title" validate:"required"`
}

// BlackoutConfig defines a recurring whole-house blackout, e.g. an owner week
type BlackoutConfig struct {
	RRule  string `yaml:"rrule" validate:"required"`
	Reason string `yaml:"reason,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseSheetID string           `yaml:"databaseSheetID" validate:"required"`
	Rooms           []RoomConfig     `yaml:"rooms" validate:"required,len=3,dive"`
	GuestNames      []string         `yaml:"guestNames,omitempty"`
	Blackouts       []BlackoutConfig `yaml:"blackouts,omitempty" validate:"dive"`
	ActivityLogPath string           `yaml:"activityLogPath,omitempty"`
	// Fallback passwords used when the remote settings sheet is unreachable
	DefaultFamilyPassword string `yaml:"defaultFamilyPassword,omitempty"`
	DefaultAdminPassword  string `yaml:"defaultAdminPassword,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" will look for "carraig_config.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
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

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.ActivityLogPath == "" {
		cfg.ActivityLogPath = "carraig_activity.json"
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each blackout
	for i, blackout := range cfg.Blackouts {
		if _, err := rrule.StrToRRule(blackout.RRule); err != nil {
			return fmt.Errorf("invalid rrule in blackouts[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in the current directory and
// home directory. If env is provided, it is added as a filename suffix.
func findConfigFile(env string) (string, error) {
	configFileName := "carraig_config.yaml"
	if env != "" {
		configFileName = "carraig_config." + env + ".yaml"
	}

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
