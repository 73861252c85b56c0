package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/learningcommons/coverage/pkg/core/schedule"
)

// LocationConfig maps a staffed location to the calendar holding its shifts
type LocationConfig struct {
	Name       string `yaml:"name" validate:"required"`
	CalendarID string `yaml:"calendarID" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	// Locations to build coverage for, in display order
	Locations []LocationConfig `yaml:"locations" validate:"required,min=1,dive"`

	// CatalogPath is the line-delimited course catalog file
	CatalogPath string `yaml:"catalogPath" validate:"required"`

	// TagDelimiters is the delimiter set used to split event titles into
	// course tags; defaults to schedule.DefaultTagDelimiters
	TagDelimiters string `yaml:"tagDelimiters,omitempty"`

	// MatchThreshold overrides the default fuzzy-match threshold
	MatchThreshold *float64 `yaml:"matchThreshold,omitempty" validate:"omitempty,gt=0,lte=1"`

	// TermRule is an RRULE generating week-start instants for the term
	// (e.g. weekly on Sunday between term dates)
	TermRule string `yaml:"termRule" validate:"required"`

	// DatabaseURL enables schedule snapshot persistence when set
	DatabaseURL string `yaml:"databaseURL,omitempty"`
}

// Threshold returns the configured match threshold or the engine default
func (c *Config) Threshold() float64 {
	if c.MatchThreshold != nil {
		return *c.MatchThreshold
	}
	return schedule.MatchThreshold
}

// TagPolicy returns the tag splitting policy derived from the config
func (c *Config) TagPolicy() schedule.TagPolicy {
	return schedule.TagPolicy{Delimiters: c.TagDelimiters}
}

// LocationNames returns the configured location names in display order
func (c *Config) LocationNames() []string {
	names := make([]string, 0, len(c.Locations))
	for _, l := range c.Locations {
		names = append(names, l.Name)
	}
	return names
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" will look for "coverage_config.test.yaml"
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

	return &cfg, nil
}

// Validate validates the configuration struct, location uniqueness and
// term rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Locations))
	for _, l := range cfg.Locations {
		if seen[l.Name] {
			return fmt.Errorf("duplicate location name %q in config", l.Name)
		}
		seen[l.Name] = true
	}

	if _, err := rrule.StrToRRule(cfg.TermRule); err != nil {
		return fmt.Errorf("invalid termRule: %w", err)
	}

	return nil
}

// findConfigFile searches for coverage_config.yaml in the current directory
// and the home directory. If env is provided, it is added as an extension
// (e.g. "coverage_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "coverage_config.yaml"
	if env != "" {
		configFileName = "coverage_config." + env + ".yaml"
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
