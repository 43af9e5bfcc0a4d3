// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvCookie      = "COURSE_EXPORT_COOKIE"
	EnvDepartments = "COURSE_EXPORT_DEPARTMENTS"
	EnvOutDir      = "COURSE_EXPORT_OUT"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Sources
	HTML string `json:"html,omitempty" yaml:"html,omitempty" validate:"omitempty,excluded_with=URL"` // Saved registration page
	URL  string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`                 // Registration page URL

	// Output
	Out         string `json:"out,omitempty" yaml:"out,omitempty"`                                                  // Output directory, or "-" for stdout
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty" validate:"omitempty,excludesall=/\\"` // Report file name
	Departments string `json:"departments,omitempty" yaml:"departments,omitempty"`                                  // Department table override (JSON/YAML)

	// Behavior
	Cookie         string `json:"cookie,omitempty" yaml:"cookie,omitempty"`                                           // Session cookie for the registration site
	UseBrowser     bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`                                 // Use headless browser when the page is rendered client-side
	SkipInvalid    bool   `json:"skip_invalid,omitempty" yaml:"skip_invalid,omitempty"`                               // Skip malformed courses and unknown departments
	Verbose        bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`                                         // Print detailed debug information
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0,lte=600"` // Fetch timeout
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv returns a Config holding the values set in the environment.
func FromEnv() Config {
	return Config{
		Cookie:      os.Getenv(EnvCookie),
		Departments: os.Getenv(EnvDepartments),
		Out:         os.Getenv(EnvOutDir),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.HTML != "" {
		if _, err := os.Stat(c.HTML); os.IsNotExist(err) {
			return fmt.Errorf("config error: html file not found: %s", c.HTML)
		}
	}
	if c.Departments != "" {
		if _, err := os.Stat(c.Departments); os.IsNotExist(err) {
			return fmt.Errorf("config error: departments file not found: %s", c.Departments)
		}
	}

	return nil
}

// Timeout returns the fetch timeout, or 0 for the fetcher default.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.HTML == "" && result.URL == "" {
		result.HTML = defaults.HTML
		result.URL = defaults.URL
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.Filename == "" {
		result.Filename = defaults.Filename
	}
	if result.Departments == "" {
		result.Departments = defaults.Departments
	}
	if result.Cookie == "" {
		result.Cookie = defaults.Cookie
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: a default of true turns the flag on
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.SkipInvalid = result.SkipInvalid || defaults.SkipInvalid
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
