package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits requests to one endpoint.
type Rule struct {
	Method string
	Path   string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit
}

func (r *Rule) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Rules           []Rule
	Allowlist       map[string]bool
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
}

func (c *Config) ruleFor(method, path string) *Rule {
	for i := range c.Rules {
		if c.Rules[i].Method == method && c.Rules[i].Path == path {
			return &c.Rules[i]
		}
	}
	return nil
}

// DefaultRules limits report exports; everything else is unthrottled.
func DefaultRules(limit int, window time.Duration) []Rule {
	return []Rule{
		{Method: "POST", Path: "/export", Limit: limit, Window: window, Burst: min(limit, 5)},
	}
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Rules:           DefaultRules(30, time.Minute),
		Allowlist:       map[string]bool{},
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.Rules = DefaultRules(
		getEnvInt("RATE_LIMIT_EXPORT_LIMIT", 30),
		getEnvDuration("RATE_LIMIT_EXPORT_WINDOW", time.Minute),
	)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Allowlist = parseList(os.Getenv("RATE_LIMIT_ALLOWLIST"))
	return cfg
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseList parses a comma-separated list of client addresses into a set.
func parseList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
