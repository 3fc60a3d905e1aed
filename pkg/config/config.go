// Package config provides environment-based configuration for the backend.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the backend.
type Config struct {
	// Database configuration
	MongoURL      string
	MongoDatabase string

	// Server configuration
	APIHost string
	APIPort int

	// Allowed browser origins for cross-origin requests.
	CORSAllowedOrigins []string

	// Jenkins trigger script configuration
	Jenkins JenkinsConfig

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// JenkinsConfig holds the external trigger script configuration. The script
// is an independently-versioned collaborator; only its invocation contract
// lives here.
type JenkinsConfig struct {
	// Interpreter runs the script, e.g. "python3".
	Interpreter string
	// Script is the path to the wrapper script.
	Script string
	// WorkDir is the directory the script runs in. Empty means the process
	// working directory.
	WorkDir string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		MongoURL:      getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "framework_hub"),
		APIHost:       getEnv("API_HOST", "0.0.0.0"),
		APIPort:       getIntEnv("API_PORT", 8000),
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS",
			[]string{"http://localhost:3000", "http://localhost:3001"}),
		Jenkins: JenkinsConfig{
			Interpreter: getEnv("JENKINS_INTERPRETER", "python3"),
			Script:      getEnv("JENKINS_SCRIPT", "jenkins.py"),
			WorkDir:     getEnv("JENKINS_WORKDIR", ""),
		},
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.MongoURL == "" {
		return fmt.Errorf("MONGODB_URL must not be empty")
	}
	if c.MongoDatabase == "" {
		return fmt.Errorf("MONGODB_DATABASE must not be empty")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be a valid port, got %d", c.APIPort)
	}
	if c.Jenkins.Script == "" {
		return fmt.Errorf("JENKINS_SCRIPT must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
