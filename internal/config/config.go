package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client configuration
type Config struct {
	APIBase        string
	AppBase        string
	RequestTimeout time.Duration
	RedisURL       string
	TokenPath      string
	Debug          bool
	OTELEnabled    bool
	OTELEndpoint   string
}

// fileConfig is the optional YAML config file shape. Environment variables
// win over file values.
type fileConfig struct {
	APIBase        string `yaml:"api_base"`
	AppBase        string `yaml:"app_base"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RedisURL       string `yaml:"redis_url"`
	TokenPath      string `yaml:"token_path"`
	Debug          bool   `yaml:"debug"`
	OTELEnabled    bool   `yaml:"otel_enabled"`
	OTELEndpoint   string `yaml:"otel_endpoint"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return load(fileConfig{})
}

// LoadWithFile layers environment variables over a YAML config file. A
// missing file is not an error; a malformed one is.
func LoadWithFile(path string) (*Config, error) {
	var file fileConfig
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return load(file)
}

func load(file fileConfig) (*Config, error) {
	timeoutSeconds := file.TimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	timeoutSeconds = getEnvInt("TRIPLY_TIMEOUT_SECONDS", timeoutSeconds)
	if timeoutSeconds <= 0 {
		return nil, fmt.Errorf("TRIPLY_TIMEOUT_SECONDS must be positive")
	}

	cfg := &Config{
		APIBase:        getEnv("TRIPLY_API_BASE", defaultStr(file.APIBase, "http://localhost:8080")),
		AppBase:        getEnv("TRIPLY_APP_BASE", defaultStr(file.AppBase, "http://localhost:3000")),
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
		RedisURL:       getEnv("REDIS_URL", file.RedisURL),
		TokenPath:      getEnv("TRIPLY_TOKEN_PATH", file.TokenPath),
		Debug:          getEnvBool("TRIPLY_DEBUG", file.Debug),
		OTELEnabled:    getEnvBool("OTEL_ENABLED", file.OTELEnabled),
		OTELEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", file.OTELEndpoint),
	}

	return cfg, nil
}

func defaultStr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
