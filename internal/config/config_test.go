package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var envMutex sync.Mutex

// All config-related env vars that tests might modify.
var allConfigEnvVars = []string{
	"TRIPLY_API_BASE",
	"TRIPLY_APP_BASE",
	"TRIPLY_TIMEOUT_SECONDS",
	"TRIPLY_TOKEN_PATH",
	"TRIPLY_DEBUG",
	"REDIS_URL",
	"OTEL_ENABLED",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
}

func withEnv(t *testing.T, envVars map[string]string, fn func(t *testing.T)) {
	t.Helper()

	envMutex.Lock()
	defer envMutex.Unlock()

	original := make(map[string]string)
	for _, key := range allConfigEnvVars {
		original[key] = os.Getenv(key)
		_ = os.Unsetenv(key)
	}
	for key, value := range envVars {
		if value != "" {
			_ = os.Setenv(key, value)
		}
	}
	defer func() {
		for _, key := range allConfigEnvVars {
			if original[key] != "" {
				_ = os.Setenv(key, original[key])
			} else {
				_ = os.Unsetenv(key)
			}
		}
	}()

	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.APIBase != "http://localhost:8080" {
					t.Errorf("Expected default APIBase to be 'http://localhost:8080', got '%s'", cfg.APIBase)
				}
				if cfg.AppBase != "http://localhost:3000" {
					t.Errorf("Expected default AppBase to be 'http://localhost:3000', got '%s'", cfg.AppBase)
				}
				if cfg.RequestTimeout != 60*time.Second {
					t.Errorf("Expected default RequestTimeout to be 60s, got %v", cfg.RequestTimeout)
				}
				if cfg.Debug {
					t.Error("Expected default Debug to be false")
				}
			},
		},
		{
			name: "env vars override defaults",
			envVars: map[string]string{
				"TRIPLY_API_BASE":        "https://api.triply.example",
				"TRIPLY_TIMEOUT_SECONDS": "30",
				"REDIS_URL":              "redis://localhost:6379/1",
				"TRIPLY_DEBUG":           "true",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.APIBase != "https://api.triply.example" {
					t.Errorf("Expected APIBase to be 'https://api.triply.example', got '%s'", cfg.APIBase)
				}
				if cfg.RequestTimeout != 30*time.Second {
					t.Errorf("Expected RequestTimeout to be 30s, got %v", cfg.RequestTimeout)
				}
				if cfg.RedisURL != "redis://localhost:6379/1" {
					t.Errorf("Expected RedisURL to be set, got '%s'", cfg.RedisURL)
				}
				if !cfg.Debug {
					t.Error("Expected Debug to be true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.envVars, func(t *testing.T) {
				cfg, err := Load()
				if err != nil {
					t.Fatalf("Load returned error: %v", err)
				}
				tt.validate(t, cfg)
			})
		})
	}
}

func TestLoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_base: https://file.triply.example\ntimeout_seconds: 15\ndebug: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Run("file values apply", func(t *testing.T) {
		withEnv(t, map[string]string{}, func(t *testing.T) {
			cfg, err := LoadWithFile(path)
			if err != nil {
				t.Fatalf("LoadWithFile returned error: %v", err)
			}
			if cfg.APIBase != "https://file.triply.example" {
				t.Errorf("APIBase = %q, want the file value", cfg.APIBase)
			}
			if cfg.RequestTimeout != 15*time.Second {
				t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
			}
			if !cfg.Debug {
				t.Error("Debug should come from the file")
			}
		})
	})

	t.Run("env wins over file", func(t *testing.T) {
		withEnv(t, map[string]string{"TRIPLY_API_BASE": "https://env.triply.example"}, func(t *testing.T) {
			cfg, err := LoadWithFile(path)
			if err != nil {
				t.Fatalf("LoadWithFile returned error: %v", err)
			}
			if cfg.APIBase != "https://env.triply.example" {
				t.Errorf("APIBase = %q, want the env value", cfg.APIBase)
			}
		})
	})

	t.Run("missing file is fine", func(t *testing.T) {
		withEnv(t, map[string]string{}, func(t *testing.T) {
			cfg, err := LoadWithFile(filepath.Join(dir, "nope.yaml"))
			if err != nil {
				t.Fatalf("LoadWithFile returned error: %v", err)
			}
			if cfg.APIBase != "http://localhost:8080" {
				t.Errorf("APIBase = %q, want the default", cfg.APIBase)
			}
		})
	})

	t.Run("malformed file errors", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(bad, []byte("api_base: [unclosed"), 0o600); err != nil {
			t.Fatalf("write config file: %v", err)
		}
		withEnv(t, map[string]string{}, func(t *testing.T) {
			if _, err := LoadWithFile(bad); err == nil {
				t.Error("expected an error for a malformed config file")
			}
		})
	})
}
