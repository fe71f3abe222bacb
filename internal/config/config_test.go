package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.APIURL != "https://api.github.com" {
		t.Errorf("expected default api_url, got %s", cfg.APIURL)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", cfg.Workers)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.OutputDir != "." {
		t.Errorf("expected default output dir '.', got %s", cfg.OutputDir)
	}
	if !cfg.Progress {
		t.Error("expected progress enabled by default")
	}
	if cfg.UserAgent != "egit-cli" {
		t.Errorf("expected default user agent 'egit-cli', got %s", cfg.UserAgent)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
api_url: https://github.example.com/api/v3
token: secret
workers: 8
output_dir: /tmp/downloads
timeout: 2m
progress: false
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.APIURL != "https://github.example.com/api/v3" {
		t.Errorf("expected api_url override, got %s", cfg.APIURL)
	}
	if cfg.Token != "secret" {
		t.Errorf("expected token 'secret', got %s", cfg.Token)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Workers)
	}
	if cfg.OutputDir != "/tmp/downloads" {
		t.Errorf("expected output dir override, got %s", cfg.OutputDir)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("expected timeout 2m, got %v", cfg.Timeout)
	}
	if cfg.Progress {
		t.Error("expected progress disabled")
	}
}

func TestLoadFromYAMLPartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("workers: 16\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Workers != 16 {
		t.Errorf("expected workers 16, got %d", cfg.Workers)
	}
	// Unset fields keep their defaults.
	if cfg.APIURL != "https://api.github.com" {
		t.Errorf("expected default api_url preserved, got %s", cfg.APIURL)
	}
	if !cfg.Progress {
		t.Error("expected default progress preserved")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EGIT_API_URL", "https://ghe.example.com/api/v3")
	t.Setenv("EGIT_WORKERS", "12")
	t.Setenv("EGIT_OUTPUT_DIR", "/var/tmp")
	t.Setenv("EGIT_TIMEOUT", "90s")
	t.Setenv("EGIT_TOKEN", "env-token")
	t.Setenv("EGIT_PROGRESS", "false")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.APIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("expected api_url from env, got %s", cfg.APIURL)
	}
	if cfg.Workers != 12 {
		t.Errorf("expected workers 12, got %d", cfg.Workers)
	}
	if cfg.OutputDir != "/var/tmp" {
		t.Errorf("expected output dir from env, got %s", cfg.OutputDir)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("expected timeout 90s, got %v", cfg.Timeout)
	}
	if cfg.Token != "env-token" {
		t.Errorf("expected token from env, got %s", cfg.Token)
	}
	if cfg.Progress {
		t.Error("expected progress disabled via env")
	}
}

func TestLoadFromEnvGitHubTokenFallback(t *testing.T) {
	t.Setenv("EGIT_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "gh-token")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Token != "gh-token" {
		t.Errorf("expected GITHUB_TOKEN fallback, got %q", cfg.Token)
	}
}

func TestLoadFromEnvInvalidWorkers(t *testing.T) {
	t.Setenv("EGIT_WORKERS", "lots")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid EGIT_WORKERS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"missing api_url", func(c *Config) { c.APIURL = "" }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	base.Token = "base-token"

	merged := base.Merge(Config{Workers: 8, OutputDir: "/downloads"})

	if merged.Workers != 8 {
		t.Errorf("expected Workers overridden to 8, got %d", merged.Workers)
	}
	if merged.OutputDir != "/downloads" {
		t.Errorf("expected OutputDir overridden, got %s", merged.OutputDir)
	}
	// Non-overridden fields preserved.
	if merged.Token != "base-token" {
		t.Errorf("expected token preserved, got %s", merged.Token)
	}
	if merged.APIURL != base.APIURL {
		t.Errorf("expected api_url preserved, got %s", merged.APIURL)
	}
}

func TestLoadYAMLFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
