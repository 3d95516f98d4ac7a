package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug: true
server:
  host: "0.0.0.0"
  port: 9090
storage:
  database_path: "/tmp/kasane/papers.db"
embedding:
  api_key: "sk-test"
  dimensions: 512
search:
  semantic_weight: 0.5
source:
  year: 2023
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("Expected debug true")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("Unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath != "/tmp/kasane/papers.db" {
		t.Errorf("Unexpected database path: %s", cfg.Storage.DatabasePath)
	}
	if cfg.Embedding.APIKey != "sk-test" || cfg.Embedding.Dimensions != 512 {
		t.Errorf("Unexpected embedding config: %+v", cfg.Embedding)
	}
	if cfg.Search.SemanticWeight != 0.5 {
		t.Errorf("Expected semantic weight 0.5, got %v", cfg.Search.SemanticWeight)
	}
	if cfg.Source.Year != 2023 {
		t.Errorf("Expected year 2023, got %d", cfg.Source.Year)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: valid")
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("Unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("Unexpected model default: %s", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 384 || cfg.Embedding.ImageDimensions != 768 {
		t.Errorf("Unexpected dimension defaults: %+v", cfg.Embedding)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 100 {
		t.Errorf("Unexpected limit defaults: %+v", cfg.Search)
	}
	if cfg.Search.SemanticWeight != 0.7 {
		t.Errorf("Expected default semantic weight 0.7, got %v", cfg.Search.SemanticWeight)
	}
	if len(cfg.Images.Extensions) == 0 {
		t.Error("Expected default image extensions")
	}
	if cfg.Source.BaseURL != "https://papers.nips.cc" {
		t.Errorf("Unexpected base URL default: %s", cfg.Source.BaseURL)
	}
	// No year, no listing URL.
	if cfg.Source.ListingURL != "" {
		t.Errorf("Expected empty listing URL without a year, got %s", cfg.Source.ListingURL)
	}
}

func TestApplyDefaults_ListingURLFromYear(t *testing.T) {
	cfg := &Config{}
	cfg.Source.Year = 2024
	ApplyDefaults(cfg)

	want := "https://papers.nips.cc/paper_files/paper/2024"
	if cfg.Source.ListingURL != want {
		t.Errorf("Expected %s, got %s", want, cfg.Source.ListingURL)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 3000
	cfg.Search.SemanticWeight = 0.9
	ApplyDefaults(cfg)

	if cfg.Server.Port != 3000 {
		t.Errorf("Expected port 3000 preserved, got %d", cfg.Server.Port)
	}
	if cfg.Search.SemanticWeight != 0.9 {
		t.Errorf("Expected weight 0.9 preserved, got %v", cfg.Search.SemanticWeight)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name      string
		path      string
		configDir string
		want      string
	}{
		{"absolute unchanged", "/var/lib/kasane/db", "/etc/kasane", "/var/lib/kasane/db"},
		{"dot-relative to config dir", "./data/db", "/etc/kasane", "/etc/kasane/data/db"},
		{"bare relative to home", "kasane/db", "/etc/kasane", filepath.Join(home, "kasane/db")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.path, tt.configDir)
			if got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoad_ExpandsStoragePaths(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: "./data/papers.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	configDir := filepath.Dir(path)
	if !strings.HasPrefix(cfg.Storage.DatabasePath, configDir) {
		t.Errorf("Expected database path under %s, got %s", configDir, cfg.Storage.DatabasePath)
	}
}
