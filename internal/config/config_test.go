package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := Load(filepath.Join(tempDir, "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	defaults, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	if cfg != defaults {
		t.Errorf("Expected defaults %+v, got %+v", defaults, cfg)
	}
	if cfg.FormatDelay() != 220*time.Millisecond {
		t.Errorf("Expected 220ms format delay, got %v", cfg.FormatDelay())
	}
}

func TestLoadOverrides(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")
	data := strings.Join([]string{
		"config_version: 1",
		"editor:",
		"  format_delay_ms: 10",
		"  marker_color: \"#ff9e64\"",
		"history:",
		"  limit: 3",
		"search:",
		"  min_score: 50",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Editor.FormatDelayMS != 10 {
		t.Errorf("Expected format delay 10, got %d", cfg.Editor.FormatDelayMS)
	}
	if cfg.Editor.MarkerColor != "#ff9e64" {
		t.Errorf("Expected marker colour #ff9e64, got %s", cfg.Editor.MarkerColor)
	}
	if cfg.History.Limit != 3 {
		t.Errorf("Expected history limit 3, got %d", cfg.History.Limit)
	}
	if cfg.Search.MinScore != 50 {
		t.Errorf("Expected min score 50, got %d", cfg.Search.MinScore)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level, got %s", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "Missing version",
			content: "editor:\n  format_delay_ms: 10\n",
			wantErr: "config_version is required",
		},
		{
			name:    "Wrong version",
			content: "config_version: 9\n",
			wantErr: "unsupported config_version 9",
		},
		{
			name:    "Bad colour",
			content: "config_version: 1\neditor:\n  marker_color: grey\n",
			wantErr: "marker_color",
		},
		{
			name:    "Negative delay",
			content: "config_version: 1\neditor:\n  format_delay_ms: -5\n",
			wantErr: "format_delay_ms",
		},
		{
			name:    "Unknown log level",
			content: "config_version: 1\nlogging:\n  level: loud\n",
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	if written != path {
		t.Errorf("Expected path %s, got %s", path, written)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written default failed: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Errorf("Expected version %d, got %d", CurrentConfigVersion, cfg.ConfigVersion)
	}

	if _, err := WriteDefault(path, false); err == nil {
		t.Error("Expected error when config already exists")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Errorf("Expected overwrite to succeed, got %v", err)
	}
}
