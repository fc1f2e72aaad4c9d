package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields zero config", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.Corpus != "" || cfg.MaxOrder != nil || cfg.Seed != nil {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("parses fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte("corpus: /tmp/text.txt\nkeep_case: true\nmax_order: 3\nlength: 40\nseed: 7\nlog_level: debug\nserver_address: 0.0.0.0:9000\n")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.Corpus != "/tmp/text.txt" {
			t.Fatalf("unexpected corpus: %q", cfg.Corpus)
		}
		if cfg.KeepCase == nil || !*cfg.KeepCase {
			t.Fatalf("expected keep_case true")
		}
		if cfg.KeepPunctuation != nil {
			t.Fatalf("expected keep_punctuation unset")
		}
		if cfg.MaxOrder == nil || *cfg.MaxOrder != 3 {
			t.Fatalf("unexpected max_order: %v", cfg.MaxOrder)
		}
		if cfg.Length == nil || *cfg.Length != 40 {
			t.Fatalf("unexpected length: %v", cfg.Length)
		}
		if cfg.Seed == nil || *cfg.Seed != 7 {
			t.Fatalf("unexpected seed: %v", cfg.Seed)
		}
		if cfg.LogLevel != "debug" || cfg.ServerAddress != "0.0.0.0:9000" {
			t.Fatalf("unexpected output/server fields: %+v", cfg)
		}
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("max_order: [1, 2\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}
