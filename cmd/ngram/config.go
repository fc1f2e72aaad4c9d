package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the config file (~/.config/ngramlab/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	Corpus          string `yaml:"corpus"`
	KeepCase        *bool  `yaml:"keep_case"`
	KeepPunctuation *bool  `yaml:"keep_punctuation"`

	// Model and sampling defaults
	MaxOrder *int64 `yaml:"max_order"`
	Length   *int64 `yaml:"length"`
	Seed     *int64 `yaml:"seed"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ngramlab", "config.yaml")
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyLoggingConfig applies config file defaults to the logging flags when
// they were not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyCorpusConfig applies config file defaults to the corpus flags.
func applyCorpusConfig(c *cli.Command, cfg Config) {
	if cfg.Corpus != "" && !c.IsSet("corpus") {
		corpusPath = cfg.Corpus
	}
	if cfg.KeepCase != nil && !c.IsSet("keep-case") {
		keepCase = *cfg.KeepCase
	}
	if cfg.KeepPunctuation != nil && !c.IsSet("keep-punctuation") {
		keepPunctuation = *cfg.KeepPunctuation
	}
}

// applyModelConfig applies config file defaults to the model and sampling
// flags of a command. Nil destinations are skipped.
func applyModelConfig(c *cli.Command, cfg Config, maxOrder, length, seed *int64) {
	if maxOrder != nil && cfg.MaxOrder != nil && !c.IsSet("max-order") {
		*maxOrder = *cfg.MaxOrder
	}
	if length != nil && cfg.Length != nil && !c.IsSet("length") {
		*length = *cfg.Length
	}
	if seed != nil && cfg.Seed != nil && !c.IsSet("seed") {
		*seed = *cfg.Seed
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
