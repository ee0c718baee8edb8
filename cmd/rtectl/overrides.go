package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/rtectl/internal/config"
)

// overrideFile is a flat set of per-run player tweaks. Only keys present in the
// file are applied.
type overrideFile struct {
	LMS              string `toml:"lms"`
	Attempt          string `toml:"attempt"`
	BridgeAddr       string `toml:"bridge_addr"`
	FetchContent     bool   `toml:"fetch_content"`
	Timeout          string `toml:"timeout"`
	RetryInterval    string `toml:"retry_interval"`
	RetryMaxAttempts int    `toml:"retry_max_attempts"`
	LogLevel         string `toml:"log_level"`
	LogJSON          bool   `toml:"log_json"`
}

func applyOverrides(cfg config.PlayerConfig, path string) (config.PlayerConfig, error) {
	var raw overrideFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.PlayerConfig{}, fmt.Errorf("load player overrides: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config.PlayerConfig{}, fmt.Errorf("unknown override key: %s", undecoded[0])
	}

	if meta.IsDefined("lms") {
		cfg.LMS = strings.TrimSpace(raw.LMS)
	}
	if meta.IsDefined("attempt") {
		cfg.Attempt = strings.TrimSpace(raw.Attempt)
	}
	if meta.IsDefined("bridge_addr") {
		cfg.Bridge.Addr = strings.TrimSpace(raw.BridgeAddr)
	}
	if meta.IsDefined("fetch_content") {
		cfg.FetchContent = raw.FetchContent
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return config.PlayerConfig{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = config.Duration{Duration: d}
	}
	if meta.IsDefined("retry_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RetryInterval))
		if err != nil {
			return config.PlayerConfig{}, fmt.Errorf("parse retry_interval: %w", err)
		}
		cfg.Retry.Interval = config.Duration{Duration: d}
	}
	if meta.IsDefined("retry_max_attempts") {
		cfg.Retry.MaxAttempts = raw.RetryMaxAttempts
	}
	if meta.IsDefined("log_level") {
		cfg.Log.Level = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_json") {
		cfg.Log.JSON = raw.LogJSON
	}

	if err := config.ValidatePlayerConfig(cfg); err != nil {
		return config.PlayerConfig{}, err
	}
	return cfg, nil
}
