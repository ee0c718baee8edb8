package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/rtectl/internal/datamodel"
)

// Duration reads TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type PlayerConfig struct {
	Name         string       `toml:"name"`
	LMS          string       `toml:"lms"`
	StartPath    string       `toml:"start_path"`
	PostPath     string       `toml:"post_path"`
	Attempt      string       `toml:"attempt"`
	ClearURL     string       `toml:"clear_url"`
	FetchContent bool         `toml:"fetch_content"`
	Timeout      Duration     `toml:"timeout"`
	Bridge       BridgeConfig `toml:"bridge"`
	Retry        RetryConfig  `toml:"retry"`
	Log          LogConfig    `toml:"log"`
}

type BridgeConfig struct {
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
	CallTimeout Duration `toml:"call_timeout"`
}

type RetryConfig struct {
	Interval    Duration `toml:"interval"`
	Multiplier  float64  `toml:"multiplier"`
	MaxInterval Duration `toml:"max_interval"`
	MaxAttempts int      `toml:"max_attempts"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
	JSON      bool   `toml:"json"`
}

type LMSConfig struct {
	Name        string       `toml:"name"`
	Addr        string       `toml:"addr"`
	CorsOrigins []string     `toml:"cors_origins"`
	ContentDir  string       `toml:"content_dir"`
	Course      CourseConfig `toml:"course"`
	Log         LogConfig    `toml:"log"`
}

type CourseConfig struct {
	ID          string           `toml:"id"`
	Review      bool             `toml:"review"`
	LearnerID   string           `toml:"learner_id"`
	LearnerName string           `toml:"learner_name"`
	Activities  []ActivityConfig `toml:"activities"`
}

type ActivityConfig struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	URL         string `toml:"url"`
	Version     string `toml:"version"`
	RteRequired bool   `toml:"rte_required"`
	LaunchData  string `toml:"launch_data"`
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Name:         "rtectl-player",
		LMS:          "http://127.0.0.1:9300",
		StartPath:    "/lms/frameset",
		PostPath:     "/lms/post",
		ClearURL:     "about:blank",
		FetchContent: true,
		Timeout:      Duration{10 * time.Second},
		Bridge: BridgeConfig{
			Addr:        "127.0.0.1:9310",
			CallTimeout: Duration{5 * time.Second},
		},
		Retry: RetryConfig{
			Interval:    Duration{500 * time.Millisecond},
			Multiplier:  1,
			MaxAttempts: 50,
		},
		Log: LogConfig{Level: "info", Timestamp: true},
	}
}

func DefaultLMSConfig() LMSConfig {
	return LMSConfig{
		Name: "rtectl-lms",
		Addr: "127.0.0.1:9300",
		Log:  LogConfig{Level: "info", Timestamp: true},
	}
}

// LoadPlayerConfig reads path over the defaults and validates the result.
func LoadPlayerConfig(path string) (PlayerConfig, error) {
	cfg := DefaultPlayerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return PlayerConfig{}, err
	}
	if err := ValidatePlayerConfig(cfg); err != nil {
		return PlayerConfig{}, err
	}
	return cfg, nil
}

func LoadLMSConfig(path string) (LMSConfig, error) {
	cfg := DefaultLMSConfig()
	if err := loadToml(path, &cfg); err != nil {
		return LMSConfig{}, err
	}
	if err := ValidateLMSConfig(cfg); err != nil {
		return LMSConfig{}, err
	}
	return cfg, nil
}

// SampleLMSConfig is the LMS template, used when no config file is given.
func SampleLMSConfig() (LMSConfig, error) {
	cfg := DefaultLMSConfig()
	if err := decodeToml([]byte(lmsTemplate), "template", &cfg); err != nil {
		return LMSConfig{}, err
	}
	return cfg, ValidateLMSConfig(cfg)
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	return decodeToml(data, path, out)
}

func decodeToml(data []byte, source string, out any) error {
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", source, err)
	}
	return nil
}

func ValidatePlayerConfig(cfg PlayerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("player config missing name")
	}
	if strings.TrimSpace(cfg.LMS) == "" {
		return fmt.Errorf("player config missing lms")
	}
	if !strings.HasPrefix(cfg.StartPath, "/") || !strings.HasPrefix(cfg.PostPath, "/") {
		return fmt.Errorf("player config paths must be absolute: start=%q post=%q", cfg.StartPath, cfg.PostPath)
	}
	if err := ValidateRetry(cfg.Retry); err != nil {
		return fmt.Errorf("retry invalid: %w", err)
	}
	return nil
}

func ValidateRetry(cfg RetryConfig) error {
	if cfg.Interval.Duration <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if cfg.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative")
	}
	if cfg.Multiplier != 0 && cfg.Multiplier < 1 {
		return fmt.Errorf("multiplier must be at least 1")
	}
	return nil
}

func ValidateLMSConfig(cfg LMSConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("lms config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("lms config missing addr")
	}
	if len(cfg.Course.Activities) == 0 {
		return fmt.Errorf("lms config course has no activities")
	}
	for i, act := range cfg.Course.Activities {
		if err := ValidateActivity(act); err != nil {
			return fmt.Errorf("activity[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateActivity(cfg ActivityConfig) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if cfg.Version != "" && !datamodel.Version(cfg.Version).Valid() {
		return fmt.Errorf("%w: %s", datamodel.ErrUnknownVersion, cfg.Version)
	}
	return nil
}
