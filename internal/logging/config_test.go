package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevelAliases(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":       zerolog.TraceLevel,
		"diagnostics": zerolog.TraceLevel,
		" DEBUG ":     zerolog.DebugLevel,
		"warning":     zerolog.WarnLevel,
		"off":         zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		if !ok {
			t.Fatalf("level %q not recognized", raw)
		}
		if got != want {
			t.Fatalf("level %q got=%v want=%v", raw, got, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
	if _, ok := ParseLevel(""); ok {
		t.Fatalf("expected empty level to be ignored")
	}
}

func TestApplyBypassWritesJSON(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Apply(Config{Level: zerolog.DebugLevel, Bypass: true, Out: &buf})
	log.Debug().Str("element", "cmi.location").Msg("set")

	out := strings.TrimSpace(buf.String())
	if !strings.Contains(out, `"element":"cmi.location"`) {
		t.Fatalf("expected json field, got %s", out)
	}
	if !strings.Contains(out, `"level":"debug"`) {
		t.Fatalf("expected debug level, got %s", out)
	}
}

func TestEnvOverridesApplyToProfile(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "true")
	t.Setenv(EnvLogBypass, "1")
	cfg := defaultConfig(ProfileTest)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("unexpected level: %v", cfg.Level)
	}
	if !cfg.Timestamp || !cfg.Bypass {
		t.Fatalf("expected timestamp and bypass overrides: %+v", cfg)
	}
}

func TestFromEnvKeepsUnsetFields(t *testing.T) {
	t.Setenv(EnvLogNoColor, "yes-please")
	t.Setenv(EnvLogLevel, "warn")
	cfg := FromEnv(Config{Level: zerolog.DebugLevel, Timestamp: true})
	if cfg.Level != zerolog.WarnLevel {
		t.Fatalf("unexpected level: %v", cfg.Level)
	}
	if !cfg.Timestamp || cfg.NoColor {
		t.Fatalf("unparseable or unset env must not change fields: %+v", cfg)
	}
}
