package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/frameset"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestTemplatesLoad(t *testing.T) {
	dir := t.TempDir()
	playerPath := filepath.Join(dir, "player.toml")
	lmsPath := filepath.Join(dir, "lms.toml")
	require.NoError(t, WriteTemplate(playerPath, "player", false))
	require.NoError(t, WriteTemplate(lmsPath, "LMS", false))
	require.Error(t, WriteTemplate(playerPath, "player", false), "existing file kept")
	require.NoError(t, WriteTemplate(playerPath, "player", true))

	player, err := LoadPlayerConfig(playerPath)
	require.NoError(t, err)
	require.Equal(t, DefaultPlayerConfig().Retry, player.Retry)
	require.Equal(t, 5*time.Second, player.Bridge.CallTimeout.Duration)
	require.Equal(t, frameset.DefaultRetryPolicy(), player.FramesetOptions().Retry)

	lmsCfg, err := LoadLMSConfig(lmsPath)
	require.NoError(t, err)
	require.Len(t, lmsCfg.Course.Activities, 3)
	server := lmsCfg.ServerConfig()
	require.Equal(t, datamodel.Scorm12, server.Course.Activities[2].Version)
	require.Equal(t, "learner-1", server.Course.Learner.ID)
	require.NoError(t, server.Course.Validate())
}

func TestSampleLMSConfig(t *testing.T) {
	cfg, err := SampleLMSConfig()
	require.NoError(t, err)
	require.Equal(t, "sample-course", cfg.Course.ID)
	require.Equal(t, "1.2", cfg.Course.Activities[2].Version)
}

func TestUnknownTemplate(t *testing.T) {
	_, err := Template("ghost")
	require.Error(t, err)
}

func TestPlayerDefaultsFillMissingKeys(t *testing.T) {
	path := writeFile(t, "player.toml", `lms = "http://lms.local:8080"
[retry]
interval = "250ms"
max_attempts = 4
`)
	cfg, err := LoadPlayerConfig(path)
	require.NoError(t, err)
	require.Equal(t, "rtectl-player", cfg.Name)
	require.Equal(t, "http://lms.local:8080", cfg.TransportConfig().LMSAddress)
	require.Equal(t, "/lms/post", cfg.TransportConfig().PostPath)

	opts := cfg.FramesetOptions()
	require.Equal(t, 250*time.Millisecond, opts.Retry.InitialDelay)
	require.Equal(t, 4, opts.Retry.MaxAttempts)
	require.Equal(t, frameset.FrameHidden, opts.PostFrame)
}

func TestPlayerValidation(t *testing.T) {
	cases := map[string]string{
		"bad duration": "timeout = \"soon\"\n",
		"bad path":     "post_path = \"lms/post\"\n",
		"bad retry":    "[retry]\ninterval = \"0s\"\n",
		"bad mult":     "[retry]\nmultiplier = 0.5\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadPlayerConfig(writeFile(t, "player.toml", body))
			require.Error(t, err)
		})
	}
}

func TestLMSValidation(t *testing.T) {
	_, err := LoadLMSConfig(writeFile(t, "lms.toml", "name = \"x\"\n"))
	require.ErrorContains(t, err, "no activities")

	_, err = LoadLMSConfig(writeFile(t, "lms.toml", "[[course.activities]]\nid = \"a\"\nversion = \"3rd\"\n"))
	require.ErrorIs(t, err, datamodel.ErrUnknownVersion)

	_, err = LoadLMSConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "config load failed")
}

func TestLogSection(t *testing.T) {
	lc := LogConfig{Level: "debug", JSON: true}.Logging()
	require.Equal(t, zerolog.DebugLevel, lc.Level)
	require.True(t, lc.Bypass)
	require.Equal(t, zerolog.InfoLevel, LogConfig{Level: "shout"}.Logging().Level)
}
