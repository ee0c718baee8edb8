package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/rtectl/internal/config"
	"github.com/danmuck/rtectl/internal/logging"
	"github.com/danmuck/rtectl/internal/observability"
)

const (
	envPlayerConfig = "RTECTL_PLAYER_CONFIG"
	envLMSConfig    = "RTECTL_LMS_CONFIG"
)

type rootOptions struct {
	envFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "rtectl",
		Short: "SCORM run-time player and loopback LMS",
		Long: `rtectl drives SCORM 1.2 and 2004 content through a frameset player that
posts learner state to an LMS, and ships a small LMS to post against.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(opts.envFile, cmd.Flags().Changed("env-file"))
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file read before configs")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newPlayerCmd(opts),
		newLMSCmd(opts),
		newReplayCmd(opts),
		newParseCmd(),
		newValidateCmd(),
		newConfigCmd(),
	)
	return cmd
}

// loadEnvFile tolerates a missing default file but not a missing explicit one.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func initLogging(app string, cfg config.LogConfig, level string) zerolog.Logger {
	resolved := logging.FromEnv(cfg.Logging())
	if lvl, ok := logging.ParseLevel(level); ok {
		resolved.Level = lvl
	}
	return observability.InitLogger(app, resolved)
}

func configPath(flag, env string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(env)
}
