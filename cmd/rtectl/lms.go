package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/rtectl/internal/config"
	"github.com/danmuck/rtectl/internal/lms"
)

func newLMSCmd(root *rootOptions) *cobra.Command {
	var (
		cfgPath string
		addr    string
	)
	cmd := &cobra.Command{
		Use:   "lms",
		Short: "Serve the loopback LMS",
		Long:  "Serve the loopback LMS. Without a config the sample course is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadLMSConfig(configPath(cfgPath, envLMSConfig))
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			initLogging("lms", cfg.Log, root.logLevel)

			server, err := lms.New(cfg.ServerConfig())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().
				Str("id", server.ID).
				Str("addr", server.Addr).
				Str("course", cfg.Course.ID).
				Int("activities", len(cfg.Course.Activities)).
				Msg("lms started")
			return server.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "lms config path (default $"+envLMSConfig+")")
	cmd.Flags().StringVar(&addr, "addr", "", "override the listen address")
	return cmd
}

func loadLMSConfig(path string) (config.LMSConfig, error) {
	if path == "" {
		return config.SampleLMSConfig()
	}
	return config.LoadLMSConfig(path)
}
