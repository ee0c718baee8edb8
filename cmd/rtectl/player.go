package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/rtectl/internal/config"
	"github.com/danmuck/rtectl/internal/player"
)

func newPlayerCmd(root *rootOptions) *cobra.Command {
	var (
		cfgPath      string
		overridePath string
		attempt      string
	)
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Run a headless player with its content bridge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadPlayerConfig(configPath(cfgPath, envPlayerConfig), overridePath)
			if err != nil {
				return err
			}
			if attempt != "" {
				cfg.Attempt = attempt
			}
			initLogging("player", cfg.Log, root.logLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session, err := player.New(ctx, playerOptions(cfg, true))
			if err != nil {
				return err
			}
			if err := session.Start(ctx); err != nil {
				return err
			}
			log.Info().
				Str("session", session.ID).
				Str("bridge", cfg.Bridge.Addr).
				Msg("player running")

			select {
			case <-session.Done():
				log.Info().Str("session", session.ID).Msg("frameset closed")
			case <-ctx.Done():
				log.Info().Str("session", session.ID).Msg("player interrupted")
			}
			for _, alert := range session.Alerts() {
				log.Warn().Str("alert", alert).Msg("learner alert")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "player config path (default $"+envPlayerConfig+")")
	cmd.Flags().StringVar(&overridePath, "override", "", "toml file of per-run overrides")
	cmd.Flags().StringVar(&attempt, "attempt", "", "resume an existing LMS attempt")
	return cmd
}

func loadPlayerConfig(path, overridePath string) (config.PlayerConfig, error) {
	cfg := config.DefaultPlayerConfig()
	if path != "" {
		loaded, err := config.LoadPlayerConfig(path)
		if err != nil {
			return config.PlayerConfig{}, err
		}
		cfg = loaded
	}
	if overridePath == "" {
		return cfg, config.ValidatePlayerConfig(cfg)
	}
	return applyOverrides(cfg, overridePath)
}

func playerOptions(cfg config.PlayerConfig, serveBridge bool) player.Options {
	return player.Options{
		Frameset:    cfg.FramesetOptions(),
		Transport:   cfg.TransportConfig(),
		Bridge:      cfg.BridgeOptions(),
		StartPath:   cfg.StartPath,
		Attempt:     cfg.Attempt,
		ServeBridge: serveBridge,
	}
}
