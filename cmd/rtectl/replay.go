package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/rtectl/internal/lms"
	"github.com/danmuck/rtectl/internal/node"
	"github.com/danmuck/rtectl/internal/player"
)

func newReplayCmd(root *rootOptions) *cobra.Command {
	var (
		playerCfg string
		lmsCfg    string
		lmsAddr   string
	)
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a scripted learner session",
		Long: `Replay runs a yaml script of content calls and navigation through a headless
player. Without --lms an in-process LMS is started on a loopback port.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := player.LoadScript(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadPlayerConfig(configPath(playerCfg, envPlayerConfig), "")
			if err != nil {
				return err
			}
			initLogging("replay", cfg.Log, root.logLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if lmsAddr == "" {
				addr, err := startLocalLMS(ctx, configPath(lmsCfg, envLMSConfig))
				if err != nil {
					return err
				}
				lmsAddr = addr
			}
			cfg.LMS = lmsAddr

			session, err := player.New(ctx, playerOptions(cfg, false))
			if err != nil {
				return err
			}
			if err := session.Start(ctx); err != nil {
				return err
			}
			if err := session.WaitReady(ctx); err != nil {
				return fmt.Errorf("frameset never became ready: %w", err)
			}

			results, runErr := session.Replay(ctx, script)
			if err := writeYAML(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}
			failed := 0
			for _, res := range results {
				if res.Failed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%s: %d of %d steps failed", script.Name, failed, len(results))
			}
			log.Info().Str("script", script.Name).Int("steps", len(results)).Msg("replay passed")
			return nil
		},
	}
	cmd.Flags().StringVar(&playerCfg, "config", "", "player config path (default $"+envPlayerConfig+")")
	cmd.Flags().StringVar(&lmsCfg, "lms-config", "", "config for the in-process LMS (default $"+envLMSConfig+")")
	cmd.Flags().StringVar(&lmsAddr, "lms", "", "replay against a running LMS instead")
	return cmd
}

// startLocalLMS serves an LMS on a free loopback port until ctx ends.
func startLocalLMS(ctx context.Context, path string) (string, error) {
	cfg, err := loadLMSConfig(path)
	if err != nil {
		return "", err
	}
	server, err := lms.New(cfg.ServerConfig())
	if err != nil {
		return "", err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	go func() {
		if err := node.ServeListener(ctx, server, ln); err != nil {
			log.Error().Err(err).Str("node", server.NodeID()).Msg("local lms stopped")
		}
	}()
	return "http://" + ln.Addr().String(), nil
}
