package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dispatch-bot/config"
	_ "dispatch-bot/docs" // Swagger docs
	"dispatch-bot/pkg/log"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	cfg *config.Config
	l   log.Logger
}

// @title       Dispatch Bot API
// @description Routes chat messages to an intent recognizer and per-topic Q and A knowledge bases.
// @version     1
// @host        localhost:3978
// @schemes     http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	a := &app{}

	root := &cobra.Command{
		Use:           "dispatchbot",
		Short:         "Dispatch bot: routes messages to LUIS and QnA Maker knowledge bases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.l = log.Init(log.ZapConfig{
				Level:        cfg.Logger.Level,
				Mode:         cfg.Logger.Mode,
				Encoding:     cfg.Logger.Encoding,
				ColorEnabled: cfg.Logger.ColorEnabled,
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: config.yaml in ./config, . or /etc/dispatch-bot/)")

	serve := newServeCmd(a)
	root.AddCommand(serve, newChatCmd(a))
	root.RunE = serve.RunE

	return root
}
