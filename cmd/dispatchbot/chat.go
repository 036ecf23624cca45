package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dispatch-bot/internal/dispatch/delivery/console"
	"dispatch-bot/internal/metrics"
)

func newChatCmd(a *app) *cobra.Command {
	var userName string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the bot from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			uc, err := a.buildUseCase(ctx, metrics.NewNop())
			if err != nil {
				return err
			}
			return console.New(a.l, uc, os.Stdin, os.Stdout, userName).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&userName, "name", "", "your display name in the conversation")

	return cmd
}
