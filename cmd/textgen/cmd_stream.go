package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/textgen/pkg/llm"
)

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().String("model", "", "model identifier (overrides llm.model)")
}

var streamCmd = &cobra.Command{
	Use:   "stream <prompt>",
	Short: "Stream a response to stdout as it is generated",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		modelFlag, _ := cmd.Flags().GetString("model")

		client, err := newClient(cfg, modelFlag)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stream, err := client.StreamText(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		for frag, err := range llm.Fragments(stream) {
			if err != nil {
				fmt.Fprintln(os.Stdout)
				if errors.Is(err, context.Canceled) {
					slog.Info("stream interrupted")
					return nil
				}
				return err
			}
			fmt.Fprint(os.Stdout, frag.Text)
		}
		fmt.Fprintln(os.Stdout)
		return nil
	},
}
