package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/textgen/pkg/llm"
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("model", "", "model identifier (overrides llm.model)")
	generateCmd.Flags().Int("concurrency", 0, "max prompts in flight (overrides max_concurrent)")
}

var generateCmd = &cobra.Command{
	Use:   "generate <prompt> [prompt...]",
	Short: "Generate complete responses for one or more prompts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		modelFlag, _ := cmd.Flags().GetString("model")
		limit, _ := cmd.Flags().GetInt("concurrency")
		if limit <= 0 {
			limit = cfg.MaxConcurrent
		}

		client, err := newClient(cfg, modelFlag)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results, err := llm.GenerateAll(ctx, client, args, limit)
		if err != nil {
			return err
		}

		for i, text := range results {
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "--- [%d] %s\n", i+1, args[i])
			}
			fmt.Fprintln(os.Stdout, text)
		}
		return nil
	},
}
