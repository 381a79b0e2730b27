package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/textgen/pkg/llm"
)

func init() {
	rootCmd.AddCommand(modelsCmd)
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported model identifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, m := range llm.Models() {
			fmt.Fprintln(os.Stdout, m)
		}
		return nil
	},
}
