package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/textgen/internal/config"
	"github.com/user/textgen/pkg/llm"
	"github.com/user/textgen/pkg/llm/openai"
)

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "textgen",
	Short:         "Generate text with OpenAI chat models",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if level == "" {
			level = loadConfig().LogLevel
		}
		setupLogging(level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "config file path (.json, .yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

// newClient builds the OpenAI client from config. modelFlag, when set,
// overrides llm.model.
func newClient(cfg *config.Config, modelFlag string) (*openai.Client, error) {
	name := cfg.LLM.Model
	if modelFlag != "" {
		name = modelFlag
	}
	model, err := llm.ParseModel(name)
	if err != nil {
		return nil, err
	}

	client, err := openai.New(&llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   model,
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	slog.Debug("client ready", "model", model, "base_url", cfg.LLM.BaseURL)
	return client, nil
}
