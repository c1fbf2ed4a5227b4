package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"promptc/internal/config"
	"promptc/internal/optimize"
	"promptc/internal/provider"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "promptc",
	Short: "promptc - validation-enforced prompt structuring engine",
	Long: `promptc compiles vague, hedged requests into decisive structured
prompts. Every output passes through a validation loop: mandatory
sections must be present and hedging language is rejected. When an
LLM is configured it drafts the structure and regenerates on
violations; without one a deterministic structurer produces the
output. Either way the result is always valid.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newSystem wires the engine from the loaded configuration.
func newSystem() *optimize.System {
	client := provider.Detect(provider.Settings{
		GroqAPIKey:   cfg.LLM.GroqAPIKey,
		GroqModel:    cfg.LLM.GroqModel,
		GroqTimeout:  cfg.GetGroqTimeout(),
		GeminiAPIKey: cfg.LLM.GeminiAPIKey,
		GeminiModel:  cfg.LLM.GeminiModel,
	}, logger)
	return optimize.NewSystem(client, logger)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "promptc.yaml", "Path to config file")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(frameworksCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
