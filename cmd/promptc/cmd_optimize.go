package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"promptc/internal/optimize"
)

var (
	optimizeFramework string
	optimizeStatic    bool
	optimizeJSON      bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [input...]",
	Short: "Compile one or more inputs into structured prompts",
	Long: `Runs each input through the engine. Multiple inputs are processed
concurrently and printed in argument order.

Examples:
  promptc optimize "build a todo app maybe in react or vue"
  promptc optimize --framework creative "name my startup"
  promptc optimize --static --json "explain how databases work"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeFramework, "framework", "f", "", "Force a specific framework")
	optimizeCmd.Flags().BoolVar(&optimizeStatic, "static", false, "Skip the LLM and structure deterministically")
	optimizeCmd.Flags().BoolVar(&optimizeJSON, "json", false, "Emit JSON instead of styled output")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	system := newSystem()

	results := make([]optimize.Response, len(args))
	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(4)

	for i, input := range args {
		group.Go(func() error {
			resp, err := system.Process(ctx, input, optimizeFramework, optimizeStatic)
			if err != nil {
				return fmt.Errorf("input %q: %w", input, err)
			}
			results[i] = resp
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return err
	}

	if optimizeJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if len(results) == 1 {
			return encoder.Encode(results[0])
		}
		return encoder.Encode(results)
	}

	for i, result := range results {
		if i > 0 {
			fmt.Println()
		}
		printResult(result)
	}
	return nil
}

func printResult(result optimize.Response) {
	fmt.Println(headerStyle.Render(result.Framework.Name))
	fmt.Printf("%s %.2f   %s %s\n",
		labelStyle.Render("confidence"), result.Confidence,
		labelStyle.Render("mode"), result.GenerationMode)
	fmt.Println(mutedStyle.Render(result.Reasoning))
	fmt.Println(promptStyle.Render(result.OptimizedPrompt))
}
