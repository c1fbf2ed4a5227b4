package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var frameworksJSON bool

var frameworksCmd = &cobra.Command{
	Use:   "frameworks [id]",
	Short: "List structuring frameworks or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFrameworks,
}

func init() {
	frameworksCmd.Flags().BoolVar(&frameworksJSON, "json", false, "Emit JSON instead of styled output")
}

func runFrameworks(cmd *cobra.Command, args []string) error {
	system := newSystem()

	if len(args) == 1 {
		summary, ok := system.GetFramework(args[0])
		if !ok {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("unknown framework %q", args[0])))
			return fmt.Errorf("unknown framework %q", args[0])
		}

		if frameworksJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(summary)
		}

		fmt.Println(headerStyle.Render(summary.Name))
		fmt.Printf("%s %s\n", labelStyle.Render("id"), summary.ID)
		fmt.Println(summary.Description)
		fmt.Printf("%s %s\n", labelStyle.Render("ideal for"), strings.Join(summary.IdealFor, ", "))
		fmt.Printf("%s %s\n", labelStyle.Render("personas"), strings.Join(summary.RolePersonas, ", "))
		fmt.Printf("%s %s\n", labelStyle.Render("triggers"), strings.Join(summary.TriggerKeywords, ", "))
		return nil
	}

	summaries := system.ListFrameworks()
	if frameworksJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summaries)
	}

	for _, summary := range summaries {
		fmt.Printf("%s  %s\n", headerStyle.Render(summary.ID), summary.Name)
		fmt.Println(mutedStyle.Render("  " + summary.Description))
	}
	return nil
}
