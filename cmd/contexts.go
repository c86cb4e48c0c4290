package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/config"
	"github.com/vietdv277/cirrus/internal/ui"
)

var contextsCmd = &cobra.Command{
	Use:     "contexts",
	Aliases: []string{"ctx"},
	Short:   "List all configured contexts",
	Long: `List all configured contexts.

The current active context is marked with an asterisk (*).

Examples:
  crs contexts
  crs ctx`,
	RunE: runContexts,
}

func init() {
	rootCmd.AddCommand(contextsCmd)
}

func runContexts(cmd *cobra.Command, args []string) error {
	contexts, current, err := config.ListContexts()
	if err != nil {
		return fmt.Errorf("failed to list contexts: %w", err)
	}

	if len(contexts) == 0 {
		fmt.Println("No contexts configured.")
		fmt.Println()
		fmt.Println("Add a context with:")
		fmt.Println("  crs use add <name> --endpoint <url> --project <project-id>")
		return nil
	}

	// Sort context names
	names := make([]string, 0, len(contexts))
	for name := range contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	// Print header
	fmt.Println()
	fmt.Printf("  %-20s  %-36s  %-12s  %s\n",
		ui.HeaderStyle.Render("CONTEXT"),
		ui.HeaderStyle.Render("ENDPOINT"),
		ui.HeaderStyle.Render("TOOL TYPE"),
		ui.HeaderStyle.Render("PROJECT"))
	fmt.Println(ui.MutedStyle.Render("  " + strings.Repeat(ui.Horizontal, 90)))

	for _, name := range names {
		ctx := contexts[name]
		if ctx == nil {
			ctx = &config.Context{}
		}

		marker := "  "
		nameStr := name
		if name == current {
			marker = "* "
			nameStr = ui.RunningStyle.Render(name)
		}

		endpoint := ctx.Endpoint
		if endpoint == "" {
			endpoint = ui.MutedStyle.Render("-")
		}

		cliType := ctx.ClusterType
		if cliType == "" {
			cliType = "KUBERNETES"
		}

		project := ctx.Project
		if project == "" {
			project = ui.MutedStyle.Render("-")
		}

		fmt.Printf("%s%-20s  %-36s  %-12s  %s\n",
			marker,
			nameStr,
			endpoint,
			ui.CLIStyle.Render(cliType),
			project)
	}

	fmt.Println()
	fmt.Printf("  %d contexts configured", len(contexts))
	if current != "" {
		fmt.Printf(", current: %s", ui.RunningStyle.Render(current))
	}
	fmt.Println()

	return nil
}
