package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/cli"
	"github.com/vietdv277/cirrus/internal/config"
	"github.com/vietdv277/cirrus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current context, tool and API status",
	Long: `Display the current active context, check that the cluster tool is
installed and verify that the API accepts our credentials.

Examples:
  crs status
  crs status --context lab`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	cfgCtx, name, err := config.ResolveContext(settings.Context)
	if err != nil {
		fmt.Println("Context:  " + ui.MutedStyle.Render("(not set)"))
		fmt.Println()
		fmt.Println("No context configured. Set one with:")
		fmt.Println("  crs use add <name> --endpoint <url> --project <project-id>")
		fmt.Println("  crs use <name>")
		return nil
	}

	fmt.Printf("Context:  %s\n", ui.HeaderStyle.Render(name))
	if cfgCtx.Project != "" {
		fmt.Printf("Project:  %s\n", cfgCtx.Project)
	}
	fmt.Println()

	displayToolStatus(cfgCtx)
	fmt.Println()

	b, err := newBackend(ctx)
	if err != nil {
		fmt.Println("API:      " + ui.ErrorStyle.Render("✗ "+err.Error()))
		return nil
	}
	if b.client == nil {
		fmt.Println("API:      " + ui.MutedStyle.Render("(no endpoint)"))
		return nil
	}

	fmt.Printf("API:      %s\n", ui.APIStyle.Render(b.client.Endpoint()))
	fmt.Print("Auth:     ")
	if cfgCtx.Project == "" {
		fmt.Println(ui.PendingStyle.Render("? Not verified (no project set)"))
		return nil
	}

	project, err := b.client.GetProject(ctx, cfgCtx.Project)
	if err != nil {
		fmt.Println(ui.StoppedStyle.Render("✗ Not authenticated"))
		fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
		return nil
	}
	fmt.Println(ui.RunningStyle.Render("✓ Authenticated"))
	fmt.Printf("Tenant:   %s\n", project.TenantName)
	return nil
}

func displayToolStatus(cfgCtx *config.Context) {
	binary := cfgCtx.CLIPath
	if settings.CLIPath != "" {
		binary = settings.CLIPath
	}
	if binary == "" {
		binary = cli.DefaultBinary
	}

	cliType := cfgCtx.ClusterType
	if cliType == "" {
		cliType = "KUBERNETES"
	}

	fmt.Printf("Tool:     %s\n", ui.CLIStyle.Render(binary))
	fmt.Printf("Manages:  %s clusters\n", cliType)
	fmt.Print("Found:    ")
	if path, err := exec.LookPath(binary); err == nil {
		fmt.Println(ui.RunningStyle.Render("✓ " + path))
	} else {
		fmt.Println(ui.StoppedStyle.Render("✗ Not on PATH"))
	}
}
