package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use <context-name>",
	Short: "Set the active context",
	Long: `Set the active context for subsequent commands.

A context names an API endpoint, the default project and how the cluster
tool is invoked. Once set, cluster and image commands operate within it
unless --context is given.

Examples:
  crs use prod
  crs use lab`,
	Args: cobra.ExactArgs(1),
	RunE: runUse,
}

var useAddCmd = &cobra.Command{
	Use:   "add <context-name>",
	Short: "Add a new context",
	Long: `Add a new context configuration.

Examples:
  crs use add prod --endpoint https://cloud.example.com:9000 --project 7f3c...
  crs use add lab --endpoint http://10.0.0.5:9000 --cli-path /opt/photon/bin/photon
  crs use add prod --endpoint https://cloud.example.com --token-secret cirrus/prod --aws-profile ops`,
	Args: cobra.ExactArgs(1),
	RunE: runUseAdd,
}

var useDeleteCmd = &cobra.Command{
	Use:   "delete <context-name>",
	Short: "Delete a context",
	Long: `Delete a context configuration.

Examples:
  crs use delete old-lab`,
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm", "remove"},
	RunE:    runUseDelete,
}

var (
	// Flags for use add
	useAddEndpoint    string
	useAddProject     string
	useAddCLIPath     string
	useAddCLIArgs     []string
	useAddClusterType string
	useAddSecret      string
	useAddAWSProfile  string
	useAddAWSRegion   string
)

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.AddCommand(useAddCmd)
	useCmd.AddCommand(useDeleteCmd)

	// Flags for use add
	f := useAddCmd.Flags()
	f.StringVar(&useAddEndpoint, "endpoint", "", "API base URL")
	f.StringVar(&useAddProject, "project", "", "Default project id")
	f.StringVar(&useAddCLIPath, "cli-path", "", "Cluster tool binary")
	f.StringSliceVar(&useAddCLIArgs, "cli-arg", nil, "Argument placed before every tool command (repeatable)")
	f.StringVar(&useAddClusterType, "cluster-type", "", "Cluster type managed through the tool (default KUBERNETES)")
	f.StringVar(&useAddSecret, "token-secret", "", "AWS Secrets Manager id holding the API token")
	f.StringVar(&useAddAWSProfile, "aws-profile", "", "AWS profile used to read the token secret")
	f.StringVar(&useAddAWSRegion, "aws-region", "", "AWS region used to read the token secret")
}

func runUse(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	// Try to set the context
	if err := config.SetCurrentContext(contextName); err != nil {
		// If context doesn't exist, show helpful message
		contexts, current, listErr := config.ListContexts()
		if listErr != nil {
			return err
		}

		fmt.Printf("Context %q not found.\n\n", contextName)

		if len(contexts) == 0 {
			fmt.Println("No contexts configured. Add one with:")
			fmt.Println("  crs use add <name> --endpoint <url> --project <project-id>")
			return nil
		}

		names := make([]string, 0, len(contexts))
		for name := range contexts {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("Available contexts:")
		for _, name := range names {
			marker := "  "
			if name == current {
				marker = "* "
			}
			fmt.Printf("  %s%s\n", marker, name)
		}
		return nil
	}

	// Get the context details to show confirmation
	ctx, _, err := config.GetCurrentContext()
	if err != nil {
		return err
	}

	fmt.Printf("Switched to context: %s\n", contextName)
	if ctx.Endpoint != "" {
		fmt.Printf("  Endpoint: %s\n", ctx.Endpoint)
	}
	if ctx.Project != "" {
		fmt.Printf("  Project:  %s\n", ctx.Project)
	}
	if ctx.CLIPath != "" {
		fmt.Printf("  Tool:     %s\n", ctx.CLIPath)
	}
	return nil
}

func runUseAdd(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	if useAddEndpoint == "" && useAddCLIPath == "" {
		return fmt.Errorf("--endpoint or --cli-path is required")
	}
	if useAddSecret == "" && (useAddAWSProfile != "" || useAddAWSRegion != "") {
		return fmt.Errorf("--aws-profile and --aws-region are only used with --token-secret")
	}

	ctx := &config.Context{
		Endpoint:    useAddEndpoint,
		Project:     useAddProject,
		CLIPath:     useAddCLIPath,
		CLIArgs:     useAddCLIArgs,
		ClusterType: useAddClusterType,
		TokenSecret: useAddSecret,
		AWSProfile:  useAddAWSProfile,
		AWSRegion:   useAddAWSRegion,
	}

	// Add the context
	if err := config.AddContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to add context: %w", err)
	}

	fmt.Printf("Context added: %s\n", contextName)
	fmt.Println("\nTo use this context:")
	fmt.Printf("  crs use %s\n", contextName)

	return nil
}

func runUseDelete(cmd *cobra.Command, args []string) error {
	contextName := args[0]

	if err := config.DeleteContext(contextName); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	fmt.Printf("Context deleted: %s\n", contextName)
	return nil
}
