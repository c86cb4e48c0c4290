package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vietdv277/cirrus/internal/cli"
)

// Set at build time with -ldflags "-X github.com/vietdv277/cirrus/cmd.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Cirrus CLI\n")
		fmt.Printf("  Version:      %s\n", Version)
		fmt.Printf("  Commit:       %s\n", Commit)
		fmt.Printf("  Build Date:   %s\n", BuildDate)
		fmt.Printf("  Go:           %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Printf("  Default Tool: %s\n", cli.DefaultBinary)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
