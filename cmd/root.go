package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vietdv277/cirrus/internal/config"
	"github.com/vietdv277/cirrus/internal/logging"
	"github.com/vietdv277/cirrus/internal/metrics"
)

var (
	// Global flags
	contextName     string
	debug           bool
	output          string
	metricsTextfile string

	settings config.Settings
	logger   = zap.NewNop()
	recorder *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "crs",
	Short: "Cirrus - cluster and image management CLI",
	Long: `Cirrus manages container clusters and VM images on a private cloud.

Clusters of the tool-managed type are driven through the cluster command line
tool; every other cluster type is managed through the REST API.

Context Commands:
  crs use prod               # Switch to the prod endpoint
  crs status                 # Show current context
  crs contexts               # List all configured contexts

Cluster Commands:
  crs cluster create -f cluster.yaml
  crs cluster show <id>
  crs cluster resize <id> 5

Image Commands:
  crs image create ./ubuntu.vmdk -n ubuntu
  crs image list
  crs image delete -i`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings = config.LoadSettings(viper.GetViper())

		l, err := logging.New(settings.Debug)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
		recorder = metrics.New()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = logger.Sync() }()

		if settings.MetricsTextfile == "" || recorder == nil {
			return nil
		}
		if err := recorder.WriteTextfile(settings.MetricsTextfile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "Context to use instead of the current one")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every tool invocation and API request")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write command metrics to this node exporter textfile")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyContext, rootCmd.PersistentFlags().Lookup("context"))
	_ = viper.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag(config.KeyOutput, rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag(config.KeyMetricsTextfile, rootCmd.PersistentFlags().Lookup("metrics-textfile"))
}

func initConfig() {
	// Read from environment variables
	config.Bind(viper.GetViper())

	// The config file default applies when neither flag nor env sets it
	if cfg, err := config.Load(); err == nil && cfg.Defaults != nil && cfg.Defaults.Output != "" {
		viper.SetDefault(config.KeyOutput, cfg.Defaults.Output)
	}
}
