package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cedana/graphbench/pkg/config"
	"github.com/cedana/graphbench/pkg/flags"
	"github.com/cedana/graphbench/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cobra.EnableTraverseRunHooks = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(docGenCmd)

	// Add root flags
	rootCmd.PersistentFlags().
		String(flags.ConfigFlag.Full, "", "one-time config JSON string (merge with existing config)")
	rootCmd.PersistentFlags().String(flags.ConfigDirFlag.Full, "", "custom config directory")
	rootCmd.MarkPersistentFlagDirname(flags.ConfigDirFlag.Full)
	rootCmd.MarkFlagsMutuallyExclusive(flags.ConfigFlag.Full, flags.ConfigDirFlag.Full)
	rootCmd.PersistentFlags().String(flags.LogLevelFlag.Full, "", "log level (trace, debug, info, warn, error, disabled)")

	// Suite and input discovery is shared by all subcommands
	rootCmd.PersistentFlags().
		StringSliceP(flags.SearchDirsFlag.Full, flags.SearchDirsFlag.Short, nil, "directories searched for *.suite.yaml files")
	rootCmd.PersistentFlags().
		StringSliceP(flags.SuiteFilesFlag.Full, flags.SuiteFilesFlag.Short, nil, "additional suite files")
	rootCmd.PersistentFlags().
		StringSliceP(flags.InputDescriptionsFlag.Full, flags.InputDescriptionsFlag.Short, nil, "additional input description files")

	// Bind to config
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup(flags.LogLevelFlag.Full))
}

var rootCmd = &cobra.Command{
	Use:   "graphbench",
	Short: "Generate and run graph benchmark experiments",
	Long: `Generate and run graph benchmark experiments.

Suites describe which benchmark executable runs on which inputs, with which
configurations and at which scales. Jobs run directly on the local machine or
are written as job files for a batch system.`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		conf, _ := cmd.Flags().GetString(flags.ConfigFlag.Full)
		confDir, _ := cmd.Flags().GetString(flags.ConfigDirFlag.Full)

		if confDir == "" {
			confDir = os.Getenv("GRAPHBENCH_CONFIG_DIR")
		}

		if err := config.Init(config.InitArgs{
			Config:    conf,
			ConfigDir: confDir,
		}); err != nil {
			return fmt.Errorf("Failed to initialize config: %w", err)
		}

		logging.InitLogger(config.Global.LogLevel)

		// The logger was replaced, attach the new one
		cmd.SetContext(log.With().Str("context", "cmd").Logger().WithContext(cmd.Context()))

		return nil
	},
}

func Execute(ctx context.Context, version string) error {
	ctx = log.With().Str("context", "cmd").Logger().WithContext(ctx)

	rootCmd.Version = version
	revision := getRevision()
	versionTemplate := rootCmd.VersionTemplate()
	if revision != "" {
		versionTemplate = fmt.Sprintf("git: %s\n%s", revision, versionTemplate)
	}
	rootCmd.SetVersionTemplate(versionTemplate)

	rootCmd.SilenceUsage = true // only show usage when true usage error

	return rootCmd.ExecuteContext(ctx)
}
