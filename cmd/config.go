package cmd

// This file contains all the config-related commands when starting `graphbench config ...`

import (
	"fmt"

	"github.com/cedana/graphbench/pkg/config"
	"github.com/cedana/graphbench/pkg/runner"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective config",
	RunE: func(cmd *cobra.Command, _ []string) error {
		prettycfg, err := utils.MarshalIndent(config.Global)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "config (%s): %s\n", config.Dir, prettycfg)
		return nil
	},
}

var templateCmd = &cobra.Command{
	Use:               "template <machine>",
	Short:             "Print the default command and job file templates of a machine",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ValidMachines,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		command, err := runner.DefaultTemplate(args[0], false)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# command template\n%s\n", command)

		if runner.IsBatch(args[0]) {
			job, err := runner.DefaultTemplate(args[0], true)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "# job file template\n%s", job)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(templateCmd)
}
