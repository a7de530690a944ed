package cmd

// Defines all reusable auto completion functions

import (
	"github.com/cedana/graphbench/pkg/runner"
	"github.com/spf13/cobra"
)

// ValidSuites returns the names of all loadable suites for shell completion
func ValidSuites(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	suites, err := loadSuites(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return suites.Names(), cobra.ShellCompDirectiveNoFileComp
}

// ValidMachines returns the supported machine types for shell completion
func ValidMachines(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return runner.Machines(), cobra.ShellCompDirectiveNoFileComp
}
