package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/cedana/graphbench/pkg/config"
	"github.com/cedana/graphbench/pkg/flags"
	"github.com/cedana/graphbench/pkg/input"
	"github.com/cedana/graphbench/pkg/suite"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Filesystem used by all commands
var fs = afero.NewOsFs()

func getRevision() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return ""
}

// loadSuites loads the suite files given on the command line and all suites
// found in the search directories.
func loadSuites(cmd *cobra.Command) (suite.Suites, error) {
	files, _ := cmd.Flags().GetStringSlice(flags.SuiteFilesFlag.Full)
	searchDirs, _ := cmd.Flags().GetStringSlice(flags.SearchDirsFlag.Full)
	if len(searchDirs) == 0 {
		searchDirs = config.SearchDirs()
	}
	return suite.LoadAll(cmd.Context(), fs, files, searchDirs)
}

// loadCatalog loads the input descriptions given on the command line and in
// the config.
func loadCatalog(cmd *cobra.Command) (*input.Catalog, error) {
	paths, _ := cmd.Flags().GetStringSlice(flags.InputDescriptionsFlag.Full)
	paths = append(paths, config.InputDescriptionFiles()...)
	return input.LoadCatalog(cmd.Context(), fs, paths...)
}

// selectSuites returns the named suites with their inputs resolved, or all
// suites if no names are given.
func selectSuites(cmd *cobra.Command, names []string) ([]*suite.Suite, error) {
	suites, err := loadSuites(cmd)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = suites.Names()
	}

	var selected []*suite.Suite
	for _, name := range names {
		s, ok := suites.Get(name)
		if !ok {
			if match, ok := utils.ClosestMatch(name, suites.Names()); ok {
				return nil, fmt.Errorf("unknown suite %q, did you mean %q?", name, match)
			}
			return nil, fmt.Errorf("unknown suite %q, available: %v", name, suites.Names())
		}
		selected = append(selected, s)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no suites found")
	}

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}
	for _, s := range selected {
		if err := s.Resolve(cmd.Context(), catalog); err != nil {
			return nil, err
		}
	}
	return selected, nil
}
