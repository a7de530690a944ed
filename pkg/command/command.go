// Package command synthesizes the command line of a single benchmark job.
package command

import (
	"fmt"
	"path/filepath"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/cedana/graphbench/pkg/input"
)

// Spec is everything a job's command line is made of.
type Spec struct {
	Executable string
	Input      input.Input
	Config     args.Record
	Topology   input.Topology
	Escape     bool
	// Extras are merged into Config, replacing arguments with the same key.
	Extras []args.Argument
}

// Synthesize returns the executable followed by the input's arguments and the
// rendered configuration.
func Synthesize(spec Spec) ([]string, error) {
	cmd := []string{spec.Executable}
	if spec.Input != nil {
		inputArgs, err := spec.Input.Args(spec.Topology, spec.Escape)
		if err != nil {
			return nil, fmt.Errorf("failed to render input %s: %w", spec.Input.Name(), err)
		}
		cmd = append(cmd, inputArgs...)
	}

	config := spec.Config
	for _, extra := range spec.Extras {
		config = config.With(extra)
	}
	return append(cmd, args.RenderRecord(config, spec.Escape)...), nil
}

// Executable resolves an executable name against the build directory.
func Executable(buildDir, name string) string {
	if filepath.IsAbs(name) || buildDir == "" {
		return name
	}
	return filepath.Join(buildDir, name)
}
