// Package runner executes benchmark suites, either directly on the local
// machine or by writing job files for a batch system.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cedana/graphbench/pkg/sizing"
	"github.com/cedana/graphbench/pkg/suite"
	"github.com/spf13/afero"
)

const (
	MachineShared   = "shared"
	MachineSuperMUC = "supermuc"
	MachineHoreKa   = "horeka"
	MachineGeneric  = "generic-job-file"

	DefaultModuleRestoreCmd = "module restore"
	DefaultShell            = "bash"
)

var ErrUnknownMachine = errors.New("unknown machine type")

// Machines lists the supported machine types.
func Machines() []string {
	return []string{MachineShared, MachineSuperMUC, MachineHoreKa, MachineGeneric}
}

// Options configure a runner. Zero values select defaults.
type Options struct {
	Fs  afero.Fs
	Out io.Writer

	BuildDir          string
	ExperimentDataDir string
	OutputDir         string
	JobOutputDir      string

	// Template files, the machine's embedded templates are used if empty.
	CommandTemplate string
	JobTemplate     string

	ModuleConfig     string
	ModuleRestoreCmd string
	Project          string

	TasksPerNode int // 0 selects the machine default
	TimeLimit    int // minutes
	Test         bool

	OmitOutputPath bool
	OmitSeed       bool
	Fresh          bool

	MaxCores int
	// Shell runs commands with `<shell> -c`. Without a shell, commands are
	// split into words and executed directly.
	Shell    string
	Executor Executor

	Now func() time.Time
}

// Result summarizes a suite run.
type Result struct {
	Suite     string
	RunID     string
	Total     int
	Failed    int
	OutputDir string
	JobFiles  []string
}

// Runner executes the jobs of resolved suites.
type Runner interface {
	Machine() string
	// Plan synthesizes the jobs of a suite without running or writing
	// anything.
	Plan(ctx context.Context, s *suite.Suite) ([]Job, error)
	Execute(ctx context.Context, s *suite.Suite) (*Result, error)
}

// New creates the runner for a machine type.
func New(machine string, opts Options) (Runner, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ModuleRestoreCmd == "" {
		opts.ModuleRestoreCmd = DefaultModuleRestoreCmd
	}
	if opts.Executor == nil {
		opts.Executor = &ProcessExecutor{Shell: opts.Shell}
	}

	if machine == MachineShared {
		return &Shared{opts: opts}, nil
	}
	cluster, ok := clusters[machine]
	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %v", ErrUnknownMachine, machine, Machines())
	}
	return newBatch(machine, cluster, opts), nil
}

var clusters = map[string]sizing.Cluster{
	MachineSuperMUC: sizing.SuperMUC{},
	MachineHoreKa:   sizing.HoreKa{},
	MachineGeneric:  sizing.Generic{},
}

// ClusterFor returns the cluster a batch machine type writes job files for.
func ClusterFor(machine string) (sizing.Cluster, bool) {
	c, ok := clusters[machine]
	return c, ok
}

// IsBatch reports whether a machine type writes job files instead of
// running commands.
func IsBatch(machine string) bool {
	_, ok := clusters[machine]
	return ok
}
