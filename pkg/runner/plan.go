package runner

import (
	"strings"

	"github.com/cedana/graphbench/pkg/input"
)

// Job is a single benchmark invocation of a suite.
type Job struct {
	Name string
	// Aggregate is the job file a batch job is written to, empty for jobs
	// that run directly.
	Aggregate string

	InputIndex     int
	Input          input.Input
	Cores          int
	Ranks          int
	ThreadsPerRank int
	Config         int
	Seed           int
	TimeLimit      int // minutes, 0 if unlimited

	Command []string
}

// CommandLine joins the command tokens, which are already quoted for the
// shell.
func (j Job) CommandLine() string {
	return strings.Join(j.Command, " ")
}

func (j Job) Topology() input.Topology {
	return input.Topology{Ranks: j.Ranks, ThreadsPerRank: j.ThreadsPerRank}
}
