// Package suite models benchmark suites: which executable to run on which
// inputs, with which configurations and at which scales.
package suite

import (
	"context"
	"errors"
	"fmt"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/cedana/graphbench/pkg/input"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/rs/zerolog/log"
)

const (
	DefaultType             = "BFS"
	DefaultOutputPathOption = "json_output_path"
)

var ErrAlreadyResolved = errors.New("suite inputs already resolved")

// Entry is an input as listed in a suite, before it is resolved against the
// input catalog. Either Name or Input is set.
type Entry struct {
	Name        string
	Partitioned bool
	Input       input.Input
	TimeLimit   int
}

// Suite is a set of benchmark jobs: every combination of input, core count,
// threads per rank, seed and configuration is one job.
type Suite struct {
	Name             string
	Type             string
	Executable       string
	Cores            []int
	ThreadsPerRank   []int
	Seeds            []int
	Configs          []args.Record
	TasksPerNode     int
	TimeLimit        int // minutes
	OutputPathOption string
	Path             string

	Entries []Entry
	// Inputs are set by Resolve.
	Inputs []input.Input

	inputTimeLimits map[string]int
	resolved        bool
}

// Resolve binds the suite's entries to inputs. Names are looked up in the
// catalog, unknown names are skipped with a warning. Partitioned entries get
// a copy of the catalog graph with its partitions attached. Resolve can only
// run once.
func (s *Suite) Resolve(ctx context.Context, catalog *input.Catalog) error {
	if s.resolved {
		return fmt.Errorf("%w: %s", ErrAlreadyResolved, s.Name)
	}
	if catalog == nil {
		catalog = input.NewCatalog()
	}

	s.inputTimeLimits = map[string]int{}
	s.Inputs = nil
	for _, entry := range s.Entries {
		in := entry.Input
		if in == nil {
			graph, ok := catalog.Lookup(entry.Name)
			if !ok {
				event := log.Ctx(ctx).Warn().Str("suite", s.Name).Str("input", entry.Name)
				if match, ok := utils.ClosestMatch(entry.Name, catalog.Names()); ok {
					event = event.Str("did_you_mean", match)
				}
				event.Msg("could not load input")
				continue
			}
			if entry.Partitioned {
				graph = graph.WithPartitions(catalog.PartitionsFor(entry.Name))
			}
			in = graph
		}
		if entry.TimeLimit > 0 {
			s.inputTimeLimits[in.Name()] = entry.TimeLimit
		}
		s.Inputs = append(s.Inputs, in)
	}
	s.resolved = true
	return nil
}

func (s *Suite) Resolved() bool { return s.resolved }

// TimeLimitFor returns the time limit in minutes for jobs on in, zero if
// neither the input nor the suite has one.
func (s *Suite) TimeLimitFor(in input.Input) int {
	if limit, ok := s.inputTimeLimits[in.Name()]; ok {
		return limit
	}
	return s.TimeLimit
}

// JobName prefixes a config or aggregate name with the suite name.
func (s *Suite) JobName(name string) string {
	return s.Name + "-" + name
}

// Jobs counts the jobs of the resolved suite.
func (s *Suite) Jobs() int {
	return len(s.Inputs) * len(s.Cores) * len(s.ThreadsPerRank) * len(s.Seeds) * len(s.Configs)
}
