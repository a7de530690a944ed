package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cedana/graphbench/pkg/logging"
	"github.com/cedana/graphbench/pkg/style"
	"github.com/cedana/graphbench/pkg/suite"
	"github.com/cedana/graphbench/pkg/template"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Shared runs every job of a suite on the local machine, one after another.
type Shared struct {
	opts Options
}

func (r *Shared) Machine() string { return MachineShared }

// Plan lists the jobs in execution order. Core counts above the maximum are
// skipped.
func (r *Shared) Plan(ctx context.Context, s *suite.Suite) ([]Job, error) {
	b := newBase(s, r.opts)
	maxCores := r.opts.MaxCores
	if maxCores <= 0 {
		maxCores = utils.LogicalCPUs(ctx)
	}

	var jobs []Job
	for i, in := range s.Inputs {
		for _, cores := range s.Cores {
			if cores > maxCores {
				log.Ctx(ctx).Debug().Int("cores", cores).Int("max", maxCores).Msg("skipping core count")
				continue
			}
			for _, seed := range s.Seeds {
				for _, threads := range s.ThreadsPerRank {
					ranks := cores / threads
					for c, config := range s.Configs {
						name := suite.ConfigName(i, in, ranks, threads, c, seed)
						job := Job{
							Name:           name,
							InputIndex:     i,
							Input:          in,
							Cores:          cores,
							Ranks:          ranks,
							ThreadsPerRank: threads,
							Config:         c,
							Seed:           seed,
							TimeLimit:      s.TimeLimitFor(in),
						}
						cmd, err := b.makeCommand(in, name, job.Topology(), seed, config)
						if err != nil {
							return nil, fmt.Errorf("job %s: %w", name, err)
						}
						job.Command = cmd
						jobs = append(jobs, job)
					}
				}
			}
		}
	}
	return jobs, nil
}

// Execute runs all jobs. A failing job is counted and the run continues.
func (r *Shared) Execute(ctx context.Context, s *suite.Suite) (*Result, error) {
	runID := xid.New().String()
	logger := log.Ctx(ctx).With().Str("run", runID).Str("suite", s.Name).Logger()
	ctx = logger.WithContext(ctx)

	b := newBase(s, r.opts)
	if err := b.prepare(ctx); err != nil {
		return nil, err
	}
	if err := b.dumpConfig(); err != nil {
		return nil, fmt.Errorf("failed to dump configs: %w", err)
	}
	tmpl, err := loadTemplate(r.opts.Fs, r.opts.CommandTemplate, defaultTemplates[MachineShared].command)
	if err != nil {
		return nil, err
	}
	jobs, err := r.Plan(ctx, s)
	if err != nil {
		return nil, err
	}

	out := r.opts.Out
	fmt.Fprintf(out, "Running suite %s ...\n", s.Name)
	result := &Result{Suite: s.Name, RunID: runID, OutputDir: b.outputDir}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		cmdline, err := tmpl.Execute(template.Expansions{
			"cmd":       job.CommandLine(),
			"mpi_ranks": fmt.Sprint(job.Ranks),
		})
		if err != nil {
			return result, err
		}
		fmt.Fprintf(out, "Running config %d on %s using %d ranks and %d threads per rank ... \n",
			job.Config, job.Input.Name(), job.Ranks, job.ThreadsPerRank)
		fmt.Fprintln(out, cmdline)

		ok := r.run(ctx, b, job.Name, cmdline)
		if ok {
			fmt.Fprintln(out, style.PositiveColor.Sprint("finished."))
		} else {
			result.Failed++
			fmt.Fprintln(out, style.NegativeColor.Sprint("failed."))
		}
		result.Total++
	}

	fmt.Fprintf(out, "Finished suite %s. Output files in %s\n", s.Name, b.outputDir)
	summary := fmt.Sprintf("Summary: %d out of %d failed.", result.Failed, result.Total)
	if result.Failed > 0 {
		summary = style.WarningColor.Sprint(summary)
	}
	fmt.Fprintln(out, summary)
	return result, nil
}

// run executes one command line with its output going to the job's log files.
func (r *Shared) run(ctx context.Context, b *base, name, cmdline string) bool {
	logger := log.Ctx(ctx).With().Str("job", name).Logger()

	stdout, err := r.opts.Fs.Create(filepath.Join(b.outputDir, name+"-log.txt"))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create log file")
		return false
	}
	defer stdout.Close()
	stderr, err := r.opts.Fs.Create(filepath.Join(b.outputDir, name+"-error-log.txt"))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create error log file")
		return false
	}
	defer stderr.Close()

	// stderr is also logged for debugging
	stderrLog := logging.Writer(ctx, name, zerolog.DebugLevel)
	defer stderrLog.Close()

	code, err := r.opts.Executor.Run(ctx, cmdline, stdout, io.MultiWriter(stderr, stderrLog))
	if err != nil {
		logger.Error().Err(err).Msg("failed to run job")
		return false
	}
	if code != 0 {
		logger.Debug().Int("exit", code).Msg("job failed")
		return false
	}
	return true
}
