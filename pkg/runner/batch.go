package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cedana/graphbench/pkg/sizing"
	"github.com/cedana/graphbench/pkg/suite"
	"github.com/cedana/graphbench/pkg/template"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultProject  = "PROJECT_NOT_SET"
	noModuleSetup   = "# no specific module setup given"
	jobFilesDirName = "jobfiles"
)

// Batch writes one job file per input and core count. Nothing is submitted.
type Batch struct {
	machine string
	cluster sizing.Cluster
	opts    Options
}

func newBatch(machine string, cluster sizing.Cluster, opts Options) *Batch {
	return &Batch{machine: machine, cluster: cluster, opts: opts}
}

func (r *Batch) Machine() string { return r.machine }

func (r *Batch) tasksPerNode(s *suite.Suite) int {
	switch {
	case s.TasksPerNode > 0:
		return s.TasksPerNode
	case r.opts.TasksPerNode > 0:
		return r.opts.TasksPerNode
	default:
		return r.cluster.DefaultTasksPerNode()
	}
}

func (r *Batch) timeLimit(s *suite.Suite, job Job) int {
	if limit := s.TimeLimitFor(job.Input); limit > 0 {
		return limit
	}
	return r.opts.TimeLimit
}

func (r *Batch) jobOutputDir(b *base) string {
	if r.opts.JobOutputDir != "" {
		return r.opts.JobOutputDir
	}
	return filepath.Join(b.dataDir, jobFilesDirName)
}

// Plan lists the jobs grouped by job file, in the order they are written.
func (r *Batch) Plan(ctx context.Context, s *suite.Suite) ([]Job, error) {
	b := newBase(s, r.opts)

	var jobs []Job
	for i, in := range s.Inputs {
		for _, cores := range s.Cores {
			aggregate := s.JobName(suite.AggregateName(i, in, cores))
			for _, threads := range s.ThreadsPerRank {
				ranks := cores / threads
				for c, config := range s.Configs {
					for _, seed := range s.Seeds {
						name := s.JobName(suite.ConfigName(i, in, ranks, threads, c, seed))
						job := Job{
							Name:           name,
							Aggregate:      aggregate,
							InputIndex:     i,
							Input:          in,
							Cores:          cores,
							Ranks:          ranks,
							ThreadsPerRank: threads,
							Config:         c,
							Seed:           seed,
						}
						job.TimeLimit = r.timeLimit(s, job)
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

// Execute writes the job files of the suite.
func (r *Batch) Execute(ctx context.Context, s *suite.Suite) (*Result, error) {
	runID := xid.New().String()
	logger := log.Ctx(ctx).With().Str("run", runID).Str("suite", s.Name).Str("machine", r.machine).Logger()
	ctx = logger.WithContext(ctx)

	b := newBase(s, r.opts)
	if err := b.prepare(ctx); err != nil {
		return nil, err
	}
	jobDir := r.jobOutputDir(b)
	if err := r.opts.Fs.MkdirAll(jobDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create job file directory: %w", err)
	}
	if err := b.dumpConfig(); err != nil {
		return nil, fmt.Errorf("failed to dump configs: %w", err)
	}

	defaults := defaultTemplates[r.machine]
	jobTmpl, err := loadTemplate(r.opts.Fs, r.opts.JobTemplate, defaults.job)
	if err != nil {
		return nil, err
	}
	cmdTmpl, err := loadTemplate(r.opts.Fs, r.opts.CommandTemplate, defaults.command)
	if err != nil {
		return nil, err
	}

	jobs, err := r.Plan(ctx, s)
	if err != nil {
		return nil, err
	}

	result := &Result{Suite: s.Name, RunID: runID, OutputDir: b.outputDir}
	for start := 0; start < len(jobs); {
		end := start + 1
		for end < len(jobs) && jobs[end].Aggregate == jobs[start].Aggregate {
			end++
		}
		file, err := r.writeJobFile(ctx, b, jobDir, runID, jobTmpl, cmdTmpl, jobs[start:end])
		if err != nil {
			return result, err
		}
		result.JobFiles = append(result.JobFiles, file)
		result.Total += end - start
		start = end
	}

	fmt.Fprintf(r.opts.Out, "Created %d job files in directory %s.\n", len(result.JobFiles), jobDir)
	return result, nil
}

// writeJobFile renders the jobs sharing one input and core count into a
// single job file.
func (r *Batch) writeJobFile(ctx context.Context, b *base, jobDir, runID string, jobTmpl, cmdTmpl *template.Template, jobs []Job) (string, error) {
	first := jobs[0]
	tasksPerNode := r.tasksPerNode(b.suite)
	nodes := sizing.RequiredNodes(first.Cores, tasksPerNode)
	queue, err := r.cluster.Queue(nodes, r.opts.Test)
	if err != nil {
		return "", fmt.Errorf("job %s: %w", first.Aggregate, err)
	}

	instance := suite.AggregateName(first.InputIndex, first.Input, first.Cores)
	project := r.opts.Project
	if project == "" {
		project = DefaultProject
	}
	moduleSetup := noModuleSetup
	if r.opts.ModuleConfig != "" {
		moduleSetup = r.opts.ModuleRestoreCmd + " " + r.opts.ModuleConfig
	}

	var (
		commands  []string
		timeLimit int
	)
	for _, job := range jobs {
		timeLimit += job.TimeLimit
		cmd, err := cmdTmpl.Execute(template.Expansions{
			"cmd":              job.CommandLine(),
			"jobname":          job.Name,
			"mpi_ranks":        fmt.Sprint(job.Ranks),
			"threads_per_rank": fmt.Sprint(job.ThreadsPerRank),
			"ranks_per_node":   fmt.Sprint(tasksPerNode / job.ThreadsPerRank),
			"timeout":          fmt.Sprint(job.TimeLimit * 60),
		})
		if err != nil {
			return "", err
		}
		commands = append(commands, cmd)
	}

	subs := template.NewExpansions(map[string]string{
		"ntasks_per_node":  fmt.Sprint(tasksPerNode),
		"output_log":       filepath.Join(b.outputDir, instance+"-log.txt"),
		"error_output_log": filepath.Join(b.outputDir, instance+"-err.txt"),
		"job_name":         first.Aggregate,
		"job_queue":        queue,
		"account":          project,
		"module_setup":     moduleSetup,
		"run_id":           runID,
		"commands":         strings.Join(commands, "\n"),
		"time_string":      utils.FormatDuration(time.Duration(timeLimit) * time.Minute),
	})
	subs.PutInt("nodes", nodes)
	subs.PutInt("ntasks", first.Cores)
	subs.PutInt("islands", r.cluster.RequiredIslands(nodes))

	script, err := jobTmpl.Execute(subs)
	if err != nil {
		return "", err
	}
	path := filepath.Join(jobDir, first.Aggregate)
	if err := utils.WriteFile(r.opts.Fs, path, []byte(script)); err != nil {
		return "", fmt.Errorf("failed to write job file: %w", err)
	}
	log.Ctx(ctx).Debug().Str("file", path).Int("commands", len(jobs)).Msg("wrote job file")
	return path, nil
}
