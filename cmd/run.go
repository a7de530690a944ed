package cmd

// This file contains the `graphbench run` and `graphbench plan` commands

import (
	"fmt"

	"github.com/cedana/graphbench/pkg/config"
	"github.com/cedana/graphbench/pkg/flags"
	"github.com/cedana/graphbench/pkg/runner"
	"github.com/cedana/graphbench/pkg/style"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	addRunFlags(runCmd.Flags())
	addRunFlags(planCmd.Flags())

	for _, cmd := range []*cobra.Command{runCmd, planCmd} {
		cmd.RegisterFlagCompletionFunc(flags.MachineFlag.Full, ValidMachines)
	}
}

// Flags without a default here fall back to the config, see runnerOptions.
func addRunFlags(f *pflag.FlagSet) {
	f.StringP(flags.MachineFlag.Full, flags.MachineFlag.Short, "", "machine type (shared, supermuc, horeka, generic-job-file)")
	f.StringP(flags.BuildDirFlag.Full, flags.BuildDirFlag.Short, "", "directory containing the benchmark executables")
	f.StringP(flags.OutputDirFlag.Full, flags.OutputDirFlag.Short, "", "directory for benchmark output (default <experiment data dir>/output)")
	f.String(flags.ExperimentDataDirFlag.Full, "", "directory in which all generated data (job files and outputs) is stored")
	f.StringP(flags.JobOutputDirFlag.Full, flags.JobOutputDirFlag.Short, "", "directory for job files (default <experiment data dir>/jobfiles)")
	f.String(flags.SbatchTemplateFlag.Full, "", "job file template, the machine's default if empty")
	f.String(flags.CommandTemplateFlag.Full, "", "command template, the machine's default if empty")
	f.String(flags.ModuleConfigFlag.Full, "", "module configuration restored in job files")
	f.String(flags.ModuleRestoreCmdFlag.Full, "", "command used to restore the module configuration")
	f.String(flags.ProjectFlag.Full, "", "account jobs are billed to")
	f.Int(flags.TasksPerNodeFlag.Full, 0, "tasks per node, the machine's default if 0")
	f.IntP(flags.TimeLimitFlag.Full, flags.TimeLimitFlag.Short, 0, "time limit per job in minutes")
	f.Int(flags.MaxCoresFlag.Full, 0, "skip core counts above this on the shared machine, 0 for all logical CPUs")
	f.String(flags.ShellFlag.Full, "", "shell used to run commands on the shared machine")
	f.Bool(flags.TestFlag.Full, false, "use the test queue where available")
	f.Bool(flags.OmitOutputPathFlag.Full, false, "do not pass an output path to the executable")
	f.Bool(flags.OmitSeedFlag.Full, false, "do not pass a seed to the executable")
	f.Bool(flags.FreshFlag.Full, false, "remove existing experiment data first")
}

func stringFlag(cmd *cobra.Command, flag flags.Flag, fallback string) string {
	if cmd.Flags().Changed(flag.Full) {
		v, _ := cmd.Flags().GetString(flag.Full)
		return v
	}
	return fallback
}

func intFlag(cmd *cobra.Command, flag flags.Flag, fallback int) int {
	if cmd.Flags().Changed(flag.Full) {
		v, _ := cmd.Flags().GetInt(flag.Full)
		return v
	}
	return fallback
}

// runnerOptions merges the run flags with the config.
func runnerOptions(cmd *cobra.Command) (string, runner.Options) {
	f := cmd.Flags()
	test, _ := f.GetBool(flags.TestFlag.Full)
	omitOutputPath, _ := f.GetBool(flags.OmitOutputPathFlag.Full)
	omitSeed, _ := f.GetBool(flags.OmitSeedFlag.Full)
	fresh, _ := f.GetBool(flags.FreshFlag.Full)
	outputDir, _ := f.GetString(flags.OutputDirFlag.Full)
	jobOutputDir, _ := f.GetString(flags.JobOutputDirFlag.Full)
	jobTemplate, _ := f.GetString(flags.SbatchTemplateFlag.Full)
	commandTemplate, _ := f.GetString(flags.CommandTemplateFlag.Full)
	moduleConfig, _ := f.GetString(flags.ModuleConfigFlag.Full)

	machine := stringFlag(cmd, flags.MachineFlag, config.Global.Machine)
	return machine, runner.Options{
		Fs:                fs,
		Out:               cmd.OutOrStdout(),
		BuildDir:          stringFlag(cmd, flags.BuildDirFlag, config.Global.BuildDir),
		ExperimentDataDir: stringFlag(cmd, flags.ExperimentDataDirFlag, config.Global.ExperimentDataDir),
		OutputDir:         outputDir,
		JobOutputDir:      jobOutputDir,
		CommandTemplate:   commandTemplate,
		JobTemplate:       jobTemplate,
		ModuleConfig:      moduleConfig,
		ModuleRestoreCmd:  stringFlag(cmd, flags.ModuleRestoreCmdFlag, config.Global.Batch.ModuleRestoreCmd),
		Project:           stringFlag(cmd, flags.ProjectFlag, config.Global.Batch.Project),
		TasksPerNode:      intFlag(cmd, flags.TasksPerNodeFlag, config.Global.Batch.TasksPerNode),
		TimeLimit:         intFlag(cmd, flags.TimeLimitFlag, config.Global.Batch.TimeLimit),
		Test:              test,
		OmitOutputPath:    omitOutputPath,
		OmitSeed:          omitSeed,
		Fresh:             fresh,
		MaxCores:          intFlag(cmd, flags.MaxCoresFlag, config.Global.Shared.MaxCores),
		Shell:             stringFlag(cmd, flags.ShellFlag, config.Global.Shared.Shell),
	}
}

var runCmd = &cobra.Command{
	Use:               "run [suite]...",
	Short:             "Run suites, or write their job files on batch machines",
	Long:              "Run suites, or write their job files on batch machines. Without arguments, all suites found are used.",
	ValidArgsFunction: ValidSuites,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		suites, err := selectSuites(cmd, args)
		if err != nil {
			return err
		}
		machine, opts := runnerOptions(cmd)
		r, err := runner.New(machine, opts)
		if err != nil {
			return err
		}

		for _, s := range suites {
			result, err := r.Execute(ctx, s)
			if err != nil {
				return fmt.Errorf("suite %s: %w", s.Name, err)
			}
			log.Ctx(ctx).Info().
				Str("suite", result.Suite).
				Str("run", result.RunID).
				Int("jobs", result.Total).
				Int("failed", result.Failed).
				Int("job_files", len(result.JobFiles)).
				Msg("suite done")
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:               "plan [suite]...",
	Aliases:           []string{"verify"},
	Short:             "Show the jobs of suites without running anything",
	ValidArgsFunction: ValidSuites,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		suites, err := selectSuites(cmd, args)
		if err != nil {
			return err
		}
		machine, opts := runnerOptions(cmd)
		r, err := runner.New(machine, opts)
		if err != nil {
			return err
		}

		for _, s := range suites {
			jobs, err := r.Plan(ctx, s)
			if err != nil {
				return fmt.Errorf("suite %s: %w", s.Name, err)
			}

			writer := table.NewWriter()
			writer.SetOutputMirror(cmd.OutOrStdout())
			writer.SetStyle(style.TableStyle)
			writer.Style().Options.SeparateRows = false
			writer.SetTitle(fmt.Sprintf("%s (%s)", s.Name, r.Machine()))
			writer.SetColumnConfigs([]table.ColumnConfig{
				{Name: "Command", WidthMax: 100, WidthMaxEnforcer: text.WrapSoft},
			})

			writer.AppendHeader(table.Row{"Job", "Ranks", "Threads", "Seed", "Config", "Time Limit", "Command"})
			for _, job := range jobs {
				limit := style.DisabledColor.Sprint("none")
				if job.TimeLimit > 0 {
					limit = fmt.Sprintf("%d min", job.TimeLimit)
				}
				writer.AppendRow(table.Row{
					job.Name,
					job.Ranks,
					job.ThreadsPerRank,
					job.Seed,
					job.Config,
					limit,
					job.CommandLine(),
				})
			}
			writer.AppendFooter(table.Row{fmt.Sprintf("%d jobs", len(jobs))})
			writer.Render()
		}
		return nil
	},
}
