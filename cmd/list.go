package cmd

// This file contains all the list commands when starting `graphbench list ...`

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cedana/graphbench/pkg/runner"
	"github.com/cedana/graphbench/pkg/style"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	listCmd.AddCommand(listSuitesCmd)
	listCmd.AddCommand(listInputsCmd)
	listCmd.AddCommand(listMachinesCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List suites, inputs or machines",
}

func newTable(cmd *cobra.Command) table.Writer {
	writer := table.NewWriter()
	writer.SetOutputMirror(cmd.OutOrStdout())
	writer.SetStyle(style.TableStyle)
	writer.Style().Options.SeparateRows = false
	return writer
}

var listSuitesCmd = &cobra.Command{
	Use:   "suites",
	Short: "List all suites found in the search directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		suites, err := loadSuites(cmd)
		if err != nil {
			return err
		}
		if len(suites) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No suites found")
			return nil
		}

		writer := newTable(cmd)
		writer.AppendHeader(table.Row{"Suite", "Type", "Executable", "Inputs", "Cores", "Configs", "Modified", "Path"})
		for _, s := range suites {
			writer.AppendRow(table.Row{
				s.Name,
				s.Type,
				s.Executable,
				len(s.Entries),
				fmt.Sprint(s.Cores),
				len(s.Configs),
				utils.TimeAgo(utils.ModTime(fs, s.Path)),
				s.Path,
			})
		}
		writer.Render()
		return nil
	},
}

var listInputsCmd = &cobra.Command{
	Use:     "inputs",
	Aliases: []string{"graphs"},
	Short:   "List all graphs of the input descriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		if catalog.Len() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No inputs found")
			return nil
		}

		writer := newTable(cmd)
		writer.AppendHeader(table.Row{"Input", "Format", "Partitions", "Exists", "Path"})
		for _, name := range catalog.Names() {
			graph, _ := catalog.Lookup(name)
			partitions := catalog.PartitionsFor(name)
			var counts []string
			for _, k := range slices.Sorted(maps.Keys(partitions)) {
				counts = append(counts, fmt.Sprint(k))
			}
			writer.AppendRow(table.Row{
				name,
				graph.Format(),
				strings.Join(counts, ","),
				style.BoolStr(graph.Exists(fs)),
				graph.Path(),
			})
		}
		writer.SortBy([]table.SortBy{{Name: "Input", Mode: table.Asc}})
		writer.Render()
		return nil
	},
}

var listMachinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List the supported machine types",
	RunE: func(cmd *cobra.Command, args []string) error {
		writer := newTable(cmd)
		writer.AppendHeader(table.Row{"Machine", "Job Files", "Tasks Per Node"})
		for _, machine := range runner.Machines() {
			tasks := "-"
			if cluster, ok := runner.ClusterFor(machine); ok {
				tasks = fmt.Sprint(cluster.DefaultTasksPerNode())
			}
			writer.AppendRow(table.Row{machine, style.BoolStr(runner.IsBatch(machine)), tasks})
		}
		writer.Render()
		return nil
	},
}
