package runner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/cedana/graphbench/pkg/command"
	"github.com/cedana/graphbench/pkg/input"
	"github.com/cedana/graphbench/pkg/suite"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/rs/zerolog/log"
)

const (
	dataDirDateFormat = "06_01_02"
	configFileName    = "config.json"
	seedOption        = "seed"
)

// base holds what all runners share for one suite run.
type base struct {
	opts      Options
	suite     *suite.Suite
	dataDir   string
	outputDir string
}

func newBase(s *suite.Suite, opts Options) *base {
	dataDir := filepath.Join(opts.ExperimentDataDir, s.Name+"_"+opts.Now().Format(dataDirDateFormat))
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(dataDir, "output")
	}
	return &base{opts: opts, suite: s, dataDir: dataDir, outputDir: outputDir}
}

// prepare creates the experiment directories, removing old data first if a
// fresh run was requested.
func (b *base) prepare(ctx context.Context) error {
	if !b.suite.Resolved() {
		return fmt.Errorf("suite %s has unresolved inputs", b.suite.Name)
	}
	fs := b.opts.Fs
	if b.opts.Fresh {
		log.Ctx(ctx).Debug().Str("dir", b.dataDir).Msg("removing old experiment data")
		if err := fs.RemoveAll(b.dataDir); err != nil {
			return fmt.Errorf("failed to remove experiment data: %w", err)
		}
	}
	for _, dir := range []string{b.dataDir, b.outputDir} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// dumpConfig writes every configuration of the suite with its index.
func (b *base) dumpConfig() error {
	configs := make([]args.Record, len(b.suite.Configs))
	for i, c := range b.suite.Configs {
		configs[i] = c.With(args.NewFlag("idx", args.ScalarValue(args.Int(int64(i)))))
	}
	return utils.SaveJSONToFile(b.opts.Fs, configs, filepath.Join(b.outputDir, configFileName))
}

// makeCommand synthesizes the command of one job, adding the output path and
// seed options unless they are omitted.
func (b *base) makeCommand(in input.Input, jobName string, topo input.Topology, seed int, config args.Record) ([]string, error) {
	var extras []args.Argument
	if !b.opts.OmitOutputPath {
		outputPath := filepath.Join(b.outputDir, jobName)
		extras = append(extras, args.NewFlag(b.suite.OutputPathOption, args.ScalarValue(args.Str(outputPath))))
	}
	if !b.opts.OmitSeed {
		extras = append(extras, args.NewFlag(seedOption, args.ScalarValue(args.Int(int64(seed)))))
	}
	return command.Synthesize(command.Spec{
		Executable: command.Executable(b.opts.BuildDir, b.suite.Executable),
		Input:      in,
		Config:     config,
		Topology:   topo,
		Escape:     true,
		Extras:     extras,
	})
}
