package command

import (
	"strings"
	"testing"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/cedana/graphbench/pkg/input"
	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	in := input.NewFile("web", "/graphs/web graph", input.FormatBrain, "")
	config := args.NewRecord(
		args.NewFlag("algorithm", args.ScalarValue(args.Str("bfs"))),
		args.NewFlag("seed", args.ScalarValue(args.Int(1))),
		args.NewFlag("sparse", args.ScalarValue(args.Bool(true))),
	)

	cmd, err := Synthesize(Spec{
		Executable: Executable("/build", "bench"),
		Input:      in,
		Config:     config,
		Topology:   input.Topology{Ranks: 2, ThreadsPerRank: 1},
		Escape:     true,
		Extras: []args.Argument{
			args.NewFlag("json_output_path", args.ScalarValue(args.Str("/out/job"))),
			args.NewFlag("seed", args.ScalarValue(args.Int(7))),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/build/bench",
		"--graphtype", "BRAIN", "--infile_dir", `"/graphs/web graph"`,
		"--algorithm", `"bfs"`,
		"--seed", `"7"`,
		"--sparse",
		"--json_output_path", `"/out/job"`,
	}, cmd)

	parsed, err := shlex.Split(strings.Join(cmd, " "))
	require.NoError(t, err)
	assert.Equal(t, "/graphs/web graph", parsed[4])

	seed, _ := config.Get("seed")
	assert.Equal(t, "1", seed.Value.String(), "config must not change")
}

func TestSynthesizeInputError(t *testing.T) {
	in := input.NewFile("web", "/graphs/web", input.FormatBrain, "").WithPartitions(nil)
	_, err := Synthesize(Spec{
		Executable: "bench",
		Input:      in,
		Topology:   input.Topology{Ranks: 4, ThreadsPerRank: 1},
	})
	assert.ErrorIs(t, err, input.ErrMissingPartition)
}

func TestSynthesizeWithoutInput(t *testing.T) {
	cmd, err := Synthesize(Spec{Executable: "bench", Config: args.NewRecord(args.NewFlag("v", args.ScalarValue(args.Bool(true))))})
	require.NoError(t, err)
	assert.Equal(t, []string{"bench", "-v"}, cmd)
}

func TestExecutable(t *testing.T) {
	assert.Equal(t, "/build/bench", Executable("/build", "bench"))
	assert.Equal(t, "/opt/bench", Executable("/build", "/opt/bench"))
	assert.Equal(t, "bench", Executable("", "bench"))
}
