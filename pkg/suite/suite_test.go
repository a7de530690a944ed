package suite

import (
	"bytes"
	"context"
	"testing"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/cedana/graphbench/pkg/input"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
graphs:
  - name: web
    path: graphs/web.metis
    format: metis
  - name: road
    path: graphs/missing.metis
    format: metis
partitions: parts
`

const suiteYAML = `
name: bfs-scaling
executable: bfs_bench
ncores: [4, 8]
threads_per_rank: [1, 2]
time_limit: 10
graphs:
  - web
  - name: web
    partitioned: true
    time_limit: 30
  - road
  - generator: gnm
    n: 10
    m: 12
    scale_weak: true
config:
  - algorithm: [top_down, bottom_up]
    sparse: true
  - algorithm: hybrid
`

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/inputs/catalog.yaml", []byte(catalogYAML), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inputs/graphs/web.metis", []byte("1 0\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inputs/parts/web_k4", []byte{}, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inputs/parts/web_k8", []byte{}, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/inputs/parts/README", []byte{}, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/suites/bfs.suite.yaml", []byte(suiteYAML), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/suites/notes.yaml", []byte("not: a suite"), 0o644))
	return fs
}

func TestLoad(t *testing.T) {
	fs := testFs(t)
	s, err := Load(fs, "/suites/bfs.suite.yaml")
	require.NoError(t, err)

	assert.Equal(t, "bfs-scaling", s.Name)
	assert.Equal(t, DefaultType, s.Type)
	assert.Equal(t, []int{4, 8}, s.Cores)
	assert.Equal(t, []int{0}, s.Seeds)
	assert.Equal(t, DefaultOutputPathOption, s.OutputPathOption)
	require.Len(t, s.Configs, 3)
	assert.Equal(t, "algorithm=top_down sparse=true", s.Configs[0].String())
	assert.Equal(t, "algorithm=bottom_up sparse=true", s.Configs[1].String())
	assert.Equal(t, "algorithm=hybrid", s.Configs[2].String())
	require.Len(t, s.Entries, 4)
	assert.True(t, s.Entries[1].Partitioned)
	assert.IsType(t, &input.Generator{}, s.Entries[3].Input)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	fs := testFs(t)
	catalog, err := input.LoadCatalog(ctx, fs, "/inputs/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, catalog.Names(), "missing graphs are skipped")

	s, err := Load(fs, "/suites/bfs.suite.yaml")
	require.NoError(t, err)
	require.NoError(t, s.Resolve(ctx, catalog))

	require.Len(t, s.Inputs, 3, "unknown road input is skipped")
	assert.Equal(t, "web", s.Inputs[0].Name())
	assert.Equal(t, "web_partitioned", s.Inputs[1].Name())

	plain, ok := catalog.Lookup("web")
	require.True(t, ok)
	assert.False(t, plain.Partitioned(), "catalog graph must not change")

	partitioned := s.Inputs[1].(*input.File)
	assert.Equal(t, "/inputs/parts/web_k4", partitioned.Partitions()[4])
	tokens, err := partitioned.Args(input.Topology{Ranks: 4, ThreadsPerRank: 1}, false)
	require.NoError(t, err)
	assert.Equal(t, "/inputs/parts/web_k4", tokens[len(tokens)-1])

	assert.Equal(t, 10, s.TimeLimitFor(s.Inputs[0]))
	assert.Equal(t, 30, s.TimeLimitFor(s.Inputs[1]))

	assert.ErrorIs(t, s.Resolve(ctx, catalog), ErrAlreadyResolved)
}

func TestResolveSuggestsInput(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	catalog := input.NewCatalog()
	catalog.Add(input.NewFile("web-google", "/graphs/web-google.metis", input.FormatMetis, ""))

	s, err := Parse([]byte("name: bfs\nexecutable: bfs_bench\nncores: [1]\ngraphs: [web-gogle]\n"))
	require.NoError(t, err)
	require.NoError(t, s.Resolve(ctx, catalog))

	assert.Empty(t, s.Inputs)
	assert.Contains(t, buf.String(), `"did_you_mean":"web-google"`)
	assert.Contains(t, buf.String(), "could not load input")
}

func TestLoadAll(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, afero.WriteFile(fs, "/extra/other.yaml", []byte("name: other\nncores: [1]\ngraphs: []\n"), 0o644))

	suites, err := LoadAll(context.Background(), fs, []string{"/extra/other.yaml"}, []string{"/suites", "/nonexistent", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "bfs-scaling"}, suites.Names())

	s, ok := suites.Get("other")
	require.True(t, ok)
	require.Len(t, s.Configs, 1)
	assert.Equal(t, 0, s.Configs[0].Len())
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no name":         "ncores: [1]\n",
		"no cores":        "name: x\n",
		"bad threads":     "name: x\nncores: [1]\nthreads_per_rank: [0]\n",
		"bad graph":       "name: x\nncores: [1]\ngraphs: [[a]]\n",
		"unnamed graph":   "name: x\nncores: [1]\ngraphs: [{partitioned: true}]\n",
		"bad generator":   "name: x\nncores: [1]\ngraphs: [{generator: rhg, n: 10}]\n",
		"bad config kind": "name: x\nncores: [1]\nconfig: {a: {kind: nope, value: 1}}\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestNaming(t *testing.T) {
	in := input.NewFreeform("grid", args.NewRecord(), nil)

	assert.Equal(t, "in0_grid-r4-t1-c0", ConfigName(0, in, 4, 1, 0, 0))
	assert.Equal(t, "in2_grid-r4-t2-c3-s7", ConfigName(2, in, 4, 2, 3, 7))
	assert.Equal(t, "in1_grid-r4", ConfigName(1, in, 4, 0, -1, 0))
	assert.Equal(t, "in1_grid-p16", AggregateName(1, in, 16))

	s := &Suite{Name: "bfs"}
	assert.Equal(t, "bfs-in1_grid-p16", s.JobName(AggregateName(1, in, 16)))
}

func TestEndToEndJobNames(t *testing.T) {
	s, err := Parse([]byte(`
name: e2e
ncores: [4]
threads_per_rank: [1, 2]
seeds: [0]
graphs:
  - {generator: freeform, name: grid, rows: 8}
config:
  flag_a: [1, 2]
`))
	require.NoError(t, err)
	require.NoError(t, s.Resolve(context.Background(), nil))
	require.Len(t, s.Configs, 2)
	require.Len(t, s.Inputs, 1)

	names := map[string]bool{}
	for i, in := range s.Inputs {
		for _, cores := range s.Cores {
			for _, threads := range s.ThreadsPerRank {
				for c := range s.Configs {
					for _, seed := range s.Seeds {
						names[s.JobName(ConfigName(i, in, cores/threads, threads, c, seed))] = true
					}
				}
			}
		}
	}
	assert.Len(t, names, 4)
	assert.Equal(t, 4, s.Jobs())
}
