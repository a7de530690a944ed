package runner

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cedana/graphbench/pkg/sizing"
	"github.com/cedana/graphbench/pkg/suite"
	"github.com/google/shlex"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSuite = `
name: bfs
executable: bench
ncores: [1, 2, 64]
seeds: [0, 3]
time_limit: 5
graphs:
  - generator: gnm
    n: 10
    m: 12
config:
  algorithm: [top_down, bottom_up]
`

type fakeExecutor struct {
	cmdlines []string
	fail     func(cmdline string) bool
}

func (e *fakeExecutor) Run(ctx context.Context, cmdline string, stdout, stderr io.Writer) (int, error) {
	e.cmdlines = append(e.cmdlines, cmdline)
	io.WriteString(stdout, "ok\n")
	if e.fail != nil && e.fail(cmdline) {
		io.WriteString(stderr, "boom\n")
		return 1, nil
	}
	return 0, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
}

func loadSuite(t *testing.T, text string) *suite.Suite {
	t.Helper()
	s, err := suite.Parse([]byte(text))
	require.NoError(t, err)
	require.NoError(t, s.Resolve(context.Background(), nil))
	return s
}

func testOptions(fs afero.Fs, out io.Writer, exec Executor) Options {
	return Options{
		Fs:                fs,
		Out:               out,
		BuildDir:          "/build",
		ExperimentDataDir: "/data",
		MaxCores:          2,
		Executor:          exec,
		Now:               fixedNow,
	}
}

func TestNew(t *testing.T) {
	for _, machine := range Machines() {
		r, err := New(machine, Options{Fs: afero.NewMemMapFs()})
		require.NoError(t, err)
		assert.Equal(t, machine, r.Machine())
		assert.Equal(t, machine != MachineShared, IsBatch(machine))
	}

	_, err := New("cray", Options{})
	assert.ErrorIs(t, err, ErrUnknownMachine)
	assert.False(t, IsBatch("cray"))
}

func TestSharedPlan(t *testing.T) {
	s := loadSuite(t, testSuite)
	r, err := New(MachineShared, testOptions(afero.NewMemMapFs(), nil, &fakeExecutor{}))
	require.NoError(t, err)

	jobs, err := r.Plan(context.Background(), s)
	require.NoError(t, err)
	// 64 cores exceed the maximum
	require.Len(t, jobs, 2*2*2)

	short := s.Inputs[0].ShortName()
	first := jobs[0]
	assert.Equal(t, "in0_"+short+"-r1-t1-c0", first.Name)
	assert.Empty(t, first.Aggregate)
	assert.Equal(t, "in0_"+short+"-r1-t1-c1", jobs[1].Name)
	assert.Equal(t, "in0_"+short+"-r1-t1-c0-s3", jobs[2].Name)
	assert.Equal(t, "in0_"+short+"-r2-t1-c0", jobs[4].Name)

	words, err := shlex.Split(first.CommandLine())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/build/bench",
		"--graphtype", "gnm", "--log_num_vertices", "10", "--log_num_edges", "12",
		"--algorithm", "top_down",
		"--json_output_path", "/data/bfs_24_03_07/output/" + first.Name,
		"--seed", "0",
	}, words)
}

func TestSharedPlanOmitOptions(t *testing.T) {
	s := loadSuite(t, testSuite)
	opts := testOptions(afero.NewMemMapFs(), nil, &fakeExecutor{})
	opts.OmitOutputPath = true
	opts.OmitSeed = true
	r, err := New(MachineShared, opts)
	require.NoError(t, err)

	jobs, err := r.Plan(context.Background(), s)
	require.NoError(t, err)
	for _, job := range jobs {
		assert.NotContains(t, job.CommandLine(), "--json_output_path")
		assert.NotContains(t, job.CommandLine(), "--seed")
	}
}

func TestSharedExecute(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	exec := &fakeExecutor{fail: func(cmdline string) bool {
		return strings.Contains(cmdline, "bottom_up")
	}}
	s := loadSuite(t, testSuite)

	r, err := New(MachineShared, testOptions(fs, &out, exec))
	require.NoError(t, err)
	result, err := r.Execute(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Total)
	assert.Equal(t, 4, result.Failed)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "/data/bfs_24_03_07/output", result.OutputDir)
	assert.Contains(t, out.String(), "Summary: 4 out of 8 failed.")

	require.Len(t, exec.cmdlines, 8)
	assert.True(t, strings.HasPrefix(exec.cmdlines[0], "mpirun --oversubscribe -n 1 /build/bench "))

	name := "in0_" + s.Inputs[0].ShortName() + "-r1-t1-c1"
	stderr, err := afero.ReadFile(fs, filepath.Join(result.OutputDir, name+"-error-log.txt"))
	require.NoError(t, err)
	assert.Equal(t, "boom\n", string(stderr))
	stdout, err := afero.ReadFile(fs, filepath.Join(result.OutputDir, name+"-log.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(stdout))

	config, err := afero.ReadFile(fs, filepath.Join(result.OutputDir, "config.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"algorithm":"top_down","idx":0},{"algorithm":"bottom_up","idx":1}]`, string(config))
}

func TestSharedExecuteUnresolved(t *testing.T) {
	s, err := suite.Parse([]byte(testSuite))
	require.NoError(t, err)
	r, err := New(MachineShared, testOptions(afero.NewMemMapFs(), nil, &fakeExecutor{}))
	require.NoError(t, err)

	_, err = r.Execute(context.Background(), s)
	assert.Error(t, err)
}

func TestFresh(t *testing.T) {
	fs := afero.NewMemMapFs()
	stale := "/data/bfs_24_03_07/output/stale-log.txt"
	require.NoError(t, afero.WriteFile(fs, stale, []byte("old"), 0o644))

	opts := testOptions(fs, nil, &fakeExecutor{})
	opts.Fresh = true
	r, err := New(MachineShared, opts)
	require.NoError(t, err)
	_, err = r.Execute(context.Background(), loadSuite(t, testSuite))
	require.NoError(t, err)

	exists, err := afero.Exists(fs, stale)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBatchExecute(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	exec := &fakeExecutor{}
	s := loadSuite(t, testSuite)

	opts := testOptions(fs, &out, exec)
	opts.Project = "pn12ab"
	opts.ModuleConfig = "graphbench"
	r, err := New(MachineSuperMUC, opts)
	require.NoError(t, err)

	result, err := r.Execute(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, exec.cmdlines, "batch runners never execute jobs")
	// core counts are not capped for batch systems
	require.Len(t, result.JobFiles, 3)
	assert.Equal(t, 12, result.Total)
	assert.Contains(t, out.String(), "Created 3 job files in directory /data/bfs_24_03_07/jobfiles.")

	short := s.Inputs[0].ShortName()
	aggregate := "bfs-in0_" + short + "-p64"
	assert.Equal(t, "/data/bfs_24_03_07/jobfiles/"+aggregate, result.JobFiles[2])

	data, err := afero.ReadFile(fs, result.JobFiles[2])
	require.NoError(t, err)
	script := string(data)
	assert.Contains(t, script, "#SBATCH --nodes=2\n")
	assert.Contains(t, script, "#SBATCH --ntasks=64\n")
	assert.Contains(t, script, "#SBATCH --ntasks-per-node=48\n")
	assert.Contains(t, script, "#SBATCH -J "+aggregate+"\n")
	assert.Contains(t, script, "#SBATCH --partition=micro\n")
	assert.Contains(t, script, "#SBATCH --switches=1\n")
	assert.Contains(t, script, "#SBATCH --account=pn12ab\n")
	assert.Contains(t, script, "#SBATCH -o /data/bfs_24_03_07/output/in0_"+short+"-p64-log.txt\n")
	assert.Contains(t, script, "#SBATCH -e /data/bfs_24_03_07/output/in0_"+short+"-p64-err.txt\n")
	assert.Contains(t, script, "# run "+result.RunID+"\n")
	assert.Contains(t, script, "module restore graphbench\n")
	// four commands of five minutes each
	assert.Contains(t, script, "#SBATCH --time=0-00:20:00\n")
	assert.Equal(t, 4, strings.Count(script, "mpiexec -n 64 -ppn 48 timeout 300s /build/bench"))
	assert.Contains(t, script, "--json_output_path \"/data/bfs_24_03_07/output/bfs-in0_"+short+"-r64-t1-c1-s3\"")
}

func TestBatchPlanOrder(t *testing.T) {
	s := loadSuite(t, `
name: pr
executable: pagerank
ncores: [4]
threads_per_rank: [1, 2]
seeds: [1, 2]
graphs:
  - generator: rdg2d
    n: 8
config:
  eps: [0.1, 0.01]
`)
	r, err := New(MachineGeneric, testOptions(afero.NewMemMapFs(), nil, nil))
	require.NoError(t, err)

	jobs, err := r.Plan(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, jobs, 8)

	prefix := "pr-in0_" + s.Inputs[0].ShortName()
	var names []string
	for _, job := range jobs {
		assert.Equal(t, prefix+"-p4", job.Aggregate)
		names = append(names, strings.TrimPrefix(job.Name, prefix))
	}
	assert.Equal(t, []string{
		"-r4-t1-c0-s1", "-r4-t1-c0-s2", "-r4-t1-c1-s1", "-r4-t1-c1-s2",
		"-r2-t2-c0-s1", "-r2-t2-c0-s2", "-r2-t2-c1-s1", "-r2-t2-c1-s2",
	}, names)
}

func TestBatchDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := loadSuite(t, testSuite)
	opts := testOptions(fs, nil, nil)
	opts.JobOutputDir = "/jobs"
	opts.TimeLimit = 7
	s.TimeLimit = 0

	r, err := New(MachineGeneric, opts)
	require.NoError(t, err)
	result, err := r.Execute(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, result.JobFiles, 3)

	data, err := afero.ReadFile(fs, result.JobFiles[0])
	require.NoError(t, err)
	script := string(data)
	assert.True(t, strings.HasPrefix(result.JobFiles[0], "/jobs/"))
	assert.Contains(t, script, "# queue:      generic_partition\n")
	assert.Contains(t, script, "# account:    "+DefaultProject+"\n")
	assert.Contains(t, script, noModuleSetup+"\n")
	assert.Contains(t, script, "# time limit: 0-00:28:00\n")
	assert.Contains(t, script, "OMP_NUM_THREADS=1 mpirun -n 1 timeout 420s /build/bench")
}

func TestBatchNodeCeiling(t *testing.T) {
	s := loadSuite(t, `
name: huge
executable: bench
ncores: [16384]
graphs:
  - generator: rdg2d
    n: 20
`)
	r, err := New(MachineHoreKa, testOptions(afero.NewMemMapFs(), nil, nil))
	require.NoError(t, err)

	_, err = r.Execute(context.Background(), s)
	assert.ErrorIs(t, err, sizing.ErrNodeCeiling)
}

func TestBatchTemplateOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmpl/job.txt", []byte("${job_name} ${nodes}\n${commands}\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/tmpl/cmd.txt", []byte("run ${mpi_ranks}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/tmpl/bad.txt", []byte("${nope}"), 0o644))
	s := loadSuite(t, testSuite)

	opts := testOptions(fs, nil, nil)
	opts.JobTemplate = "/tmpl/job.txt"
	opts.CommandTemplate = "/tmpl/cmd.txt"
	r, err := New(MachineHoreKa, opts)
	require.NoError(t, err)
	result, err := r.Execute(context.Background(), s)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, result.JobFiles[1])
	require.NoError(t, err)
	assert.Equal(t, "bfs-in0_"+s.Inputs[0].ShortName()+"-p2 1\nrun 2\nrun 2\nrun 2\nrun 2\n", string(data))

	opts.JobTemplate = "/tmpl/bad.txt"
	r, err = New(MachineHoreKa, opts)
	require.NoError(t, err)
	_, err = r.Execute(context.Background(), loadSuite(t, testSuite))
	assert.Error(t, err)
}

func TestDefaultTemplate(t *testing.T) {
	text, err := DefaultTemplate(MachineHoreKa, true)
	require.NoError(t, err)
	assert.Contains(t, text, "#SBATCH --partition=${job_queue}")

	text, err = DefaultTemplate(MachineShared, false)
	require.NoError(t, err)
	assert.Contains(t, text, "${cmd}")

	_, err = DefaultTemplate(MachineShared, true)
	assert.Error(t, err)
	_, err = DefaultTemplate("cray", false)
	assert.ErrorIs(t, err, ErrUnknownMachine)
}
