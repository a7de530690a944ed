package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEnvAliases(t *testing.T) {
	t.Setenv("TIME_LIMIT", "45")
	t.Setenv("MACHINE", "horeka")
	t.Setenv("GRAPHBENCH_SHARED_MAX_CORES", "8")
	dir := t.TempDir()

	require.NoError(t, Init(InitArgs{ConfigDir: dir}))

	assert.Equal(t, dir, Dir)
	assert.Equal(t, 45, Global.Batch.TimeLimit)
	assert.Equal(t, "horeka", Global.Machine)
	assert.Equal(t, 8, Global.Shared.MaxCores)
	assert.Equal(t, DEFAULT_BATCH_MODULE_RESTORE_CMD, Global.Batch.ModuleRestoreCmd)

	_, err := os.Stat(filepath.Join(dir, FILE_NAME+"."+FILE_TYPE))
	assert.NoError(t, err, "default config file is written")
}

func TestInitMergeString(t *testing.T) {
	require.NoError(t, Init(InitArgs{
		ConfigDir: t.TempDir(),
		Config:    `{"batch": {"project": "pn12ab"}}`,
	}))
	assert.Equal(t, "pn12ab", Global.Batch.Project)

	err := Init(InitArgs{ConfigDir: t.TempDir(), Config: `{"batch":`})
	assert.Error(t, err)
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"."}, splitPath("", "."))
	assert.Equal(t, []string{"a", "b"}, splitPath("a::b"))
	assert.Nil(t, splitPath(""))
}
