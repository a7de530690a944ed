package input

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/spf13/afero"
)

const (
	FormatMetis       = "metis"
	FormatBinary      = "binary"
	FormatBrain       = "brain_format"
	DefaultGraphType  = "BRAIN"
	partitionedSuffix = "_partitioned"
)

// File is a graph stored on disk, optionally with precomputed partitions
// keyed by the number of ranks.
type File struct {
	name        string
	path        string
	format      string
	graphType   string
	partitions  map[int]string
	partitioned bool
}

func NewFile(name, path, format, graphType string) *File {
	if format == "" {
		format = FormatMetis
	}
	if graphType == "" {
		graphType = DefaultGraphType
	}
	return &File{
		name:       slugify(name),
		path:       path,
		format:     format,
		graphType:  graphType,
		partitions: map[int]string{},
	}
}

func (f *File) sealed() {}

func (f *File) Path() string      { return f.path }
func (f *File) Format() string    { return f.format }
func (f *File) Partitioned() bool { return f.partitioned }

func (f *File) Partitions() map[int]string {
	return maps.Clone(f.partitions)
}

// WithPartitions returns a partitioned copy of f with parts added to its
// partitions. f itself is left untouched.
func (f *File) WithPartitions(parts map[int]string) *File {
	c := *f
	c.partitions = maps.Clone(f.partitions)
	maps.Copy(c.partitions, parts)
	c.partitioned = true
	return &c
}

// Exists reports whether the files backing the graph are present.
func (f *File) Exists(fs afero.Fs) bool {
	switch f.format {
	case FormatMetis:
		ok, _ := afero.Exists(fs, f.path)
		return ok
	case FormatBinary:
		dir := filepath.Dir(f.path)
		stem := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
		firstOut, _ := afero.Exists(fs, filepath.Join(dir, stem+".first_out"))
		head, _ := afero.Exists(fs, filepath.Join(dir, stem+".head"))
		return firstOut && head
	case FormatBrain:
		return true
	default:
		return false
	}
}

func (f *File) Args(topo Topology, escape bool) ([]string, error) {
	tokens := []string{"--graphtype", f.graphType, "--infile_dir", args.ValueToken(f.path, escape)}
	if f.partitioned && topo.Ranks > 1 {
		partition, ok := f.partitions[topo.Ranks]
		if !ok || partition == "" {
			return nil, fmt.Errorf("%w: p=%d for input %s", ErrMissingPartition, topo.Ranks, f.Name())
		}
		tokens = append(tokens, "--partitioning", args.ValueToken(partition, escape))
	}
	return tokens, nil
}

func (f *File) Name() string {
	if f.partitioned {
		return f.name + partitionedSuffix
	}
	return f.name
}

func (f *File) ShortName() string { return shorten(f.Name()) }
