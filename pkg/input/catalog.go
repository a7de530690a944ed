package input

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var partitionFileRegex = regexp.MustCompile(`^(.*)_k([0-9]+)`)

// Catalog holds the file graphs and partition files known by name.
type Catalog struct {
	graphs     map[string]*File
	order      []string
	partitions map[string]map[int]string
}

type catalogFile struct {
	Graphs []struct {
		Name      string `yaml:"name"`
		Path      string `yaml:"path"`
		Format    string `yaml:"format"`
		GraphType string `yaml:"graphtype"`
	} `yaml:"graphs"`
	Includes   []string `yaml:"includes"`
	Partitions string   `yaml:"partitions"`
}

func NewCatalog() *Catalog {
	return &Catalog{
		graphs:     map[string]*File{},
		partitions: map[string]map[int]string{},
	}
}

// LoadCatalog reads input description files. Paths inside a description are
// relative to it. Graphs whose files are missing are skipped with a warning.
func LoadCatalog(ctx context.Context, fs afero.Fs, paths ...string) (*Catalog, error) {
	c := NewCatalog()
	visited := map[string]bool{}
	for _, path := range paths {
		if err := c.load(ctx, fs, path, visited); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) load(ctx context.Context, fs afero.Fs, path string, visited map[string]bool) error {
	path = filepath.Clean(path)
	if visited[path] {
		return nil
	}
	visited[path] = true

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read input description: %w", err)
	}
	var desc catalogFile
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("failed to parse input description %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, g := range desc.Graphs {
		graph := NewFile(g.Name, relativeTo(dir, g.Path), g.Format, g.GraphType)
		if !graph.Exists(fs) {
			log.Ctx(ctx).Warn().Str("graph", graph.Name()).Str("path", graph.Path()).Msg("could not load graph")
			continue
		}
		c.Add(graph)
	}

	for _, include := range desc.Includes {
		if err := c.load(ctx, fs, relativeTo(dir, include), visited); err != nil {
			return err
		}
	}

	if desc.Partitions != "" {
		if err := c.loadPartitions(ctx, fs, relativeTo(dir, desc.Partitions)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) loadPartitions(ctx context.Context, fs afero.Fs, root string) error {
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return fmt.Errorf("failed to read partition directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		match := partitionFileRegex.FindStringSubmatch(entry.Name())
		if match == nil {
			log.Ctx(ctx).Warn().Str("file", entry.Name()).Msg("invalid partition name")
			continue
		}
		ranks, err := strconv.Atoi(match[2])
		if err != nil {
			log.Ctx(ctx).Warn().Str("file", entry.Name()).Err(err).Msg("invalid partition rank count")
			continue
		}
		c.AddPartition(match[1], ranks, filepath.Join(root, entry.Name()))
	}
	return nil
}

func relativeTo(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Add registers a graph under its name, replacing any previous one.
func (c *Catalog) Add(f *File) {
	if _, ok := c.graphs[f.Name()]; !ok {
		c.order = append(c.order, f.Name())
	}
	c.graphs[f.Name()] = f
}

func (c *Catalog) AddPartition(graph string, ranks int, path string) {
	if c.partitions[graph] == nil {
		c.partitions[graph] = map[int]string{}
	}
	c.partitions[graph][ranks] = path
}

// Lookup finds a graph by name, either as given or slugified.
func (c *Catalog) Lookup(name string) (*File, bool) {
	if f, ok := c.graphs[name]; ok {
		return f, true
	}
	f, ok := c.graphs[slugify(name)]
	return f, ok
}

// PartitionsFor returns a copy of the partition files of a graph.
func (c *Catalog) PartitionsFor(name string) map[int]string {
	if parts, ok := c.partitions[name]; ok {
		return maps.Clone(parts)
	}
	return maps.Clone(c.partitions[slugify(name)])
}

// Names returns graph names in the order they were loaded.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

func (c *Catalog) Len() int { return len(c.graphs) }
