package suite

import (
	"context"
	"fmt"
	"slices"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/cedana/graphbench/pkg/explode"
	"github.com/cedana/graphbench/pkg/input"
	"github.com/cedana/graphbench/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const FileExtension = ".suite.yaml"

type suiteFile struct {
	Name             string      `yaml:"name"`
	Type             string      `yaml:"type"`
	Executable       string      `yaml:"executable"`
	Cores            []int       `yaml:"ncores"`
	ThreadsPerRank   []int       `yaml:"threads_per_rank"`
	Seeds            []int       `yaml:"seeds"`
	TasksPerNode     int         `yaml:"tasks_per_node"`
	TimeLimit        int         `yaml:"time_limit"`
	OutputPathOption string      `yaml:"output_path_option_name"`
	Graphs           []yaml.Node `yaml:"graphs"`
	Config           yaml.Node   `yaml:"config"`
}

// Load reads a suite file. Configurations are exploded on load.
func Load(fs afero.Fs, path string) (*Suite, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suite %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse decodes a suite from YAML.
func Parse(data []byte) (*Suite, error) {
	var raw suiteFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("suite has no name")
	}
	if len(raw.Cores) == 0 {
		return nil, fmt.Errorf("suite %s has no ncores", raw.Name)
	}

	s := &Suite{
		Name:             raw.Name,
		Type:             raw.Type,
		Executable:       raw.Executable,
		Cores:            raw.Cores,
		ThreadsPerRank:   raw.ThreadsPerRank,
		Seeds:            raw.Seeds,
		TasksPerNode:     raw.TasksPerNode,
		TimeLimit:        raw.TimeLimit,
		OutputPathOption: raw.OutputPathOption,
	}
	if s.Type == "" {
		s.Type = DefaultType
	}
	if len(s.ThreadsPerRank) == 0 {
		s.ThreadsPerRank = []int{1}
	}
	if len(s.Seeds) == 0 {
		s.Seeds = []int{0}
	}
	if s.OutputPathOption == "" {
		s.OutputPathOption = DefaultOutputPathOption
	}
	if slices.ContainsFunc(s.ThreadsPerRank, func(t int) bool { return t <= 0 }) {
		return nil, fmt.Errorf("suite %s: threads_per_rank must be positive", s.Name)
	}

	configs, err := parseConfigs(&raw.Config)
	if err != nil {
		return nil, err
	}
	s.Configs = configs

	for i := range raw.Graphs {
		entry, err := parseEntry(&raw.Graphs[i])
		if err != nil {
			return nil, fmt.Errorf("suite %s: %w", s.Name, err)
		}
		s.Entries = append(s.Entries, entry)
	}
	return s, nil
}

func parseConfigs(node *yaml.Node) ([]args.Record, error) {
	switch {
	case node.Kind == 0, node.ShortTag() == "!!null":
		return []args.Record{args.NewRecord()}, nil
	case node.Kind == yaml.SequenceNode:
		recs := make([]args.Record, 0, len(node.Content))
		for _, item := range node.Content {
			var rec args.Record
			if err := item.Decode(&rec); err != nil {
				return nil, fmt.Errorf("invalid config: %w", err)
			}
			recs = append(recs, rec)
		}
		return explode.All(recs), nil
	default:
		var rec args.Record
		if err := node.Decode(&rec); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return explode.Explode(rec), nil
	}
}

func parseEntry(node *yaml.Node) (Entry, error) {
	if node.Kind == yaml.ScalarNode {
		return Entry{Name: node.Value}, nil
	}
	if node.Kind != yaml.MappingNode {
		return Entry{}, fmt.Errorf("line %d: expected a graph name or mapping", node.Line)
	}

	var head struct {
		Name        string `yaml:"name"`
		Generator   string `yaml:"generator"`
		Partitioned bool   `yaml:"partitioned"`
		TimeLimit   int    `yaml:"time_limit"`
	}
	if err := node.Decode(&head); err != nil {
		return Entry{}, fmt.Errorf("line %d: %w", node.Line, err)
	}

	if head.Generator != "" {
		in, err := input.Decode(node, "time_limit")
		if err != nil {
			return Entry{}, err
		}
		return Entry{Input: in, TimeLimit: head.TimeLimit}, nil
	}
	if head.Name == "" {
		return Entry{}, fmt.Errorf("line %d: graph needs a name or a generator", node.Line)
	}
	return Entry{Name: head.Name, Partitioned: head.Partitioned, TimeLimit: head.TimeLimit}, nil
}

// LoadAll loads the given suite files and every suite file in the search
// directories. A later suite replaces an earlier one of the same name.
func LoadAll(ctx context.Context, fs afero.Fs, files []string, searchDirs []string) (Suites, error) {
	var suites Suites
	for _, path := range files {
		s, err := Load(fs, path)
		if err != nil {
			return nil, err
		}
		suites = suites.add(s)
	}
	for _, dir := range searchDirs {
		if dir == "" {
			continue
		}
		if ok, _ := afero.DirExists(fs, dir); !ok {
			log.Ctx(ctx).Debug().Str("dir", dir).Msg("suite search directory does not exist")
			continue
		}
		paths, err := utils.FindFilesByExtension(fs, dir, FileExtension)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			s, err := Load(fs, path)
			if err != nil {
				return nil, err
			}
			suites = suites.add(s)
		}
	}
	return suites, nil
}

// Suites keeps suites in load order.
type Suites []*Suite

func (ss Suites) add(s *Suite) Suites {
	if i := slices.IndexFunc(ss, func(o *Suite) bool { return o.Name == s.Name }); i >= 0 {
		ss[i] = s
		return ss
	}
	return append(ss, s)
}

func (ss Suites) Get(name string) (*Suite, bool) {
	i := slices.IndexFunc(ss, func(s *Suite) bool { return s.Name == name })
	if i < 0 {
		return nil, false
	}
	return ss[i], true
}

func (ss Suites) Names() []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.Name
	}
	return names
}
