package input

import (
	"fmt"
	"slices"

	"github.com/cedana/graphbench/pkg/args"
	"gopkg.in/yaml.v3"
)

const (
	GeneratorKaGen    = "kagen"
	GeneratorFreeform = "freeform"
	GeneratorDummy    = "dummy"
)

// Decode builds an input from an inline description, for example
//
//	{generator: rhg, n: 10, m: 12, gamma: 2.8, scale_weak: true}
//	{generator: kagen, type: rgg2d, N: 16, M: 20, edgeweights: {generator: uniform_random, range: [1, 100]}}
//	{generator: freeform, name: grid, rows: 64, cols: 64, scale_weak: [rows]}
//
// Keys in skip are ignored.
func Decode(node *yaml.Node, skip ...string) (Input, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected an input mapping", node.Line)
	}

	var generator, name string
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "generator" {
			generator = node.Content[i+1].Value
		}
	}
	named := generator == GeneratorFreeform || generator == GeneratorDummy

	var weakNode, edgeNode *yaml.Node
	rest := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: node.Line}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch {
		case key.Value == "generator", slices.Contains(skip, key.Value):
		case key.Value == "scale_weak":
			weakNode = value
		case key.Value == "edgeweights":
			edgeNode = value
		case key.Value == "name" && named:
			name = value.Value
		default:
			rest.Content = append(rest.Content, key, value)
		}
	}

	var params args.Record
	if err := params.UnmarshalYAML(rest); err != nil {
		return nil, err
	}

	switch generator {
	case "":
		return nil, fmt.Errorf("line %d: %w: inline input needs a generator", node.Line, ErrMissingParameters)
	case GeneratorFreeform, GeneratorDummy:
		if name == "" {
			return nil, fmt.Errorf("line %d: %w: %s input needs a name", node.Line, ErrMissingParameters, generator)
		}
		weak, err := decodeWeakKeys(weakNode)
		if err != nil {
			return nil, err
		}
		return NewFreeform(name, params, weak), nil
	case GeneratorKaGen:
		weak, err := decodeWeakFlag(weakNode)
		if err != nil {
			return nil, err
		}
		ew, err := decodeEdgeWeights(edgeNode)
		if err != nil {
			return nil, err
		}
		return NewKaGen(params, weak, ew)
	default:
		weak, err := decodeWeakFlag(weakNode)
		if err != nil {
			return nil, err
		}
		return NewGenerator(generator, params, weak)
	}
}

func decodeWeakFlag(node *yaml.Node) (bool, error) {
	if node == nil {
		return false, nil
	}
	var weak bool
	if err := node.Decode(&weak); err != nil {
		return false, fmt.Errorf("line %d: scale_weak must be a boolean: %w", node.Line, err)
	}
	return weak, nil
}

// decodeWeakKeys accepts a list of option names, or false for none.
func decodeWeakKeys(node *yaml.Node) ([]string, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind == yaml.ScalarNode {
		var weak bool
		if err := node.Decode(&weak); err == nil && !weak {
			return nil, nil
		}
		return nil, fmt.Errorf("line %d: scale_weak must list the options to scale", node.Line)
	}
	var keys []string
	if err := node.Decode(&keys); err != nil {
		return nil, fmt.Errorf("line %d: scale_weak must list the options to scale: %w", node.Line, err)
	}
	return keys, nil
}

func decodeEdgeWeights(node *yaml.Node) (*EdgeWeights, error) {
	if node == nil {
		return nil, nil
	}
	var raw struct {
		Generator string  `yaml:"generator"`
		Range     []int64 `yaml:"range"`
	}
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: invalid edgeweights: %w", node.Line, err)
	}
	if raw.Generator == "" || len(raw.Range) != 2 {
		return nil, fmt.Errorf("line %d: %w: edgeweights needs a generator and a range [begin, end]", node.Line, ErrMissingParameters)
	}
	return &EdgeWeights{Generator: raw.Generator, RangeBegin: raw.Range[0], RangeEnd: raw.Range[1]}, nil
}
