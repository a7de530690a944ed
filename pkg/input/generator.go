package input

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cedana/graphbench/pkg/args"
)

// Parameters each generator needs besides n.
var generatorParams = map[string][]string{
	"rhg":   {"m", "gamma"},
	"gnm":   {"m"},
	"rgg2d": {"m"},
	"rgg3d": {"m"},
	"rmat":  {"m"},
	"rdg2d": {},
	"rdg3d": {},
}

// Generators lists the supported built-in generators.
func Generators() []string {
	names := make([]string, 0, len(generatorParams))
	for name := range generatorParams {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generator is a graph produced by the benchmark executable's built-in
// generator. n and m are log2 of the vertex and edge counts.
type Generator struct {
	kind      string
	params    args.Record
	scaleWeak bool
	n, m      int64
}

// NewGenerator validates params against the generator's parameter table.
func NewGenerator(kind string, params args.Record, scaleWeak bool) (*Generator, error) {
	required, ok := generatorParams[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %s", ErrUnknownGenerator, kind, strings.Join(Generators(), ", "))
	}
	var missing []string
	for _, key := range append([]string{"n"}, required...) {
		if _, ok := params.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: generator %s needs %s", ErrMissingParameters, kind, strings.Join(missing, ", "))
	}

	g := &Generator{kind: kind, params: params.Clone(), scaleWeak: scaleWeak}
	var err error
	if g.n, err = intParam(params, "n"); err != nil {
		return nil, err
	}
	if g.hasEdges() {
		if g.m, err = intParam(params, "m"); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Generator) sealed() {}

func (g *Generator) Kind() string { return g.kind }

func (g *Generator) hasEdges() bool {
	return slices.Contains(generatorParams[g.kind], "m")
}

func (g *Generator) Args(topo Topology, escape bool) ([]string, error) {
	n, m := g.n, g.m
	if g.scaleWeak {
		shift, err := log2(topo.Processes())
		if err != nil {
			return nil, fmt.Errorf("%w: got %d for weak scaled input %s", err, topo.Processes(), g.Name())
		}
		n += int64(shift)
		m += int64(shift)
	}

	tokens := []string{"--graphtype", g.kind, "--log_num_vertices", strconv.FormatInt(n, 10)}
	if g.kind == "rhg" {
		gamma, _ := g.params.Get("gamma")
		tokens = append(tokens, "--gamma", args.ValueToken(gamma.Value.String(), escape))
	}
	if g.hasEdges() {
		tokens = append(tokens, "--log_num_edges", strconv.FormatInt(m, 10))
	}
	if g.kind == "rmat" {
		for _, key := range []string{"a", "b", "c"} {
			if p, ok := g.params.Get(key); ok {
				tokens = append(tokens, "--gen_"+key, args.ValueToken(p.Value.String(), escape))
			}
		}
	}
	return tokens, nil
}

// Name has the form `GEN(n-m=..-gamma=..)[_weak]`, slugified.
func (g *Generator) Name() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%d", strings.ToUpper(g.kind), g.n)
	for _, key := range generatorParams[g.kind] {
		p, _ := g.params.Get(key)
		fmt.Fprintf(&b, "-%s=%s", key, p.Value)
	}
	if g.kind == "rmat" {
		for _, key := range []string{"a", "b", "c"} {
			if p, ok := g.params.Get(key); ok {
				fmt.Fprintf(&b, "-%s=%s", key, p.Value)
			}
		}
	}
	b.WriteString(")")
	if g.scaleWeak {
		b.WriteString("_weak")
	}
	return slugify(b.String())
}

func (g *Generator) ShortName() string { return shorten(g.Name()) }

func intParam(params args.Record, key string) (int64, error) {
	p, ok := params.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParameters, key)
	}
	if p.Value.Shape() != args.ShapeScalar {
		return 0, fmt.Errorf("parameter %s must be a single integer, got %s", key, p.Value)
	}
	v, ok := p.Value.Scalar().Int()
	if !ok {
		return 0, fmt.Errorf("parameter %s must be an integer, got %s", key, p.Value)
	}
	return v, nil
}
