package input

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cedana/graphbench/pkg/args"
)

// Freeform is an input given purely as options of the benchmark executable.
// Integer options listed as weak are multiplied by the number of processes.
type Freeform struct {
	name   string
	params args.Record
	weak   []string
}

func NewFreeform(name string, params args.Record, weak []string) *Freeform {
	return &Freeform{name: name, params: params.Clone(), weak: slices.Clone(weak)}
}

func (f *Freeform) sealed() {}

func (f *Freeform) Args(topo Topology, escape bool) ([]string, error) {
	params := f.params
	p := int64(topo.Processes())
	for _, key := range f.weak {
		a, ok := params.Get(key)
		if !ok {
			continue
		}
		scaled, err := scaleValue(a.Value, p)
		if err != nil {
			return nil, fmt.Errorf("%w: option %s of input %s is %s", err, key, f.Name(), a.Value)
		}
		a.Value = scaled
		params = params.With(a)
	}
	return args.RenderRecord(params, escape), nil
}

func scaleValue(v args.Value, p int64) (args.Value, error) {
	scale := func(s args.Scalar) (args.Scalar, error) {
		i, ok := s.Int()
		if !ok {
			return args.Scalar{}, ErrWeakScaleNonInteger
		}
		return args.Int(i * p), nil
	}
	switch v.Shape() {
	case args.ShapeScalar:
		s, err := scale(v.Scalar())
		if err != nil {
			return args.Value{}, err
		}
		return args.ScalarValue(s), nil
	case args.ShapeList:
		list := v.List()
		for i := range list {
			s, err := scale(list[i])
			if err != nil {
				return args.Value{}, err
			}
			list[i] = s
		}
		return args.ListValue(list...), nil
	default:
		return args.Value{}, ErrWeakScaleNonInteger
	}
}

// Name has the form `name_key=value_flag[_weak-<keys>]`, slugified.
func (f *Freeform) Name() string {
	name := joinNonEmpty("_", f.name, strings.Join(paramStrings(f.params), "_"))
	if len(f.weak) > 0 {
		name += "_weak-" + strings.Join(slices.Sorted(slices.Values(f.weak)), "-")
	}
	return slugify(name)
}

func (f *Freeform) ShortName() string { return shorten(f.Name()) }
