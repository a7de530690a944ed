package input

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/cedana/graphbench/pkg/args"
)

const (
	kagenTypePartitionedFile = "partitioned_file"
	kagenOptionSeparator     = ";"
)

// EdgeWeights configures KaGen's edge weight generator.
type EdgeWeights struct {
	Generator  string
	RangeBegin int64
	RangeEnd   int64
}

func (e EdgeWeights) params() []string {
	return []string{
		"edgeweights_generator=" + e.Generator,
		"edgeweights_range_begin=" + strconv.FormatInt(e.RangeBegin, 10),
		"edgeweights_range_end=" + strconv.FormatInt(e.RangeEnd, 10),
	}
}

// KaGen is a graph produced through a KaGen option string. n and m are vertex
// and edge counts, zero when not given.
type KaGen struct {
	n, m        int64
	params      args.Record
	scaleWeak   bool
	edgeWeights *EdgeWeights
}

// NewKaGen takes the vertex count from n, or from N as 2^N, and the edge count
// from m or M alike. All other parameters are passed on to KaGen, which needs
// at least a type.
func NewKaGen(params args.Record, scaleWeak bool, edgeWeights *EdgeWeights) (*KaGen, error) {
	if _, ok := params.Get("type"); !ok {
		return nil, fmt.Errorf("%w: KaGen graph requires a type", ErrMissingParameters)
	}
	k := &KaGen{scaleWeak: scaleWeak}
	var err error
	if k.n, err = kagenCount(params, "n", "N"); err != nil {
		return nil, err
	}
	if k.m, err = kagenCount(params, "m", "M"); err != nil {
		return nil, err
	}
	k.params = params.Without("n", "N", "m", "M")
	if edgeWeights != nil {
		ew := *edgeWeights
		k.edgeWeights = &ew
	}
	return k, nil
}

func kagenCount(params args.Record, literal, log string) (int64, error) {
	if _, ok := params.Get(literal); ok {
		return intParam(params, literal)
	}
	if _, ok := params.Get(log); ok {
		exp, err := intParam(params, log)
		if err != nil {
			return 0, err
		}
		if exp < 0 || exp > 62 {
			return 0, fmt.Errorf("parameter %s=%d out of range", log, exp)
		}
		return 1 << exp, nil
	}
	return 0, nil
}

func (k *KaGen) sealed() {}

func (k *KaGen) Args(topo Topology, escape bool) ([]string, error) {
	params := k.params
	if t, _ := params.Get("type"); t.Value.String() == kagenTypePartitionedFile {
		file, ok := params.Get("filename")
		if !ok {
			return nil, fmt.Errorf("%w: KaGen type %s requires a filename", ErrMissingParameters, kagenTypePartitionedFile)
		}
		base := fmt.Sprintf("%s_k%d", file.Value, topo.Ranks)
		params = params.
			With(args.NewFlag("filename", args.ScalarValue(args.Str(base)))).
			With(args.NewFlag("partitions", args.ScalarValue(args.Str(base+".partitions")))).
			With(args.NewFlag("type", args.ScalarValue(args.Str("file")))).
			With(args.NewFlag("distribution", args.ScalarValue(args.Str("explicit"))))
	}

	options := paramStrings(params)
	p := int64(topo.Processes())
	if k.n != 0 {
		options = append(options, "n="+strconv.FormatInt(k.scale(k.n, p), 10))
	}
	if k.m != 0 {
		options = append(options, "m="+strconv.FormatInt(k.scale(k.m, p), 10))
	}
	if k.edgeWeights != nil {
		options = append(options, k.edgeWeights.params()...)
	}
	return []string{"--kagen_option_string", args.ValueToken(strings.Join(options, kagenOptionSeparator), escape)}, nil
}

func (k *KaGen) scale(count, p int64) int64 {
	if k.scaleWeak {
		return count * p
	}
	return count
}

// Name has the form `KaGen_n=<log2 n>_m=<log2 m>_<params>[_ew=...][_weak]`,
// slugified. Counts that are not a power of two are written out in full.
func (k *KaGen) Name() string {
	var parts []string
	if k.n != 0 {
		parts = append(parts, "n="+countName(k.n))
	}
	if k.m != 0 {
		parts = append(parts, "m="+countName(k.m))
	}
	parts = append(parts, paramStrings(k.params)...)
	if ew := k.edgeWeights; ew != nil {
		parts = append(parts, fmt.Sprintf("ew=%s-%d-%d", ew.Generator, ew.RangeBegin, ew.RangeEnd))
	}
	if k.scaleWeak {
		parts = append(parts, "weak")
	}
	return slugify("KaGen_" + strings.Join(parts, "_"))
}

func countName(count int64) string {
	if count > 0 && count&(count-1) == 0 {
		return strconv.Itoa(bits.Len64(uint64(count)) - 1)
	}
	return "exact-" + strconv.FormatInt(count, 10)
}

func (k *KaGen) ShortName() string { return shorten(k.Name()) }
