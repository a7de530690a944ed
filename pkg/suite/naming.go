package suite

import (
	"fmt"
	"strings"

	"github.com/cedana/graphbench/pkg/input"
)

// ConfigName names a single job:
//
//	in<i>_<input>-r<ranks>[-t<threads>][-c<config>][-s<seed>]
//
// The thread segment is left out for threads <= 0, the config segment for
// config < 0 and the seed segment for seed 0.
func ConfigName(i int, in input.Input, ranks, threads, config, seed int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "in%d_%s-r%d", i, in.ShortName(), ranks)
	if threads > 0 {
		fmt.Fprintf(&b, "-t%d", threads)
	}
	if config >= 0 {
		fmt.Fprintf(&b, "-c%d", config)
	}
	if seed != 0 {
		fmt.Fprintf(&b, "-s%d", seed)
	}
	return b.String()
}

// AggregateName names all jobs of an input at a core count.
func AggregateName(i int, in input.Input, cores int) string {
	return fmt.Sprintf("in%d_%s-p%d", i, in.ShortName(), cores)
}
