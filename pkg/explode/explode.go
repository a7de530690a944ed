// Package explode expands multi-valued configuration records into the
// cartesian product of single-valued records.
package explode

import "github.com/cedana/graphbench/pkg/args"

// Explode expands rec into every combination of its explosive arguments.
//
// The first explosive argument in record order is the pivot. Every choice of
// the pivot yields a copy of rec with the pivot fixed to that choice, which is
// exploded further. A record without explosive arguments is returned as is.
// A list of lists under a list kind is only split on the outer list, each
// variant keeps a whole inner list as its value.
func Explode(rec args.Record) []args.Record {
	return explode(rec, 0)
}

// All explodes every record and concatenates the results in input order.
func All(recs []args.Record) []args.Record {
	var out []args.Record
	for _, rec := range recs {
		out = append(out, Explode(rec)...)
	}
	return out
}

// explode only scans from start on, arguments before it are already fixed.
// The pivot itself is scanned again since a choice of a nested value under a
// scalar kind is still a list.
func explode(rec args.Record, start int) []args.Record {
	for i := start; i < rec.Len(); i++ {
		pivot := rec.At(i)
		if !pivot.Explosive() {
			continue
		}
		choices := pivot.Choices()
		if len(choices) == 0 {
			// An empty list has nothing to choose from and is kept as is.
			continue
		}
		var out []args.Record
		for _, choice := range choices {
			variant := rec.With(args.Argument{Key: pivot.Key, Kind: pivot.Kind, Value: choice})
			out = append(out, explode(variant, i)...)
		}
		return out
	}
	return []args.Record{rec.Clone()}
}
