// Package input describes benchmark inputs and how they are passed to a
// benchmark executable for a given process topology.
package input

import (
	"errors"
	"math/bits"
)

var (
	ErrMissingPartition    = errors.New("missing partition file")
	ErrNotPowerOfTwo       = errors.New("number of processes must be a power of two")
	ErrWeakScaleNonInteger = errors.New("weak scaling requires integer values")
	ErrUnknownGenerator    = errors.New("unknown generator")
	ErrMissingParameters   = errors.New("missing required parameters")
)

// Topology is the process layout a command runs with.
type Topology struct {
	Ranks          int
	ThreadsPerRank int
}

// Processes is the total number of processing elements.
func (t Topology) Processes() int {
	return t.Ranks * t.ThreadsPerRank
}

// Input is a benchmark input. The set of implementations is closed: *File,
// *Generator, *KaGen and *Freeform.
type Input interface {
	// Args renders the input into command-line tokens. It never modifies the
	// input.
	Args(topo Topology, escape bool) ([]string, error)
	// Name is canonical, deterministic and safe for file names and shells.
	Name() string
	// ShortName is Name, shortened for use in job and file names.
	ShortName() string

	sealed()
}

// log2 returns log2(p) for powers of two.
func log2(p int) (int, error) {
	if p <= 0 || p&(p-1) != 0 {
		return 0, ErrNotPowerOfTwo
	}
	return bits.Len(uint(p)) - 1, nil
}
