package input

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/cedana/graphbench/pkg/args"
	"github.com/gosimple/slug"
)

const (
	maxShortName    = 48
	shortNamePrefix = 40
)

func slugify(s string) string {
	return slug.Make(s)
}

// shorten keeps names up to maxShortName characters, longer ones become a
// prefix plus a hash of the full name so they stay unique.
func shorten(name string) string {
	if len(name) <= maxShortName {
		return name
	}
	sum := sha256.Sum256([]byte(name))
	return name[:shortNamePrefix] + "-" + hex.EncodeToString(sum[:])[:8]
}

// paramStrings renders parameters as `key=value`, and true booleans as `key`.
// False booleans are left out.
func paramStrings(rec args.Record) []string {
	var out []string
	for _, a := range rec.Args() {
		if a.Value.Shape() == args.ShapeScalar {
			if b, ok := a.Value.Scalar().Bool(); ok {
				if b {
					out = append(out, a.Key)
				}
				continue
			}
		}
		out = append(out, a.Key+"="+a.Value.String())
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
