package args

import "fmt"

// Kind decides how an option is turned into command-line tokens, and whether a
// list value means "one job per element" or "one argument with many values".
type Kind int

const (
	Flag Kind = iota
	Positional
	FlagList
	PositionalList
)

var kindNames = map[Kind]string{
	Flag:           "flag",
	Positional:     "positional",
	FlagList:       "flag_list",
	PositionalList: "positional_list",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsList reports whether the kind is intrinsically multi-valued.
func (k Kind) IsList() bool {
	return k == FlagList || k == PositionalList
}

// IsPositional reports whether the kind is rendered without a flag token.
func (k Kind) IsPositional() bool {
	return k == Positional || k == PositionalList
}

func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return Flag, fmt.Errorf("unknown argument kind %q", s)
}
