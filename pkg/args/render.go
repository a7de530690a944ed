package args

import "strings"

var shellEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// FlagToken returns `-k` for single character keys and `--key` otherwise.
func FlagToken(key string) string {
	if len(key) == 1 {
		return "-" + key
	}
	return "--" + key
}

// Quote wraps a token in double quotes for a shell.
func Quote(token string) string {
	return `"` + shellEscaper.Replace(token) + `"`
}

// ValueToken renders a single value token, quoted if escape is set.
func ValueToken(s string, escape bool) string {
	if escape {
		return Quote(s)
	}
	return s
}

// Render turns one argument into command-line tokens.
//
// Positional kinds emit only their values. A boolean flag emits its flag token
// if true and nothing otherwise. Any other flag emits the flag token followed
// by one token per value.
func Render(a Argument, escape bool) []string {
	values := a.Value.Flatten()

	if a.Kind.IsPositional() {
		tokens := make([]string, 0, len(values))
		for _, v := range values {
			tokens = append(tokens, ValueToken(v.String(), escape))
		}
		return tokens
	}

	if a.Value.Shape() == ShapeScalar {
		if b, ok := a.Value.Scalar().Bool(); ok {
			if b {
				return []string{FlagToken(a.Key)}
			}
			return nil
		}
	}

	tokens := make([]string, 0, len(values)+1)
	tokens = append(tokens, FlagToken(a.Key))
	for _, v := range values {
		tokens = append(tokens, ValueToken(v.String(), escape))
	}
	return tokens
}

// RenderRecord renders all arguments of a record in order.
func RenderRecord(r Record, escape bool) []string {
	var tokens []string
	for _, a := range r.args {
		tokens = append(tokens, Render(a, escape)...)
	}
	return tokens
}
