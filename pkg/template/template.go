// Package template fills job and command templates.
//
// Templates use `$name` or `${name}` placeholders, `$$` is a literal dollar
// sign. Every placeholder must have an expansion.
package template

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

var ErrMissingExpansion = errors.New("missing template expansion")

// Expansions maps placeholder names to their values.
type Expansions map[string]string

func NewExpansions(initial map[string]string) Expansions {
	e := Expansions{}
	for k, v := range initial {
		e[k] = v
	}
	return e
}

func (e Expansions) Put(key, value string) {
	e[key] = value
}

func (e Expansions) PutInt(key string, value int) {
	e[key] = strconv.Itoa(value)
}

// Update adds all expansions of other, replacing existing keys.
func (e Expansions) Update(other map[string]string) {
	for k, v := range other {
		e[k] = v
	}
}

func (e Expansions) Exists(key string) bool {
	_, ok := e[key]
	return ok
}

// Expand substitutes all placeholders in text. Substituted values are not
// expanded again.
func (e Expansions) Expand(text string) (string, error) {
	var missing []string
	out := os.Expand(text, func(name string) string {
		if name == "$" {
			return "$"
		}
		v, ok := e[name]
		if !ok {
			if !slices.Contains(missing, name) {
				missing = append(missing, name)
			}
			return ""
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingExpansion, strings.Join(missing, ", "))
	}
	return out, nil
}

// Template is a parsed template text.
type Template struct {
	Name string
	text string
}

func New(name, text string) *Template {
	return &Template{Name: name, text: text}
}

// Load reads a template from a file.
func Load(fs afero.Fs, path string) (*Template, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return New(path, string(data)), nil
}

func (t *Template) Execute(e Expansions) (string, error) {
	out, err := e.Expand(t.text)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", t.Name, err)
	}
	return out, nil
}

func (t *Template) String() string { return t.text }
