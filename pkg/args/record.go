package args

import (
	"slices"
	"strings"
)

// Record is an ordered set of arguments keyed by option name. The order is the
// order options were declared in, and it drives explosion order and rendering.
// Methods never modify the receiver, changes are returned as copies.
type Record struct {
	args []Argument
}

func NewRecord(args ...Argument) Record {
	r := Record{}
	for _, a := range args {
		r = r.With(a)
	}
	return r
}

func (r Record) Len() int { return len(r.args) }

func (r Record) At(i int) Argument { return r.args[i].Clone() }

// Args returns a copy of all arguments in order.
func (r Record) Args() []Argument {
	return r.Clone().args
}

func (r Record) Keys() []string {
	keys := make([]string, len(r.args))
	for i, a := range r.args {
		keys[i] = a.Key
	}
	return keys
}

func (r Record) Index(key string) int {
	return slices.IndexFunc(r.args, func(a Argument) bool { return a.Key == key })
}

func (r Record) Get(key string) (Argument, bool) {
	i := r.Index(key)
	if i < 0 {
		return Argument{}, false
	}
	return r.args[i].Clone(), true
}

// With returns a copy of the record where arg replaces the argument with the
// same key in place, or is appended if there is none.
func (r Record) With(arg Argument) Record {
	c := r.Clone()
	if i := c.Index(arg.Key); i >= 0 {
		c.args[i] = arg.Clone()
	} else {
		c.args = append(c.args, arg.Clone())
	}
	return c
}

// Without returns a copy of the record without the given keys.
func (r Record) Without(keys ...string) Record {
	c := Record{}
	for _, a := range r.args {
		if !slices.Contains(keys, a.Key) {
			c.args = append(c.args, a.Clone())
		}
	}
	return c
}

func (r Record) Clone() Record {
	if r.args == nil {
		return Record{}
	}
	c := Record{args: make([]Argument, len(r.args))}
	for i, a := range r.args {
		c.args[i] = a.Clone()
	}
	return c
}

func (r Record) Equal(o Record) bool {
	return slices.EqualFunc(r.args, o.args, Argument.Equal)
}

// String renders the record as `key=value` pairs, used for names and logs.
func (r Record) String() string {
	parts := make([]string, len(r.args))
	for i, a := range r.args {
		parts[i] = a.Key + "=" + a.Value.String()
	}
	return strings.Join(parts, " ")
}
