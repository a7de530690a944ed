package args

// Argument is a single configuration option of a benchmark command.
type Argument struct {
	Key   string
	Kind  Kind
	Value Value
}

func NewFlag(key string, v Value) Argument {
	return Argument{Key: key, Kind: Flag, Value: v}
}

// Explosive reports whether the argument stands for several job variants.
// A plain list under a list kind is a single multi-valued argument, only a
// list of lists is exploded. Any list under a scalar kind is exploded.
func (a Argument) Explosive() bool {
	if a.Kind.IsList() {
		return a.Value.Shape() == ShapeNested
	}
	return a.Value.Shape() != ShapeScalar
}

// Choices returns the values an explosive argument is exploded over. Every
// choice is an independent copy.
func (a Argument) Choices() []Value {
	switch a.Value.Shape() {
	case ShapeList:
		choices := make([]Value, len(a.Value.list))
		for i, s := range a.Value.list {
			choices[i] = ScalarValue(s)
		}
		return choices
	case ShapeNested:
		choices := make([]Value, len(a.Value.nested))
		for i, inner := range a.Value.nested {
			choices[i] = ListValue(inner...)
		}
		return choices
	default:
		return []Value{a.Value}
	}
}

func (a Argument) Clone() Argument {
	a.Value = a.Value.Clone()
	return a
}

func (a Argument) Equal(o Argument) bool {
	return a.Key == o.Key && a.Kind == o.Kind && a.Value.Equal(o.Value)
}
