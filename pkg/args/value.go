package args

import (
	"slices"
	"strconv"
)

type scalarType int

const (
	stringScalar scalarType = iota
	intScalar
	floatScalar
	boolScalar
)

// Scalar is a single typed option value.
type Scalar struct {
	t scalarType
	s string
	i int64
	f float64
	b bool
}

func Str(s string) Scalar    { return Scalar{t: stringScalar, s: s} }
func Int(i int64) Scalar     { return Scalar{t: intScalar, i: i} }
func Float(f float64) Scalar { return Scalar{t: floatScalar, f: f} }
func Bool(b bool) Scalar     { return Scalar{t: boolScalar, b: b} }

func (s Scalar) String() string {
	switch s.t {
	case intScalar:
		return strconv.FormatInt(s.i, 10)
	case floatScalar:
		return strconv.FormatFloat(s.f, 'f', -1, 64)
	case boolScalar:
		return strconv.FormatBool(s.b)
	default:
		return s.s
	}
}

// Int returns the integer value, ok is false for non-integer scalars.
func (s Scalar) Int() (int64, bool) {
	return s.i, s.t == intScalar
}

// Bool returns the boolean value, ok is false for non-boolean scalars.
func (s Scalar) Bool() (bool, bool) {
	return s.b, s.t == boolScalar
}

// Raw returns the value as a plain Go value, for serialization.
func (s Scalar) Raw() any {
	switch s.t {
	case intScalar:
		return s.i
	case floatScalar:
		return s.f
	case boolScalar:
		return s.b
	default:
		return s.s
	}
}

// Shape of a Value.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeList
	ShapeNested
)

// Value is a scalar, a list of scalars or a list of lists of scalars.
// Values never share backing arrays with the slices they were built from.
type Value struct {
	shape  Shape
	scalar Scalar
	list   []Scalar
	nested [][]Scalar
}

func ScalarValue(s Scalar) Value {
	return Value{shape: ShapeScalar, scalar: s}
}

func ListValue(items ...Scalar) Value {
	return Value{shape: ShapeList, list: slices.Clone(items)}
}

func NestedValue(items ...[]Scalar) Value {
	nested := make([][]Scalar, len(items))
	for i, inner := range items {
		nested[i] = slices.Clone(inner)
	}
	return Value{shape: ShapeNested, nested: nested}
}

func (v Value) Shape() Shape { return v.shape }

func (v Value) Scalar() Scalar { return v.scalar }

func (v Value) List() []Scalar { return slices.Clone(v.list) }

func (v Value) Nested() [][]Scalar {
	return NestedValue(v.nested...).nested
}

func (v Value) Clone() Value {
	switch v.shape {
	case ShapeList:
		return ListValue(v.list...)
	case ShapeNested:
		return NestedValue(v.nested...)
	default:
		return v
	}
}

// Flatten returns all scalars contained in the value, in order.
func (v Value) Flatten() []Scalar {
	switch v.shape {
	case ShapeList:
		return slices.Clone(v.list)
	case ShapeNested:
		var all []Scalar
		for _, inner := range v.nested {
			all = append(all, inner...)
		}
		return all
	default:
		return []Scalar{v.scalar}
	}
}

func (v Value) Raw() any {
	switch v.shape {
	case ShapeList:
		raw := make([]any, len(v.list))
		for i, s := range v.list {
			raw[i] = s.Raw()
		}
		return raw
	case ShapeNested:
		raw := make([]any, len(v.nested))
		for i, inner := range v.nested {
			raw[i] = ListValue(inner...).Raw()
		}
		return raw
	default:
		return v.scalar.Raw()
	}
}

func (v Value) Equal(o Value) bool {
	if v.shape != o.shape {
		return false
	}
	switch v.shape {
	case ShapeList:
		return slices.Equal(v.list, o.list)
	case ShapeNested:
		return slices.EqualFunc(v.nested, o.nested, slices.Equal[[]Scalar])
	default:
		return v.scalar == o.scalar
	}
}

func (v Value) String() string {
	switch v.shape {
	case ShapeScalar:
		return v.scalar.String()
	default:
		b, _ := json.Marshal(v.Raw())
		return string(b)
	}
}
