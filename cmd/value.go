package cmd

import (
	"strconv"
	"strings"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindUint
	KindInt
	KindFloat
	KindVector
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Value is an immutable decoded argument. Vector values hold elements of a
// single scalar kind.
type Value struct {
	kind  Kind
	str   string
	u     uint64
	i     int64
	f     float64
	elems []Value
}

func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

func UintValue(u uint64) Value {
	return Value{kind: KindUint, u: u}
}

func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// VectorValue builds a vector from copies of elems.
func VectorValue(elems ...Value) Value {
	v := Value{kind: KindVector, elems: make([]Value, len(elems))}
	for i, e := range elems {
		v.elems[i] = e.Clone()
	}
	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

// Len returns the element count of a vector and 1 for scalars.
func (v Value) Len() int {
	if v.kind == KindVector {
		return len(v.elems)
	}
	return 1
}

// Elements returns a copy of the vector elements, or nil for scalars.
func (v Value) Elements() []Value {
	if v.kind != KindVector {
		return nil
	}
	out := make([]Value, len(v.elems))
	for i, e := range v.elems {
		out[i] = e.Clone()
	}
	return out
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	if v.kind != KindVector {
		return v
	}
	out := v
	out.elems = make([]Value, len(v.elems))
	for i, e := range v.elems {
		out.elems[i] = e.Clone()
	}
	return out
}

// Equal reports deep equality. Floats compare by value, so NaN never equals.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindUint:
		return v.u == other.u
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindVector:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(other.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindVector:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return ""
	}
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &TypeError{Want: KindString, Got: v.kind}
	}
	return v.str, nil
}

func (v Value) AsUint() (uint64, error) {
	if v.kind != KindUint {
		return 0, &TypeError{Want: KindUint, Got: v.kind}
	}
	return v.u, nil
}

func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, &TypeError{Want: KindInt, Got: v.kind}
	}
	return v.i, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, &TypeError{Want: KindFloat, Got: v.kind}
	}
	return v.f, nil
}

func (v Value) AsStrings() ([]string, error) {
	return asVector(v, Value.AsString)
}

func (v Value) AsUints() ([]uint64, error) {
	return asVector(v, Value.AsUint)
}

func (v Value) AsInts() ([]int64, error) {
	return asVector(v, Value.AsInt)
}

func (v Value) AsFloats() ([]float64, error) {
	return asVector(v, Value.AsFloat)
}

// asVector decodes every element with get. The first failing element aborts
// the whole conversion.
func asVector[T any](v Value, get func(Value) (T, error)) ([]T, error) {
	if v.kind != KindVector {
		return nil, &TypeError{Want: KindVector, Got: v.kind}
	}
	out := make([]T, 0, len(v.elems))
	for i, e := range v.elems {
		item, err := get(e)
		if err != nil {
			if te, ok := err.(*TypeError); ok {
				te.Index = i
				te.Vector = true
			}
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
