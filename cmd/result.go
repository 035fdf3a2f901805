package cmd

import (
	"fmt"
	"sort"
)

// Args maps each declared argument name to its decoded value. A successful
// parse always yields exactly one entry per argument of the schema.
type Args map[string]Value

func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Names returns the argument names in sorted order.
func (a Args) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of a.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for name, v := range a {
		out[name] = v.Clone()
	}
	return out
}

func (a Args) Value(name string) (Value, error) {
	v, ok := a[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return v, nil
}

func (a Args) String(name string) (string, error) {
	return get(a, name, Value.AsString)
}

func (a Args) Uint(name string) (uint64, error) {
	return get(a, name, Value.AsUint)
}

func (a Args) Int(name string) (int64, error) {
	return get(a, name, Value.AsInt)
}

func (a Args) Float(name string) (float64, error) {
	return get(a, name, Value.AsFloat)
}

func (a Args) Strings(name string) ([]string, error) {
	return get(a, name, Value.AsStrings)
}

func (a Args) Uints(name string) ([]uint64, error) {
	return get(a, name, Value.AsUints)
}

func (a Args) Ints(name string) ([]int64, error) {
	return get(a, name, Value.AsInts)
}

func (a Args) Floats(name string) ([]float64, error) {
	return get(a, name, Value.AsFloats)
}

func get[T any](a Args, name string, as func(Value) (T, error)) (T, error) {
	var zero T
	v, err := a.Value(name)
	if err != nil {
		return zero, err
	}
	out, err := as(v)
	if err != nil {
		return zero, fmt.Errorf("arg %s: %w", name, err)
	}
	return out, nil
}
