package cmd

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Schema declares the name and arguments of one command. A Schema is built
// once and then shared read-only between any number of concurrent parses.
type Schema struct {
	name string

	required []Arg
	optional []Arg
	named    []Arg

	// Lower-cased name of every argument; named arguments map to their index
	// in named, positional ones to -1.
	names map[string]int

	sealed atomic.Bool
}

// NewSchema creates a schema for the command name and adds args in order.
func NewSchema(name string, args ...Arg) (*Schema, error) {
	if strings.TrimSpace(name) == "" {
		return nil, schemaError("command name cannot be empty")
	}

	s := &Schema{
		name:  name,
		names: make(map[string]int),
	}
	for _, arg := range args {
		if err := s.AddArg(arg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid declaration.
// Intended for package-level schema variables.
func MustSchema(name string, args ...Arg) *Schema {
	s, err := NewSchema(name, args...)
	if err != nil {
		panic(fmt.Sprintf("rediscmd: %v", err))
	}
	return s
}

// AddArg files arg under its category, keeping declaration order for
// positional arguments. It fails once the schema has been used for parsing.
func (s *Schema) AddArg(arg Arg) error {
	if s.sealed.Load() {
		return fmt.Errorf("%w: cannot add arg '%s' to '%s'", ErrSchemaSealed, arg.Name, s.name)
	}
	if s.names == nil {
		s.names = make(map[string]int)
	}
	if err := s.validateArg(arg); err != nil {
		return err
	}

	arg = arg.clone()
	if arg.Arity == 0 {
		arg.Arity = 1
	}

	key := strings.ToLower(arg.Name)
	switch arg.Category {
	case CategoryRequired:
		s.required = append(s.required, arg)
		s.names[key] = -1
	case CategoryOptional:
		s.optional = append(s.optional, arg)
		s.names[key] = -1
	case CategoryNamed:
		s.named = append(s.named, arg)
		s.names[key] = len(s.named) - 1
	}
	return nil
}

func (s *Schema) validateArg(arg Arg) error {
	if strings.TrimSpace(arg.Name) == "" {
		return schemaError("'%s': argument name cannot be empty", s.name)
	}
	if _, exists := s.names[strings.ToLower(arg.Name)]; exists {
		return schemaError("'%s': duplicate argument name '%s'", s.name, arg.Name)
	}
	if arg.Arity < 0 {
		return schemaError("'%s': arg '%s' has negative arity %d", s.name, arg.Name, arg.Arity)
	}
	if arg.Type > TypeFloat {
		return schemaError("'%s': arg '%s' has unknown type %d", s.name, arg.Name, arg.Type)
	}

	switch arg.Category {
	case CategoryRequired:
		if arg.Default != nil {
			return schemaError("'%s': required arg '%s' cannot have a default", s.name, arg.Name)
		}
	case CategoryOptional, CategoryNamed:
	default:
		return schemaError("'%s': arg '%s' has unknown category %d", s.name, arg.Name, arg.Category)
	}

	if arg.Default != nil {
		if err := checkDefault(arg); err != nil {
			return schemaError("'%s': arg '%s': %v", s.name, arg.Name, err)
		}
	}
	return nil
}

// checkDefault verifies the default has the variant and length a parse of
// this argument would produce.
func checkDefault(arg Arg) error {
	def := *arg.Default
	want := arg.Type.kind()
	if !arg.IsVector() {
		if def.Kind() != want {
			return fmt.Errorf("default is %s, want %s", def.Kind(), want)
		}
		return nil
	}

	if def.Kind() != KindVector {
		return fmt.Errorf("default is %s, want vector of %d %s", def.Kind(), arg.arity(), want)
	}
	if def.Len() != arg.arity() {
		return fmt.Errorf("default has %d elements, want %d", def.Len(), arg.arity())
	}
	for i, e := range def.elems {
		if e.Kind() != want {
			return fmt.Errorf("default element %d is %s, want %s", i, e.Kind(), want)
		}
	}
	return nil
}

func (s *Schema) Name() string {
	return s.name
}

// Args returns copies of all declared arguments: required positionals first,
// then optional positionals, then named arguments, each in declaration order.
func (s *Schema) Args() []Arg {
	out := make([]Arg, 0, len(s.required)+len(s.optional)+len(s.named))
	for _, group := range [][]Arg{s.required, s.optional, s.named} {
		for _, arg := range group {
			out = append(out, arg.clone())
		}
	}
	return out
}

// Lookup returns the declaration of the argument called name, ignoring case.
func (s *Schema) Lookup(name string) (Arg, bool) {
	key := strings.ToLower(name)
	if _, ok := s.names[key]; !ok {
		return Arg{}, false
	}
	for _, arg := range s.Args() {
		if strings.ToLower(arg.Name) == key {
			return arg, true
		}
	}
	return Arg{}, false
}

// Sealed reports whether the schema has been used and no longer accepts args.
func (s *Schema) Sealed() bool {
	return s.sealed.Load()
}

// namedArg resolves a token to a named argument, ignoring case.
func (s *Schema) namedArg(token string) (Arg, bool) {
	idx, ok := s.names[strings.ToLower(token)]
	if !ok || idx < 0 {
		return Arg{}, false
	}
	return s.named[idx], true
}

func (s *Schema) seal() {
	if !s.sealed.Load() {
		s.sealed.Store(true)
	}
}
