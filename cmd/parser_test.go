package cmd_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mwantia/rediscmd/cmd"
)

func helloSchema(t *testing.T) *cmd.Schema {
	t.Helper()
	s, err := cmd.NewSchema("hello.foo",
		cmd.Required("input", cmd.TypeString),
		cmd.Optional("optional", cmd.TypeString, cmd.StringValue("baz")),
		cmd.Named("n", cmd.TypeUint, cmd.UintValue(1)),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return s
}

// abcSchema is required=[A], optional=[B], named={C}.
func abcSchema(t *testing.T, optionalOpts ...cmd.ArgOption) *cmd.Schema {
	t.Helper()
	s, err := cmd.NewSchema("cmd",
		cmd.Required("A", cmd.TypeString),
		cmd.Optional("B", cmd.TypeString, cmd.StringValue("b-default"), optionalOpts...),
		cmd.Named("C", cmd.TypeString, cmd.StringValue("c-default")),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return s
}

func tokens(line string) []string {
	return strings.Fields(line)
}

func mustParseError(t *testing.T, err error, kind error) *cmd.ParseError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	var pe *cmd.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *cmd.ParseError, got %T", err)
	}
	return pe
}

func TestParse_HelloFoo(t *testing.T) {
	s := helloSchema(t)

	tests := []struct {
		name  string
		input string
		want  cmd.Args
	}{
		{
			name:  "defaults",
			input: "hello.foo bar",
			want: cmd.Args{
				"input":    cmd.StringValue("bar"),
				"optional": cmd.StringValue("baz"),
				"n":        cmd.UintValue(1),
			},
		},
		{
			name:  "named only",
			input: "hello.foo bar n 2",
			want: cmd.Args{
				"input":    cmd.StringValue("bar"),
				"optional": cmd.StringValue("baz"),
				"n":        cmd.UintValue(2),
			},
		},
		{
			name:  "optional then named",
			input: "hello.foo bar qux N 3",
			want: cmd.Args{
				"input":    cmd.StringValue("bar"),
				"optional": cmd.StringValue("qux"),
				"n":        cmd.UintValue(3),
			},
		},
		{
			name:  "uppercase command name",
			input: "HELLO.FOO bar",
			want: cmd.Args{
				"input":    cmd.StringValue("bar"),
				"optional": cmd.StringValue("baz"),
				"n":        cmd.UintValue(1),
			},
		},
		{
			name:  "named token consumed as required value",
			input: "hello.foo n",
			want: cmd.Args{
				"input":    cmd.StringValue("n"),
				"optional": cmd.StringValue("baz"),
				"n":        cmd.UintValue(1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Parse(tokens(tt.input))
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	s := helloSchema(t)

	tests := []struct {
		name    string
		input   string
		kind    error
		message string
	}{
		{"empty", "", cmd.ErrWrongArity, "wrong number of arguments"},
		{"name mismatch", "hello n 2", cmd.ErrNameMismatch, "Expected hello.foo, got hello"},
		{"unexpected after optional", "hello.foo n 2 3", cmd.ErrUnexpectedArgument, "Unexpected arg 3"},
		{"unexpected after named", "hello.foo bar n 2 bad", cmd.ErrUnexpectedArgument, "Unexpected arg bad"},
		{"missing required", "hello.foo", cmd.ErrMissingRequired, "Missing required arg input"},
		{"named without value", "hello.foo bar n", cmd.ErrWrongArity, "wrong number of arguments for arg n"},
		{"invalid uint", "hello.foo bar n two", cmd.ErrInvalidNumber, "Invalid uint value 'two' for arg n"},
		{"negative uint", "hello.foo bar n -1", cmd.ErrInvalidNumber, "Invalid uint value '-1' for arg n"},
		{"repeated named", "hello.foo bar n 1 n 2", cmd.ErrUnexpectedArgument, "Unexpected arg n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Parse(tokens(tt.input))
			if got != nil {
				t.Fatalf("expected no result on error, got %v", got)
			}
			pe := mustParseError(t, err, tt.kind)
			if pe.Error() != tt.message {
				t.Errorf("message = %q, want %q", pe.Error(), tt.message)
			}
		})
	}
}

func TestParse_NameMismatchFields(t *testing.T) {
	s, err := cmd.NewSchema("hello.foo")
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	if _, err := s.Parse([]string{"HELLO.FOO"}); err != nil {
		t.Fatalf("case-insensitive name rejected: %v", err)
	}

	_, err = s.Parse([]string{"other"})
	pe := mustParseError(t, err, cmd.ErrNameMismatch)
	if pe.Expected != "hello.foo" || pe.Token != "other" {
		t.Fatalf("unexpected mismatch fields: %+v", pe)
	}
}

func TestParse_RequiredBeforeNamed(t *testing.T) {
	s := abcSchema(t)

	got, err := s.Parse(tokens("cmd v1 v2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := cmd.Args{
		"A": cmd.StringValue("v1"),
		"B": cmd.StringValue("v2"),
		"C": cmd.StringValue("c-default"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	// A name token in a required slot is a plain value.
	got, err = s.Parse(tokens("cmd C v2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want = cmd.Args{
		"A": cmd.StringValue("C"),
		"B": cmd.StringValue("v2"),
		"C": cmd.StringValue("c-default"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NamedModeLatch(t *testing.T) {
	s := abcSchema(t)

	_, err := s.Parse(tokens("cmd v1 C v2 v3"))
	pe := mustParseError(t, err, cmd.ErrUnexpectedArgument)
	if pe.Token != "v3" {
		t.Fatalf("token = %q, want v3", pe.Token)
	}

	got, err := s.Parse(tokens("cmd v1 c v2"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := cmd.Args{
		"A": cmd.StringValue("v1"),
		"B": cmd.StringValue("b-default"),
		"C": cmd.StringValue("v2"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	noDefault := abcSchema(t, cmd.WithoutDefault())
	_, err = noDefault.Parse(tokens("cmd v1 C v2"))
	pe = mustParseError(t, err, cmd.ErrMissingRequired)
	if pe.Arg != "B" {
		t.Fatalf("arg = %q, want B", pe.Arg)
	}
}

func TestParse_OptionalDeclarationOrder(t *testing.T) {
	s, err := cmd.NewSchema("cmd",
		cmd.Optional("first", cmd.TypeInt, cmd.IntValue(-1)),
		cmd.Optional("second", cmd.TypeFloat, cmd.FloatValue(0.5)),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	got, err := s.Parse(tokens("cmd 7"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := cmd.Args{
		"first":  cmd.IntValue(7),
		"second": cmd.FloatValue(0.5),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Parse(tokens("cmd 7 1.5 9"))
	mustParseError(t, err, cmd.ErrUnexpectedArgument)
}

func TestParse_NamedRequired(t *testing.T) {
	s, err := cmd.NewSchema("cmd",
		cmd.NamedRequired("key", cmd.TypeString),
		cmd.Named("ttl", cmd.TypeInt, cmd.IntValue(0)),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	got, err := s.Parse(tokens("cmd TTL -5 KEY k1"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := cmd.Args{
		"key": cmd.StringValue("k1"),
		"ttl": cmd.IntValue(-5),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Parse(tokens("cmd ttl 5"))
	pe := mustParseError(t, err, cmd.ErrMissingRequired)
	if pe.Arg != "key" {
		t.Fatalf("arg = %q, want key", pe.Arg)
	}
}

func TestParse_Vectors(t *testing.T) {
	s, err := cmd.NewSchema("geo",
		cmd.Required("point", cmd.TypeUint, cmd.WithArity(3)),
		cmd.Optional("tags", cmd.TypeString,
			cmd.VectorValue(cmd.StringValue("x"), cmd.StringValue("y")), cmd.WithArity(2)),
		cmd.Named("box", cmd.TypeFloat,
			cmd.VectorValue(cmd.FloatValue(0), cmd.FloatValue(0)), cmd.WithArity(2)),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	got, err := s.Parse(tokens("geo 1 2 3 a b box 1.5 -2e3"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := cmd.Args{
		"point": cmd.VectorValue(cmd.UintValue(1), cmd.UintValue(2), cmd.UintValue(3)),
		"tags":  cmd.VectorValue(cmd.StringValue("a"), cmd.StringValue("b")),
		"box":   cmd.VectorValue(cmd.FloatValue(1.5), cmd.FloatValue(-2000)),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	point, err := got.Uints("point")
	if err != nil {
		t.Fatalf("Uints: %v", err)
	}
	if diff := cmp.Diff([]uint64{1, 2, 3}, point); diff != "" {
		t.Fatalf("point mismatch (-want +got):\n%s", diff)
	}

	truncated := []string{
		"geo 1 2",
		"geo 1 2 3 a",
		"geo 1 2 3 box 1.5",
		"geo 1 2 3 box",
	}
	for _, input := range truncated {
		_, err := s.Parse(tokens(input))
		mustParseError(t, err, cmd.ErrWrongArity)
	}

	_, err = s.Parse(tokens("geo 1 x 3"))
	pe := mustParseError(t, err, cmd.ErrInvalidNumber)
	if pe.Token != "x" || pe.Arg != "point" || pe.Type != cmd.TypeUint {
		t.Fatalf("unexpected error fields: %+v", pe)
	}
}

func TestParse_VectorTruncationSingleArg(t *testing.T) {
	s, err := cmd.NewSchema("cmd", cmd.Required("V", cmd.TypeUint, cmd.WithArity(3)))
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	_, err = s.Parse(tokens("cmd 1 2"))
	pe := mustParseError(t, err, cmd.ErrWrongArity)
	if pe.Arg != "V" {
		t.Fatalf("arg = %q, want V", pe.Arg)
	}
}

func TestParse_UnknownTrailingToken(t *testing.T) {
	s, err := cmd.NewSchema("cmd",
		cmd.Required("a", cmd.TypeString),
		cmd.Optional("b", cmd.TypeString, cmd.StringValue("")),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	_, err = s.Parse(tokens("cmd 1 2 extra"))
	pe := mustParseError(t, err, cmd.ErrUnexpectedArgument)
	if pe.Token != "extra" {
		t.Fatalf("token = %q, want extra", pe.Token)
	}
}

func TestParse_Numbers(t *testing.T) {
	s, err := cmd.NewSchema("num",
		cmd.Named("u", cmd.TypeUint, cmd.UintValue(0)),
		cmd.Named("i", cmd.TypeInt, cmd.IntValue(0)),
		cmd.Named("f", cmd.TypeFloat, cmd.FloatValue(0)),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	valid := []struct {
		input string
		arg   string
		want  cmd.Value
	}{
		{"num u 18446744073709551615", "u", cmd.UintValue(18446744073709551615)},
		{"num i -9223372036854775808", "i", cmd.IntValue(-9223372036854775808)},
		{"num i +42", "i", cmd.IntValue(42)},
		{"num f 3.25", "f", cmd.FloatValue(3.25)},
		{"num f 1e-3", "f", cmd.FloatValue(0.001)},
		{"num f -7", "f", cmd.FloatValue(-7)},
	}
	for _, tt := range valid {
		got, err := s.Parse(tokens(tt.input))
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if !got[tt.arg].Equal(tt.want) {
			t.Errorf("Parse(%q)[%s] = %v, want %v", tt.input, tt.arg, got[tt.arg], tt.want)
		}
	}

	invalid := []string{
		"num u 18446744073709551616",
		"num u +1",
		"num u 1_000",
		"num u 0x10",
		"num u 1.0",
		"num i 9223372036854775808",
		"num i 12abc",
		"num i 1,000",
		"num f 0x1p-2",
		"num f NaN",
		"num f 1e400",
		"num f 1_0.5",
		"num f abc",
	}
	for _, input := range invalid {
		_, err := s.Parse(tokens(input))
		if !errors.Is(err, cmd.ErrInvalidNumber) {
			t.Errorf("Parse(%q) = %v, want ErrInvalidNumber", input, err)
		}
	}

	// Empty tokens can arrive from a protocol client.
	_, err = s.Parse([]string{"num", "u", ""})
	if !errors.Is(err, cmd.ErrInvalidNumber) {
		t.Errorf("empty token: got %v, want ErrInvalidNumber", err)
	}
}

func TestParse_ResultIsComplete(t *testing.T) {
	s := helloSchema(t)
	inputs := []string{"hello.foo a", "hello.foo a b", "hello.foo a n 4", "hello.foo a b n 4"}

	for _, input := range inputs {
		got, err := s.Parse(tokens(input))
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if len(got) != len(s.Args()) {
			t.Fatalf("Parse(%q) returned %d entries, want %d", input, len(got), len(s.Args()))
		}
		for _, arg := range s.Args() {
			if !got.Has(arg.Name) {
				t.Fatalf("Parse(%q) missing %s", input, arg.Name)
			}
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	s := helloSchema(t)
	input := tokens("hello.foo bar qux n 9")

	first, err := s.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := s.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated parse differs (-first +second):\n%s", diff)
	}
}

func TestParse_DefaultsAreIndependent(t *testing.T) {
	def := cmd.VectorValue(cmd.IntValue(1), cmd.IntValue(2))
	s, err := cmd.NewSchema("cmd", cmd.Named("pair", cmd.TypeInt, def, cmd.WithArity(2)))
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	first, err := s.Parse(tokens("cmd"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	elems := first["pair"].Elements()
	elems[0] = cmd.IntValue(100)
	first["pair"] = cmd.VectorValue(elems...)

	second, err := s.Parse(tokens("cmd"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !second["pair"].Equal(def) {
		t.Fatalf("default changed to %v", second["pair"])
	}

	arg, ok := s.Lookup("pair")
	if !ok || !arg.Default.Equal(def) {
		t.Fatalf("schema default changed: %+v", arg)
	}
}

func TestParse_Concurrent(t *testing.T) {
	s := helloSchema(t)
	want := cmd.Args{
		"input":    cmd.StringValue("bar"),
		"optional": cmd.StringValue("baz"),
		"n":        cmd.UintValue(2),
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Parse(tokens("hello.foo bar n 2"))
			if err != nil {
				errs <- err
				return
			}
			if !cmp.Equal(want, got) {
				errs <- errors.New(cmp.Diff(want, got))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestParser_Reuse(t *testing.T) {
	p := cmd.NewParser(helloSchema(t))

	if _, err := p.Parse(tokens("hello.foo a b n 2")); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := p.Parse(tokens("hello.foo c"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, _ := got.String("optional"); v != "baz" {
		t.Fatalf("optional = %q, state leaked between parses", v)
	}
}
