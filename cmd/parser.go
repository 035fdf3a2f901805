package cmd

import (
	"math"
	"strconv"
	"strings"
)

// Parser decodes raw command tokens against a Schema. A Parser holds no
// per-call state and can be used from many goroutines at once.
type Parser struct {
	schema *Schema
}

func NewParser(schema *Schema) *Parser {
	return &Parser{
		schema: schema,
	}
}

// Parse decodes tokens, including the command name at index 0, against schema.
func Parse(schema *Schema, tokens []string) (Args, error) {
	return NewParser(schema).Parse(tokens)
}

// Parse is shorthand for Parse(s, tokens).
func (s *Schema) Parse(tokens []string) (Args, error) {
	return Parse(s, tokens)
}

// Parse returns one value per declared argument or the first error found.
//
// Required positionals always take the leading tokens. After that a token
// naming a named argument switches to named mode for the rest of the call;
// until then, leftover tokens fill optional positionals in declaration order.
func (p *Parser) Parse(raw []string) (Args, error) {
	s := p.schema
	s.seal()

	if len(raw) == 0 {
		return nil, &ParseError{Kind: ErrWrongArity, Command: s.name}
	}
	if !strings.EqualFold(raw[0], s.name) {
		return nil, &ParseError{Kind: ErrNameMismatch, Command: s.name, Expected: s.name, Token: raw[0]}
	}

	args := make(Args, len(s.required)+len(s.optional)+len(s.named))
	stream := &tokenStream{tokens: raw[1:]}

	requiredPos := 0
	optionalPos := 0
	acceptingOptionals := true

	for stream.more() {
		token := stream.next()

		if requiredPos < len(s.required) {
			arg := s.required[requiredPos]
			v, err := p.decodeArg(arg, token, stream)
			if err != nil {
				return nil, err
			}
			args[arg.Name] = v
			requiredPos++
			continue
		}

		if arg, ok := s.namedArg(token); ok {
			acceptingOptionals = false
			if _, seen := args[arg.Name]; seen {
				return nil, &ParseError{Kind: ErrUnexpectedArgument, Command: s.name, Token: token, Arg: arg.Name}
			}
			if !stream.more() {
				return nil, &ParseError{Kind: ErrWrongArity, Command: s.name, Arg: arg.Name}
			}
			v, err := p.decodeArg(arg, stream.next(), stream)
			if err != nil {
				return nil, err
			}
			args[arg.Name] = v
			continue
		}

		if acceptingOptionals && optionalPos < len(s.optional) {
			arg := s.optional[optionalPos]
			v, err := p.decodeArg(arg, token, stream)
			if err != nil {
				return nil, err
			}
			args[arg.Name] = v
			optionalPos++
			continue
		}

		return nil, &ParseError{Kind: ErrUnexpectedArgument, Command: s.name, Token: token}
	}

	for _, arg := range s.required {
		if _, ok := args[arg.Name]; !ok {
			return nil, &ParseError{Kind: ErrMissingRequired, Command: s.name, Arg: arg.Name}
		}
	}
	for _, group := range [][]Arg{s.optional, s.named} {
		for _, arg := range group {
			if _, ok := args[arg.Name]; ok {
				continue
			}
			if arg.Default == nil {
				return nil, &ParseError{Kind: ErrMissingRequired, Command: s.name, Arg: arg.Name}
			}
			args[arg.Name] = arg.Default.Clone()
		}
	}

	return args, nil
}

// decodeArg decodes first plus arity-1 further tokens pulled from stream.
func (p *Parser) decodeArg(arg Arg, first string, stream *tokenStream) (Value, error) {
	v, err := p.decodeToken(arg, first)
	if err != nil {
		return Value{}, err
	}

	n := arg.arity()
	if n == 1 {
		return v, nil
	}

	elems := make([]Value, 1, n)
	elems[0] = v
	for len(elems) < n {
		if !stream.more() {
			return Value{}, &ParseError{Kind: ErrWrongArity, Command: p.schema.name, Arg: arg.Name}
		}
		e, err := p.decodeToken(arg, stream.next())
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, e)
	}
	return Value{kind: KindVector, elems: elems}, nil
}

func (p *Parser) decodeToken(arg Arg, token string) (Value, error) {
	switch arg.Type {
	case TypeUint:
		u, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return Value{}, p.invalidNumber(arg, token)
		}
		return UintValue(u), nil
	case TypeInt:
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, p.invalidNumber(arg, token)
		}
		return IntValue(i), nil
	case TypeFloat:
		f, ok := parseFloat(token)
		if !ok {
			return Value{}, p.invalidNumber(arg, token)
		}
		return FloatValue(f), nil
	default:
		return StringValue(token), nil
	}
}

func (p *Parser) invalidNumber(arg Arg, token string) error {
	return &ParseError{Kind: ErrInvalidNumber, Command: p.schema.name, Token: token, Arg: arg.Name, Type: arg.Type}
}

// parseFloat accepts decimal notation and infinities only. Hex mantissas,
// digit separators, NaN and out-of-range magnitudes are rejected.
func parseFloat(token string) (float64, bool) {
	if strings.ContainsAny(token, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

type tokenStream struct {
	tokens []string
	pos    int
}

func (ts *tokenStream) more() bool {
	return ts.pos < len(ts.tokens)
}

func (ts *tokenStream) next() string {
	t := ts.tokens[ts.pos]
	ts.pos++
	return t
}
