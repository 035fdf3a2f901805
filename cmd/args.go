package cmd

// Type is the primitive type an argument decodes its tokens into.
type Type uint8

const (
	TypeString Type = iota
	TypeUint
	TypeInt
	TypeFloat
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeUint:
		return "uint"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// kind returns the value variant a single token of this type decodes into.
func (t Type) kind() Kind {
	switch t {
	case TypeUint:
		return KindUint
	case TypeInt:
		return KindInt
	case TypeFloat:
		return KindFloat
	default:
		return KindString
	}
}

// Category decides how an argument is matched against the token list.
type Category uint8

const (
	// CategoryRequired arguments are matched by position before anything else.
	CategoryRequired Category = iota
	// CategoryOptional arguments are matched by position after all required
	// arguments, in declaration order, until the first named argument appears.
	CategoryOptional
	// CategoryNamed arguments are introduced by their own name as a token.
	CategoryNamed
)

func (c Category) String() string {
	switch c {
	case CategoryRequired:
		return "required"
	case CategoryOptional:
		return "optional"
	case CategoryNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Arg declares a single command argument
type Arg struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        Type     `json:"type"`
	Arity       int      `json:"arity"` // Tokens per occurrence; 0 is read as 1
	Category    Category `json:"category"`
	Default     *Value   `json:"-"`
}

// ArgOption adjusts an Arg built by one of the constructors below.
type ArgOption func(*Arg)

// WithArity turns the argument into a fixed-length vector of n elements.
func WithArity(n int) ArgOption {
	return func(a *Arg) {
		a.Arity = n
	}
}

func WithDescription(text string) ArgOption {
	return func(a *Arg) {
		a.Description = text
	}
}

// WithoutDefault drops the default, making an optional or named argument
// mandatory once the token list is exhausted.
func WithoutDefault() ArgOption {
	return func(a *Arg) {
		a.Default = nil
	}
}

// Required declares a required positional argument.
func Required(name string, typ Type, opts ...ArgOption) Arg {
	return newArg(name, typ, CategoryRequired, nil, opts)
}

// Optional declares an optional positional argument falling back to def.
func Optional(name string, typ Type, def Value, opts ...ArgOption) Arg {
	return newArg(name, typ, CategoryOptional, &def, opts)
}

// Named declares a keyword argument falling back to def.
func Named(name string, typ Type, def Value, opts ...ArgOption) Arg {
	return newArg(name, typ, CategoryNamed, &def, opts)
}

// NamedRequired declares a keyword argument that has to be supplied.
func NamedRequired(name string, typ Type, opts ...ArgOption) Arg {
	return newArg(name, typ, CategoryNamed, nil, opts)
}

func newArg(name string, typ Type, category Category, def *Value, opts []ArgOption) Arg {
	a := Arg{
		Name:     name,
		Type:     typ,
		Arity:    1,
		Category: category,
	}
	if def != nil {
		v := def.Clone()
		a.Default = &v
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a Arg) arity() int {
	if a.Arity == 0 {
		return 1
	}
	return a.Arity
}

// IsVector reports whether one occurrence consumes more than one token.
func (a Arg) IsVector() bool {
	return a.arity() > 1
}

// HasDefault reports whether a default value was declared.
func (a Arg) HasDefault() bool {
	return a.Default != nil
}

// clone returns a copy that shares no memory with a.
func (a Arg) clone() Arg {
	if a.Default != nil {
		v := a.Default.Clone()
		a.Default = &v
	}
	return a
}
