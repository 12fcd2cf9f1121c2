package memo

import "sort"

// Signature identifies one producer invocation: the producer's logical name plus
// the positional and keyword arguments it was called with.
type Signature struct {
	Function string
	Args     []any
	Kwargs   map[string]any
}

// Kwarg is a single keyword argument in canonical (name-sorted) position.
type Kwarg struct {
	Name  string `json:"name" msgpack:"name"`
	Value any    `json:"value" msgpack:"value"`
}

// Record is the canonical encoding input for a Signature. Keyword arguments are
// flattened into a name-sorted list so that serializers which do not sort map keys
// still produce identical bytes for permuted kwargs.
type Record struct {
	Function string  `json:"func" msgpack:"func"`
	Args     []any   `json:"args" msgpack:"args"`
	Kwargs   []Kwarg `json:"kwargs" msgpack:"kwargs"`
}

// Canonical returns the normalized record for s.
func (s Signature) Canonical() Record {
	args := s.Args
	if args == nil {
		args = []any{}
	}
	names := make([]string, 0, len(s.Kwargs))
	for name := range s.Kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	kwargs := make([]Kwarg, 0, len(names))
	for _, name := range names {
		kwargs = append(kwargs, Kwarg{Name: name, Value: s.Kwargs[name]})
	}
	return Record{Function: s.Function, Args: args, Kwargs: kwargs}
}

// Arguments is implemented by producer parameter types so the memoizer can see
// their call shape.
type Arguments interface {
	Positional() []any
	Keyword() map[string]any
}

// Call is an ad-hoc Arguments value.
type Call struct {
	Args   []any
	Kwargs map[string]any
}

func (c Call) Positional() []any       { return c.Args }
func (c Call) Keyword() map[string]any { return c.Kwargs }

// SignatureOf builds the Signature of calling function with args.
func SignatureOf(function string, args Arguments) Signature {
	if args == nil {
		return Signature{Function: function}
	}
	return Signature{Function: function, Args: args.Positional(), Kwargs: args.Keyword()}
}

// Key is a derived cache key of the form "<function>:<hex digest>".
type Key string

func (k Key) String() string { return string(k) }
