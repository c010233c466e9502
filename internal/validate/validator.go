package validate

import (
	"errors"
	"strings"
)

// ErrMissingRequired indicates that a required field matched no token.
var ErrMissingRequired = errors.New("Missing required input")

// Func inspects a single token. It returns the parsed value and whether
// the token was recognized.
type Func func(token string) (any, bool)

// Validator matches and consumes tokens for one command field.
//
// The zero value is not usable; construct validators with New, Lit,
// LitStrict, Pred or Any, then refine them with the chainable modifiers:
//
//	validate.Lit("default").Required()
type Validator struct {
	match    Func
	plural   bool
	required bool
	invert   bool
	def      any
}

// New builds a validator from a matching function.
func New(match Func) Validator {
	return Validator{match: match}
}

// Lit matches any of the given literals, comparing case-insensitively.
// The matched token is returned as the value.
func Lit(literals ...string) Validator {
	return New(func(token string) (any, bool) {
		for _, l := range literals {
			if strings.EqualFold(token, l) {
				return token, true
			}
		}
		return nil, false
	})
}

// LitStrict matches literals exactly, case included.
func LitStrict(literals ...string) Validator {
	return New(func(token string) (any, bool) {
		for _, l := range literals {
			if token == l {
				return token, true
			}
		}
		return nil, false
	})
}

// Pred matches tokens for which fn returns true; the token itself is the
// value.
func Pred(fn func(string) bool) Validator {
	return New(func(token string) (any, bool) {
		if fn(token) {
			return token, true
		}
		return nil, false
	})
}

// Any matches every token.
func Any() Validator {
	return New(func(token string) (any, bool) {
		return token, true
	})
}

// Plural returns a copy that claims every matching token instead of just
// the first.
func (v Validator) Plural() Validator {
	v.plural = true
	return v
}

// Required returns a copy that fails the command when no token matches.
func (v Validator) Required() Validator {
	v.required = true
	return v
}

// Invert returns a copy with flipped match polarity. An inverted match
// yields the raw token as its value.
func (v Validator) Invert() Validator {
	v.invert = true
	return v
}

// Default returns a copy that yields val when no token matches.
func (v Validator) Default(val any) Validator {
	v.def = val
	return v
}

// Apply scans args in order and consumes the first matching token, or all
// matching tokens for a plural validator. When nothing matches it returns
// the default value, or ErrMissingRequired for a required validator. Args
// is only mutated on success, so a failed validator never consumes
// partial input.
//
// Plural validators return their values as []any.
func (v Validator) Apply(args *Args) (any, error) {
	values, indices := v.scan(args)
	if len(values) == 0 {
		if v.required {
			return nil, ErrMissingRequired
		}
		return v.def, nil
	}
	args.drop(indices)
	if v.plural {
		return values, nil
	}
	return values[0], nil
}

// Peek reports whether the validator would match at least one token,
// without consuming anything.
func (v Validator) Peek(args *Args) bool {
	values, _ := v.scan(args)
	return len(values) > 0
}

func (v Validator) scan(args *Args) ([]any, []int) {
	var values []any
	var indices []int
	for i, tok := range args.tokens {
		val, ok := v.match(tok)
		if v.invert {
			ok = !ok
			val = tok
		}
		if !ok {
			continue
		}
		values = append(values, val)
		indices = append(indices, i)
		if !v.plural {
			break
		}
	}
	return values, indices
}
