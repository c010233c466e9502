// Package validate provides token validation for interactive commands.
//
// A command declares one validator per field. Validators scan the shared
// token list in declaration order, claim the tokens they recognize, and
// leave the rest for the validators that follow. Tokens left over after
// every validator has run are reported back to the user as invalid input.
package validate

// Args holds the tokens a command line was split into. Validators consume
// matching tokens from it; a token can only be claimed once.
type Args struct {
	tokens []string
}

// NewArgs wraps a token list.
func NewArgs(tokens []string) *Args {
	return &Args{tokens: tokens}
}

// Tokens returns a copy of the remaining unconsumed tokens.
func (a *Args) Tokens() []string {
	out := make([]string, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// Len returns the number of remaining tokens.
func (a *Args) Len() int { return len(a.tokens) }

// Empty reports whether all tokens have been consumed.
func (a *Args) Empty() bool { return len(a.tokens) == 0 }

// PopFront removes and returns the first remaining token.
func (a *Args) PopFront() (string, bool) {
	if len(a.tokens) == 0 {
		return "", false
	}
	tok := a.tokens[0]
	a.tokens = a.tokens[1:]
	return tok, true
}

// Peek returns the first remaining token without consuming it.
func (a *Args) Peek() (string, bool) {
	if len(a.tokens) == 0 {
		return "", false
	}
	return a.tokens[0], true
}

// drop removes the tokens at the given indices, preserving order.
func (a *Args) drop(indices []int) {
	if len(indices) == 0 {
		return
	}
	claimed := make(map[int]bool, len(indices))
	for _, i := range indices {
		claimed[i] = true
	}
	kept := a.tokens[:0]
	for i, tok := range a.tokens {
		if !claimed[i] {
			kept = append(kept, tok)
		}
	}
	a.tokens = kept
}
