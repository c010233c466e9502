package command

import "tally/internal/validate"

// ForkMode selects how a fork picks the definition to route to.
type ForkMode int

const (
	// ForkByToken matches the next argument token against route tokens,
	// case sensitively, and consumes it on a match.
	ForkByToken ForkMode = iota
	// ForkByScreen matches the active screen's name. No token is
	// consumed.
	ForkByScreen
	// ForkByProbe runs each route's probe validator against the
	// arguments without consuming anything and takes the first hit.
	ForkByProbe
)

// Route is one arm of a fork. Token discriminates ForkByToken and
// ForkByScreen routes; Probe discriminates ForkByProbe routes.
type Route struct {
	Token string
	Probe validate.Validator
	Def   *Definition
}

// Fork routes an invocation to one of several definitions. When no route
// matches, Default is taken; with no default the command is not found.
type Fork struct {
	Mode    ForkMode
	Routes  []Route
	Default *Definition
}

func (f *Fork) resolve(rt *Runtime, args *validate.Args) (*Definition, error) {
	switch f.Mode {
	case ForkByToken:
		if tok, ok := args.Peek(); ok {
			for _, r := range f.Routes {
				if r.Token == tok {
					args.PopFront()
					return r.Def, nil
				}
			}
		}
	case ForkByScreen:
		name := rt.Screens.ActiveName()
		for _, r := range f.Routes {
			if r.Token == name {
				return r.Def, nil
			}
		}
	case ForkByProbe:
		for _, r := range f.Routes {
			if r.Probe.Peek(args) {
				return r.Def, nil
			}
		}
	}
	if f.Default != nil {
		return f.Default, nil
	}
	return nil, ErrNotFound
}
