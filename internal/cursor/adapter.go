package cursor

// tokenAdapter adapts a Cursor's directional token movement into the
// narrower advance/peek shape package walker consumes (spec §6's "Token
// interface"). It satisfies walker.TokenCursor structurally; this package
// does not import walker to avoid a needless dependency for what is just
// two matching method signatures.
type tokenAdapter struct {
	c        Cursor
	backward bool
}

// ForwardTokenCursor returns a walker-facing cursor that walks c forward.
func ForwardTokenCursor(c Cursor) interface {
	Advance() bool
	ReadToken() (string, bool)
} {
	return &tokenAdapter{c: c, backward: false}
}

// BackwardTokenCursor returns a walker-facing cursor that walks c backward.
func BackwardTokenCursor(c Cursor) interface {
	Advance() bool
	ReadToken() (string, bool)
} {
	return &tokenAdapter{c: c, backward: true}
}

func (a *tokenAdapter) Advance() bool {
	if a.backward {
		_, ok := a.c.BackwardToken()
		return ok
	}
	_, ok := a.c.ForwardToken()
	return ok
}

// ReadToken peeks the next token in the adapter's direction without
// consuming it, via a scoped save/restore around the same move Advance
// would make - the Cursor interface has no native peek.
func (a *tokenAdapter) ReadToken() (string, bool) {
	a.c.PushContext()
	defer a.c.PopContext()
	if a.backward {
		return a.c.BackwardToken()
	}
	return a.c.ForwardToken()
}
