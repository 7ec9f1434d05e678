// Package level implements the final Grammar (spec §3, §4.4): two integer
// precedence levels per terminal (left, right) plus its bracket class,
// derived from a PREC2 grammar by the PREC2->Grammar compiler. It is the
// read model consumed by package walker (the sexp walker) and package indent
// (the indenter).
package level

import (
	"fmt"

	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/symbol"
	"github.com/google/uuid"
)

// Level is the compiled precedence data for a single terminal.
type Level struct {
	LeftPrec  int
	RightPrec int
	Class     prec2.Class
}

// IsOpener returns whether this terminal opens a bracket-like construct.
func (l Level) IsOpener() bool { return l.Class == prec2.Opener }

// IsCloser returns whether this terminal closes a bracket-like construct.
func (l Level) IsCloser() bool { return l.Class == prec2.Closer }

func (l Level) String() string {
	return fmt.Sprintf("{L=%d R=%d %s}", l.LeftPrec, l.RightPrec, l.Class)
}

// Grammar is the final, compiled grammar: a level table keyed by terminal,
// plus the pair set and closer-ends carried verbatim from the PREC2 grammar
// that produced it.
//
// BuildID tags every successfully compiled Grammar with a fresh UUID, for
// correlating a particular compilation with cache entries and error/log
// output across the gcache boundary (spec_full.md §2/§4).
type Grammar struct {
	pool *symbol.Pool

	levels     map[symbol.Symbol]Level
	pairs      map[symbol.Symbol]symbol.Symbol // opener -> closer
	closerEnds map[symbol.Symbol]struct{}

	BuildID uuid.UUID
}

func newGrammar(pool *symbol.Pool) *Grammar {
	pool.Retain()
	return &Grammar{
		pool:       pool,
		levels:     make(map[symbol.Symbol]Level),
		pairs:      make(map[symbol.Symbol]symbol.Symbol),
		closerEnds: make(map[symbol.Symbol]struct{}),
		BuildID:    uuid.New(),
	}
}

// Close releases this Grammar's hold on its Pool.
func (g *Grammar) Close() { g.pool.Release() }

// Pool returns the Symbol Pool backing this grammar.
func (g *Grammar) Pool() *symbol.Pool { return g.pool }

// Level returns the compiled Level for sym and whether it is in the grammar
// at all. A terminal absent from the grammar (e.g. one the cursor read that
// this grammar never declared) reports ok=false; callers such as the sexp
// walker treat that as "not a grammar token" and simply advance past it.
func (g *Grammar) Level(sym symbol.Symbol) (Level, bool) {
	lvl, ok := g.levels[sym]
	return lvl, ok
}

// IsPair returns whether closer is the recorded match for opener.
func (g *Grammar) IsPair(opener, closer symbol.Symbol) bool {
	c, ok := g.pairs[opener]
	return ok && c == closer
}

// CloserFor returns the closer paired with opener, if any.
func (g *Grammar) CloserFor(opener symbol.Symbol) (symbol.Symbol, bool) {
	c, ok := g.pairs[opener]
	return c, ok
}

// IsCloserEnd returns whether sym was recorded as appearing at the end of
// some multi-terminal rule (spec §4.6 rule 3 consults this directly,
// independent of whether sym is also classed as a bracket Closer).
func (g *Grammar) IsCloserEnd(sym symbol.Symbol) bool {
	_, ok := g.closerEnds[sym]
	return ok
}

// Terminals returns every terminal with a published Level, in no particular
// guaranteed order (callers needing determinism should sort by name).
func (g *Grammar) Terminals() []symbol.Symbol {
	out := make([]symbol.Symbol, 0, len(g.levels))
	for s := range g.levels {
		out = append(out, s)
	}
	return out
}

// Pairs returns every (opener, closer) pair in the grammar.
func (g *Grammar) Pairs() [][2]symbol.Symbol {
	out := make([][2]symbol.Symbol, 0, len(g.pairs))
	for o, c := range g.pairs {
		out = append(out, [2]symbol.Symbol{o, c})
	}
	return out
}
