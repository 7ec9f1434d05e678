// Package prec2 implements the PREC2 grammar (spec §3): a flat binary
// relation over terminal pairs, plus the open/close pair set, the set of
// closer-ends, and the per-terminal symbol class used by the PREC2->Grammar
// compiler in package level.
package prec2

import (
	"fmt"

	"github.com/dekarrin/smie/internal/smerr"
	"github.com/dekarrin/smie/internal/symbol"
)

// Relation is the PREC2 relation between a pair of terminals.
type Relation int

const (
	// EQ means "same precedence" - the two terminals are adjacent in some
	// production with nothing of higher binding power between them.
	EQ Relation = iota
	// LT means "the right operand binds tighter".
	LT
	// GT means "the left operand binds tighter".
	GT
)

func (r Relation) String() string {
	switch r {
	case EQ:
		return "="
	case LT:
		return "<"
	case GT:
		return ">"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Class is the bracket-like role a terminal plays, if any.
type Class int

const (
	Neither Class = iota
	Opener
	Closer
)

func (c Class) String() string {
	switch c {
	case Opener:
		return "OPENER"
	case Closer:
		return "CLOSER"
	default:
		return "NEITHER"
	}
}

type pairKey struct {
	left, right symbol.Symbol
}

// Grammar is the PREC2 grammar: a relation table keyed by (left, right)
// terminal pairs, a pair set of (opener, closer) terminals, a set of
// closer-ends, and a class map.
type Grammar struct {
	pool *symbol.Pool

	relations map[pairKey]Relation
	classes   map[symbol.Symbol]Class
	pairs     map[pairKey]struct{}
	closerEnd map[symbol.Symbol]struct{}

	// order preserves insertion order of pairKeys for deterministic dumps.
	order []pairKey
}

// New returns an empty PREC2 grammar backed by the given Pool, retaining a
// reference to it.
func New(pool *symbol.Pool) *Grammar {
	pool.Retain()
	return &Grammar{
		pool:      pool,
		relations: make(map[pairKey]Relation),
		classes:   make(map[symbol.Symbol]Class),
		pairs:     make(map[pairKey]struct{}),
		closerEnd: make(map[symbol.Symbol]struct{}),
	}
}

// Close releases this Grammar's hold on its Pool.
func (g *Grammar) Close() { g.pool.Release() }

// Pool returns the Symbol Pool backing this grammar.
func (g *Grammar) Pool() *symbol.Pool { return g.pool }

// Relation returns the stored relation between left and right and whether
// one has been recorded.
func (g *Grammar) Relation(left, right symbol.Symbol) (Relation, bool) {
	rel, ok := g.relations[pairKey{left, right}]
	return rel, ok
}

// Set records relation between left and right, overwriting any existing
// value unconditionally. Used by override/resolver application, which by
// definition supersedes whatever the plain BNF compilation produced.
func (g *Grammar) Set(left, right symbol.Symbol, rel Relation) {
	k := pairKey{left, right}
	if _, existed := g.relations[k]; !existed {
		g.order = append(g.order, k)
	}
	g.relations[k] = rel
}

// Add records relation between left and right. If a different relation is
// already recorded for this pair, Add reports the conflict via ok=false
// instead of overwriting; the caller (package precs) is responsible for
// consulting an override grammar and either overwriting via Set or raising a
// GrammarError.
func (g *Grammar) Add(left, right symbol.Symbol, rel Relation) (ok bool) {
	k := pairKey{left, right}
	if existing, had := g.relations[k]; had {
		return existing == rel
	}
	g.order = append(g.order, k)
	g.relations[k] = rel
	return true
}

// Pairs returns every recorded (opener, closer) pair.
func (g *Grammar) Pairs() [][2]symbol.Symbol {
	out := make([][2]symbol.Symbol, 0, len(g.pairs))
	for k := range g.pairs {
		out = append(out, [2]symbol.Symbol{k.left, k.right})
	}
	return out
}

// AddPair records that (opener, closer) is a bracket-like pair, per spec
// §4.3 step 3, and marks opener's class as Opener.
func (g *Grammar) AddPair(opener, closer symbol.Symbol) {
	g.pairs[pairKey{opener, closer}] = struct{}{}
	g.SetClass(opener, Opener)
}

// IsPair returns whether (opener, closer) was recorded via AddPair.
func (g *Grammar) IsPair(opener, closer symbol.Symbol) bool {
	_, ok := g.pairs[pairKey{opener, closer}]
	return ok
}

// MarkCloserEnd records that closer appears as the last token of some
// multi-terminal rule, independent of whether it is also a Closer-class
// bracket terminal (spec §4.6 rule 3 consults this set directly).
func (g *Grammar) MarkCloserEnd(closer symbol.Symbol) {
	g.closerEnd[closer] = struct{}{}
}

// IsCloserEnd returns whether closer was recorded via MarkCloserEnd.
func (g *Grammar) IsCloserEnd(closer symbol.Symbol) bool {
	_, ok := g.closerEnd[closer]
	return ok
}

// Class returns the recorded class for sym, defaulting to Neither.
func (g *Grammar) Class(sym symbol.Symbol) Class {
	return g.classes[sym]
}

// SetClass records cls for sym. A terminal may only ever be set to one of
// Opener or Closer in addition to Neither; setting conflicting classes is a
// programming error caught by smerr.Assert, since the BNF->PREC2 compiler
// derives classes deterministically from rule shape and should never
// disagree with itself.
func (g *Grammar) SetClass(sym symbol.Symbol, cls Class) {
	if existing, ok := g.classes[sym]; ok && existing != Neither && existing != cls {
		smerr.Assert(false, "prec2: conflicting class for %q: had %s, setting %s", sym.Name(), existing, cls)
	}
	g.classes[sym] = cls
}

// Relations returns every recorded (left, right, relation) triple in
// insertion order, for pretty-printing and tests.
func (g *Grammar) Relations() []Triple {
	out := make([]Triple, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, Triple{Left: k.left, Right: k.right, Rel: g.relations[k]})
	}
	return out
}

// Triple is a single PREC2 relation entry.
type Triple struct {
	Left, Right symbol.Symbol
	Rel         Relation
}
