// Package bnf implements the BNF grammar (spec §3, §4.2): a mapping from
// nonterminal to its alternatives, plus the FIRST/LAST operator-set
// computation consumed by the BNF->PREC2 compiler in package precs.
package bnf

import (
	"fmt"
	"strings"

	"github.com/dekarrin/smie/internal/symbol"
)

// Rule is an ordered, nonempty sequence of Symbols whose head is a
// nonterminal (the LHS) and whose tail is the RHS.
type Rule struct {
	Symbols []symbol.Symbol
}

// LHS returns the rule's nonterminal head.
func (r Rule) LHS() symbol.Symbol { return r.Symbols[0] }

// RHS returns the rule's production body (may be empty for a bare
// single-symbol rule, though add_rule requires at least two symbols total).
func (r Rule) RHS() []symbol.Symbol { return r.Symbols[1:] }

func (r Rule) String() string {
	parts := make([]string, len(r.Symbols))
	for i, s := range r.Symbols {
		parts[i] = s.Name()
	}
	return strings.Join(parts, " ")
}

// Grammar stores a mapping from nonterminal to the set of Rules sharing that
// LHS, in insertion order (insertion order is preserved for readability/
// determinism of debug output but carries no semantic weight).
type Grammar struct {
	pool *symbol.Pool

	order []symbol.Symbol            // nonterminals, in first-seen order
	rules map[symbol.Symbol][]Rule   // nonterminal -> alternatives
	seen  map[symbol.Symbol]struct{} // membership test for order
}

// New returns an empty BNF grammar backed by the given Pool. The Pool's
// reference count is retained for the lifetime of the Grammar; callers
// should Release the Grammar's hold via (*Grammar).Close when done, per the
// reference-counted pool lifecycle in spec §3.
func New(pool *symbol.Pool) *Grammar {
	pool.Retain()
	return &Grammar{
		pool:  pool,
		rules: make(map[symbol.Symbol][]Rule),
		seen:  make(map[symbol.Symbol]struct{}),
	}
}

// Close releases this Grammar's hold on its Pool. Calling it more than once
// is a programming error (double release), enforced by Pool.Release itself.
func (g *Grammar) Close() {
	g.pool.Release()
}

// Pool returns the Symbol Pool backing this grammar.
func (g *Grammar) Pool() *symbol.Pool { return g.pool }

// AddRule inserts a rule. It panics (a programming error, not a reportable
// GrammarError) if symbols has fewer than two elements, the head is not a
// nonterminal, or any two adjacent RHS elements are both nonterminals -
// these are caller bugs, not malformed user input (malformed grammar *text*
// is instead caught by package gsyntax before it ever reaches AddRule).
func (g *Grammar) AddRule(symbols []symbol.Symbol) {
	if len(symbols) < 2 {
		panic("bnf: rule must have a head and at least one RHS symbol")
	}
	head := symbols[0]
	if !head.IsNonTerminal() {
		panic(fmt.Sprintf("bnf: rule head %q must be a nonterminal", head.Name()))
	}
	rhs := symbols[1:]
	for i := 0; i+1 < len(rhs); i++ {
		if rhs[i].IsNonTerminal() && rhs[i+1].IsNonTerminal() {
			panic(fmt.Sprintf("bnf: adjacent nonterminals %q %q not allowed in RHS of %q", rhs[i].Name(), rhs[i+1].Name(), head.Name()))
		}
	}

	if _, ok := g.seen[head]; !ok {
		g.seen[head] = struct{}{}
		g.order = append(g.order, head)
	}

	cp := make([]symbol.Symbol, len(symbols))
	copy(cp, symbols)
	g.rules[head] = append(g.rules[head], Rule{Symbols: cp})
}

// Alternatives returns the rules grouped by LHS for the given nonterminal,
// in insertion order. Returns nil if lhs has no rules.
func (g *Grammar) Alternatives(lhs symbol.Symbol) []Rule {
	return g.rules[lhs]
}

// NonTerminals returns every nonterminal with at least one rule, in the
// order each was first added.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	out := make([]symbol.Symbol, len(g.order))
	copy(out, g.order)
	return out
}

// HasRules returns whether the grammar has any rules at all.
func (g *Grammar) HasRules() bool {
	return len(g.order) > 0
}
