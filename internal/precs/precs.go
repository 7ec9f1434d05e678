// Package precs implements the PRECS resolvers (spec §4.3 "PRECS-to-PREC2
// merging") and the BNF->PREC2 compiler (spec §4.3) that consumes them
// alongside a bnf.Grammar to produce a prec2.Grammar.
package precs

import (
	"github.com/dekarrin/smie/internal/bnf"
	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/smerr"
	"github.com/dekarrin/smie/internal/symbol"
)

// Kind is the associativity declared for a line of operators.
type Kind int

const (
	Left Kind = iota
	Right
	Assoc
	NonAssoc
)

// Line is one `%precs` declaration: a kind and the ordered operators it
// applies to (order among operators on the same line carries no semantic
// weight; order *between* lines does, per Merge's cross-line rule).
type Line struct {
	Kind      Kind
	Operators []symbol.Symbol
}

// Resolvers is an ordered list of precedence Lines, earlier lines binding
// tighter than later ones. Multiple source `%precs { ... }` blocks are
// flattened into one Resolvers list in file order (spec_full.md §5).
type Resolvers []Line

// Add appends a precedence line to the resolver list.
func (r *Resolvers) Add(kind Kind, operators []symbol.Symbol) {
	ops := make([]symbol.Symbol, len(operators))
	copy(ops, operators)
	*r = append(*r, Line{Kind: kind, Operators: ops})
}

// Merge builds an override PREC2 grammar from the resolver lines, per spec
// §4.3's "PRECS-to-PREC2 merging":
//
//   - Internal: for every pair (opi, opj) within one line, including
//     self-pairs, emit opi selfrule opj where selfrule is GT for left, LT
//     for right, EQ for assoc, and is skipped entirely for non-assoc (a
//     non-assoc line declares no relation of its own; it only exists to
//     participate in cross-line ordering).
//   - Cross-line: earlier lines bind tighter than later ones; for every pair
//     of operators in different lines, emit GT from the tighter operator to
//     the looser one and LT the other way ("a GT b" means a binds tighter,
//     matching spec §3's definition of the relation directly).
func Merge(pool *symbol.Pool, lines Resolvers) *prec2.Grammar {
	override := prec2.New(pool)

	for _, line := range lines {
		if line.Kind == NonAssoc {
			continue
		}
		var self prec2.Relation
		switch line.Kind {
		case Left:
			self = prec2.GT
		case Right:
			self = prec2.LT
		case Assoc:
			self = prec2.EQ
		}
		for _, opi := range line.Operators {
			for _, opj := range line.Operators {
				override.Set(opi, opj, self)
			}
		}
	}

	for i, tighter := range lines {
		for j := i + 1; j < len(lines); j++ {
			looser := lines[j]
			for _, x := range tighter.Operators {
				for _, y := range looser.Operators {
					override.Set(x, y, prec2.GT)
					override.Set(y, x, prec2.LT)
				}
			}
		}
	}

	return override
}

// ToPrec2 compiles a BNF grammar into a PREC2 grammar, per spec §4.3. The
// resolvers (already merged into an override PREC2 grammar via Merge, or nil
// if there are none) are consulted only to resolve conflicts between
// relations the BNF grammar itself implies (step 4); they never pre-seed
// relations outside of a conflict.
func ToPrec2(g *bnf.Grammar, override *prec2.Grammar) (*prec2.Grammar, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}

	out := prec2.New(g.Pool())

	if !g.HasRules() {
		return out, nil
	}

	first, last := g.OperatorSets()

	add := func(left, right symbol.Symbol, rel prec2.Relation) error {
		if out.Add(left, right, rel) {
			return nil
		}
		// conflict: consult override.
		if override != nil {
			if overrideRel, ok := override.Relation(left, right); ok {
				out.Set(left, right, overrideRel)
				return nil
			}
		}
		existing, _ := out.Relation(left, right)
		return smerr.Grammarf("conflicting precedence relation between %q and %q: had %s, wanted %s", left.Name(), right.Name(), existing, rel)
	}

	for _, nt := range g.NonTerminals() {
		for _, rule := range g.Alternatives(nt) {
			rhs := rule.RHS()
			for i := 0; i < len(rhs); i++ {
				sym := rhs[i]
				if !sym.IsTerminal() {
					continue
				}

				if i+1 < len(rhs) {
					next := rhs[i+1]
					if next.IsTerminal() {
						// a EQ b
						if err := add(sym, next, prec2.EQ); err != nil {
							return nil, err
						}
					} else {
						// next is a nonterminal B.
						if i+2 < len(rhs) && rhs[i+2].IsTerminal() {
							// a EQ c, where c follows the nonterminal.
							c := rhs[i+2]
							if err := add(sym, c, prec2.EQ); err != nil {
								return nil, err
							}
						}
						for d := range first[next] {
							if err := add(sym, d, prec2.LT); err != nil {
								return nil, err
							}
						}
					}
				}
			}

			// For every position where RHS[i] is a nonterminal A and
			// RHS[i+1] is a terminal b, emit e GT b for every e in LAST(A).
			// This mirrors the terminal/nonterminal case above.
			for i := 0; i < len(rhs); i++ {
				if rhs[i].IsNonTerminal() && i+1 < len(rhs) && rhs[i+1].IsTerminal() {
					b := rhs[i+1]
					for e := range last[rhs[i]] {
						if err := add(e, b, prec2.GT); err != nil {
							return nil, err
						}
					}
				}
			}

			classifyPairs(out, rhs)
		}
	}

	return out, nil
}

// classifyPairs implements spec §4.3 step 3, resolved against
// original_source/'s smie_bnf_to_prec2 for the details the prose leaves
// implicit:
//
//   - A rule whose RHS starts and ends with the very same symbol (a
//     self-delimited fence, e.g. `s: "#" e "#"`) gets no opener/closer
//     classification at all, rather than marking that one symbol both.
//   - Otherwise, once rhs[0] is a terminal distinct from rhs's own last
//     symbol, it is marked OPENER unconditionally (nonterminals between it
//     and any later terminal are skipped over, not terminated on).
//   - Every terminal later in rhs is recorded as rhs[0]'s pair-partner and
//     marked CLOSER; only the RHS's own last symbol, if a terminal, is
//     additionally recorded as a closer-end.
func classifyPairs(out *prec2.Grammar, rhs []symbol.Symbol) {
	if len(rhs) < 2 {
		return
	}
	first, last := rhs[0], rhs[len(rhs)-1]
	if first == last || !first.IsTerminal() {
		return
	}
	out.SetClass(first, prec2.Opener)

	for _, s := range rhs[1:] {
		if !s.IsTerminal() {
			continue
		}
		out.AddPair(first, s)
		out.SetClass(s, prec2.Closer)
		if s == last {
			out.MarkCloserEnd(s)
		}
	}
}

// Validate checks structural preconditions spec.md's distillation leaves
// implicit but original_source/ enforces before attempting FIRST/LAST
// computation: every nonterminal referenced in a rule must itself have
// rules, and no nonterminal may have zero alternatives (spec_full.md §5,
// "Grammar validation pass before compilation").
func Validate(g *bnf.Grammar) error {
	defined := make(map[symbol.Symbol]struct{})
	for _, nt := range g.NonTerminals() {
		defined[nt] = struct{}{}
	}

	for _, nt := range g.NonTerminals() {
		alts := g.Alternatives(nt)
		if len(alts) == 0 {
			return smerr.Grammarf("nonterminal %q has no alternatives", nt.Name())
		}
		for _, rule := range alts {
			for _, s := range rule.RHS() {
				if s.IsNonTerminal() {
					if _, ok := defined[s]; !ok {
						return smerr.Grammarf("nonterminal %q references undefined nonterminal %q", nt.Name(), s.Name())
					}
				}
			}
		}
	}

	return nil
}
