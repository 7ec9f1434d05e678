package bnf

import "github.com/dekarrin/smie/internal/symbol"

// OperatorSets computes OP_first and OP_last for every nonterminal in the
// grammar, per spec §4.3 step 1: OP_first(A) starts as the set of terminals
// appearing leftmost in any RHS of A (or the empty set, for an RHS that
// begins with a nonterminal); OP_last(A) is the symmetric rightmost set.
// Both sets are then closed under "an RHS that begins (ends) with
// nonterminal B also contributes OP_first(B) (OP_last(B))", iterated to a
// fixpoint.
func (g *Grammar) OperatorSets() (first, last map[symbol.Symbol]map[symbol.Symbol]struct{}) {
	first = make(map[symbol.Symbol]map[symbol.Symbol]struct{}, len(g.order))
	last = make(map[symbol.Symbol]map[symbol.Symbol]struct{}, len(g.order))

	for _, nt := range g.order {
		first[nt] = make(map[symbol.Symbol]struct{})
		last[nt] = make(map[symbol.Symbol]struct{})
	}

	// direct leftmost/rightmost terminals (no fixpoint needed for these).
	for _, nt := range g.order {
		for _, rule := range g.rules[nt] {
			rhs := rule.RHS()
			if len(rhs) == 0 {
				continue
			}
			if head := rhs[0]; head.IsTerminal() {
				first[nt][head] = struct{}{}
			}
			if tail := rhs[len(rhs)-1]; tail.IsTerminal() {
				last[nt][tail] = struct{}{}
			}
		}
	}

	// fixpoint closure over nonterminal-led/trailed productions.
	changed := true
	for changed {
		changed = false
		for _, nt := range g.order {
			for _, rule := range g.rules[nt] {
				rhs := rule.RHS()
				if len(rhs) == 0 {
					continue
				}
				if head := rhs[0]; head.IsNonTerminal() {
					if addAll(first[nt], first[head]) {
						changed = true
					}
				}
				if tail := rhs[len(rhs)-1]; tail.IsNonTerminal() {
					if addAll(last[nt], last[tail]) {
						changed = true
					}
				}
			}
		}
	}

	return first, last
}

// addAll copies every element of src into dst, returning whether dst grew.
func addAll(dst, src map[symbol.Symbol]struct{}) bool {
	grew := false
	for s := range src {
		if _, ok := dst[s]; !ok {
			dst[s] = struct{}{}
			grew = true
		}
	}
	return grew
}
