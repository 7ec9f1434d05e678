package level

import (
	"sort"

	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/smerr"
)

type inequality struct {
	smaller, larger funcVar
}

// ToGrammar compiles a PREC2 grammar into a final Grammar, per spec §4.4.
//
// Step 1: every terminal gets an f (left-function) and g (right-function)
// variable. Step 2/3: EQ relations are coalesced via union-find; LT/GT
// relations become inequalities between the canonical representatives.
// Step 4: repeated batches of "ready" variables (those not the larger side
// of any surviving inequality) are assigned the current counter and removed,
// with the counter bumped by a gap of 10 between batches; an empty ready set
// while inequalities remain is a cycle, reported as a GrammarError. Step 5:
// levels are read back out through each terminal's canonical f/g
// representative; any representative untouched by every relation gets a
// fresh increasing level. Step 6: the result is published as a Grammar,
// carrying the PREC2 grammar's class map, pair set, and closer-ends
// verbatim.
func ToGrammar(p *prec2.Grammar) (*Grammar, error) {
	terms := p.Terminals()
	sort.Slice(terms, func(i, j int) bool { return terms[i].Name() < terms[j].Name() })

	uf := newUnionFind()
	for _, t := range terms {
		uf.find(funcVar{t, sideF})
		uf.find(funcVar{t, sideG})
	}

	triples := p.Relations()

	// Step 3 (equalities first, so LT/GT canonicalize against the final
	// classes).
	for _, tr := range triples {
		if tr.Rel == prec2.EQ {
			uf.union(funcVar{tr.Left, sideF}, funcVar{tr.Right, sideG})
		}
	}

	ineqSet := make(map[inequality]struct{})
	for _, tr := range triples {
		var ineq inequality
		switch tr.Rel {
		case prec2.LT:
			ineq = inequality{uf.find(funcVar{tr.Left, sideF}), uf.find(funcVar{tr.Right, sideG})}
		case prec2.GT:
			ineq = inequality{uf.find(funcVar{tr.Right, sideG}), uf.find(funcVar{tr.Left, sideF})}
		default:
			continue
		}
		if ineq.smaller == ineq.larger {
			return nil, smerr.Grammar("cycle found in prec2 grammar")
		}
		ineqSet[ineq] = struct{}{}
	}

	// Step 4: Kahn-style topological batches.
	inDegree := make(map[funcVar]int)
	adj := make(map[funcVar][]funcVar)
	nodes := make(map[funcVar]struct{})
	for ineq := range ineqSet {
		nodes[ineq.smaller] = struct{}{}
		nodes[ineq.larger] = struct{}{}
		inDegree[ineq.larger]++
		adj[ineq.smaller] = append(adj[ineq.smaller], ineq.larger)
	}

	assigned := make(map[funcVar]int)
	counter := 0
	remaining := len(nodes)

	for remaining > 0 {
		var ready []funcVar
		for n := range nodes {
			if _, done := assigned[n]; done {
				continue
			}
			if inDegree[n] == 0 {
				ready = append(ready, n)
			}
		}
		if len(ready) == 0 {
			return nil, smerr.Grammar("cycle found in prec2 grammar")
		}

		sort.Slice(ready, func(i, j int) bool {
			if ready[i].sym.Name() != ready[j].sym.Name() {
				return ready[i].sym.Name() < ready[j].sym.Name()
			}
			return ready[i].side < ready[j].side
		})

		for _, x := range ready {
			if _, done := assigned[x]; done {
				continue
			}
			assigned[x] = counter
			counter++
			remaining--
		}
		counter += 10

		for _, x := range ready {
			for _, y := range adj[x] {
				inDegree[y]--
			}
		}
	}

	// Step 5: untouched function variables (no relation ever mentioned
	// them) get fresh increasing levels.
	for _, t := range terms {
		for _, fv := range []funcVar{{t, sideF}, {t, sideG}} {
			rep := uf.find(fv)
			if _, ok := assigned[rep]; !ok {
				assigned[rep] = counter
				counter++
			}
		}
	}

	// Step 6: publish.
	out := newGrammar(p.Pool())
	for _, t := range terms {
		out.levels[t] = Level{
			LeftPrec:  assigned[uf.find(funcVar{t, sideF})],
			RightPrec: assigned[uf.find(funcVar{t, sideG})],
			Class:     p.Class(t),
		}
	}
	for _, pair := range p.Pairs() {
		out.pairs[pair[0]] = pair[1]
	}
	for _, t := range terms {
		if p.IsCloserEnd(t) {
			out.closerEnds[t] = struct{}{}
		}
	}

	return out, nil
}
