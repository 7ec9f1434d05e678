package prec2

import "github.com/dekarrin/smie/internal/symbol"

// Terminals returns every terminal symbol known to this PREC2 grammar: every
// left/right side of a recorded relation, every symbol with a recorded
// class, every opener/closer in the pair set, and every closer-end. Relation
// sides come first, in insertion order; symbols known only from the pair
// set, the class map or the closer-ends follow in no guaranteed order.
func (g *Grammar) Terminals() []symbol.Symbol {
	seen := make(map[symbol.Symbol]struct{})
	var order []symbol.Symbol

	add := func(s symbol.Symbol) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			order = append(order, s)
		}
	}

	for _, k := range g.order {
		add(k.left)
		add(k.right)
	}
	for k := range g.pairs {
		add(k.left)
		add(k.right)
	}
	for s := range g.classes {
		add(s)
	}
	for s := range g.closerEnd {
		add(s)
	}

	return order
}
