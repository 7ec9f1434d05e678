package level

import "github.com/dekarrin/smie/internal/symbol"

// side distinguishes a terminal's left function variable (f_a) from its
// right function variable (g_a), per spec §3's "Function variable"; funcVar
// pairs a terminal with its side in place of the source's tagged union.
type side int

const (
	sideF side = iota
	sideG
)

type funcVar struct {
	sym  symbol.Symbol
	side side
}

// unionFind is a disjoint-set over funcVars, used to coalesce the equalities
// recorded from PREC2 `a EQ b` relations (spec §4.4 step 3: "f_a = g_b").
type unionFind struct {
	parent map[funcVar]funcVar
	rank   map[funcVar]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[funcVar]funcVar),
		rank:   make(map[funcVar]int),
	}
}

func (u *unionFind) find(x funcVar) funcVar {
	p, ok := u.parent[x]
	if !ok {
		u.parent[x] = x
		return x
	}
	if p == x {
		return x
	}
	root := u.find(p)
	u.parent[x] = root
	return root
}

func (u *unionFind) union(a, b funcVar) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}
