package precs

import (
	"testing"

	"github.com/dekarrin/smie/internal/bnf"
	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Merge_self_relations(t *testing.T) {
	testCases := []struct {
		name string
		kind Kind
		want prec2.Relation
	}{
		{name: "left", kind: Left, want: prec2.GT},
		{name: "right", kind: Right, want: prec2.LT},
		{name: "assoc", kind: Assoc, want: prec2.EQ},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			pool := symbol.New()
			plus := pool.Intern("+", symbol.Terminal)

			var lines Resolvers
			lines.Add(tc.kind, []symbol.Symbol{plus})

			override := Merge(pool, lines)

			rel, ok := override.Relation(plus, plus)
			assert.True(ok)
			assert.Equal(tc.want, rel)
		})
	}
}

func Test_Merge_nonassoc_emits_no_self_relation(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	lt := pool.Intern("<", symbol.Terminal)

	var lines Resolvers
	lines.Add(NonAssoc, []symbol.Symbol{lt})

	override := Merge(pool, lines)

	_, ok := override.Relation(lt, lt)
	assert.False(ok)
}

func Test_Merge_cross_line_ordering(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	star := pool.Intern("*", symbol.Terminal)
	plus := pool.Intern("+", symbol.Terminal)

	var lines Resolvers
	lines.Add(Left, []symbol.Symbol{star}) // tighter, declared first
	lines.Add(Left, []symbol.Symbol{plus}) // looser, declared second

	override := Merge(pool, lines)

	rel, ok := override.Relation(star, plus)
	assert.True(ok)
	assert.Equal(prec2.GT, rel, "earlier line (star) should bind tighter than later line (plus)")

	rel, ok = override.Relation(plus, star)
	assert.True(ok)
	assert.Equal(prec2.LT, rel)
}

func Test_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		build     func(pool *symbol.Pool, g *bnf.Grammar)
		expectErr bool
	}{
		{
			name: "empty grammar is valid",
			build: func(pool *symbol.Pool, g *bnf.Grammar) {
			},
			expectErr: false,
		},
		{
			name: "undefined nonterminal reference",
			build: func(pool *symbol.Pool, g *bnf.Grammar) {
				expr := pool.Intern("expr", symbol.NonTerminal)
				term := pool.Intern("term", symbol.NonTerminal)
				num := pool.Intern("NUMBER", symbol.TerminalVariable)
				g.AddRule([]symbol.Symbol{expr, term, num})
			},
			expectErr: true,
		},
		{
			name: "fully defined grammar",
			build: func(pool *symbol.Pool, g *bnf.Grammar) {
				expr := pool.Intern("expr", symbol.NonTerminal)
				num := pool.Intern("NUMBER", symbol.TerminalVariable)
				g.AddRule([]symbol.Symbol{expr, num})
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			pool := symbol.New()
			g := bnf.New(pool)
			tc.build(pool, g)

			err := Validate(g)
			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_ToPrec2_simple_arithmetic(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	g := bnf.New(pool)

	expr := pool.Intern("expr", symbol.NonTerminal)
	num := pool.Intern("NUMBER", symbol.TerminalVariable)
	plus := pool.Intern("+", symbol.Terminal)

	g.AddRule([]symbol.Symbol{expr, num})
	g.AddRule([]symbol.Symbol{expr, expr, plus, expr})

	p2, err := ToPrec2(g, nil)
	assert.NoError(err)

	// "+" sits between two expr nonterminals, so it relates to NUMBER (the
	// only member of FIRST(expr)/LAST(expr)) in both directions, rather than
	// to itself.
	rel, ok := p2.Relation(plus, num)
	assert.True(ok)
	assert.Equal(prec2.LT, rel)

	rel, ok = p2.Relation(num, plus)
	assert.True(ok)
	assert.Equal(prec2.GT, rel)
}

// buildConflictingGrammar returns a grammar where the ordered pair (a, b)
// gets two different BNF-implied PREC2 relations: "s -> a b" forces a EQ b
// directly, while "s -> a expr" (with "expr -> b") forces a LT b via
// FIRST(expr) = {b}.
func buildConflictingGrammar(t *testing.T) (*bnf.Grammar, symbol.Symbol, symbol.Symbol) {
	t.Helper()

	pool := symbol.New()
	g := bnf.New(pool)

	s := pool.Intern("s", symbol.NonTerminal)
	expr := pool.Intern("expr", symbol.NonTerminal)
	a := pool.Intern("a", symbol.Terminal)
	b := pool.Intern("b", symbol.Terminal)

	g.AddRule([]symbol.Symbol{s, a, b})
	g.AddRule([]symbol.Symbol{s, a, expr})
	g.AddRule([]symbol.Symbol{expr, b})

	return g, a, b
}

func Test_ToPrec2_conflict_without_override_errors(t *testing.T) {
	assert := assert.New(t)

	g, _, _ := buildConflictingGrammar(t)

	_, err := ToPrec2(g, nil)
	assert.Error(err)
}

func Test_ToPrec2_conflict_resolved_by_override(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g, a, b := buildConflictingGrammar(t)

	override := prec2.New(g.Pool())
	override.Set(a, b, prec2.GT)

	p2, err := ToPrec2(g, override)
	require.NoError(err)

	rel, ok := p2.Relation(a, b)
	assert.True(ok)
	assert.Equal(prec2.GT, rel)
}

func Test_ToPrec2_bracket_pair_classification(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	g := bnf.New(pool)

	expr := pool.Intern("expr", symbol.NonTerminal)
	num := pool.Intern("NUMBER", symbol.TerminalVariable)
	lparen := pool.Intern("(", symbol.Terminal)
	rparen := pool.Intern(")", symbol.Terminal)

	g.AddRule([]symbol.Symbol{expr, num})
	g.AddRule([]symbol.Symbol{expr, lparen, expr, rparen})

	p2, err := ToPrec2(g, nil)
	assert.NoError(err)

	assert.True(p2.IsPair(lparen, rparen))
	assert.Equal(prec2.Opener, p2.Class(lparen))
	assert.Equal(prec2.Closer, p2.Class(rparen))
	assert.True(p2.IsCloserEnd(rparen))
}

func Test_classifyPairs_self_fence_gets_no_classification(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	out := prec2.New(pool)
	hash := pool.Intern("#", symbol.Terminal)
	e := pool.Intern("e", symbol.NonTerminal)

	classifyPairs(out, []symbol.Symbol{hash, e, hash})

	assert.Equal(prec2.Neither, out.Class(hash))
	assert.False(out.IsCloserEnd(hash))
}
