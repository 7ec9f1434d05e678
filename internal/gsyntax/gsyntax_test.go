package gsyntax

import (
	"testing"

	"github.com/dekarrin/smie/internal/bnf"
	"github.com/dekarrin/smie/internal/precs"
	"github.com/dekarrin/smie/internal/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadFromText_rules_only(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	pool := symbol.New()
	g := bnf.New(pool)

	src := `
expr : NUMBER
     | expr "+" expr
     | "(" expr ")"
     ;
`
	resolvers, err := LoadFromText(g, src)
	require.NoError(err)
	assert.Empty(resolvers)

	expr := pool.Intern("expr", symbol.NonTerminal)
	alts := g.Alternatives(expr)
	assert.Len(alts, 3)
}

func Test_LoadFromText_precs_block(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	pool := symbol.New()
	g := bnf.New(pool)

	src := `
expr : NUMBER | expr "+" expr | expr "*" expr ;

%precs {
  left "*" ;
  left "+" ;
}
`
	resolvers, err := LoadFromText(g, src)
	require.NoError(err)
	require.Len(resolvers, 2)

	assert.Equal(precs.Left, resolvers[0].Kind)
	assert.Equal("*", resolvers[0].Operators[0].Name())
	assert.Equal(precs.Left, resolvers[1].Kind)
	assert.Equal("+", resolvers[1].Operators[0].Name())
}

func Test_LoadFromText_syntax_errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "unterminated quoted terminal", src: `expr : "+ ;`},
		{name: "unrecognized percent directive", src: `expr : NUMBER ; %bogus { }`},
		{name: "missing semicolon", src: `expr : NUMBER`},
		{name: "empty alternative", src: `expr : NUMBER | ;`},
		{name: "bad precs kind", src: `expr : NUMBER ; %precs { bogus "+" ; }`},
		{name: "trailing nonterminal with no rule body", src: `expr : NUMBER ; garbage`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			pool := symbol.New()
			g := bnf.New(pool)

			_, err := LoadFromText(g, tc.src)
			assert.Error(err)
		})
	}
}
