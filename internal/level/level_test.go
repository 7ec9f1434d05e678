package level

import (
	"bytes"
	"testing"

	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/symbol"
	"github.com/dekarrin/rezi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToGrammar_simple_ordering(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	p2 := prec2.New(pool)
	star := pool.Intern("*", symbol.Terminal)
	plus := pool.Intern("+", symbol.Terminal)

	// star binds tighter than plus.
	p2.Add(star, plus, prec2.GT)
	p2.Add(plus, star, prec2.LT)

	g, err := ToGrammar(p2)
	require.NoError(t, err)

	starLvl, ok := g.Level(star)
	assert.True(ok)
	plusLvl, ok := g.Level(plus)
	assert.True(ok)

	assert.Greater(starLvl.RightPrec, plusLvl.LeftPrec, "tighter operator's right level should exceed the looser operator's left level")
}

func Test_ToGrammar_equal_precedence(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	p2 := prec2.New(pool)
	plus := pool.Intern("+", symbol.Terminal)

	p2.Add(plus, plus, prec2.EQ)

	g, err := ToGrammar(p2)
	require.NoError(t, err)

	lvl, ok := g.Level(plus)
	assert.True(ok)
	assert.Equal(lvl.LeftPrec, lvl.RightPrec, "an EQ self-relation coalesces f and g into one canonical level")
}

func Test_ToGrammar_cycle_detected(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	p2 := prec2.New(pool)
	a := pool.Intern("a", symbol.Terminal)
	b := pool.Intern("b", symbol.Terminal)

	// f_a < g_b < f_b < g_a < f_a: the four inequalities close a loop, so
	// no assignment of levels can satisfy them all.
	p2.Set(a, b, prec2.LT)
	p2.Set(b, b, prec2.GT)
	p2.Set(b, a, prec2.LT)
	p2.Set(a, a, prec2.GT)

	_, err := ToGrammar(p2)
	assert.Error(err)
}

func Test_ToGrammar_carries_pairs_and_closer_ends(t *testing.T) {
	assert := assert.New(t)

	pool := symbol.New()
	p2 := prec2.New(pool)
	lparen := pool.Intern("(", symbol.Terminal)
	rparen := pool.Intern(")", symbol.Terminal)

	p2.AddPair(lparen, rparen)
	p2.MarkCloserEnd(rparen)

	g, err := ToGrammar(p2)
	require.NoError(t, err)

	assert.True(g.IsPair(lparen, rparen))
	closer, ok := g.CloserFor(lparen)
	assert.True(ok)
	assert.Equal(rparen, closer)
	assert.True(g.IsCloserEnd(rparen))
}

func Test_Grammar_BinaryRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	pool := symbol.New()
	p2 := prec2.New(pool)
	star := pool.Intern("*", symbol.Terminal)
	plus := pool.Intern("+", symbol.Terminal)
	lparen := pool.Intern("(", symbol.Terminal)
	rparen := pool.Intern(")", symbol.Terminal)

	p2.Add(star, plus, prec2.GT)
	p2.Add(plus, star, prec2.LT)
	p2.AddPair(lparen, rparen)
	p2.MarkCloserEnd(rparen)

	g, err := ToGrammar(p2)
	require.NoError(err)

	enc := rezi.EncBinary(g)

	destPool := symbol.New()
	decoded := NewForDecode(destPool)

	var buf bytes.Buffer
	buf.Write(enc)
	_, err = rezi.DecBinary(buf.Bytes(), decoded)
	require.NoError(err)

	destStar := destPool.Intern("*", symbol.Terminal)
	destPlus := destPool.Intern("+", symbol.Terminal)
	destLParen := destPool.Intern("(", symbol.Terminal)
	destRParen := destPool.Intern(")", symbol.Terminal)

	origStarLvl, _ := g.Level(star)
	decStarLvl, ok := decoded.Level(destStar)
	assert.True(ok)
	assert.Equal(origStarLvl, decStarLvl)

	origPlusLvl, _ := g.Level(plus)
	decPlusLvl, ok := decoded.Level(destPlus)
	assert.True(ok)
	assert.Equal(origPlusLvl, decPlusLvl)

	assert.True(decoded.IsPair(destLParen, destRParen))
	assert.True(decoded.IsCloserEnd(destRParen))
	assert.Equal(g.BuildID, decoded.BuildID)
}
