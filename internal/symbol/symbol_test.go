package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Pool_Intern(t *testing.T) {
	testCases := []struct {
		name string
		kind Kind
	}{
		{name: "+", kind: Terminal},
		{name: "NUMBER", kind: TerminalVariable},
		{name: "expr", kind: NonTerminal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			p := New()
			s1 := p.Intern(tc.name, tc.kind)
			s2 := p.Intern(tc.name, tc.kind)

			assert.Equal(s1, s2)
			assert.Equal(tc.name, s1.Name())
			assert.Equal(tc.kind, s1.Kind())
		})
	}
}

func Test_Pool_Intern_distinguishes_kind(t *testing.T) {
	assert := assert.New(t)

	p := New()
	term := p.Intern("x", Terminal)
	nonterm := p.Intern("x", NonTerminal)

	assert.NotEqual(term, nonterm)
}

func Test_Pool_Lookup(t *testing.T) {
	assert := assert.New(t)

	p := New()
	_, ok := p.Lookup("x", Terminal)
	assert.False(ok)

	interned := p.Intern("x", Terminal)
	found, ok := p.Lookup("x", Terminal)
	assert.True(ok)
	assert.Equal(interned, found)
}

func Test_Pool_Size(t *testing.T) {
	assert := assert.New(t)

	p := New()
	assert.Equal(0, p.Size())

	p.Intern("a", Terminal)
	p.Intern("b", Terminal)
	p.Intern("a", Terminal) // repeat, should not grow size

	assert.Equal(2, p.Size())
}

func Test_Symbol_IsTerminal_IsNonTerminal(t *testing.T) {
	testCases := []struct {
		name           string
		kind           Kind
		wantTerminal   bool
		wantNonTermBit bool
	}{
		{name: "terminal", kind: Terminal, wantTerminal: true, wantNonTermBit: false},
		{name: "terminal var", kind: TerminalVariable, wantTerminal: true, wantNonTermBit: false},
		{name: "nonterminal", kind: NonTerminal, wantTerminal: false, wantNonTermBit: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			p := New()
			s := p.Intern("x", tc.kind)

			assert.Equal(tc.wantTerminal, s.IsTerminal())
			assert.Equal(tc.wantNonTermBit, s.IsNonTerminal())
		})
	}
}

func Test_Pool_RetainRelease(t *testing.T) {
	assert := assert.New(t)

	p := New()
	assert.EqualValues(1, p.RefCount())

	p.Retain()
	assert.EqualValues(2, p.RefCount())

	p.Release()
	assert.EqualValues(1, p.RefCount())

	p.Release()
	assert.EqualValues(0, p.RefCount())
}

func Test_Pool_Release_panics_on_negative_refcount(t *testing.T) {
	assert := assert.New(t)

	p := New()
	p.Release()

	assert.Panics(func() { p.Release() })
}

func Test_Pool_Intern_panics_on_empty_name(t *testing.T) {
	assert := assert.New(t)

	p := New()
	assert.Panics(func() { p.Intern("", Terminal) })
}
