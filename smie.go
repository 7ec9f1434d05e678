// Package smie implements a SMIE-style operator-precedence grammar compiler
// and indentation engine: a four-stage pipeline (BNF -> PREC2 -> final
// Grammar -> {sexp walker, indenter}) exposed as a reusable library. This
// file is a thin façade wiring the internal packages together, in the style
// of the teacher's own root-package entry points over its focused internal
// subsystems.
package smie

import (
	"github.com/dekarrin/smie/internal/bnf"
	"github.com/dekarrin/smie/internal/cursor"
	"github.com/dekarrin/smie/internal/gsyntax"
	"github.com/dekarrin/smie/internal/indent"
	"github.com/dekarrin/smie/internal/level"
	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/precs"
	"github.com/dekarrin/smie/internal/smerr"
	"github.com/dekarrin/smie/internal/symbol"
	"github.com/dekarrin/smie/internal/walker"
)

// Re-exported types, so a caller of this module never needs to import the
// internal packages directly.
type (
	Pool      = symbol.Pool
	Symbol    = symbol.Symbol
	Kind      = symbol.Kind
	BNF       = bnf.Grammar
	Prec2     = prec2.Grammar
	Grammar   = level.Grammar
	Resolvers = precs.Resolvers
	PrecKind  = precs.Kind

	TokenCursor = walker.TokenCursor
	Cursor      = cursor.Cursor
	Indenter    = indent.Indenter
)

const (
	Terminal         = symbol.Terminal
	TerminalVariable = symbol.TerminalVariable
	NonTerminal      = symbol.NonTerminal
)

const (
	Left     = precs.Left
	Right    = precs.Right
	Assoc    = precs.Assoc
	NonAssoc = precs.NonAssoc
)

// NewPool returns a fresh, empty Symbol Pool.
func NewPool() *Pool { return symbol.New() }

// Intern returns the canonical Symbol for (name, kind) in pool.
func Intern(pool *Pool, name string, kind Kind) Symbol { return pool.Intern(name, kind) }

// NewBNF returns an empty BNF grammar backed by pool.
func NewBNF(pool *Pool) *BNF { return bnf.New(pool) }

// LoadGrammarText parses text (spec §6's ABNF grammar format) into g,
// returning any precedence resolvers it declares.
func LoadGrammarText(g *BNF, text string) (Resolvers, error) {
	return gsyntax.LoadFromText(g, text)
}

// NewResolvers returns an empty resolver list.
func NewResolvers() Resolvers { return nil }

// AddResolver appends a precedence line to resolvers.
func AddResolver(resolvers *Resolvers, kind PrecKind, operators []Symbol) {
	resolvers.Add(kind, operators)
}

// BNFToPrec2 compiles a BNF grammar into a PREC2 grammar, merging resolvers
// (if any) as the conflict-resolution override.
func BNFToPrec2(g *BNF, resolvers Resolvers) (*Prec2, error) {
	var override *Prec2
	if len(resolvers) > 0 {
		override = precs.Merge(g.Pool(), resolvers)
	}
	return precs.ToPrec2(g, override)
}

// Prec2ToGrammar compiles a PREC2 grammar into the final Grammar.
func Prec2ToGrammar(p *Prec2) (*Grammar, error) {
	return level.ToGrammar(p)
}

// ForwardSexp advances cur forward over one balanced sub-expression.
func ForwardSexp(g *Grammar, cur TokenCursor) bool { return walker.ForwardSexp(g, cur) }

// BackwardSexp advances cur backward over one balanced sub-expression.
func BackwardSexp(g *Grammar, cur TokenCursor) bool { return walker.BackwardSexp(g, cur) }

// NewIndenter returns an Indenter for g with the given column step.
func NewIndenter(g *Grammar, step int) *Indenter { return indent.New(g, step) }

// IsGrammarError reports whether err is (or wraps) a GrammarError.
func IsGrammarError(err error) bool { return smerr.IsGrammarError(err) }
