// Package indent implements the Indenter (spec §4.6): a short cascade of
// rules over the sexp walker and the final Grammar that computes the
// column a line should be indented to.
package indent

import (
	"github.com/dekarrin/smie/internal/cursor"
	"github.com/dekarrin/smie/internal/level"
	"github.com/dekarrin/smie/internal/prec2"
	"github.com/dekarrin/smie/internal/smerr"
	"github.com/dekarrin/smie/internal/symbol"
	"github.com/dekarrin/smie/internal/walker"
)

// Indenter computes indentation columns for a grammar's final Level table.
type Indenter struct {
	grammar *level.Grammar
	step    int
}

// New returns an Indenter for grammar, with step as the configured column
// increment (spec §4.6 "step", typically 2 or 4). step must be >= 0.
func New(grammar *level.Grammar, step int) *Indenter {
	smerr.Assert(step >= 0, "indent: step must be >= 0, got %d", step)
	return &Indenter{grammar: grammar, step: step}
}

// rule is one entry of the cascade; it reports ok=false to let Calculate
// fall through to the next rule.
type rule func(c cursor.Cursor) (int, bool)

// Calculate returns the column the current line should be indented to,
// per spec §4.6: move to the start of the line, then try each rule in
// order, returning the first one that fires. 0 is the safe floor when
// nothing does.
func (ind *Indenter) Calculate(c cursor.Cursor) int {
	c.BackwardToLineStart()

	for _, r := range []rule{ind.atBeginningOfBuffer, ind.lineStartsWithKeyword, ind.afterKeyword} {
		if col, ok := r(c); ok {
			return col
		}
	}
	return 0
}

// lookup interns token as a terminal (mirroring the keyword-peek steps of
// spec §4.6, which explicitly call for interning) and reports its compiled
// Level, if any. A token that was never declared a grammar terminal reports
// ok=false with a zero Level.
func (ind *Indenter) lookup(token string) (symbol.Symbol, level.Level, bool) {
	sym := ind.grammar.Pool().Intern(token, symbol.Terminal)
	lvl, ok := ind.grammar.Level(sym)
	return sym, lvl, ok
}

// startsLine reports whether the cursor sits at the first non-blank column
// of its line: either it already starts the line, or only horizontal
// whitespace precedes it.
func startsLine(c cursor.Cursor) bool {
	if c.StartsLine() {
		return true
	}
	c.PushContext()
	defer c.PopContext()
	for c.BackwardChar() && !c.StartsLine() {
		ch, _ := c.GetChar()
		if ch != ' ' && ch != '\t' {
			return false
		}
	}
	return true
}

// virtual is the "virtual indent" helper (spec §4.6): the column at the
// cursor's position if it already starts its line, otherwise the result of
// recursively calculating indentation from there.
func (ind *Indenter) virtual(c cursor.Cursor) int {
	if startsLine(c) {
		return c.GetLineOffset()
	}
	return ind.Calculate(c)
}

// atBeginningOfBuffer is rule 1: in a saved scope, skip one comment
// backward; fire with column 0 if that leaves the cursor at buffer start.
func (ind *Indenter) atBeginningOfBuffer(c cursor.Cursor) (int, bool) {
	c.PushContext()
	defer c.PopContext()
	c.BackwardComment()
	if c.IsStart() {
		return 0, true
	}
	return 0, false
}

// lineStartsWithKeyword is rule 2: the current line's first token is a
// grammar keyword. The backward walk it runs is seeded with that keyword's
// own symbol, as though it had already been read, so the walk reports the
// construct enclosing the keyword rather than the keyword itself.
func (ind *Indenter) lineStartsWithKeyword(c cursor.Cursor) (int, bool) {
	offset := c.GetOffset()

	c.PushContext()
	token, ok := c.ForwardToken()
	c.PopContext()
	if !ok {
		return 0, false
	}

	sym, lvl, isKeyword := ind.lookup(token)
	if !isKeyword {
		return 0, false
	}

	if lvl.IsOpener() {
		if startsLine(c) {
			return 0, false
		}
		return c.GetLineOffset(), true
	}

	offsetBeforeWalk := c.GetOffset()
	c.PushContext()
	walker.BackwardSexpFrom(ind.grammar, cursor.BackwardTokenCursor(c), sym)
	if offsetBeforeWalk == c.GetOffset() {
		c.PopContext()
		return 0, false
	}

	c.PushContext()
	parentToken, ok := c.ForwardToken()
	c.PopContext()
	if !ok {
		c.PopContext()
		return 0, false
	}
	_, parentLvl, parentIsKeyword := ind.lookup(parentToken)

	// The walk left the cursor on the parent token itself. Step over a line
	// end and a comment there before the column checks and any
	// virtual-indent recursion below; the cursor is not moved back to the
	// first token of the parent's line.
	if c.EndsLine() {
		c.ForwardChar()
	}
	c.ForwardComment()

	if lvl.LeftPrec == parentLvl.LeftPrec {
		if offset != c.GetOffset() && startsLine(c) {
			col := c.GetLineOffset()
			c.PopContext()
			return col, true
		}
		indent := ind.virtual(c)
		c.PopContext()
		return indent, true
	}

	if offset == c.GetOffset() && startsLine(c) {
		c.PopContext()
		return 0, false
	}

	if parentIsKeyword {
		col := c.GetLineOffset()
		c.PopContext()
		return col, true
	}

	indent := ind.virtual(c)
	c.PopContext()
	return indent, true
}

// afterKeyword is rule 3: the token immediately before the cursor is a
// grammar keyword.
func (ind *Indenter) afterKeyword(c cursor.Cursor) (int, bool) {
	c.PushContext()
	token, ok := c.BackwardToken()
	if !ok {
		c.PopContext()
		return 0, false
	}

	sym, lvl, isKeyword := ind.lookup(token)
	if !isKeyword {
		c.PopContext()
		return 0, false
	}
	if lvl.Class == prec2.Closer {
		c.PopContext()
		return 0, false
	}

	if c.EndsLine() {
		c.ForwardChar()
	}
	c.ForwardComment()

	if lvl.IsOpener() || ind.grammar.IsCloserEnd(sym) {
		indent := ind.virtual(c) + ind.step
		c.PopContext()
		return indent, true
	}
	indent := ind.virtual(c)
	c.PopContext()
	return indent, true
}
