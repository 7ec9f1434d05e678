// Package walker implements the sexp walker (spec §4.5): a stack-based
// algorithm that, given a token cursor and a compiled Grammar, advances over
// one balanced sub-expression, forward or backward.
package walker

import (
	"github.com/dekarrin/smie/internal/level"
	"github.com/dekarrin/smie/internal/symbol"
)

// TokenCursor is the opaque context the walker reads tokens through: advance
// one token at a time in the walk's direction, and read the token currently
// under the cursor without moving it.
type TokenCursor interface {
	// Advance moves the cursor forward by one token in the walk's
	// direction. It returns false if there is no next token.
	Advance() bool

	// ReadToken returns the text of the token under the cursor and true, or
	// ("", false) if the cursor is not currently on a token.
	ReadToken() (string, bool)
}

type frame struct {
	sym symbol.Symbol
	lvl level.Level
}

// selector is op_forward or op_backward: it reports a precedence and
// whether sym is the push-side terminal for this selector.
type selector func(g *level.Grammar, sym symbol.Symbol, lvl level.Level) (prec int, pushSide bool)

// selectLeft pairs a terminal's left precedence with whether it is an
// opener - the "is_first" half of the original grammar's per-terminal
// precedence record.
func selectLeft(_ *level.Grammar, _ symbol.Symbol, lvl level.Level) (int, bool) {
	return lvl.LeftPrec, lvl.IsOpener()
}

// selectRight pairs a terminal's right precedence with whether it was
// recorded as a closer-end - the "is_last" half.
func selectRight(g *level.Grammar, sym symbol.Symbol, lvl level.Level) (int, bool) {
	return lvl.RightPrec, g.IsCloserEnd(sym)
}

// ForwardSexp walks forward from the cursor's current position over one
// balanced sub-expression. It returns true if the walk matched a pair (or
// ran out of enclosing structure at the outer level), false if it fell off
// the end of the token stream or stopped at an unbalanced closer. On a true
// result the cursor is left just past the token that completed the match -
// the source's token functions read and advance in one step, so a matched
// token is always left behind, not sat on.
func ForwardSexp(g *level.Grammar, cur TokenCursor) bool {
	return advanceSexp(g, cur, selectRight, selectLeft, nil)
}

// BackwardSexp walks backward from the cursor's current position over one
// balanced sub-expression; the inverse movement of ForwardSexp.
func BackwardSexp(g *level.Grammar, cur TokenCursor) bool {
	return advanceSexp(g, cur, selectLeft, selectRight, nil)
}

// BackwardSexpFrom is BackwardSexp, but seeds the walk's stack with sym's
// own level before reading any token, as though sym had already been read
// at the cursor's position. This is the three-argument form of the
// original backward_sexp: indent's keyword rule resumes a walk from the
// keyword under the cursor this way, so the walk reports the construct
// that encloses it rather than stalling on the keyword itself.
func BackwardSexpFrom(g *level.Grammar, cur TokenCursor, sym symbol.Symbol) bool {
	lvl, ok := g.Level(sym)
	if !ok {
		return advanceSexp(g, cur, selectLeft, selectRight, nil)
	}
	return advanceSexp(g, cur, selectLeft, selectRight, &frame{sym, lvl})
}

// advanceSexp is the shared stack-driven walk, grounded on the original
// advance-sexp routine's loop structure: direction only changes which
// selector plays op_forward and which plays op_backward. A symbol is
// "associative" when its own left and right precedence happen to coincide;
// the tie-break below only consults that once a tied pop has drained the
// stack down to nothing, mirroring the source's branch order exactly -
// anywhere the stack still has an enclosing frame left, a tie is resolved
// by just carrying the current symbol forward as the new pending top.
//
// seed, when non-nil, is pushed before the first token is read, in place
// of the "ensure cursor is on a token" check below - the original's
// three-argument backward_sexp skips straight to the read loop with its
// seed symbol already on the stack. The original's token function reads
// and advances in a single step; this TokenCursor splits peeking from
// advancing, so every return below calls Advance itself first, to leave
// the cursor exactly where the source would have left it.
func advanceSexp(g *level.Grammar, cur TokenCursor, opForward, opBackward selector, seed *frame) bool {
	var stack []frame

	if seed != nil {
		stack = append(stack, *seed)
	} else if _, onToken := cur.ReadToken(); !onToken {
		if !cur.Advance() {
			return false
		}
	}

	for {
		text, ok := cur.ReadToken()
		if !ok {
			return false
		}

		sym, lvl, found := lookupTerminal(g, text)
		if !found {
			if !cur.Advance() {
				return false
			}
			continue
		}

		if _, push := opBackward(g, sym, lvl); push {
			stack = append(stack, frame{sym, lvl})
		} else {
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				fwdPrec, _ := opForward(g, sym, lvl)
				topBackPrec, _ := opBackward(g, top.sym, top.lvl)
				if fwdPrec >= topBackPrec {
					break
				}
				stack = stack[:len(stack)-1]
			}

			if len(stack) == 0 {
				cur.Advance()
				return true
			}

			top := stack[len(stack)-1]
			fwdPrec, _ := opForward(g, sym, lvl)
			topBackPrec, _ := opBackward(g, top.sym, top.lvl)

			if fwdPrec == topBackPrec {
				stack = stack[:len(stack)-1]
			}

			if len(stack) > 0 {
				if _, fwdPush := opForward(g, sym, lvl); !fwdPush {
					stack = append(stack, frame{sym, lvl})
				}
			} else if _, fwdPush := opForward(g, sym, lvl); fwdPush {
				cur.Advance()
				return true
			} else if lvl.LeftPrec != lvl.RightPrec {
				stack = []frame{{sym, lvl}}
			} else if top.lvl.LeftPrec == top.lvl.RightPrec {
				cur.Advance()
				return false
			} else {
				stack = []frame{top}
			}
		}

		if !cur.Advance() {
			return false
		}
	}
}

// lookupTerminal resolves the cursor's current token text against the
// grammar's terminal symbols. A token whose text never was interned as a
// TERMINAL is "not in the grammar" per spec §4.5 step 2, even if it matches
// a TERMINAL_VARIABLE's class name lexically - the walker has no lexer and
// compares token text only, never classifies it.
func lookupTerminal(g *level.Grammar, text string) (symbol.Symbol, level.Level, bool) {
	sym, ok := g.Pool().Lookup(text, symbol.Terminal)
	if !ok {
		return symbol.Symbol{}, level.Level{}, false
	}
	lvl, ok := g.Level(sym)
	if !ok {
		return symbol.Symbol{}, level.Level{}, false
	}
	return sym, lvl, true
}
