// Package cursor defines the capability set the indenter needs from a text
// buffer (spec §4.6, §6): eighteen methods on an opaque context, plus an
// in-memory byte-buffer implementation for
// tests and a pair of adapters down to the narrower token interface the
// sexp walker consumes.
package cursor

// Cursor is the capability set consumed by package indent. A real editor
// widget supplies its own implementation; tests use Buffer below. The
// walker and indenter are written against this interface and never know
// which concrete buffer backs it.
type Cursor interface {
	// IsStart reports whether the cursor sits at the very start of the
	// buffer.
	IsStart() bool
	// StartsLine reports whether the cursor sits at the first column of
	// its line.
	StartsLine() bool
	// EndsLine reports whether the cursor sits at the last column of its
	// line (immediately before the line terminator, or at buffer end).
	EndsLine() bool

	// ForwardChar moves one character forward, reporting false and leaving
	// the cursor unchanged if already at buffer end.
	ForwardChar() bool
	// BackwardChar moves one character backward, reporting false and
	// leaving the cursor unchanged if already at buffer start.
	BackwardChar() bool
	// ForwardLine moves to the start of the next line, reporting false and
	// leaving the cursor unchanged if there is no next line.
	ForwardLine() bool
	// BackwardLine moves to the start of the previous line, reporting
	// false and leaving the cursor unchanged if there is no previous
	// line.
	BackwardLine() bool
	// ForwardToLineEnd moves to the last column of the current line.
	ForwardToLineEnd() bool
	// BackwardToLineStart moves to the first column of the current line.
	BackwardToLineStart() bool
	// ForwardComment skips one comment forward if the cursor sits at the
	// start of one, reporting whether it skipped anything.
	ForwardComment() bool
	// BackwardComment skips one comment backward if the cursor sits at
	// the end of one, reporting whether it skipped anything.
	BackwardComment() bool
	// ForwardToken skips one token forward (past any intervening
	// whitespace), returning its text and whether a token was found.
	ForwardToken() (string, bool)
	// BackwardToken skips one token backward, returning its text and
	// whether a token was found.
	BackwardToken() (string, bool)

	// GetOffset returns the cursor's byte offset from buffer start.
	GetOffset() int
	// GetLineOffset returns the cursor's column from the start of its
	// line, in runes.
	GetLineOffset() int
	// GetChar returns the rune at the cursor without moving it, or
	// (0, false) at buffer end.
	GetChar() (rune, bool)

	// PushContext saves the cursor's current state onto an internal LIFO
	// stack.
	PushContext()
	// PopContext restores the cursor to the state at the matching
	// PushContext. Popping with no matching push is a programming error.
	PopContext()
}
