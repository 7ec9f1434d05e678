package cursor

import (
	"unicode"
	"unicode/utf8"

	"github.com/dekarrin/smie/internal/smerr"
)

// Buffer is an in-memory Cursor over a fixed byte slice, for tests and for
// any caller that already has the full source text resident. It has no
// notion of insertion or mutation; it only reads and moves.
//
// CommentPrefix, if non-empty, marks a line comment: ForwardComment and
// BackwardComment skip a run of text from that prefix to the next (or
// previous) line terminator. Leave it empty to disable comment skipping
// entirely, which is the right choice whenever the grammar itself uses the
// candidate prefix character as an ordinary terminal.
type Buffer struct {
	text          []byte
	offset        int
	CommentPrefix string

	saved []int
}

// NewBuffer returns a Buffer positioned at the start of text.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: []byte(text)}
}

func (b *Buffer) IsStart() bool {
	return b.offset == 0
}

func (b *Buffer) StartsLine() bool {
	return b.offset == 0 || b.text[b.offset-1] == '\n'
}

func (b *Buffer) EndsLine() bool {
	return b.offset == len(b.text) || b.text[b.offset] == '\n'
}

func (b *Buffer) ForwardChar() bool {
	if b.offset >= len(b.text) {
		return false
	}
	_, size := utf8.DecodeRune(b.text[b.offset:])
	b.offset += size
	return true
}

func (b *Buffer) BackwardChar() bool {
	if b.offset == 0 {
		return false
	}
	_, size := utf8.DecodeLastRune(b.text[:b.offset])
	b.offset -= size
	return true
}

func (b *Buffer) ForwardLine() bool {
	i := b.offset
	for i < len(b.text) && b.text[i] != '\n' {
		i++
	}
	if i >= len(b.text) {
		return false
	}
	b.offset = i + 1
	return true
}

func (b *Buffer) BackwardLine() bool {
	lineStart := b.lineStart(b.offset)
	if lineStart == 0 {
		return false
	}
	b.offset = b.lineStart(lineStart - 1)
	return true
}

func (b *Buffer) ForwardToLineEnd() bool {
	i := b.offset
	for i < len(b.text) && b.text[i] != '\n' {
		i++
	}
	if i == b.offset {
		return false
	}
	b.offset = i
	return true
}

func (b *Buffer) BackwardToLineStart() bool {
	start := b.lineStart(b.offset)
	if start == b.offset {
		return false
	}
	b.offset = start
	return true
}

func (b *Buffer) ForwardComment() bool {
	if b.CommentPrefix == "" || !hasPrefixAt(b.text, b.offset, b.CommentPrefix) {
		return false
	}
	i := b.offset + len(b.CommentPrefix)
	for i < len(b.text) && b.text[i] != '\n' {
		i++
	}
	b.offset = i
	return true
}

func (b *Buffer) BackwardComment() bool {
	if b.CommentPrefix == "" {
		return false
	}
	lineStart := b.lineStart(b.offset)
	if !hasPrefixAt(b.text, lineStart, b.CommentPrefix) {
		return false
	}
	b.offset = lineStart
	return true
}

func (b *Buffer) ForwardToken() (string, bool) {
	i := b.offset
	for i < len(b.text) && isSpaceByte(b.text[i]) {
		i++
	}
	start := i
	for i < len(b.text) && !isSpaceByte(b.text[i]) {
		i++
	}
	if i == start {
		b.offset = i
		return "", false
	}
	b.offset = i
	return string(b.text[start:i]), true
}

func (b *Buffer) BackwardToken() (string, bool) {
	i := b.offset
	for i > 0 && isSpaceByte(b.text[i-1]) {
		i--
	}
	end := i
	for i > 0 && !isSpaceByte(b.text[i-1]) {
		i--
	}
	if i == end {
		b.offset = i
		return "", false
	}
	b.offset = i
	return string(b.text[i:end]), true
}

func (b *Buffer) GetOffset() int {
	return b.offset
}

func (b *Buffer) GetLineOffset() int {
	start := b.lineStart(b.offset)
	return utf8.RuneCount(b.text[start:b.offset])
}

func (b *Buffer) GetChar() (rune, bool) {
	if b.offset >= len(b.text) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(b.text[b.offset:])
	return r, true
}

func (b *Buffer) PushContext() {
	b.saved = append(b.saved, b.offset)
}

func (b *Buffer) PopContext() {
	smerr.Assert(len(b.saved) > 0, "cursor: PopContext called with no matching PushContext")
	n := len(b.saved) - 1
	b.offset = b.saved[n]
	b.saved = b.saved[:n]
}

// lineStart returns the byte offset of the first column of the line
// containing pos.
func (b *Buffer) lineStart(pos int) int {
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

func isSpaceByte(c byte) bool {
	return unicode.IsSpace(rune(c))
}

func hasPrefixAt(text []byte, pos int, prefix string) bool {
	if pos+len(prefix) > len(text) {
		return false
	}
	return string(text[pos:pos+len(prefix)]) == prefix
}
