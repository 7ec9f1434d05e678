// Package smerr contains the error types raised by the grammar compilation
// pipeline: GrammarError for reportable failures in grammar text or grammar
// structure, and an assertion helper for conditions that indicate a caller
// bug rather than bad input.
package smerr

import (
	"errors"
	"fmt"
)

// grammarError is a reportable failure raised while compiling a grammar:
// a syntax error in grammar text, an unresolvable PREC2 relation conflict, or
// a cycle found while assigning precedence levels.
type grammarError struct {
	msg  string
	wrap error
}

func (e *grammarError) Error() string {
	return e.msg
}

// Unwrap gives the error that this GrammarError wraps, if any.
func (e *grammarError) Unwrap() error {
	return e.wrap
}

// Grammar returns a new GrammarError with the given message.
func Grammar(msg string) error {
	return &grammarError{msg: msg}
}

// Grammarf returns a new GrammarError with a message built from the given
// format string and arguments.
func Grammarf(format string, a ...interface{}) error {
	return &grammarError{msg: fmt.Sprintf(format, a...)}
}

// WrapGrammar returns a new GrammarError that wraps the given cause.
func WrapGrammar(cause error, msg string) error {
	return &grammarError{msg: msg, wrap: cause}
}

// WrapGrammarf is like WrapGrammar but builds its message from a format
// string and arguments.
func WrapGrammarf(cause error, format string, a ...interface{}) error {
	return &grammarError{msg: fmt.Sprintf(format, a...), wrap: cause}
}

// IsGrammarError returns whether err is (or wraps) a GrammarError.
func IsGrammarError(err error) bool {
	var ge *grammarError
	return errors.As(err, &ge)
}

// Assert panics with a ProgrammingError-style message if cond is false. Used
// for invariant violations that indicate a caller bug (unbalanced
// push/pop-context, a dropped pool still referenced, an ill-formed rule
// slipping past validation) rather than a reportable condition: per spec,
// these are not recoverable.
func Assert(cond bool, format string, a ...interface{}) {
	if !cond {
		panic("smie: programming error: " + fmt.Sprintf(format, a...))
	}
}
