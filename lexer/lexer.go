// SPDX-License-Identifier: MIT

// Package lexer implements a grammar-agnostic lexer with unbounded pushback,
// the primitive backing recursive-descent parsing of the short textual
// grammars embedded in the engine (type names & the like).
//
// The grammar itself lives in a TokenizerFunc supplied by the caller; the
// Lexer only decides, per call, whether to serve a Token from its pushback
// stack or from that strategy.
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// TokenizerFunc is the pluggable tokenizer strategy: it produces the next
	// Token at the Lexer's cursor & advances the cursor past the consumed
	// lexeme, or fails.
	//
	// A strategy reads through Rest & advances through Advance. Once the text
	// is exhausted it must keep returning the zero Token (the end-of-input
	// sentinel) on every further call; the Lexer performs no end-of-input
	// handling of its own. A well-behaved strategy advances the cursor only
	// past bytes it consumed, so a caller can report failures at a sensible
	// position.
	TokenizerFunc func(*Lexer) (Token, error)

	// Lexer serializes access to a stream of Tokens derived lazily from
	// borrowed text, allowing arbitrary non-destructive lookahead &
	// multi-token backtracking.
	//
	// A Lexer is constructed once per parse, used synchronously by exactly
	// one parser invocation & discarded when parsing completes. It borrows
	// text for its entire lifetime & never copies nor mutates it; concurrent
	// parses need independent Lexers.
	Lexer struct {
		logger logrus.FieldLogger

		// tokenize is the grammar-specific tokenizer strategy.
		tokenize TokenizerFunc

		// text is the borrowed input.
		text []byte

		// pushback holds Tokens to re-deliver before consulting tokenize;
		// the last element is the next to return.
		pushback []Token

		// pos is the cursor within text, owned by tokenize between calls.
		pos int

		debug bool
	}

	// Option defines the Lexer functional option type.
	Option func(*Lexer)
)

const defPushbackSize = 8

// New creates a Lexer lexing text through the tokenize strategy.
//
// A nil tokenize serves the end-of-input sentinel indefinitely.
func New(tokenize TokenizerFunc, text []byte, options ...Option) *Lexer {
	l := &Lexer{
		logger:   logrus.New(),
		tokenize: tokenize,
		text:     text,
		pushback: make([]Token, 0, defPushbackSize),
	}
	if l.tokenize == nil {
		l.tokenize = func(*Lexer) (Token, error) { return Token{}, nil }
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Pop removes & returns the next Token.
//
// The Token comes off the top of the pushback stack when one is there (the
// cursor & strategy untouched), otherwise from the tokenizer strategy. A
// strategy failure is returned unchanged; the pushback stack is not modified
// & the cursor stays wherever the strategy left it.
func (l *Lexer) Pop() (t Token, err error) {
	if n := len(l.pushback); n > 0 {
		t = l.pushback[n-1]
		l.pushback = l.pushback[:n-1]

		if l.debug {
			l.logger.Debug("lexer Pop, pushback: ", t)
		}

		return
	}

	if t, err = l.tokenize(l); err != nil {
		return
	}

	if l.debug {
		l.logger.Debug("lexer Pop, tokenize: ", t)
	}

	return
}

// Push places t on top of the pushback stack; the very next Pop or Peek
// returns it.
//
// Tokens pushed in sequence come back in LIFO order: a parser that popped N
// Tokens restores the original order by pushing them back in reverse. The
// stack is unbounded, growing to whatever depth backtracking reaches, & any
// Token is accepted, whether previously popped or fabricated.
func (l *Lexer) Push(t Token) { l.pushback = append(l.pushback, t) }

// Peek returns the Token the next Pop would return, without consuming it.
//
// Equivalent to Pop immediately followed by Push of the obtained Token;
// repeated Peeks with no intervening Pop or Push keep returning that Token.
// On failure the error is returned unchanged & nothing is pushed.
func (l *Lexer) Peek() (t Token, err error) {
	if t, err = l.Pop(); err != nil {
		return
	}
	l.Push(t)

	return
}

// Depth obtains the pushback stack depth.
func (l *Lexer) Depth() int { return len(l.pushback) }

// Text obtains the borrowed input text.
func (l *Lexer) Text() []byte { return l.text }

// Pos obtains the cursor position within the text.
func (l *Lexer) Pos() int { return l.pos }

// Rest returns the unconsumed remainder of the text.
//
// Tokenizer strategies slice their Token spans out of this; the spans stay
// borrows into the Lexer's text.
func (l *Lexer) Rest() []byte { return l.text[l.pos:] }

// Advance moves the cursor n bytes forward, clamped to the end of the text.
func (l *Lexer) Advance(n int) {
	if n < 1 {
		return
	}
	if rem := len(l.text) - l.pos; n > rem {
		n = rem
	}

	l.pos += n
}
