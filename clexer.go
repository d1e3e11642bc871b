// SPDX-License-Identifier: MIT
package drgn

import (
	"fmt"

	"github.com/Mu-L/drgn/lexer"
)

type (
	// cTokenizer lexes the C family grammars; its tokenize method is the
	// lexer.TokenizerFunc behind Language.Tokenizer.
	cTokenizer struct {
		cpp bool
	}
)

// Tokenizer obtains the tokenizer strategy lexing this Language.
func (lang Language) Tokenizer() lexer.TokenizerFunc {
	return cTokenizer{cpp: lang == LanguageCPP}.tokenize
}

// tokenize produces one token at the Lexer's cursor.
//
// Tokens are single punctuation bytes, decimal number runs, identifiers
// (with keyword promotion) &, for C++, balanced `<...>` template-argument
// spans. ASCII whitespace between tokens is consumed; at the end of the
// text the zero Token repeats indefinitely. On failure the cursor is left
// on the offending byte.
func (c cTokenizer) tokenize(l *lexer.Lexer) (t lexer.Token, err error) {
	rest := l.Rest()

	skip := 0
	for skip < len(rest) && isSpace(rest[skip]) {
		skip++
	}
	l.Advance(skip)
	rest = rest[skip:]

	if len(rest) < 1 {
		return
	}

	length := 1
	switch b := rest[0]; {
	case b == '(':
		t.Kind = KindLParen
	case b == ')':
		t.Kind = KindRParen
	case b == '[':
		t.Kind = KindLBracket
	case b == ']':
		t.Kind = KindRBracket
	case b == '*':
		t.Kind = KindAsterisk
	case b == '.':
		t.Kind = KindDot
	case isDigit(b):
		for length < len(rest) && isDigit(rest[length]) {
			length++
		}
		t.Kind = KindNumber
	case isIdentStart(b):
		for length < len(rest) && isIdent(rest[length]) {
			length++
		}

		t.Kind = KindIdentifier
		if kind, ok := keywordKind(rest[:length], c.cpp); ok {
			t.Kind = kind
		}
	case b == '<' && c.cpp:
		// One balanced `<...>` run is a single template-arguments token.
		depth := 1
		for length < len(rest) && depth > 0 {
			switch rest[length] {
			case '<':
				depth++
			case '>':
				depth--
			}
			length++
		}
		if depth != 0 {
			err = fmt.Errorf("%w: unterminated template arguments at offset %d", ErrSyntax, l.Pos())
			return
		}

		t.Kind = KindTemplateArguments
	default:
		err = fmt.Errorf("%w: unexpected byte %q at offset %d", ErrSyntax, b, l.Pos())
		return
	}

	t.Val = rest[:length]
	l.Advance(length)

	return
}

// isSpace return true for ASCII whitespace.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

// isDigit return true for a decimal digit.
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isIdentStart return true for bytes that may begin an identifier.
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isIdent return true for bytes that may continue an identifier.
func isIdent(b byte) bool { return isIdentStart(b) || isDigit(b) }
