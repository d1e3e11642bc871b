// SPDX-License-Identifier: MIT
package lexer

import "fmt"

type (
	// Kind int holding a grammar-defined tag classifying a Token.
	//
	// Values other than KindEOF carry no meaning to this package; they are
	// defined entirely by the tokenizer strategy in use.
	Kind int

	// Token describes one lexeme: its Kind & the span of source text it
	// covers.
	//
	// Val is a sub-slice of the text the producing Lexer borrows, not a
	// copy; a Token must not outlive that text.
	Token struct {
		Val  []byte // The span of this Token.
		Kind Kind   // The tag of this Token.
	}
)

// KindEOF is the reserved tag for the end-of-input sentinel.
//
// The zero Token is that sentinel: kind 0 with an empty span.
const KindEOF Kind = 0

// Len obtains the Token's span length in bytes.
func (t Token) Len() int { return len(t.Val) }

// EOF checks whether the Token is the end-of-input sentinel.
func (t Token) EOF() bool { return t.Kind == KindEOF && len(t.Val) == 0 }

// String is the fmt.Stringer implementation for Token.
func (t Token) String() string { return fmt.Sprintf("token(%d, %q)", t.Kind, t.Val) }
