// SPDX-License-Identifier: MIT
package drgn

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/Mu-L/drgn/lexer"
)

// KindEOF aliases the lexer's end-of-input sentinel kind.
const KindEOF = lexer.KindEOF

// Token kinds of the C family grammars.
//
// The keyword kinds form contiguous runs: KindVoid..KindComplex are the
// type-specifier keywords, KindConst..KindAtomic the qualifiers &
// KindStruct..KindEnum the tag keywords.
const (
	KindVoid lexer.Kind = iota + 1
	KindChar
	KindShort
	KindInt
	KindLong
	KindSigned
	KindUnsigned
	KindBool
	KindFloat
	KindDouble
	KindComplex

	KindConst
	KindRestrict
	KindVolatile
	KindAtomic

	KindStruct
	KindUnion
	KindClass
	KindEnum

	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindAsterisk
	KindDot

	KindNumber
	KindIdentifier
	KindTemplateArguments
)

type (
	keyword struct {
		spelling string
		kind     lexer.Kind
	}
)

// cKeywords is ordered by spelling for binary search.
var cKeywords = []keyword{
	{"_Atomic", KindAtomic},
	{"_Bool", KindBool},
	{"_Complex", KindComplex},
	{"char", KindChar},
	{"class", KindClass},
	{"const", KindConst},
	{"double", KindDouble},
	{"enum", KindEnum},
	{"float", KindFloat},
	{"int", KindInt},
	{"long", KindLong},
	{"restrict", KindRestrict},
	{"short", KindShort},
	{"signed", KindSigned},
	{"struct", KindStruct},
	{"union", KindUnion},
	{"unsigned", KindUnsigned},
	{"void", KindVoid},
	{"volatile", KindVolatile},
}

// kindNames indexes diagnostic spellings for the C family kinds.
var kindNames = [...]string{
	KindEOF:               "end of input",
	KindVoid:              "void",
	KindChar:              "char",
	KindShort:             "short",
	KindInt:               "int",
	KindLong:              "long",
	KindSigned:            "signed",
	KindUnsigned:          "unsigned",
	KindBool:              "_Bool",
	KindFloat:             "float",
	KindDouble:            "double",
	KindComplex:           "_Complex",
	KindConst:             "const",
	KindRestrict:          "restrict",
	KindVolatile:          "volatile",
	KindAtomic:            "_Atomic",
	KindStruct:            "struct",
	KindUnion:             "union",
	KindClass:             "class",
	KindEnum:              "enum",
	KindLParen:            "(",
	KindRParen:            ")",
	KindLBracket:          "[",
	KindRBracket:          "]",
	KindAsterisk:          "*",
	KindDot:               ".",
	KindNumber:            "number",
	KindIdentifier:        "identifier",
	KindTemplateArguments: "template arguments",
}

func isSpecifier(k lexer.Kind) bool  { return k >= KindVoid && k <= KindComplex }
func isQualifier(k lexer.Kind) bool  { return k >= KindConst && k <= KindAtomic }
func isTagKeyword(k lexer.Kind) bool { return k >= KindStruct && k <= KindEnum }

// keywordKind resolves word to its keyword kind, if it is one.
//
// `class` is a keyword to C++ alone; C lexes it as an identifier.
func keywordKind(word []byte, cpp bool) (kind lexer.Kind, ok bool) {
	index, found := slices.BinarySearchFunc(cKeywords, string(word), func(e keyword, target string) int {
		return strings.Compare(e.spelling, target)
	})
	if !found {
		return
	}
	if cKeywords[index].kind == KindClass && !cpp {
		return
	}

	kind, ok = cKeywords[index].kind, true

	return
}

// kindString obtains the diagnostic spelling of a kind.
func kindString(k lexer.Kind) string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// tokenString describes a token for diagnostics.
func tokenString(t lexer.Token) string {
	if t.EOF() {
		return "end of input"
	}

	return fmt.Sprintf("%q", t.Val)
}
