// SPDX-License-Identifier: MIT

// Package drgn parses & formats the C & C++ type names a debugger engine
// accepts when looking types up: "struct task_struct *", "unsigned long",
// "int (*)[16]" & the like.
//
// Parsing builds TypeName descriptor trees; TypeName.String renders them
// back in canonical spelling. The lexing underneath is the grammar-agnostic
// pushback lexer of the lexer subpackage, driven by the tokenizer strategy
// of a Language.
package drgn

import (
	"errors"

	"github.com/sirupsen/logrus"
)

type (
	// Language selects the grammar dialect for type-name parsing.
	Language int
)

// Language dialects.
const (
	// LanguageC is the C grammar.
	LanguageC Language = iota

	// LanguageCPP extends the C grammar with `class` tags & template
	// arguments.
	LanguageCPP
)

// DefaultLanguage is the dialect the package-level functions parse with.
const DefaultLanguage = LanguageC

// Type-name errors.
var (
	// ErrSyntax reports text that does not lex or parse as a type name.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupported reports a type name using constructs a TypeName
	// cannot describe: function & _Complex types.
	ErrUnsupported = errors.New("unsupported type name")
)

var fLogger logrus.FieldLogger = logrus.NewEntry(logrus.New())

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { fLogger = l }

// String is the fmt.Stringer implementation for Language.
func (lang Language) String() string {
	if lang == LanguageCPP {
		return "C++"
	}

	return "C"
}

// ParseTypeName parses a type name in the DefaultLanguage.
func ParseTypeName(name string) (*TypeName, error) { return DefaultLanguage.ParseTypeName(name) }
