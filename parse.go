// SPDX-License-Identifier: MIT
package drgn

import (
	"fmt"
	"strconv"

	"github.com/Mu-L/drgn/lexer"
)

type (
	// typeNameParser performs one recursive-descent parse of one type name
	// over one Lexer.
	typeNameParser struct {
		l   *lexer.Lexer
		cpp bool
	}

	// declaratorOp is one pointer or array wrapping collected off an
	// abstract declarator; a parse applies its ops in order, innermost
	// first.
	declaratorOp struct {
		// qualifiers of a pointer op.
		qualifiers Qualifiers

		// length of a sized array op.
		length uint64

		pointer bool
		sized   bool
	}

	// specifierSet accumulates type-specifier keywords, rejecting the
	// combinations C does not define. Keywords combine in any order:
	// `long unsigned long` is `unsigned long long`.
	specifierSet struct {
		sign lexer.Kind // KindSigned or KindUnsigned.
		size lexer.Kind // KindShort or KindLong.
		base lexer.Kind // KindVoid, KindChar, KindInt, KindBool, KindFloat or KindDouble.

		longLong bool
	}
)

// ParseTypeName parses a type name of this Language into its TypeName.
//
// The grammar covers specifier lists (primitives in any keyword order,
// struct/union/class/enum tags, typedef names, qualifiers) & abstract
// pointer/array declarators. Function & _Complex types have no TypeName
// representation & fail with ErrUnsupported; anything else that does not
// lex or parse fails with ErrSyntax.
func (lang Language) ParseTypeName(name string) (t *TypeName, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("type name %q: %w", name, err)
		}
	}()

	if name == "" {
		err = fmt.Errorf("%w: empty type name", ErrSyntax)
		return
	}

	p := typeNameParser{
		l:   lexer.New(lang.Tokenizer(), []byte(name), lexer.WithLogger(fLogger)),
		cpp: lang == LanguageCPP,
	}
	if t, err = p.parse(); err != nil {
		t = nil
	}

	return
}

// parse consumes the whole text as one type name.
func (p *typeNameParser) parse() (t *TypeName, err error) {
	if t, err = p.parseSpecifierList(); err != nil {
		return
	}

	var ops []declaratorOp
	if ops, err = p.parseDeclarator(); err != nil {
		return
	}

	var tok lexer.Token
	if tok, err = p.l.Pop(); err != nil {
		return
	}
	if !tok.EOF() {
		if tok.Kind == KindLParen {
			err = fmt.Errorf("%w: function types", ErrUnsupported)
			return
		}

		err = fmt.Errorf("%w: expected end of type name, got %s", ErrSyntax, tokenString(tok))
		return
	}

	for _, op := range ops {
		t = op.apply(t)
	}

	return
}

// parseSpecifierList pops tokens for as long as they extend the specifier
// list, then hands the first token past it back to the Lexer for the
// declarator.
func (p *typeNameParser) parseSpecifierList() (t *TypeName, err error) {
	var (
		qualifiers Qualifiers
		spec       specifierSet
		tag        *TypeName
		name       string
	)

	for {
		var tok lexer.Token
		if tok, err = p.l.Pop(); err != nil {
			return
		}

		switch kind := tok.Kind; {
		case isQualifier(kind):
			// C folds duplicate qualifiers.
			qualifiers |= qualifierFor(kind)
		case isSpecifier(kind):
			if tag != nil || name != "" {
				err = fmt.Errorf("%w: cannot combine %q with preceding type", ErrSyntax, tok.Val)
				return
			}
			if err = spec.add(kind); err != nil {
				return
			}
		case isTagKeyword(kind):
			if tag != nil || name != "" || !spec.empty() {
				err = fmt.Errorf("%w: cannot combine %q with preceding type", ErrSyntax, tok.Val)
				return
			}
			if tag, err = p.parseTag(kind); err != nil {
				return
			}
		case kind == KindIdentifier && spec.empty() && tag == nil && name == "":
			if name, err = p.appendTemplateArguments(string(tok.Val)); err != nil {
				return
			}
		default:
			p.l.Push(tok)

			switch {
			case tag != nil:
				tag.Qualifiers = qualifiers
				t = tag
			case name != "":
				t = &TypeName{Kind: TypeTypedef, Name: name, Qualifiers: qualifiers}
			case !spec.empty():
				t = &TypeName{Qualifiers: qualifiers}
				t.Kind, t.Primitive = spec.resolve()
			default:
				err = fmt.Errorf("%w: expected type specifier, got %s", ErrSyntax, tokenString(tok))
			}

			return
		}
	}
}

// parseTag parses the identifier naming a struct, union, class or enum
// type.
func (p *typeNameParser) parseTag(keyword lexer.Kind) (t *TypeName, err error) {
	var tok lexer.Token
	if tok, err = p.l.Pop(); err != nil {
		return
	}
	if tok.Kind != KindIdentifier {
		err = fmt.Errorf("%w: expected identifier after %s, got %s",
			ErrSyntax, kindString(keyword), tokenString(tok))
		return
	}

	tag := string(tok.Val)
	if tag, err = p.appendTemplateArguments(tag); err != nil {
		return
	}

	t = &TypeName{Kind: tagKindFor(keyword), Tag: tag}

	return
}

// appendTemplateArguments concatenates a trailing template-arguments token;
// C++ tags & typedef names may carry one.
func (p *typeNameParser) appendTemplateArguments(base string) (name string, err error) {
	name = base
	if !p.cpp {
		return
	}

	var tok lexer.Token
	if tok, err = p.l.Peek(); err != nil {
		return
	}
	if tok.Kind != KindTemplateArguments {
		return
	}

	if _, err = p.l.Pop(); err != nil {
		return
	}
	name += string(tok.Val)

	return
}

// parseDeclarator parses an abstract declarator into its op list.
func (p *typeNameParser) parseDeclarator() (ops []declaratorOp, err error) {
	for {
		var tok lexer.Token
		if tok, err = p.l.Peek(); err != nil {
			return
		}
		if tok.Kind != KindAsterisk {
			break
		}
		if _, err = p.l.Pop(); err != nil {
			return
		}

		// A pointer prefix binds closest to the base type.
		op := declaratorOp{pointer: true}
		if op.qualifiers, err = p.parsePointerQualifiers(); err != nil {
			return
		}

		ops = append(ops, op)
	}

	var direct []declaratorOp
	if direct, err = p.parseDirectDeclarator(); err != nil {
		return
	}
	ops = append(ops, direct...)

	return
}

// parsePointerQualifiers collects the qualifier keywords after a `*`.
func (p *typeNameParser) parsePointerQualifiers() (qualifiers Qualifiers, err error) {
	for {
		var tok lexer.Token
		if tok, err = p.l.Pop(); err != nil {
			return
		}
		if !isQualifier(tok.Kind) {
			p.l.Push(tok)
			return
		}

		qualifiers |= qualifierFor(tok.Kind)
	}
}

// parseDirectDeclarator parses a parenthesized declarator group & the
// array suffixes after it.
//
// A `(` that does not open a grouped declarator would have to open a
// function declarator; those have no TypeName representation.
func (p *typeNameParser) parseDirectDeclarator() (ops []declaratorOp, err error) {
	var tok lexer.Token
	if tok, err = p.l.Peek(); err != nil {
		return
	}

	var inner []declaratorOp
	if tok.Kind == KindLParen {
		var groups bool
		if groups, err = p.opensGroup(); err != nil {
			return
		}
		if !groups {
			err = fmt.Errorf("%w: function types", ErrUnsupported)
			return
		}

		if _, err = p.l.Pop(); err != nil {
			return
		}
		if inner, err = p.parseDeclarator(); err != nil {
			return
		}

		if tok, err = p.l.Pop(); err != nil {
			return
		}
		if tok.Kind != KindRParen {
			err = fmt.Errorf("%w: expected %q, got %s", ErrSyntax, ")", tokenString(tok))
			return
		}
	}

	var suffixes []declaratorOp
	if suffixes, err = p.parseArraySuffixes(); err != nil {
		return
	}

	// Suffixes bind left to right, so they wrap in reverse.
	for index := len(suffixes) - 1; index >= 0; index-- {
		ops = append(ops, suffixes[index])
	}
	ops = append(ops, inner...)

	return
}

// opensGroup checks whether the `(` at the front starts a grouped
// declarator, which takes looking one token past it; both tokens go back
// on the Lexer.
func (p *typeNameParser) opensGroup() (ok bool, err error) {
	paren, err := p.l.Pop()
	if err != nil {
		return
	}

	tok, err := p.l.Peek()
	p.l.Push(paren)
	if err != nil {
		return
	}

	switch tok.Kind {
	case KindAsterisk, KindLParen, KindLBracket:
		ok = true
	}

	return
}

// parseArraySuffixes parses `[length]` & `[]` runs.
func (p *typeNameParser) parseArraySuffixes() (ops []declaratorOp, err error) {
	for {
		var tok lexer.Token
		if tok, err = p.l.Pop(); err != nil {
			return
		}
		if tok.Kind != KindLBracket {
			p.l.Push(tok)
			return
		}

		var op declaratorOp
		if tok, err = p.l.Pop(); err != nil {
			return
		}
		if tok.Kind == KindNumber {
			if op.length, err = strconv.ParseUint(string(tok.Val), 10, 64); err != nil {
				err = fmt.Errorf("%w: array length %q: %v", ErrSyntax, tok.Val, err)
				return
			}
			op.sized = true

			if tok, err = p.l.Pop(); err != nil {
				return
			}
		}
		if tok.Kind != KindRBracket {
			err = fmt.Errorf("%w: expected %q, got %s", ErrSyntax, "]", tokenString(tok))
			return
		}

		ops = append(ops, op)
	}
}

// apply wraps t in the pointer or array type the op describes.
func (op declaratorOp) apply(t *TypeName) *TypeName {
	if op.pointer {
		return &TypeName{Kind: TypePointer, Qualifiers: op.qualifiers, Elem: t}
	}

	return &TypeName{Kind: TypeArray, Elem: t, Length: op.length, Sized: op.sized}
}

// add folds one specifier keyword into the set.
func (s *specifierSet) add(kind lexer.Kind) error {
	ok := false

	switch kind {
	case KindVoid, KindBool, KindFloat:
		if ok = s.base == 0 && s.sign == 0 && s.size == 0 && !s.longLong; ok {
			s.base = kind
		}
	case KindChar:
		if ok = s.base == 0 && s.size == 0 && !s.longLong; ok {
			s.base = kind
		}
	case KindInt:
		if ok = s.base == 0; ok {
			s.base = kind
		}
	case KindDouble:
		if ok = s.base == 0 && s.sign == 0 && s.size != KindShort && !s.longLong; ok {
			s.base = kind
		}
	case KindShort:
		if ok = (s.base == 0 || s.base == KindInt) && s.size == 0 && !s.longLong; ok {
			s.size = kind
		}
	case KindLong:
		switch {
		case s.base == KindDouble:
			if ok = s.size == 0 && !s.longLong; ok {
				s.size = kind
			}
		case s.base == 0 || s.base == KindInt:
			switch {
			case s.size == 0:
				s.size, ok = kind, true
			case s.size == KindLong && !s.longLong:
				s.longLong, ok = true, true
			}
		}
	case KindSigned, KindUnsigned:
		if ok = s.sign == 0 && (s.base == 0 || s.base == KindChar || s.base == KindInt); ok {
			s.sign = kind
		}
	case KindComplex:
		return fmt.Errorf("%w: _Complex types", ErrUnsupported)
	}

	if !ok {
		return fmt.Errorf("%w: cannot combine %s into specifier list", ErrSyntax, kindString(kind))
	}

	return nil
}

func (s specifierSet) empty() bool { return s == specifierSet{} }

// resolve maps a complete specifier set to its type kind & primitive.
func (s specifierSet) resolve() (TypeKind, PrimitiveType) {
	switch s.base {
	case KindVoid:
		return TypeVoid, PrimitiveVoid
	case KindBool:
		return TypeBool, PrimitiveBool
	case KindFloat:
		return TypeFloat, PrimitiveFloat
	case KindDouble:
		if s.size == KindLong {
			return TypeFloat, PrimitiveLongDouble
		}

		return TypeFloat, PrimitiveDouble
	case KindChar:
		switch s.sign {
		case KindSigned:
			return TypeInt, PrimitiveSignedChar
		case KindUnsigned:
			return TypeInt, PrimitiveUnsignedChar
		default:
			return TypeInt, PrimitiveChar
		}
	}

	// What remains is an int variant: KindInt or a bare sign/size run.
	unsigned := s.sign == KindUnsigned
	switch {
	case s.longLong:
		if unsigned {
			return TypeInt, PrimitiveUnsignedLongLong
		}

		return TypeInt, PrimitiveLongLong
	case s.size == KindLong:
		if unsigned {
			return TypeInt, PrimitiveUnsignedLong
		}

		return TypeInt, PrimitiveLong
	case s.size == KindShort:
		if unsigned {
			return TypeInt, PrimitiveUnsignedShort
		}

		return TypeInt, PrimitiveShort
	default:
		if unsigned {
			return TypeInt, PrimitiveUnsignedInt
		}

		return TypeInt, PrimitiveInt
	}
}

// qualifierFor maps a qualifier keyword kind to its Qualifiers bit.
func qualifierFor(kind lexer.Kind) Qualifiers {
	switch kind {
	case KindConst:
		return QualifierConst
	case KindRestrict:
		return QualifierRestrict
	case KindVolatile:
		return QualifierVolatile
	default:
		return QualifierAtomic
	}
}

// tagKindFor maps a tag keyword kind to its TypeKind.
func tagKindFor(kind lexer.Kind) TypeKind {
	switch kind {
	case KindStruct:
		return TypeStruct
	case KindUnion:
		return TypeUnion
	case KindClass:
		return TypeClass
	default:
		return TypeEnum
	}
}
