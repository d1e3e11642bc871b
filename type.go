// SPDX-License-Identifier: MIT
package drgn

import (
	"fmt"
	"strings"
)

type (
	// TypeKind identifies the shape of a TypeName node.
	TypeKind int

	// Qualifiers is a bit set of C type qualifiers.
	Qualifiers uint8

	// PrimitiveType identifies a C arithmetic or void type by its canonical
	// spelling.
	PrimitiveType int

	// TypeName describes a parsed type name as a tree: pointer & array
	// nodes wrap an element TypeName down to a primitive, tag or typedef
	// leaf.
	//
	// A TypeName owns its strings; it stays valid after the parsed text is
	// gone.
	TypeName struct {
		// Elem is the element type of a TypePointer or TypeArray node.
		Elem *TypeName

		// Tag names a TypeStruct, TypeUnion, TypeClass or TypeEnum type.
		Tag string

		// Name names a TypeTypedef type.
		Name string

		// Length is the element count of a sized TypeArray node.
		Length uint64

		Kind       TypeKind
		Qualifiers Qualifiers

		// Primitive is set on TypeVoid, TypeInt, TypeBool & TypeFloat
		// nodes.
		Primitive PrimitiveType

		// Sized discriminates `[4]` from `[]` on a TypeArray node.
		Sized bool
	}
)

// TypeName kinds.
const (
	TypeVoid TypeKind = iota
	TypeInt
	TypeBool
	TypeFloat
	TypeStruct
	TypeUnion
	TypeClass
	TypeEnum
	TypeTypedef
	TypePointer
	TypeArray
)

// Type qualifiers.
const (
	QualifierConst Qualifiers = 1 << iota
	QualifierVolatile
	QualifierRestrict
	QualifierAtomic
)

// Primitive types.
const (
	PrimitiveVoid PrimitiveType = iota
	PrimitiveChar
	PrimitiveSignedChar
	PrimitiveUnsignedChar
	PrimitiveBool
	PrimitiveShort
	PrimitiveUnsignedShort
	PrimitiveInt
	PrimitiveUnsignedInt
	PrimitiveLong
	PrimitiveUnsignedLong
	PrimitiveLongLong
	PrimitiveUnsignedLongLong
	PrimitiveFloat
	PrimitiveDouble
	PrimitiveLongDouble
)

// qualifierSpellings is ordered by bit position.
var qualifierSpellings = [...]string{"const", "volatile", "restrict", "_Atomic"}

var primitiveSpellings = [...]string{
	PrimitiveVoid:             "void",
	PrimitiveChar:             "char",
	PrimitiveSignedChar:       "signed char",
	PrimitiveUnsignedChar:     "unsigned char",
	PrimitiveBool:             "_Bool",
	PrimitiveShort:            "short",
	PrimitiveUnsignedShort:    "unsigned short",
	PrimitiveInt:              "int",
	PrimitiveUnsignedInt:      "unsigned int",
	PrimitiveLong:             "long",
	PrimitiveUnsignedLong:     "unsigned long",
	PrimitiveLongLong:         "long long",
	PrimitiveUnsignedLongLong: "unsigned long long",
	PrimitiveFloat:            "float",
	PrimitiveDouble:           "double",
	PrimitiveLongDouble:       "long double",
}

// tagSpellings maps the tagged kinds to their introducing keyword.
var tagSpellings = map[TypeKind]string{
	TypeStruct: "struct",
	TypeUnion:  "union",
	TypeClass:  "class",
	TypeEnum:   "enum",
}

// String renders the set qualifiers space-separated in canonical order.
func (q Qualifiers) String() string {
	if q == 0 {
		return ""
	}

	var buffer strings.Builder
	for index := range qualifierSpellings {
		if q&(1<<index) == 0 {
			continue
		}

		if buffer.Len() > 0 {
			buffer.WriteByte(' ')
		}
		buffer.WriteString(qualifierSpellings[index])
	}

	return buffer.String()
}

// String obtains the canonical C spelling.
func (p PrimitiveType) String() string {
	if p < 0 || int(p) >= len(primitiveSpellings) {
		return fmt.Sprintf("primitive(%d)", int(p))
	}

	return primitiveSpellings[p]
}

// Equal checks whether two TypeNames describe the identical type.
func (t *TypeName) Equal(other *TypeName) bool {
	if t == nil || other == nil {
		return t == other
	}

	if t.Kind != other.Kind || t.Qualifiers != other.Qualifiers ||
		t.Primitive != other.Primitive || t.Tag != other.Tag ||
		t.Name != other.Name || t.Length != other.Length || t.Sized != other.Sized {
		return false
	}

	return t.Elem.Equal(other.Elem)
}
