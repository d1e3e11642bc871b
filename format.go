// SPDX-License-Identifier: MIT
package drgn

import (
	"strconv"
	"strings"
)

// String renders the TypeName in canonical C syntax.
//
// The output parses back, under the Language that produced the TypeName,
// to an Equal descriptor. Pointers & arrays accumulate into an abstract
// declarator: an array of a pointer type parenthesizes the pointer,
// `int (*)[2]` against `int *[2]`.
func (t *TypeName) String() string {
	if t == nil {
		return ""
	}

	declarator := ""
	node := t
	for node.Elem != nil {
		switch node.Kind {
		case TypePointer:
			if node.Qualifiers != 0 && strings.HasPrefix(declarator, "*") {
				declarator = " " + declarator
			}
			declarator = "*" + node.Qualifiers.String() + declarator
		case TypeArray:
			if strings.HasPrefix(declarator, "*") {
				declarator = "(" + declarator + ")"
			}
			if node.Sized {
				declarator += "[" + strconv.FormatUint(node.Length, 10) + "]"
			} else {
				declarator += "[]"
			}
		}

		node = node.Elem
	}

	base := node.baseString()
	if declarator == "" {
		return base
	}

	return base + " " + declarator
}

// baseString renders the leaf: qualifiers & the primitive, tag or typedef
// spelling.
func (t *TypeName) baseString() string {
	var buffer strings.Builder
	if t.Qualifiers != 0 {
		buffer.WriteString(t.Qualifiers.String())
		buffer.WriteByte(' ')
	}

	switch t.Kind {
	case TypeStruct, TypeUnion, TypeClass, TypeEnum:
		buffer.WriteString(tagSpellings[t.Kind])
		buffer.WriteByte(' ')
		buffer.WriteString(t.Tag)
	case TypeTypedef:
		buffer.WriteString(t.Name)
	default:
		buffer.WriteString(t.Primitive.String())
	}

	return buffer.String()
}
