// SPDX-License-Identifier: MIT
package drgn

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestLanguage_ParseTypeNames(t *testing.T) {
	type args struct {
		names   []string
		workers int
	}
	tests := []struct {
		name    string
		args    args
		want    []*TypeName
		wantErr error
	}{{
		name: "results keep input order",
		args: args{[]string{"int", "struct foo *", "char [4]"}, 2},
		want: []*TypeName{
			{Kind: TypeInt, Primitive: PrimitiveInt},
			{Kind: TypePointer, Elem: &TypeName{Kind: TypeStruct, Tag: "foo"}},
			{Kind: TypeArray, Sized: true, Length: 4, Elem: &TypeName{Kind: TypeInt, Primitive: PrimitiveChar}},
		},
	}, {
		name: "worker count defaults",
		args: args{[]string{"unsigned long", "void *"}, 0},
		want: []*TypeName{
			{Kind: TypeInt, Primitive: PrimitiveUnsignedLong},
			{Kind: TypePointer, Elem: &TypeName{Kind: TypeVoid, Primitive: PrimitiveVoid}},
		},
	}, {
		name: "single name",
		args: args{[]string{"double"}, 4},
		want: []*TypeName{{Kind: TypeFloat, Primitive: PrimitiveDouble}},
	}, {
		name:    "no names",
		args:    args{nil, 2},
		wantErr: ErrNoTypeNames,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LanguageC.ParseTypeNames(context.Background(), tt.args.names, tt.args.workers)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrParseTypeNames) {
					t.Errorf("Language.ParseTypeNames() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Language.ParseTypeNames() error = %v, wantErr nil", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Language.ParseTypeNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLanguage_ParseTypeNames_failures checks a bad name fails its slot
// alone & every failure surfaces in the chained error.
func TestLanguage_ParseTypeNames_failures(t *testing.T) {
	names := []string{"unsigned int", "foo bar", "int ()"}

	types, err := LanguageC.ParseTypeNames(context.Background(), names, 2)
	for _, want := range []error{ErrParseTypeNames, ErrSyntax, ErrUnsupported} {
		if !errors.Is(err, want) {
			t.Errorf("Language.ParseTypeNames() error = %v, want chained %v", err, want)
		}
	}

	if want := (&TypeName{Kind: TypeInt, Primitive: PrimitiveUnsignedInt}); !types[0].Equal(want) {
		t.Errorf("types[0] = %v, want %v", types[0], want)
	}
	for _, index := range []int{1, 2} {
		if types[index] != nil {
			t.Errorf("types[%d] = %v, want nil", index, types[index])
		}
	}
}

func TestLanguage_ParseTypeNames_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	types, err := LanguageC.ParseTypeNames(ctx, []string{"int", "char", "void"}, 2)
	for _, want := range []error{ErrParseTypeNames, context.Canceled} {
		if !errors.Is(err, want) {
			t.Errorf("Language.ParseTypeNames() error = %v, want chained %v", err, want)
		}
	}

	for index := range types {
		if types[index] != nil {
			t.Errorf("types[%d] = %v, want nil", index, types[index])
		}
	}
}

func TestLanguage_ParseTypeNames_large(t *testing.T) {
	names := make([]string, 128)
	for index := range names {
		names[index] = fmt.Sprintf("struct s%d *", index)
	}

	types, err := LanguageC.ParseTypeNames(context.Background(), names, 8)
	if err != nil {
		t.Fatalf("Language.ParseTypeNames() error = %v, wantErr nil", err)
	}

	for index := range types {
		if types[index] == nil || types[index].Elem == nil {
			t.Fatalf("types[%d] = %v, want a struct pointer", index, types[index])
		}
		if want := fmt.Sprintf("s%d", index); types[index].Elem.Tag != want {
			t.Errorf("types[%d].Elem.Tag = %v, want %v", index, types[index].Elem.Tag, want)
		}
	}
}

func BenchmarkLanguage_ParseTypeNames(b *testing.B) {
	names := make([]string, 64)
	for index := range names {
		names[index] = fmt.Sprintf("const struct s%d *(*)[%d]", index, index+1)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if _, err := LanguageC.ParseTypeNames(context.Background(), names, 4); err != nil {
			b.Fatal(err)
		}
	}
}
