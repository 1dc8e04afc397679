package intermediate

import "fmt"

// Form tags the variant of a TypeSpec.
type Form int

const (
	FormScalar Form = iota
	FormEnumeration
	FormSubrange
	FormArray
	FormRecord
)

var formNames = [...]string{
	FormScalar:      "scalar",
	FormEnumeration: "enumeration",
	FormSubrange:    "subrange",
	FormArray:       "array",
	FormRecord:      "record",
}

func (f Form) String() string {
	if int(f) >= 0 && int(f) < len(formNames) {
		return formNames[f]
	}
	return fmt.Sprintf("Form(%d)", int(f))
}

// Primitive names the predefined types. Two specs with the same non-zero
// Primitive are the same type no matter which instance they are.
type Primitive int

const (
	PrimNone Primitive = iota
	PrimInteger
	PrimReal
	PrimBoolean
	PrimChar
	PrimUndefined
)

var primitiveNames = [...]string{
	PrimNone:      "",
	PrimInteger:   "integer",
	PrimReal:      "real",
	PrimBoolean:   "boolean",
	PrimChar:      "char",
	PrimUndefined: "undefined",
}

func (p Primitive) String() string {
	if int(p) >= 0 && int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// TypeSpec describes a type. Only the fields of its Form are meaningful.
type TypeSpec struct {
	Form       Form
	Identifier *Entry // type identifier, nil for anonymous types

	// Subrange
	Base     *TypeSpec
	MinValue int
	MaxValue int

	// Enumeration
	Constants []*Entry

	// Array
	IndexType    *TypeSpec
	ElementType  *TypeSpec
	ElementCount int

	// Record
	Fields *SymTab

	prim Primitive
}

// The predefined types. They are shared by every translation and must
// never be modified.
var (
	IntegerType   = &TypeSpec{Form: FormScalar, prim: PrimInteger}
	RealType      = &TypeSpec{Form: FormScalar, prim: PrimReal}
	BooleanType   = &TypeSpec{Form: FormEnumeration, prim: PrimBoolean}
	CharType      = &TypeSpec{Form: FormScalar, prim: PrimChar}
	UndefinedType = &TypeSpec{Form: FormScalar, prim: PrimUndefined}
)

func NewTypeSpec(form Form) *TypeSpec {
	return &TypeSpec{Form: form}
}

// NewStringType returns the type of a string literal: an array of char
// indexed by the subrange 1..len(s).
func NewStringType(s string) *TypeSpec {
	n := len([]rune(s))
	index := &TypeSpec{Form: FormSubrange, Base: IntegerType, MinValue: 1, MaxValue: n}
	return &TypeSpec{Form: FormArray, IndexType: index, ElementType: CharType, ElementCount: n}
}

// Primitive reports which predefined type t is, PrimNone for user types.
func (t *TypeSpec) Primitive() Primitive {
	if t == nil {
		return PrimNone
	}
	return t.prim
}

// BaseType returns the type a subrange ranges over, or t itself.
func (t *TypeSpec) BaseType() *TypeSpec {
	if t != nil && t.Form == FormSubrange && t.Base != nil {
		return t.Base
	}
	return t
}

// IsPascalString reports whether t is an array of char indexed by integers.
func (t *TypeSpec) IsPascalString() bool {
	if t == nil || t.Form != FormArray {
		return false
	}
	return t.ElementType.BaseType().Primitive() == PrimChar &&
		t.IndexType.BaseType().Primitive() == PrimInteger
}

// EnumCount is the number of values of an enumeration.
func (t *TypeSpec) EnumCount() int {
	if t.Primitive() == PrimBoolean {
		return 2
	}
	return len(t.Constants)
}

// Name is the type identifier, or a description of an anonymous type.
func (t *TypeSpec) Name() string {
	switch {
	case t == nil:
		return "<nil>"
	case t.prim != PrimNone:
		return t.prim.String()
	case t.Identifier != nil:
		return t.Identifier.Name()
	case t.Form == FormSubrange:
		return fmt.Sprintf("%d..%d", t.MinValue, t.MaxValue)
	case t.Form == FormArray:
		return fmt.Sprintf("array[%s] of %s", t.IndexType.Name(), t.ElementType.Name())
	}
	return "<" + t.Form.String() + ">"
}

func (t *TypeSpec) String() string { return t.Name() }

// SameType is identity for user types and tag equality for the
// predefined ones.
func SameType(a, b *TypeSpec) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	return a.prim != PrimNone && a.prim == b.prim
}
