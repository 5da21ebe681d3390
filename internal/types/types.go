// Package types implements the value-semantic type-descriptor
// algebra: a small tagged struct with one variant per shape a
// declarator can produce (Basic, Pointer, Array, Function, Invalid),
// plus the derivation and predicate operations the analyzer drives
// its type-checking off of. Types are passed and returned by value
// throughout — there is no shared mutable type graph to alias.
package types

import (
	"fmt"

	"github.com/th13vn/cc0/internal/symbols"
)

// Variant tags the shape a Type describes.
type Variant int

const (
	VInvalid Variant = iota
	VBasic
	VPointer
	VArray
	VFunction
)

// Type is the value-semantic descriptor. Only the fields relevant to
// Variant are meaningful; the rest are zero.
type Type struct {
	Variant Variant

	Basic *symbols.Symbol // VBasic: the Type/Struct/Enum symbol named

	Base *Base // VPointer, VArray: element/pointee type, boxed to keep Type copyable

	Length int // VArray: element count, -1 if unspecified

	Return     *Base // VFunction: return type
	ParamCount int   // VFunction: declared parameter count
	Params     []Type // VFunction: declared parameter types, parallel to ParamCount
}

// Base boxes a Type so VPointer/VArray/VFunction can refer to another
// Type by value without an infinitely-sized struct.
type Base struct {
	T Type
}

// Invalid is the bottom type: it silently propagates through every
// predicate and derivation except IsInvalid and the comma/void rule,
// so a single detected error does not cascade into a wall of
// unrelated diagnostics.
var Invalid = Type{Variant: VInvalid}

// builtinNames is indexed by symbols.Builtin, giving the keyword each
// pre-populated basic-type symbol is named after.
var builtinNames = [...]string{
	symbols.BuiltinVoid: "void",
	symbols.BuiltinBool: "bool",
	symbols.BuiltinChar: "char",
	symbols.BuiltinInt:  "int",
}

// InsertBuiltins inserts the four basic-type symbols (void, bool,
// char, int) directly under root, so the builder's keyword-type
// parsing (`b.scope.Lookup("int")`, etc.) resolves them the same way
// it resolves a user-declared struct or enum tag. Each symbol's Type
// is set to its own Basic descriptor once inserted.
func InsertBuiltins(root *symbols.Symbol) {
	for _, name := range builtinNames {
		sym, ok := root.Insert(name, symbols.KindType)
		if !ok {
			sym, _ = root.LookupLocal(name)
		}
		sym.Type = Basic(sym)
	}
}

// Basic constructs a named basic/struct/enum type from its symbol.
func Basic(sym *symbols.Symbol) Type {
	if sym == nil {
		return Invalid
	}
	return Type{Variant: VBasic, Basic: sym}
}

// Pointer constructs a pointer-to-base type.
func Pointer(base Type) Type {
	return Type{Variant: VPointer, Base: &Base{T: base}}
}

// Array constructs a fixed- or unspecified-length array of base.
// length < 0 denotes an unspecified (incomplete) array length.
func Array(base Type, length int) Type {
	return Type{Variant: VArray, Base: &Base{T: base}, Length: length}
}

// Function constructs a function type returning ret with the given
// declared parameter types.
func Function(ret Type, params ...Type) Type {
	return Type{Variant: VFunction, Return: &Base{T: ret}, ParamCount: len(params), Params: params}
}

// Duplicate returns an independent value copy of t. Because Type is
// already passed by value and its only indirections (Base/Return) are
// never mutated in place, Duplicate is equivalent to a plain
// assignment; it exists so call sites can say what they mean.
func Duplicate(t Type) Type {
	return t
}

// DeriveFrom returns a copy of t with no change — the identity
// derivation, used where the analyzer wants to record "the expression
// simply has this operand's type" without aliasing the operand's own
// Type value.
func DeriveFrom(t Type) Type {
	return Duplicate(t)
}

// DerivePointer returns the pointer-to-t type.
func DerivePointer(t Type) Type {
	if IsInvalid(t) {
		return Invalid
	}
	return Pointer(t)
}

// DeriveBase returns the pointee/element type of a pointer or array
// type, or Invalid if t is neither.
func DeriveBase(t Type) Type {
	switch t.Variant {
	case VPointer, VArray:
		return t.Base.T
	default:
		return Invalid
	}
}

// DeriveArray returns the array-of-t type with the given length.
func DeriveArray(t Type, length int) Type {
	if IsInvalid(t) {
		return Invalid
	}
	return Array(t, length)
}

// DeriveReturn returns the return type of a function type, or Invalid
// if t is not callable.
func DeriveReturn(t Type) Type {
	if t.Variant != VFunction {
		return Invalid
	}
	return t.Return.T
}

// numericRank orders the basic numeric types by width for
// DeriveFromTwo's promotion rule: int widest, then char, then bool.
// Non-numeric basic types and every other variant rank below bool, so
// they never win a fold against a numeric operand.
func numericRank(t Type) int {
	if t.Variant != VBasic || t.Basic == nil {
		return -1
	}
	switch t.Basic.Name {
	case "int":
		return 2
	case "char":
		return 1
	case "bool":
		return 0
	default:
		return -1
	}
}

// DeriveFromTwo folds two operand types into a single result type for
// a binary operator or ternary expression: Invalid wins (propagates)
// over any concrete type; a pointer operand wins over a numeric one
// (pointer arithmetic keeps the pointer's type); and between two
// numeric basic types the wider rank wins, int > char > bool.
// Otherwise the left operand's type is the result.
func DeriveFromTwo(l, r Type) Type {
	if IsInvalid(l) || IsInvalid(r) {
		return Invalid
	}
	if IsPointer(l) {
		return l
	}
	if IsPointer(r) {
		return r
	}
	lRank, rRank := numericRank(l), numericRank(r)
	if lRank >= 0 && rRank >= 0 && rRank > lRank {
		return r
	}
	return l
}

// DeriveUnified folds a sequence of element types (e.g. from an array
// literal) into the single type describing all of them, or Invalid if
// any element is incompatible with the first.
func DeriveUnified(elems []Type) Type {
	if len(elems) == 0 {
		return Invalid
	}
	unified := elems[0]
	if IsInvalid(unified) {
		return Invalid
	}
	for _, e := range elems[1:] {
		if !Compatible(unified, e) {
			return Invalid
		}
	}
	return unified
}

// IsInvalid reports whether t is the bottom type.
func IsInvalid(t Type) bool {
	return t.Variant == VInvalid
}

// IsBasic reports whether t is a named basic/struct/enum type.
func IsBasic(t Type) bool {
	return t.Variant == VBasic
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	return t.Variant == VPointer
}

// IsArray reports whether t is an array type.
func IsArray(t Type) bool {
	return t.Variant == VArray
}

// IsCallable reports whether t is a function type.
func IsCallable(t Type) bool {
	return t.Variant == VFunction
}

// IsRecord reports whether t names a struct or union symbol.
func IsRecord(t Type) bool {
	return t.Variant == VBasic && t.Basic != nil &&
		(t.Basic.Kind == symbols.KindStruct)
}

// IsVoid reports whether t is exactly the built-in void type.
func IsVoid(t Type) bool {
	return t.Variant == VBasic && t.Basic != nil && t.Basic.Name == "void"
}

// IsNumeric reports whether t supports arithmetic: char, int, bool,
// or any pointer (for pointer arithmetic).
func IsNumeric(t Type) bool {
	if IsInvalid(t) {
		return true // propagate without a second diagnostic
	}
	if IsPointer(t) {
		return true
	}
	return t.Variant == VBasic && t.Basic != nil &&
		(t.Basic.Name == "int" || t.Basic.Name == "char" || t.Basic.Name == "bool")
}

// IsOrdinal reports whether t supports relational ordering:
// everything IsNumeric does, since this dialect allows pointer
// comparison and arithmetic alike.
func IsOrdinal(t Type) bool {
	return IsNumeric(t)
}

// IsEquality reports whether t supports == and !=: numeric/pointer
// types plus any basic type at all (so enum and bool compare too).
func IsEquality(t Type) bool {
	if IsInvalid(t) {
		return true
	}
	return IsNumeric(t) || IsBasic(t)
}

// IsCondition reports whether t may appear as a branch/loop
// condition: anything scalar (numeric, pointer, or bool).
func IsCondition(t Type) bool {
	return IsNumeric(t)
}

// IsAssignable reports whether a value of type rhs may be assigned to
// a storage location of type lhs.
func IsAssignable(lhs, rhs Type) bool {
	if IsInvalid(lhs) || IsInvalid(rhs) {
		return true
	}
	if IsVoid(lhs) || IsVoid(rhs) {
		return false
	}
	return Compatible(lhs, rhs)
}

// Compatible reports whether l and r may stand in for one another:
// parameter/argument matching, assignment, and the unified type of an
// array literal's elements all reduce to this one relation.
func Compatible(l, r Type) bool {
	if IsInvalid(l) || IsInvalid(r) {
		return true
	}
	if l.Variant != r.Variant {
		// A restricted exception: arithmetic types freely interconvert
		// (char/int/bool) when used as scalars, matching this dialect's
		// lack of explicit numeric qualifiers beyond const.
		if IsNumeric(l) && IsNumeric(r) && l.Variant == VBasic && r.Variant == VBasic {
			return true
		}
		return false
	}
	switch l.Variant {
	case VBasic:
		if l.Basic == r.Basic {
			return true
		}
		return IsNumeric(l) && IsNumeric(r)
	case VPointer:
		return Compatible(l.Base.T, r.Base.T)
	case VArray:
		if l.Length >= 0 && r.Length >= 0 && l.Length != r.Length {
			return false
		}
		return Compatible(l.Base.T, r.Base.T)
	case VFunction:
		if l.ParamCount != r.ParamCount || !Compatible(l.Return.T, r.Return.T) {
			return false
		}
		for i := range l.Params {
			if !Compatible(l.Params[i], r.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// ToString renders t as a C-style declarator, with suffix (typically
// a declarator name) placed where it would appear in source.
func ToString(t Type, suffix string) string {
	switch t.Variant {
	case VInvalid:
		return joinDeclarator("<invalid>", suffix)
	case VBasic:
		name := "<anonymous>"
		if t.Basic != nil {
			name = t.Basic.Name
		}
		return joinDeclarator(name, suffix)
	case VPointer:
		return ToString(t.Base.T, "*"+suffix)
	case VArray:
		dims := "[]"
		if t.Length >= 0 {
			dims = fmt.Sprintf("[%d]", t.Length)
		}
		return ToString(t.Base.T, suffix+dims)
	case VFunction:
		return ToString(t.Return.T, fmt.Sprintf("%s(%d params)", suffix, t.ParamCount))
	default:
		return "<unknown>"
	}
}

// String implements symbols.TypeRef so a Type can be stored directly
// on a Symbol without symbols importing this package.
func (t Type) String() string {
	return ToString(t, "")
}

func joinDeclarator(base, suffix string) string {
	if suffix == "" {
		return base
	}
	return base + " " + suffix
}
