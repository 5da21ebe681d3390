package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/th13vn/cc0/internal/symbols"
)

func intSym() *symbols.Symbol {
	return &symbols.Symbol{Name: "int", Kind: symbols.KindType}
}

func charSym() *symbols.Symbol {
	return &symbols.Symbol{Name: "char", Kind: symbols.KindType}
}

func structSym(name string) *symbols.Symbol {
	return &symbols.Symbol{Name: name, Kind: symbols.KindStruct}
}

func TestInvalidPropagatesThroughPredicates(t *testing.T) {
	assert.True(t, IsNumeric(Invalid))
	assert.True(t, IsOrdinal(Invalid))
	assert.True(t, IsEquality(Invalid))
	assert.True(t, Compatible(Invalid, Basic(intSym())))
	assert.True(t, Compatible(Basic(intSym()), Invalid))
	assert.False(t, IsInvalid(Basic(intSym())))
	assert.True(t, IsInvalid(Invalid))
}

func TestPointerDerivationRoundTrips(t *testing.T) {
	base := Basic(intSym())
	ptr := DerivePointer(base)
	require.True(t, IsPointer(ptr))
	assert.True(t, Compatible(DeriveBase(ptr), base))
}

func TestArrayCompatibilityRequiresMatchingLength(t *testing.T) {
	elem := Basic(intSym())
	a3 := Array(elem, 3)
	a4 := Array(elem, 4)
	aUnknown := Array(elem, -1)

	assert.False(t, Compatible(a3, a4))
	assert.True(t, Compatible(a3, aUnknown))
}

func TestFunctionCompatibilityChecksParamCountAndReturn(t *testing.T) {
	intT := Basic(intSym())
	f1 := Function(intT, intT, intT)
	f2 := Function(intT, intT, intT)
	f3 := Function(intT, intT, intT, intT)

	assert.True(t, Compatible(f1, f2))
	assert.False(t, Compatible(f1, f3))
}

func TestNumericTypesFreelyInterconvert(t *testing.T) {
	assert.True(t, Compatible(Basic(intSym()), Basic(charSym())))
}

func TestRecordTypesRequireSameSymbol(t *testing.T) {
	a := Basic(structSym("Point"))
	b := Basic(structSym("Point"))
	assert.False(t, Compatible(a, b), "distinct struct symbols of the same name must not unify")

	s := structSym("Point")
	same := Basic(s)
	assert.True(t, Compatible(same, Duplicate(same)))
}

func TestDeriveUnifiedOfArrayLiteral(t *testing.T) {
	intT := Basic(intSym())
	unified := DeriveUnified([]Type{intT, intT, intT})
	assert.True(t, Compatible(unified, intT))

	mismatched := DeriveUnified([]Type{intT, Basic(structSym("Point"))})
	assert.True(t, IsInvalid(mismatched))
}

func TestToStringRendersDeclarators(t *testing.T) {
	intT := Basic(intSym())
	ptr := DerivePointer(intT)
	arr := DeriveArray(intT, 3)
	fn := Function(intT, intT, intT)

	assert.Equal(t, "int x", ToString(intT, "x"))
	assert.Equal(t, "int *x", ToString(ptr, "x"))
	assert.Equal(t, "int x[3]", ToString(arr, "x"))
	assert.Equal(t, "int f(2 params)", ToString(fn, "f"))
}

func TestVoidIsNotAssignable(t *testing.T) {
	voidSym := &symbols.Symbol{Name: "void", Kind: symbols.KindType}
	assert.False(t, IsAssignable(Basic(voidSym), Basic(intSym())))
	assert.False(t, IsAssignable(Basic(intSym()), Basic(voidSym)))
}
