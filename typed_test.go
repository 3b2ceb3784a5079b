package classattr

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestTypedValueSlot_ConvertsCompatibleWrites(t *testing.T) {
	t.Parallel()

	slot, err := TypedValue(cty.Number, cty.NumberIntVal(1))
	require.NoError(t, err)
	require.Equal(t, cty.Number, slot.Type())

	v, err := slot.Get(nil)
	require.NoError(t, err)
	require.Equal(t, float64(1), v)

	require.NoError(t, slot.Set(nil, 7))
	v, err = slot.Get(nil)
	require.NoError(t, err)
	require.Equal(t, float64(7), v)

	// cty conversion rules apply: a numeric string converts to number.
	require.NoError(t, slot.Set(nil, "12"))
	v, err = slot.Get(nil)
	require.NoError(t, err)
	require.Equal(t, float64(12), v)
}

func TestTypedValueSlot_RejectsIncompatibleWrites(t *testing.T) {
	t.Parallel()

	slot, err := TypedValue(cty.Number, cty.NullVal(cty.Number))
	require.NoError(t, err)

	err = slot.Set(nil, "not a number")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not compatible with type number")

	// A failed write leaves the stored value untouched.
	v, err := slot.Get(nil)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestTypedValueSlot_RejectsIncompatibleInitialValue(t *testing.T) {
	t.Parallel()

	_, err := TypedValue(cty.Bool, cty.StringVal("not a bool"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "initial value is not compatible")
}

func TestTypedValueSlot_SharedThroughGroup(t *testing.T) {
	t.Parallel()

	slot, err := TypedValue(cty.String, cty.StringVal("hello"))
	require.NoError(t, err)

	c, err := NewClass("MyClass", WithSlot("greeting", slot))
	require.NoError(t, err)
	sub, err := NewClass("SubClass", WithBases(c))
	require.NoError(t, err)

	require.NoError(t, sub.New().Set("greeting", "world"))
	requireGet(t, c, "greeting", "world")
}
