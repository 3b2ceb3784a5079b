package classattr

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/classattr/internal/ctyconv"
)

// TypedValueSlot is a ValueSlot constrained to a declared cty type.
// Writes are converted to the declared type and fail when the value is
// not compatible; reads return the stored value in its native Go form.
type TypedValueSlot struct {
	ty    cty.Type
	value any
}

// TypedValue creates a typed value slot. The initial value must conform
// to ty; use cty.NullVal(ty) for an unset initial value.
func TypedValue(ty cty.Type, initial cty.Value) (*TypedValueSlot, error) {
	converted, err := convert.Convert(initial, ty)
	if err != nil {
		return nil, fmt.Errorf("initial value is not compatible with type %s: %w", ty.FriendlyName(), err)
	}
	native, err := ctyconv.ToNative(converted)
	if err != nil {
		return nil, err
	}
	return &TypedValueSlot{ty: ty, value: native}, nil
}

// Type returns the declared constraint.
func (s *TypedValueSlot) Type() cty.Type { return s.ty }

// Get returns the stored value. The access context is irrelevant.
func (s *TypedValueSlot) Get(any) (any, error) {
	return s.value, nil
}

// Set converts value to the declared type and overwrites the stored
// value. The access context is irrelevant.
func (s *TypedValueSlot) Set(_, value any) error {
	cv, err := ctyconv.FromNative(value)
	if err != nil {
		return err
	}
	converted, err := convert.Convert(cv, s.ty)
	if err != nil {
		return fmt.Errorf("value is not compatible with type %s: %w", s.ty.FriendlyName(), err)
	}
	native, err := ctyconv.ToNative(converted)
	if err != nil {
		return err
	}
	s.value = native
	return nil
}
