package classattr

// Slot is a named, gettable and settable unit of class-scoped state.
// The owner argument is the *Class or *Instance the access went
// through; implementations that don't depend on the access context
// ignore it.
//
// Slot identity matters to the protocol: "the same slot" means the same
// object, not equal content. A group-wide redefinition replaces the
// bound slot object, while an ordinary write mutates the bound slot in
// place.
type Slot interface {
	Get(owner any) (any, error)
	Set(owner, value any) error
}

// ValueSlot stores a single value shared by every class and instance
// that resolves it.
type ValueSlot struct {
	value any
}

// Value creates a ValueSlot holding initial.
func Value(initial any) *ValueSlot {
	return &ValueSlot{value: initial}
}

// Get returns the stored value. The access context is irrelevant.
func (s *ValueSlot) Get(any) (any, error) {
	return s.value, nil
}

// Set overwrites the stored value. The access context is irrelevant.
func (s *ValueSlot) Set(_, value any) error {
	s.value = value
	return nil
}
