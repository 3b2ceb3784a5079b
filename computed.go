package classattr

// Getter is the read half of a computed slot. The two implementations,
// GetFunc and BoundGetFunc, fix the calling convention when the slot is
// declared: a context-free getter is called with no arguments, a
// context-aware one receives the class or instance the access went
// through.
type Getter interface {
	get(owner any) (any, error)
}

// Setter is the write half of a computed slot. See Getter for the
// calling convention.
type Setter interface {
	set(owner, value any) error
}

// GetFunc is a context-free getter.
type GetFunc func() (any, error)

func (f GetFunc) get(any) (any, error) { return f() }

// BoundGetFunc is a getter that receives the access context.
type BoundGetFunc func(owner any) (any, error)

func (f BoundGetFunc) get(owner any) (any, error) { return f(owner) }

// SetFunc is a context-free setter.
type SetFunc func(value any) error

func (f SetFunc) set(_, value any) error { return f(value) }

// BoundSetFunc is a setter that receives the access context.
type BoundSetFunc func(owner, value any) error

func (f BoundSetFunc) set(owner, value any) error { return f(owner, value) }

// ComputedSlot routes reads and writes through user-supplied accessors.
// Errors raised by the accessors propagate to the caller unchanged.
type ComputedSlot struct {
	getter Getter
	setter Setter
}

// Computed creates a computed slot backed by getter. The slot is
// read-only until a setter is attached with WithSetter.
func Computed(getter Getter) *ComputedSlot {
	return &ComputedSlot{getter: getter}
}

// WithSetter attaches the write accessor and returns the slot for
// chaining.
func (s *ComputedSlot) WithSetter(setter Setter) *ComputedSlot {
	s.setter = setter
	return s
}

// Get invokes the getter with the access context.
func (s *ComputedSlot) Get(owner any) (any, error) {
	if s.getter == nil {
		return nil, ErrUnreadable
	}
	return s.getter.get(owner)
}

// Set invokes the setter with the access context.
func (s *ComputedSlot) Set(owner, value any) error {
	if s.setter == nil {
		return ErrUnwritable
	}
	return s.setter.set(owner, value)
}
