package classattr

import "fmt"

// Instance is an object of a bound class. Attribute access consults the
// class's group first, so registered names behave identically through
// the instance and through the class itself.
type Instance struct {
	class  *Class
	fields map[string]any
}

// Class returns the instance's class.
func (i *Instance) Class() *Class { return i.class }

// Get reads attribute name through the instance. A registered name
// resolves through the group's slot with the instance as context; other
// names fall back to the instance's own fields, then the class
// hierarchy's plain attributes.
func (i *Instance) Get(name string) (any, error) {
	if slot, ok := i.class.group.Slot(name); ok {
		return slot.Get(i)
	}
	if v, ok := i.fields[name]; ok {
		return v, nil
	}
	if v, ok := i.class.lookupPlain(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%s instance attribute %s: %w", i.class.name, name, ErrAttributeNotFound)
}

// Set writes attribute name through the instance. A registered name
// writes through the shared slot; other names are stored on the
// instance itself.
func (i *Instance) Set(name string, value any) error {
	if slot, ok := i.class.group.Slot(name); ok {
		return slot.Set(i, value)
	}
	i.fields[name] = value
	return nil
}
