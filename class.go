package classattr

import "fmt"

// Class is a named holder of class-scoped attributes, attached to
// exactly one Group for its lifetime. Registered names route through
// the group; everything else behaves as an ordinary attribute on the
// class object.
type Class struct {
	name   string
	bases  []*Class
	group  *Group
	fields map[string]any
}

type namedSlot struct {
	name string
	slot Slot
}

type namedValue struct {
	name  string
	value any
}

type classConfig struct {
	bases      []*Class
	group      *Group
	freshGroup bool
	slots      []namedSlot
	attrs      []namedValue
}

// ClassOption configures NewClass.
type ClassOption func(*classConfig)

// WithBases sets the base classes, in resolution order.
func WithBases(bases ...*Class) ClassOption {
	return func(c *classConfig) { c.bases = append(c.bases, bases...) }
}

// WithGroup attaches the class to an explicit group instead of
// inheriting one from its bases.
func WithGroup(g *Group) ClassOption {
	return func(c *classConfig) { c.group = g }
}

// WithFreshGroup gives the class its own group, seeded from the bases'
// groups in base order. Seeding copies the bindings table only; until a
// rebind, both sides still share the same slot objects. After any Bind
// in either group the two are independent.
func WithFreshGroup() ClassOption {
	return func(c *classConfig) { c.freshGroup = true }
}

// WithSlot declares a slot in the class body. The slot is bound into
// the class's group, replacing any inherited binding for name, and is
// never stored as a plain attribute.
func WithSlot(name string, slot Slot) ClassOption {
	return func(c *classConfig) { c.slots = append(c.slots, namedSlot{name: name, slot: slot}) }
}

// WithAttr declares a plain class-body value. If name is already
// registered in the class's group, the value is written through the
// existing slot: a content mutation visible to every group member, not
// a new binding. Otherwise it becomes an ordinary class attribute.
func WithAttr(name string, value any) ClassOption {
	return func(c *classConfig) { c.attrs = append(c.attrs, namedValue{name: name, value: value}) }
}

// NewClass creates a class, resolves its group, binds its declared
// slots, applies its declared plain values, and registers it as a group
// member.
//
// Group resolution: an explicit WithGroup wins; WithFreshGroup creates
// a new group seeded from each base's group; otherwise the bases'
// shared group is reused. Two bases attached to different groups with
// no explicit choice fail with ErrAmbiguousGroups. A class with no
// bases gets a fresh empty group.
func NewClass(name string, opts ...ClassOption) (*Class, error) {
	cfg := &classConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	group, err := targetGroup(name, cfg)
	if err != nil {
		return nil, err
	}

	c := &Class{
		name:   name,
		bases:  cfg.bases,
		group:  group,
		fields: make(map[string]any),
	}

	for _, decl := range cfg.slots {
		group.Bind(decl.name, decl.slot)
	}

	for _, decl := range cfg.attrs {
		slot, registered := group.Slot(decl.name)
		if !registered {
			c.fields[decl.name] = decl.value
			continue
		}
		if err := slot.Set(c, decl.value); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, decl.name, err)
		}
	}

	group.addMember(c)
	return c, nil
}

func targetGroup(name string, cfg *classConfig) (*Group, error) {
	if cfg.group != nil {
		return cfg.group, nil
	}

	seeds := make([]*Group, 0, len(cfg.bases))
	for _, base := range cfg.bases {
		seeds = append(seeds, base.group)
	}

	if cfg.freshGroup {
		return NewGroup(seeds...), nil
	}

	var inherited *Group
	for _, g := range seeds {
		if inherited == nil {
			inherited = g
			continue
		}
		if g != inherited {
			return nil, fmt.Errorf("class %s: %w", name, ErrAmbiguousGroups)
		}
	}
	if inherited != nil {
		return inherited, nil
	}
	return NewGroup(), nil
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Group returns the group the class is attached to.
func (c *Class) Group() *Group { return c.group }

// Bases returns the class's direct bases.
func (c *Class) Bases() []*Class {
	return append([]*Class(nil), c.bases...)
}

// New creates an instance of the class.
func (c *Class) New() *Instance {
	return &Instance{class: c, fields: make(map[string]any)}
}

// Get reads attribute name through the class object. A registered name
// resolves through the group's slot with the class as context; other
// names fall back to the class's own fields, then its bases
// depth-first.
func (c *Class) Get(name string) (any, error) {
	if slot, ok := c.group.Slot(name); ok {
		return slot.Get(c)
	}
	if v, ok := c.lookupPlain(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%s.%s: %w", c.name, name, ErrAttributeNotFound)
}

// Set writes attribute name through the class object. A registered name
// writes through the shared slot, so the write is observed by every
// member of the group and their instances; other names become ordinary
// class attributes.
func (c *Class) Set(name string, value any) error {
	if slot, ok := c.group.Slot(name); ok {
		return slot.Set(c, value)
	}
	c.fields[name] = value
	return nil
}

func (c *Class) lookupPlain(name string) (any, bool) {
	if v, ok := c.fields[name]; ok {
		return v, true
	}
	for _, base := range c.bases {
		if v, ok := base.lookupPlain(name); ok {
			return v, true
		}
	}
	return nil, false
}
