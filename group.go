package classattr

import (
	"log/slog"
	"sort"
)

// Group is a mutable table of name to Slot bindings shared by a set of
// member classes. A binding is a single group-scoped fact: rebinding a
// name replaces it for every member at once, past and future, because
// every member resolves names against this one table.
type Group struct {
	bindings map[string]Slot
	members  []*Class
}

// NewGroup creates a group. With parents, the new group starts from a
// shallow union of the parents' bindings applied in order, so a later
// parent wins name collisions. Slot objects are shared with the
// parents, not cloned, until a Bind replaces them locally.
func NewGroup(parents ...*Group) *Group {
	g := &Group{bindings: make(map[string]Slot)}
	for _, parent := range parents {
		for name, slot := range parent.bindings {
			g.bindings[name] = slot
		}
	}
	return g
}

// Bind registers slot under name, replacing any previous binding.
// Bindings are never removed.
func (g *Group) Bind(name string, slot Slot) {
	_, rebind := g.bindings[name]
	slog.Debug("Binding slot.", "name", name, "rebind", rebind)
	g.bindings[name] = slot
}

// Slot returns the slot currently bound under name. The second return
// distinguishes an unregistered name, which callers treat as "fall back
// to ordinary attribute handling".
func (g *Group) Slot(name string) (Slot, bool) {
	s, ok := g.bindings[name]
	return s, ok
}

// Names returns the registered names in sorted order.
func (g *Group) Names() []string {
	names := make([]string, 0, len(g.bindings))
	for name := range g.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns the classes currently attached to the group, in
// attachment order.
func (g *Group) Members() []*Class {
	return append([]*Class(nil), g.members...)
}

func (g *Group) addMember(c *Class) {
	g.members = append(g.members, c)
}
