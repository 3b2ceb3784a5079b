// Package classattr implements class-scoped attributes: named slots of
// state shared between a class object and every instance of it, with a
// registration-group protocol that governs how redefinitions propagate
// across a class hierarchy.
//
// A Slot is the unit of state. A ValueSlot holds one value; a
// ComputedSlot routes reads and writes through user-supplied accessor
// functions. Slots are bound by name into a Group, the shared table
// jointly owned by a set of member classes. Rebinding a name in a group
// is a structural change visible to every member, including classes
// created before the rebind. Writing through an existing slot is a
// content mutation and never changes which slot is bound.
//
// All attribute access goes through the typed accessor surface
// Class.Get/Set and Instance.Get/Set. Names registered in the class's
// group resolve through the bound slot; everything else falls back to
// ordinary attribute storage (instance fields, then the class
// hierarchy's own fields).
//
// The protocol is synchronous and carries no locking of its own.
// Groups and slots are shared mutable state; callers in a concurrent
// host must serialize access externally.
package classattr
