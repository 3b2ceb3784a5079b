package classattr

import "errors"

var (
	// ErrUnreadable is returned when a registered name is read through a
	// computed slot that has no getter.
	ErrUnreadable = errors.New("unreadable attribute")

	// ErrUnwritable is returned when a registered name is written
	// through a computed slot that has no setter.
	ErrUnwritable = errors.New("can't set attribute")

	// ErrAttributeNotFound is returned when a name is not registered in
	// the group and ordinary attribute lookup also fails.
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrAmbiguousGroups is returned by NewClass when two bases are
	// attached to different groups and no explicit group was chosen.
	ErrAmbiguousGroups = errors.New("bases are attached to different groups")
)
