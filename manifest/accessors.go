package manifest

import (
	"fmt"
	"log/slog"

	"github.com/vk/classattr"
)

// Accessors maps the accessor names used in `computed` blocks to
// compiled Go getter and setter implementations. It is populated at
// startup, before any manifest is loaded.
type Accessors struct {
	getters map[string]classattr.Getter
	setters map[string]classattr.Setter
}

// NewAccessors creates an empty accessor registry.
func NewAccessors() *Accessors {
	return &Accessors{
		getters: make(map[string]classattr.Getter),
		setters: make(map[string]classattr.Setter),
	}
}

// RegisterGetter registers a getter implementation under name.
func (a *Accessors) RegisterGetter(name string, getter classattr.Getter) {
	if _, exists := a.getters[name]; exists {
		panic(fmt.Sprintf("getter with name '%s' already registered", name))
	}
	slog.Debug("Registering getter.", "name", name)
	a.getters[name] = getter
}

// RegisterSetter registers a setter implementation under name.
func (a *Accessors) RegisterSetter(name string, setter classattr.Setter) {
	if _, exists := a.setters[name]; exists {
		panic(fmt.Sprintf("setter with name '%s' already registered", name))
	}
	slog.Debug("Registering setter.", "name", name)
	a.setters[name] = setter
}

func (a *Accessors) getter(name string) (classattr.Getter, bool) {
	g, ok := a.getters[name]
	return g, ok
}

func (a *Accessors) setter(name string) (classattr.Setter, bool) {
	s, ok := a.setters[name]
	return s, ok
}
