package manifest

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/classattr"
	"github.com/vk/classattr/internal/ctxlog"
	"github.com/vk/classattr/internal/ctyconv"
	"github.com/vk/classattr/internal/fsutil"
)

// Loader builds classattr classes from manifest files, resolving
// computed accessor names against an Accessors registry.
type Loader struct {
	accessors *Accessors
}

// NewLoader creates a loader. A nil accessors registry is treated as
// empty, in which case any `computed` block fails to resolve.
func NewLoader(accessors *Accessors) *Loader {
	if accessors == nil {
		accessors = NewAccessors()
	}
	return &Loader{accessors: accessors}
}

// Set holds the classes built from a manifest tree.
type Set struct {
	classes map[string]*classattr.Class
}

// Class returns the class built under name.
func (s *Set) Class(name string) (*classattr.Class, bool) {
	c, ok := s.classes[name]
	return c, ok
}

// Names returns the built class names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load discovers .hcl files under path (or parses path itself when it
// is a single file), decodes every class definition, and builds the
// classes with bases constructed before their extenders.
func (l *Loader) Load(ctx context.Context, path string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading class manifests...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		logger.Error("Failed to walk manifest path", "path", path, "error", err)
		return nil, err
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", path)
		return &Set{classes: make(map[string]*classattr.Class)}, nil
	}
	sort.Strings(filePaths)
	logger.Debug("Found HCL files to load", "files", filePaths)

	parser := hclparse.NewParser()
	byName := make(map[string]*ClassDef)

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		defs, defDiags := ParseClassFile(ctx, hclFile, filePath)
		if defDiags.HasErrors() {
			return nil, fmt.Errorf("failed to process class definitions in %s: %w", filePath, defDiags)
		}

		for _, def := range defs {
			if prev, exists := byName[def.Name]; exists {
				return nil, fmt.Errorf("class '%s' in %s is already defined in %s", def.Name, def.FilePath, prev.FilePath)
			}
			byName[def.Name] = def
		}
		logger.Debug("Successfully loaded definitions from HCL file", "file", filePath)
	}

	builder := &setBuilder{
		accessors: l.accessors,
		defs:      byName,
		classes:   make(map[string]*classattr.Class),
		building:  make(map[string]bool),
	}

	// Build in name order so failures are reported deterministically;
	// the builder recurses into bases first regardless of this order.
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := builder.build(name); err != nil {
			return nil, err
		}
	}

	logger.Info("Class manifests loaded successfully.", "classes_loaded", len(builder.classes))
	return &Set{classes: builder.classes}, nil
}

// setBuilder constructs classes from parsed definitions, memoizing
// finished classes and tracking in-progress names to detect cycles.
type setBuilder struct {
	accessors *Accessors
	defs      map[string]*ClassDef
	classes   map[string]*classattr.Class
	building  map[string]bool
}

func (b *setBuilder) build(name string) (*classattr.Class, error) {
	if c, ok := b.classes[name]; ok {
		return c, nil
	}
	if b.building[name] {
		return nil, fmt.Errorf("class '%s' participates in an inheritance cycle", name)
	}

	def := b.defs[name]
	b.building[name] = true
	defer delete(b.building, name)

	var opts []classattr.ClassOption

	if len(def.Extends) > 0 {
		bases := make([]*classattr.Class, 0, len(def.Extends))
		for _, baseName := range def.Extends {
			if _, known := b.defs[baseName]; !known {
				return nil, fmt.Errorf("class '%s' extends unknown class '%s'", name, baseName)
			}
			base, err := b.build(baseName)
			if err != nil {
				return nil, err
			}
			bases = append(bases, base)
		}
		opts = append(opts, classattr.WithBases(bases...))
	}

	if def.FreshGroup {
		opts = append(opts, classattr.WithFreshGroup())
	}

	valueOpts, err := b.valueOptions(def)
	if err != nil {
		return nil, err
	}
	opts = append(opts, valueOpts...)

	computedOpts, err := b.computedOptions(def)
	if err != nil {
		return nil, err
	}
	opts = append(opts, computedOpts...)

	attrOpts, err := b.attrOptions(def)
	if err != nil {
		return nil, err
	}
	opts = append(opts, attrOpts...)

	c, err := classattr.NewClass(def.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build class '%s' from %s: %w", def.Name, def.FilePath, err)
	}

	b.classes[name] = c
	return c, nil
}

func (b *setBuilder) valueOptions(def *ClassDef) ([]classattr.ClassOption, error) {
	opts := make([]classattr.ClassOption, 0, len(def.Values))
	for _, valueName := range sortedKeys(def.Values) {
		vd := def.Values[valueName]

		var slot classattr.Slot
		if vd.Type.Equals(cty.DynamicPseudoType) {
			native, err := ctyconv.ToNative(vd.Default)
			if err != nil {
				return nil, fmt.Errorf("class '%s', value '%s': %w", def.Name, vd.Name, err)
			}
			slot = classattr.Value(native)
		} else {
			initial := vd.Default
			if initial == cty.NilVal {
				initial = cty.NullVal(vd.Type)
			}
			typed, err := classattr.TypedValue(vd.Type, initial)
			if err != nil {
				return nil, fmt.Errorf("class '%s', value '%s': %w", def.Name, vd.Name, err)
			}
			slot = typed
		}
		opts = append(opts, classattr.WithSlot(vd.Name, slot))
	}
	return opts, nil
}

func (b *setBuilder) computedOptions(def *ClassDef) ([]classattr.ClassOption, error) {
	opts := make([]classattr.ClassOption, 0, len(def.Computed))
	for _, computedName := range sortedKeys(def.Computed) {
		cd := def.Computed[computedName]

		getter, ok := b.accessors.getter(cd.Getter)
		if !ok {
			return nil, fmt.Errorf("class '%s', computed '%s': getter '%s' is not registered", def.Name, cd.Name, cd.Getter)
		}
		slot := classattr.Computed(getter)

		if cd.Setter != "" {
			setter, ok := b.accessors.setter(cd.Setter)
			if !ok {
				return nil, fmt.Errorf("class '%s', computed '%s': setter '%s' is not registered", def.Name, cd.Name, cd.Setter)
			}
			slot = slot.WithSetter(setter)
		}
		opts = append(opts, classattr.WithSlot(cd.Name, slot))
	}
	return opts, nil
}

func (b *setBuilder) attrOptions(def *ClassDef) ([]classattr.ClassOption, error) {
	opts := make([]classattr.ClassOption, 0, len(def.Attrs))
	for _, attrName := range sortedKeys(def.Attrs) {
		ad := def.Attrs[attrName]

		native, err := ctyconv.ToNative(ad.Value)
		if err != nil {
			return nil, fmt.Errorf("class '%s', attr '%s': %w", def.Name, ad.Name, err)
		}
		opts = append(opts, classattr.WithAttr(ad.Name, native))
	}
	return opts, nil
}

func sortedKeys[M map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
