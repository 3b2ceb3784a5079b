package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/classattr"
	"github.com/vk/classattr/manifest"
)

// loadFromFiles writes the given manifests into a temp directory and
// loads them.
func loadFromFiles(t *testing.T, accessors *manifest.Accessors, files map[string]string) (*manifest.Set, error) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return manifest.NewLoader(accessors).Load(context.Background(), dir)
}

func TestLoad_BuildsClassesAcrossFiles(t *testing.T) {
	t.Parallel()

	set, err := loadFromFiles(t, nil, map[string]string{
		"base.hcl": `
		class "MyClass" {
			description = "The root of the lineage."
			value "count" {
				type    = number
				default = 1
			}
			value "note" {
				default = "hi"
			}
			attr "label" { value = "plain" }
		}
		`,
		"sub.hcl": `
		class "SubClass" {
			extends = ["MyClass"]
			attr "count" { value = 2 }
		}
		`,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"MyClass", "SubClass"}, set.Names())

	myClass, ok := set.Class("MyClass")
	require.True(t, ok)
	subClass, ok := set.Class("SubClass")
	require.True(t, ok)

	// extends without fresh_group joins the base's group.
	require.Same(t, myClass.Group(), subClass.Group())

	// SubClass's plain `count` declaration wrote through the inherited
	// typed slot instead of rebinding it.
	v, err := myClass.Get("count")
	require.NoError(t, err)
	require.Equal(t, float64(2), v)

	v, err = subClass.New().Get("note")
	require.NoError(t, err)
	require.Equal(t, "hi", v)

	// attr on an unregistered name is an ordinary class attribute,
	// inherited by the subclass but not registered in the group.
	_, registered := subClass.Group().Slot("label")
	require.False(t, registered)
	v, err = subClass.Get("label")
	require.NoError(t, err)
	require.Equal(t, "plain", v)
}

func TestLoad_TypedSlotRejectsIncompatibleWrites(t *testing.T) {
	t.Parallel()

	set, err := loadFromFiles(t, nil, map[string]string{
		"class.hcl": `
		class "MyClass" {
			value "count" {
				type    = number
				default = 1
			}
		}
		`,
	})
	require.NoError(t, err)

	myClass, _ := set.Class("MyClass")
	require.NoError(t, myClass.Set("count", 7))
	err = myClass.Set("count", true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not compatible with type number")
}

func TestLoad_ComputedSlotsResolveRegisteredAccessors(t *testing.T) {
	t.Parallel()

	var store any
	accessors := manifest.NewAccessors()
	accessors.RegisterGetter("StoreGet", classattr.GetFunc(func() (any, error) { return store, nil }))
	accessors.RegisterSetter("StoreSet", classattr.SetFunc(func(v any) error { store = v; return nil }))
	accessors.RegisterGetter("ConstGet", classattr.GetFunc(func() (any, error) { return 42, nil }))

	set, err := loadFromFiles(t, accessors, map[string]string{
		"class.hcl": `
		class "MyClass" {
			computed "stored" {
				getter = "StoreGet"
				setter = "StoreSet"
			}
			computed "constant" { getter = "ConstGet" }
		}
		`,
	})
	require.NoError(t, err)

	myClass, _ := set.Class("MyClass")
	inst := myClass.New()

	require.NoError(t, inst.Set("stored", "written"))
	require.Equal(t, "written", store)
	v, err := myClass.Get("stored")
	require.NoError(t, err)
	require.Equal(t, "written", v)

	v, err = inst.Get("constant")
	require.NoError(t, err)
	require.Equal(t, 42, v)

	// No setter declared makes the slot read-only.
	err = inst.Set("constant", 1)
	require.ErrorIs(t, err, classattr.ErrUnwritable)
}

func TestLoad_RedeclaringValueRebindsGroupWide(t *testing.T) {
	t.Parallel()

	set, err := loadFromFiles(t, nil, map[string]string{
		"classes.hcl": `
		class "Base" {
			value "v" { default = 1 }
		}
		class "Child" {
			extends = ["Base"]
			value "v" { default = 99 }
		}
		`,
	})
	require.NoError(t, err)

	base, _ := set.Class("Base")
	v, err := base.Get("v")
	require.NoError(t, err)
	require.Equal(t, float64(99), v, "the child's redeclaration replaces the binding for the whole group")
}

func TestLoad_FreshGroupDisconnectsLineage(t *testing.T) {
	t.Parallel()

	set, err := loadFromFiles(t, nil, map[string]string{
		"classes.hcl": `
		class "Base" {
			value "v" { default = 1 }
		}
		class "Child" {
			extends     = ["Base"]
			fresh_group = true
			value "v" { default = 99 }
		}
		`,
	})
	require.NoError(t, err)

	base, _ := set.Class("Base")
	child, _ := set.Class("Child")
	require.NotSame(t, base.Group(), child.Group())

	v, err := base.Get("v")
	require.NoError(t, err)
	require.Equal(t, float64(1), v)

	v, err = child.Get("v")
	require.NoError(t, err)
	require.Equal(t, float64(99), v)
}

func TestLoad_EmptyDirectoryYieldsEmptySet(t *testing.T) {
	t.Parallel()

	set, err := manifest.NewLoader(nil).Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, set.Names())
}

func TestLoad_Failure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "syntax error",
			files: map[string]string{
				"bad.hcl": `class "Broken" {`,
			},
			wantErr: "failed to parse",
		},
		{
			name: "unknown base class",
			files: map[string]string{
				"class.hcl": `class "Child" { extends = ["Ghost"] }`,
			},
			wantErr: "extends unknown class 'Ghost'",
		},
		{
			name: "duplicate class name across files",
			files: map[string]string{
				"a.hcl": `class "Twin" {}`,
				"b.hcl": `class "Twin" {}`,
			},
			wantErr: "already defined",
		},
		{
			name: "inheritance cycle",
			files: map[string]string{
				"cycle.hcl": `
				class "A" { extends = ["B"] }
				class "B" { extends = ["A"] }
				`,
			},
			wantErr: "inheritance cycle",
		},
		{
			name: "unregistered getter",
			files: map[string]string{
				"class.hcl": `
				class "C" {
					computed "x" { getter = "Nope" }
				}
				`,
			},
			wantErr: "getter 'Nope' is not registered",
		},
		{
			name: "computed without getter",
			files: map[string]string{
				"class.hcl": `
				class "C" {
					computed "x" { setter = "OnlySet" }
				}
				`,
			},
			wantErr: "Missing 'getter' attribute",
		},
		{
			name: "invalid type keyword",
			files: map[string]string{
				"class.hcl": `
				class "C" {
					value "x" { type = widget }
				}
				`,
			},
			wantErr: "not a valid type",
		},
		{
			name: "incompatible typed default",
			files: map[string]string{
				"class.hcl": `
				class "C" {
					value "x" {
						type    = bool
						default = "nope"
					}
				}
				`,
			},
			wantErr: "Invalid default value type",
		},
		{
			name: "duplicate attribute declaration",
			files: map[string]string{
				"class.hcl": `
				class "C" {
					value "x" { default = 1 }
					attr "x" { value = 2 }
				}
				`,
			},
			wantErr: "Duplicate attribute declaration",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := loadFromFiles(t, nil, tc.files)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
