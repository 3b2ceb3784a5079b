package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/classattr/manifest"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes.hcl"), []byte(content), 0o600))
	return dir
}

func TestNewConfig_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{Path: "somewhere"})
	require.NoError(t, err)
	require.Equal(t, "somewhere", cfg.Path)
}

func TestApp_RunPrintsResolvedAttributes(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, `
	class "MyClass" {
		value "count" {
			type    = number
			default = 1
		}
		value "note" { default = "hi" }
	}
	class "SubClass" {
		extends = ["MyClass"]
		attr "count" { value = 5 }
	}
	`)

	out := &bytes.Buffer{}
	cfg := &Config{Path: dir, LogFormat: "text", LogLevel: "error"}
	a := NewApp(out, io.Discard, cfg, manifest.NewAccessors())

	require.NoError(t, a.Run(context.Background()))

	// The subclass's plain `count` wrote through the shared slot, so
	// both classes report the mutated value.
	want := "class MyClass\n" +
		"  count = 5\n" +
		"  note = hi\n" +
		"class SubClass\n" +
		"  count = 5\n" +
		"  note = hi\n"
	require.Equal(t, want, out.String())
}

func TestNewApp_PanicsOnBrokenManifest(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, `class "Broken" {`)
	cfg := &Config{Path: dir, LogFormat: "text", LogLevel: "error"}

	require.Panics(t, func() {
		NewApp(io.Discard, io.Discard, cfg, manifest.NewAccessors())
	})
}
