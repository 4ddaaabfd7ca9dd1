// Package testutil builds project trees on disk for tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/preflight/internal/domain"
)

// WriteFile writes content to the slash-separated path rel under root,
// creating parent directories.
func WriteFile(t testing.TB, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

// WriteManifest writes a package.json with the given dependency tables.
func WriteManifest(t testing.TB, root string, deps, devDeps map[string]string) {
	t.Helper()
	doc := map[string]any{"name": "fixture", "version": "0.0.0"}
	if deps != nil {
		doc["dependencies"] = deps
	}
	if devDeps != nil {
		doc["devDependencies"] = devDeps
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	WriteFile(t, root, domain.DefaultManifest, string(data))
}

// CompleteProject creates a temp project satisfying every rule of the named
// preset and returns its root.
func CompleteProject(t testing.TB, presetName string) string {
	t.Helper()
	p, ok := domain.LookupPreset(presetName)
	require.True(t, ok, "unknown preset %q", presetName)

	root := t.TempDir()
	deps := map[string]string{}
	devDeps := map[string]string{}

	for _, cat := range p.Categories {
		for _, spec := range cat.Rules {
			switch {
			case spec.File != "" && spec.File != domain.DefaultManifest:
				WriteFile(t, root, spec.File, "")
			case spec.Dir != "":
				require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(spec.Dir)), 0755))
			case spec.Dependency != "":
				deps[spec.Dependency] = "^1.0.0"
			case spec.DevDependency != "":
				devDeps[spec.DevDependency] = "^2.0.0"
			}
		}
	}

	WriteManifest(t, root, deps, devDeps)
	return root
}
