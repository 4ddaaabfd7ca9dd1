package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/abdidvp/preflight/internal/adapters/outbound/config"
	"github.com/abdidvp/preflight/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".preflight.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_MissingExplicitFileIsError(t *testing.T) {
	dir := t.TempDir()
	_, err := appconfig.New().Load(dir, filepath.Join(dir, "rules.yaml"))
	assert.Error(t, err)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
manifest: web/package.json
categories:
  - name: Required Files
    rules:
      - file: package.json
        label: Package configuration
      - dir: src/components
  - name: Dependencies
    rules:
      - dependency: react
      - dev_dependency: vite
guidance: |
  npm install
`)

	cfg, err := appconfig.New().Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "web/package.json", cfg.Manifest)
	require.Len(t, cfg.Categories, 2)
	assert.Equal(t, "Required Files", cfg.Categories[0].Name)
	assert.Equal(t, domain.RuleSpec{File: "package.json", Label: "Package configuration"}, cfg.Categories[0].Rules[0])
	assert.Equal(t, domain.RuleSpec{DevDependency: "vite"}, cfg.Categories[1].Rules[1])
	assert.Equal(t, "npm install\n", cfg.Guidance)
}

func TestYAMLLoader_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: vite-react\n"), 0644))

	cfg, err := appconfig.New().Load(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, "vite-react", cfg.Preset)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .preflight.yaml")
}

func TestYAMLLoader_UnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
preset: vite-react
categoires: []
`)

	_, err := appconfig.New().Load(dir, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "categoires")
}

func TestYAMLLoader_ValidationError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
categories:
  - name: Files
    rules:
      - file: a.txt
        dir: b
`)

	_, err := appconfig.New().Load(dir, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .preflight.yaml")
}

func TestYAMLLoader_UnknownPreset(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `preset: django`)

	_, err := appconfig.New().Load(dir, "")
	assert.ErrorContains(t, err, `unknown preset "django"`)
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := appconfig.New().Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestMarshal_RoundTripsThroughLoad(t *testing.T) {
	p, ok := domain.LookupPreset(domain.DefaultPreset)
	require.True(t, ok)

	data, err := appconfig.Marshal(domain.ProjectConfig{
		Manifest:   p.Manifest,
		Categories: p.Categories,
		Guidance:   p.Guidance,
	})
	require.NoError(t, err)

	dir := t.TempDir()
	writeConfig(t, dir, string(data))

	cfg, err := appconfig.New().Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, p.Categories, cfg.Categories)
	assert.Equal(t, p.Guidance, cfg.Guidance)
}
