package probe_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/preflight/internal/adapters/outbound/probe"
	"github.com/abdidvp/preflight/internal/domain"
	"github.com/abdidvp/preflight/internal/testutil"
)

func TestProbe_Kinds(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "src/main.jsx", "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "pages"), 0755))

	p := probe.New(root)

	tests := []struct {
		target string
		want   domain.EntryKind
	}{
		{"src/main.jsx", domain.EntryFile},
		{"src/pages", domain.EntryDir},
		{"src", domain.EntryDir},
		{"index.html", domain.EntryAbsent},
		{"src/main.jsx/child", domain.EntryAbsent},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := p.Probe(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbe_FollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")))

	p := probe.New(root)

	got, err := p.Probe("link")
	require.NoError(t, err)
	assert.Equal(t, domain.EntryDir, got)

	got, err = p.Probe("dangling")
	require.NoError(t, err)
	assert.Equal(t, domain.EntryAbsent, got)
}

func TestProbe_PermissionDeniedIsError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(filepath.Join(locked, "inner"), 0755))
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	_, err := probe.New(root).Probe("locked/inner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.NotContains(t, err.Error(), root, "detail should not carry the absolute root")
}
