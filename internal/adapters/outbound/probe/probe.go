package probe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/abdidvp/preflight/internal/domain"
)

// FSProber implements domain.PathProber against the local filesystem.
// Symlinks are followed, so a link to a directory counts as a directory.
type FSProber struct {
	root string
}

// New creates a prober rooted at projectRoot.
func New(projectRoot string) *FSProber {
	return &FSProber{root: projectRoot}
}

func (p *FSProber) Probe(target string) (domain.EntryKind, error) {
	full := filepath.Join(p.root, filepath.FromSlash(target))

	info, err := os.Stat(full)
	if err != nil {
		if isAbsent(err) {
			return domain.EntryAbsent, nil
		}
		return domain.EntryAbsent, fmt.Errorf("probing %s: %w", target, unwrapPathError(err))
	}

	switch {
	case info.IsDir():
		return domain.EntryDir, nil
	case info.Mode().IsRegular():
		return domain.EntryFile, nil
	default:
		return domain.EntryOther, nil
	}
}

// isAbsent treats a missing component and a file used as a directory
// component (ENOTDIR) the same way: nothing lives at the path.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// unwrapPathError drops the absolute path from *fs.PathError so details stay
// stable across machines.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
