package domain

// EntryKind is what a path resolves to on disk.
type EntryKind int

const (
	EntryAbsent EntryKind = iota
	EntryFile
	EntryDir
	EntryOther
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDir:
		return "directory"
	case EntryOther:
		return "special file"
	default:
		return "nothing"
	}
}

// PathProber reports what exists at a slash-separated path relative to the
// project root. An absent path is EntryAbsent with a nil error; any other
// failure is returned as an error.
type PathProber interface {
	Probe(target string) (EntryKind, error)
}

// ManifestLoader loads the dependency manifest from a file path.
type ManifestLoader interface {
	Load(path string) (*Manifest, error)
}

// ConfigLoader loads project configuration from a project root. An explicit
// path, when non-empty, overrides the default file location.
type ConfigLoader interface {
	Load(projectPath, explicitPath string) (ProjectConfig, error)
}

// Revision identifies the checked-out state of a repository.
type Revision struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
}

// GitInfo reads repository metadata for a project. The project path may be
// any directory inside a work tree.
type GitInfo interface {
	Revision(projectPath string) (Revision, error)
}
