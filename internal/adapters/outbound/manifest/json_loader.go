package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abdidvp/preflight/internal/domain"
)

const (
	runtimeKey = "dependencies"
	devKey     = "devDependencies"
)

// JSONLoader implements domain.ManifestLoader for package.json-style files.
type JSONLoader struct{}

// New creates a JSONLoader.
func New() *JSONLoader { return &JSONLoader{} }

// Load reads and parses the manifest at path. A missing or unparsable file,
// or a document that is not a JSON object, is a *domain.FatalConfigError.
// A dependency table that is present but not an object is kept as a table
// fault so only rules against it fail.
func (l *JSONLoader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.FatalConfigError{Source: path, Err: fmt.Errorf("manifest not found")}
		}
		return nil, &domain.FatalConfigError{Source: path, Err: fmt.Errorf("reading manifest: %w", err)}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.FatalConfigError{Source: path, Err: fmt.Errorf("parsing manifest: %w", err)}
	}
	if doc == nil {
		return nil, &domain.FatalConfigError{Source: path, Err: errors.New("parsing manifest: document is not an object")}
	}

	return &domain.Manifest{
		Path:            path,
		Dependencies:    parseTable(runtimeKey, doc[runtimeKey]),
		DevDependencies: parseTable(devKey, doc[devKey]),
	}, nil
}

func parseTable(key string, raw json.RawMessage) domain.DependencyTable {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return domain.DependencyTable{Entries: map[string]string{}}
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return domain.DependencyTable{Fault: fmt.Sprintf("manifest %q is not an object", key)}
	}

	table := domain.DependencyTable{Entries: make(map[string]string, len(entries))}
	for name, v := range entries {
		var version string
		if err := json.Unmarshal(v, &version); err == nil {
			table.Entries[name] = version
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, v); err != nil {
			table.Entries[name] = string(v)
			continue
		}
		table.Entries[name] = compact.String()
	}
	return table
}
