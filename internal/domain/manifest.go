package domain

import (
	"errors"
	"fmt"
)

// DependencyTable maps dependency names to version constraints. Fault is set
// when the table exists in the manifest but could not be read as a mapping.
type DependencyTable struct {
	Entries map[string]string `json:"entries,omitempty"`
	Fault   string            `json:"fault,omitempty"`
}

// Manifest is the parsed dependency-declaration document of a project.
// It is loaded once per run and never mutated.
type Manifest struct {
	Path            string          `json:"path"`
	Dependencies    DependencyTable `json:"dependencies"`
	DevDependencies DependencyTable `json:"dev_dependencies"`
}

// Table returns the sub-table for a scope.
func (m *Manifest) Table(scope DependencyScope) (DependencyTable, error) {
	switch scope {
	case ScopeRuntime:
		return m.Dependencies, nil
	case ScopeDev:
		return m.DevDependencies, nil
	default:
		return DependencyTable{}, fmt.Errorf("unknown dependency scope %q", scope)
	}
}

// Lookup returns the version declared for name in the given scope.
func (m *Manifest) Lookup(scope DependencyScope, name string) (string, bool, error) {
	table, err := m.Table(scope)
	if err != nil {
		return "", false, err
	}
	if table.Fault != "" {
		return "", false, errors.New(table.Fault)
	}
	version, ok := table.Entries[name]
	return version, ok, nil
}
