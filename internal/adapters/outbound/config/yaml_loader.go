package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abdidvp/preflight/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project root.
const FileName = ".preflight.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .preflight.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config from explicitPath, or from .preflight.yaml in
// projectPath when explicitPath is empty. A missing default file yields
// DefaultConfig; a missing explicit file is an error.
func (l *YAMLLoader) Load(projectPath, explicitPath string) (domain.ProjectConfig, error) {
	path := explicitPath
	if path == "" {
		path = filepath.Join(projectPath, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && explicitPath == "" {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	name := filepath.Base(path)

	var cfg domain.ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg, nil
}

// Marshal renders cfg as YAML in the layout Load accepts.
func Marshal(cfg domain.ProjectConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
