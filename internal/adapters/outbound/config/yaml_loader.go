package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/abdidvp/expectfix/internal/domain"
)

const fileName = ".expectfix.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .expectfix.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .expectfix.yaml from projectPath.
// Returns DefaultConfig if the file does not exist. Keys present in the file
// override the defaults; unknown keys are rejected.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, errors.Errorf("reading %s: %w", fileName, err)
	}

	cfg := domain.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.Config{}, errors.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, errors.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}
