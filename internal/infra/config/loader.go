package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/ports"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file searched for in a directory tree.
const FileName = "brix.yaml"

// Loader reads brix.yaml files from the filesystem.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ConfigLoader = (*Loader)(nil)

func (l *Loader) LoadConfig(path string) (domain.Config, error) {
	return LoadConfig(path)
}

// LoadConfig reads path and applies it over domain.DefaultConfig. On error the
// defaults are returned alongside it so callers can fall back.
func LoadConfig(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

// Parse decodes a brix.yaml document. Unknown keys are rejected.
func Parse(path string, b []byte) (domain.Config, error) {
	var y YAMLFile

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	// An empty (or comment-only) file decodes to io.EOF and means "all defaults".
	if err := dec.Decode(&y); err != nil && !errors.Is(err, io.EOF) {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, y)
}

// Marshal renders cfg as a brix.yaml document.
func Marshal(cfg domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToYAML(cfg)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
