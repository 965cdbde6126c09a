// Package config loads the .souper.yaml project configuration.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/souper/pkg/errors"
)

// FileName is the configuration file looked up in the scan root.
const FileName = ".souper.yaml"

// DefaultOutput is the report path used when neither flag nor file sets one.
const DefaultOutput = "soups.json"

// File mirrors the YAML document.
type File struct {
	Output  string   `yaml:"output"`
	Exclude []string `yaml:"exclude"`
	Meta    []string `yaml:"meta"`
	Jobs    int      `yaml:"jobs"`
}

// Load reads the configuration at path. A missing file yields a zero File
// unless required is set.
func Load(path string, required bool) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && stderrors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return f, nil
}

// Parse decodes a configuration document. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	for _, key := range f.Meta {
		if err := errors.ValidateMetaKey(key); err != nil {
			return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "meta")
		}
	}
	return f, nil
}

// Config is the effective configuration of a run.
type Config struct {
	Root    string
	Output  string
	Exclude []string
	Meta    []string
	Jobs    int
}

// Flags carries command-line values. A nil slice or zero value means the
// flag was not given.
type Flags struct {
	Root    string
	Output  string
	Exclude []string
	Meta    []string
	Jobs    int
	Config  string // Explicit config path; must exist when set
}

// Resolve merges flags over the configuration file over built-in defaults.
// The file is flags.Config if set, otherwise FileName in the scan root.
// A relative output path from the file is taken relative to the root.
func Resolve(flags Flags) (Config, error) {
	root := flags.Root
	if root == "" {
		root = "."
	}
	path, required := flags.Config, true
	if path == "" {
		path, required = filepath.Join(root, FileName), false
	}
	f, err := Load(path, required)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Root:    root,
		Output:  DefaultOutput,
		Exclude: f.Exclude,
		Meta:    f.Meta,
		Jobs:    f.Jobs,
	}
	if f.Output != "" {
		cfg.Output = f.Output
		if !filepath.IsAbs(cfg.Output) {
			cfg.Output = filepath.Join(root, cfg.Output)
		}
	}
	if flags.Output != "" {
		cfg.Output = flags.Output
	}
	if flags.Exclude != nil {
		cfg.Exclude = flags.Exclude
	}
	if flags.Meta != nil {
		for _, key := range flags.Meta {
			if err := errors.ValidateMetaKey(key); err != nil {
				return Config{}, err
			}
		}
		cfg.Meta = flags.Meta
	}
	if flags.Jobs != 0 {
		cfg.Jobs = flags.Jobs
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.NumCPU()
	}
	return cfg, nil
}
