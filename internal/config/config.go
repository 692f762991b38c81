// Package config handles application configuration and setup
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrointcode/internal/options"
	"github.com/retroenv/retrogolib/log"
	"gopkg.in/yaml.v3"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// File is the content of an optional YAML configuration file.
type File struct {
	Scratch  *int    `yaml:"scratch"`
	Overflow string  `yaml:"overflow"`
	Inputs   []int64 `yaml:"inputs"`
	Phases   []int64 `yaml:"phases"`
	Feedback bool    `yaml:"feedback"`
	Sweep    bool    `yaml:"sweep"`

	Paint      bool `yaml:"paint"`
	StartWhite bool `yaml:"start_white"`
}

// Load reads the configuration file at the given path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading config file '%s': %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decoding config: %w", err)
	}
	if file.Scratch != nil && *file.Scratch < 0 {
		return File{}, fmt.Errorf("invalid scratch size %d", *file.Scratch)
	}
	return file, nil
}

// Apply fills all machine options that were not set on the command line with
// the values of the configuration file.
func (f File) Apply(opts *options.Program) {
	if opts.Scratch == nil && f.Scratch != nil {
		scratch := *f.Scratch
		opts.Scratch = &scratch
	}
	if opts.Overflow == "" {
		opts.Overflow = f.Overflow
	}
	if opts.Inputs == nil {
		opts.Inputs = f.Inputs
	}
	if opts.Phases == nil {
		opts.Phases = f.Phases
	}
	opts.Feedback = opts.Feedback || f.Feedback
	opts.Sweep = opts.Sweep || f.Sweep
	opts.Paint = opts.Paint || f.Paint
	opts.StartWhite = opts.StartWhite || f.StartWhite
}
