// Package loader handles tape file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrointcode/internal/options"
)

// Loader handles loading tape files from disk.
type Loader struct{}

// New creates a new tape loader.
func New() *Loader {
	return &Loader{}
}

// Load reads and parses the tape file passed as input option.
func (l *Loader) Load(opts options.Program) ([]int64, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	cells, err := intcode.Load(file)
	if err != nil {
		return nil, fmt.Errorf("loading tape: %w", err)
	}
	return cells, nil
}
