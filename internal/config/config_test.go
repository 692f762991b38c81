package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrointcode/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
	assert.NotNil(t, CreateLogger(false, false))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intcode.yaml")
	content := "scratch: 128\noverflow: fail\ninputs: [1, 2]\nphases: [5, 6, 7, 8, 9]\nfeedback: true\nsweep: true\n" +
		"paint: true\nstart_white: true\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	file, err := Load(path)
	assert.NoError(t, err)
	assert.True(t, file.Scratch != nil)
	assert.Equal(t, 128, *file.Scratch)
	assert.Equal(t, "fail", file.Overflow)
	assert.Equal(t, []int64{1, 2}, file.Inputs)
	assert.Equal(t, []int64{5, 6, 7, 8, 9}, file.Phases)
	assert.True(t, file.Feedback)
	assert.True(t, file.Sweep)
	assert.True(t, file.Paint)
	assert.True(t, file.StartWhite)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	file, err := Parse(nil)
	assert.NoError(t, err)
	assert.True(t, file.Scratch == nil)

	_, err = Parse([]byte("unknown: 1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("scratch: -1\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	scratch := 64
	file := File{
		Scratch:  &scratch,
		Overflow: "fail",
		Inputs:   []int64{3},
		Phases:   []int64{0, 1},
		Sweep:    true,
	}

	var opts options.Program
	file.Apply(&opts)
	assert.NotNil(t, opts.Scratch)
	assert.Equal(t, 64, *opts.Scratch)
	assert.True(t, opts.Sweep)
	assert.Equal(t, "fail", opts.Overflow)
	assert.Equal(t, []int64{3}, opts.Inputs)
	assert.Equal(t, []int64{0, 1}, opts.Phases)
	assert.False(t, opts.Feedback)

	// the applied scratch size is a copy of the file value
	*opts.Scratch = 1
	assert.Equal(t, 64, scratch)

	// command line values take precedence
	zero := 0
	opts = options.Program{Machine: options.Machine{
		Scratch:  &zero,
		Overflow: "wrap",
		Inputs:   []int64{9},
	}}
	file.Apply(&opts)
	assert.Equal(t, 0, *opts.Scratch)
	assert.Equal(t, "wrap", opts.Overflow)
	assert.Equal(t, []int64{9}, opts.Inputs)
}
