package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrointcode/internal/amplifier"
	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrointcode/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// robotTape reads the camera once per step and outputs fixed color and turn
// pairs, see the robot package tests.
const robotTape = "3,100,104,1,104,0,3,100,104,0,104,0,3,100,104,1,104,0,3,100,104,1,104,0," +
	"3,100,104,0,104,1,3,100,104,1,104,0,3,100,104,1,104,0,99"

func intPtr(i int) *int {
	return &i
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
}

//nolint:funlen // test functions can be long
func TestExecuteWithCells(t *testing.T) {
	tests := []struct {
		name     string
		tape     string
		opts     options.Program
		expected string
		err      error
	}{
		{
			name:     "run with input",
			tape:     "3,0,4,0,4,0,99",
			opts:     options.Program{Machine: options.Machine{Inputs: []int64{42}}},
			expected: "42\n42\n",
		},
		{
			name:     "no outputs",
			tape:     "1,0,0,0,99",
			opts:     options.Program{},
			expected: "",
		},
		{
			name:     "starved outputs are written",
			tape:     "104,7,3,0,99",
			opts:     options.Program{},
			expected: "7\n",
			err:      intcode.ErrInputStarved,
		},
		{
			name:     "scratch size",
			tape:     "1101,1,1,10,99",
			opts:     options.Program{Machine: options.Machine{Scratch: intPtr(0)}},
			expected: "",
			err:      intcode.ErrOutOfBounds,
		},
		{
			name:     "overflow policy",
			tape:     "1102,9223372036854775807,2,0,99",
			opts:     options.Program{Machine: options.Machine{Overflow: "fail"}},
			expected: "",
			err:      intcode.ErrOverflow,
		},
		{
			name: "series amplifier",
			tape: "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
			opts: options.Program{Machine: options.Machine{
				Phases:  []int64{4, 3, 2, 1, 0},
			}},
			expected: "43210\n",
		},
		{
			name: "feedback amplifier",
			tape: "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
			opts: options.Program{Machine: options.Machine{
				Phases:   []int64{9, 8, 7, 6, 5},
				Feedback: true,
			}},
			expected: "139629729\n",
		},
		{
			name: "sweep",
			tape: "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0",
			opts: options.Program{Machine: options.Machine{
				Phases:  []int64{0, 1, 2, 3, 4},
				Sweep:   true,
			}},
			expected: "43210\n4,3,2,1,0\n",
		},
		{
			name:     "deadlocked feedback",
			tape:     "3,0,3,0,99",
			opts:     options.Program{Machine: options.Machine{Phases: []int64{1, 2}, Feedback: true}},
			expected: "",
			err:      amplifier.ErrDeadlock,
		},
		{
			name:     "zero value options",
			tape:     "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99",
			opts:     options.Program{},
			expected: "109\n1\n204\n-1\n1001\n100\n1\n100\n1008\n100\n16\n101\n1006\n101\n0\n99\n",
		},
		{
			name:     "paint",
			tape:     robotTape,
			opts:     options.Program{Machine: options.Machine{Paint: true}},
			expected: "6\n..#\n..#\n##.\n",
		},
		{
			name:     "paint start white",
			tape:     "3,100,4,100,104,1,99",
			opts:     options.Program{Machine: options.Machine{Paint: true, StartWhite: true}},
			expected: "1\n#\n",
		},
		{
			name:     "disassemble",
			tape:     "104,7,99",
			opts:     options.Program{Flags: options.Flags{Disassemble: true}},
			expected: "0000: out #7  ; 104,7\n0002: hlt  ; 99\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := intcode.Parse(tt.tape)
			assert.NoError(t, err)

			var buf bytes.Buffer
			p := New(log.NewTestLogger(t))
			err = p.ExecuteWithCells(context.Background(), cells, tt.opts, options.NewDisassembler(), &buf)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	tapeFile := filepath.Join(dir, "tape.txt")
	configFile := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(tapeFile, []byte("109,10,203,0,204,0,99\n"), 0o600))
	assert.NoError(t, os.WriteFile(configFile, []byte("scratch: 16\ninputs: [5]\n"), 0o600))

	opts := options.Program{
		Parameters: options.Parameters{Input: tapeFile, Config: configFile},
		Flags:      options.Flags{Debug: true},
	}

	var buf bytes.Buffer
	p := New(log.NewTestLogger(t))
	assert.NoError(t, p.Execute(context.Background(), opts, options.NewDisassembler(), &buf))
	assert.Equal(t, "5\n", buf.String())
}

func TestExecuteWithCellsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts options.Machine
		flag options.Flags
	}{
		{name: "invalid overflow", opts: options.Machine{Overflow: "saturate"}},
		{name: "sweep without phases", opts: options.Machine{Sweep: true}},
		{name: "sweep with inputs", opts: options.Machine{Sweep: true, Phases: []int64{1, 2}, Inputs: []int64{3}}},
		{name: "disassemble amplifier", opts: options.Machine{Phases: []int64{1, 2}}, flag: options.Flags{Disassemble: true}},
		{name: "disassemble robot", opts: options.Machine{Paint: true}, flag: options.Flags{Disassemble: true}},
		{name: "robot amplifier", opts: options.Machine{Paint: true, Phases: []int64{1, 2}}},
		{name: "robot with inputs", opts: options.Machine{Paint: true, Inputs: []int64{1}}},
		{name: "start white without robot", opts: options.Machine{StartWhite: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := New(log.NewTestLogger(t))
			opts := options.Program{Flags: tt.flag, Machine: tt.opts}
			err := p.ExecuteWithCells(context.Background(), []int64{99}, opts, options.NewDisassembler(), &buf)
			assert.Error(t, err)
			assert.Equal(t, "", buf.String())
		})
	}
}

func TestExecuteSweepFromConfig(t *testing.T) {
	dir := t.TempDir()
	tapeFile := filepath.Join(dir, "tape.txt")
	configFile := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(tapeFile, []byte("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0\n"), 0o600))
	assert.NoError(t, os.WriteFile(configFile, []byte("phases: [0, 1, 2, 3, 4]\n"), 0o600))

	// the sweep flag is given on the command line, the phases only in the config
	opts := options.Program{
		Parameters: options.Parameters{Input: tapeFile, Config: configFile},
		Machine:    options.Machine{Sweep: true},
	}

	var buf bytes.Buffer
	p := New(log.NewTestLogger(t))
	assert.NoError(t, p.Execute(context.Background(), opts, options.NewDisassembler(), &buf))
	assert.Equal(t, "43210\n4,3,2,1,0\n", buf.String())

	// both from the config
	assert.NoError(t, os.WriteFile(configFile, []byte("phases: [0, 1, 2, 3, 4]\nsweep: true\n"), 0o600))
	opts.Sweep = false
	buf.Reset()
	assert.NoError(t, p.Execute(context.Background(), opts, options.NewDisassembler(), &buf))
	assert.Equal(t, "43210\n4,3,2,1,0\n", buf.String())
}

func TestExecuteErrors(t *testing.T) {
	dir := t.TempDir()
	p := New(log.NewTestLogger(t))

	opts := options.Program{Parameters: options.Parameters{Input: filepath.Join(dir, "missing.txt")}}
	err := p.Execute(context.Background(), opts, options.NewDisassembler(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading tape")

	opts.Config = filepath.Join(dir, "missing.yaml")
	err = p.Execute(context.Background(), opts, options.NewDisassembler(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "loading config")
}
