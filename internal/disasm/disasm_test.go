package disasm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrointcode/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcess(t *testing.T) {
	tests := []struct {
		name     string
		tape     string
		options  options.Disassembler
		expected string
	}{
		{
			name:    "all comments",
			tape:    "1002,4,3,4,33",
			options: options.NewDisassembler(),
			expected: "0000: mul [4], #3, [4]  ; 1002,4,3,4\n" +
				"0004: .data 33\n",
		},
		{
			name:     "no comments",
			tape:     "109,-1,204,3,99",
			options:  options.Disassembler{},
			expected: "arb #-1\nout rb[+3]\nhlt\n",
		},
		{
			name:    "relative and invalid opcodes",
			tape:    "21101,1,2,-3,98",
			options: options.Disassembler{OffsetComments: true},
			expected: "0000: add #1, #2, rb[-3]\n" +
				"0004: .data 98\n",
		},
		{
			name:     "truncated instruction",
			tape:     "1,2",
			options:  options.Disassembler{},
			expected: ".data 1\n.data 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := intcode.Parse(tt.tape)
			assert.NoError(t, err)

			var buf bytes.Buffer
			dis := New(log.NewTestLogger(t), cells, tt.options)
			assert.NoError(t, dis.Process(&buf))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestProcessWriteError(t *testing.T) {
	dis := New(log.NewTestLogger(t), []int64{99}, options.Disassembler{})
	err := dis.Process(failingWriter{})
	assert.ErrorContains(t, err, "disk full")
}
