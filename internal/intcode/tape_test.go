package intcode

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"plain", "1,0,0,0,99", []int64{1, 0, 0, 0, 99}},
		{"whitespace", " 1, 2 ,3\n", []int64{1, 2, 3}},
		{"negative", "-5,3", []int64{-5, 3}},
		{"trailing comma", "104,7,99,\n", []int64{104, 7, 99}},
		{"large literal", "104,1125899906842624,99", []int64{104, 1125899906842624, 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := Parse(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, cells)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "  \n", "1,a,3", "1,,3", "1.5,2", "99999999999999999999"} {
		_, err := Parse(input)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTape))
	}
}

func TestLoad(t *testing.T) {
	cells, err := Load(strings.NewReader("3,0,4,0,99\n"))
	assert.NoError(t, err)
	assert.Equal(t, []int64{3, 0, 4, 0, 99}, cells)
}
