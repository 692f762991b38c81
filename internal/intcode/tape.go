package intcode

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse parses a comma separated tape of base-10 signed integers. Whitespace
// around tokens is ignored, a single trailing comma is tolerated.
func Parse(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty tape", ErrInvalidTape)
	}

	tokens := strings.Split(text, ",")
	if len(tokens) > 1 && strings.TrimSpace(tokens[len(tokens)-1]) == "" {
		tokens = tokens[:len(tokens)-1]
	}

	cells := make([]int64, len(tokens))
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		value, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d '%s': %w", ErrInvalidTape, i, token, err)
		}
		cells[i] = value
	}
	return cells, nil
}

// Load reads a whole tape from the reader and parses it.
func Load(r io.Reader) ([]int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tape: %w", err)
	}
	return Parse(string(data))
}
