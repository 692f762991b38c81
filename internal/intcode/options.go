package intcode

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// DefaultScratchSize is the number of zero cells appended to a tape at load
// time to serve as working storage.
const DefaultScratchSize = 4096

// OverflowPolicy defines what happens when arithmetic exceeds the int64 range.
type OverflowPolicy uint8

// Overflow policies.
const (
	OverflowWrap OverflowPolicy = iota // two's complement wrap around
	OverflowFail                       // stop execution with ErrOverflow
)

func (p OverflowPolicy) String() string {
	if p == OverflowFail {
		return "fail"
	}
	return "wrap"
}

// ParseOverflowPolicy returns the policy for its name, an empty name selects
// OverflowWrap.
func ParseOverflowPolicy(name string) (OverflowPolicy, error) {
	switch strings.ToLower(name) {
	case "", "wrap":
		return OverflowWrap, nil
	case "fail":
		return OverflowFail, nil
	default:
		return OverflowWrap, fmt.Errorf("unsupported overflow policy '%s'", name)
	}
}

type settings struct {
	scratch  int
	overflow OverflowPolicy
	logger   *log.Logger
}

// Option configures a Program at construction.
type Option func(*settings)

// WithScratchSize sets the number of zero cells appended to the tape.
func WithScratchSize(size int) Option {
	return func(s *settings) {
		if size >= 0 {
			s.scratch = size
		}
	}
}

// WithOverflowPolicy sets the arithmetic overflow behavior.
func WithOverflowPolicy(policy OverflowPolicy) Option {
	return func(s *settings) {
		s.overflow = policy
	}
}

// WithLogger enables debug logging of events and faults.
func WithLogger(logger *log.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}
