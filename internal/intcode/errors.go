package intcode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTape is returned when a tape token is not a base-10 integer.
	ErrInvalidTape = errors.New("invalid tape")
	// ErrInvalidOpcode is returned when an instruction word has an unknown opcode.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrInputStarved is returned by Run when an input instruction finds no
	// pending input.
	ErrInputStarved = errors.New("input starved")
	// ErrOutOfBounds is returned when an address resolves outside of memory.
	ErrOutOfBounds = errors.New("address out of bounds")
	// ErrOverflow is returned when arithmetic overflows under OverflowFail.
	ErrOverflow = errors.New("integer overflow")
)

// ExecutionError describes a fatal failure of the instruction at PC.
type ExecutionError struct {
	PC   int
	Word int64
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing instruction %d at %d: %s", e.Word, e.PC, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
