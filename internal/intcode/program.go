package intcode

import (
	"context"
	"fmt"
	"math"

	"github.com/retroenv/retrogolib/log"
)

// contextCheckInterval is the number of cycles executed between checks of
// the context passed to RunUntilEventContext.
const contextCheckInterval = 1024

// Program is a single instance of the machine. It is not safe for concurrent
// use, every instance exclusively owns its memory and registers.
type Program struct {
	logger   *log.Logger
	overflow OverflowPolicy

	memory       []int64
	pc           int   // program counter
	relativeBase int64 // added to relative mode parameters
	inputs       []int64

	cycles uint64
	halted bool
	err    error // fatal error, set once the program faulted
}

// New parses the tape and returns a program ready to run.
func New(tape string, opts ...Option) (*Program, error) {
	cells, err := Parse(tape)
	if err != nil {
		return nil, err
	}
	return NewFromCells(cells, opts...), nil
}

// NewFromCells returns a program whose memory is a copy of the passed cells
// followed by the scratch space.
func NewFromCells(cells []int64, opts ...Option) *Program {
	s := settings{
		scratch: DefaultScratchSize,
	}
	for _, opt := range opts {
		opt(&s)
	}

	memory := make([]int64, len(cells)+s.scratch)
	copy(memory, cells)

	return &Program{
		logger:   s.logger,
		overflow: s.overflow,
		memory:   memory,
	}
}

// AppendInputs enqueues values at the tail of the pending input queue.
func (p *Program) AppendInputs(values ...int64) {
	p.inputs = append(p.inputs, values...)
}

// RunUntilEvent executes instructions until the next output, the program
// completing or an input instruction that finds no pending input.
// Once completed, every further call returns EventCompleted again.
func (p *Program) RunUntilEvent() (Event, error) {
	return p.RunUntilEventContext(context.Background())
}

// RunUntilEventContext is RunUntilEvent with cooperative cancellation. A
// cancelled context stops execution between two instructions and leaves the
// program resumable.
func (p *Program) RunUntilEventContext(ctx context.Context) (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	if p.halted {
		return Event{Kind: EventCompleted}, nil
	}

	for i := 0; ; i++ {
		if i%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Event{}, fmt.Errorf("running program: %w", err)
			}
		}

		event, ok, err := p.step()
		if err != nil {
			p.fault(err)
			return Event{}, p.err
		}
		if ok {
			p.debugEvent(event)
			return event, nil
		}
	}
}

// Run enqueues the inputs and runs the program to completion, collecting
// every output value in order. If the program needs more input than was
// supplied, the outputs collected so far are returned together with an
// error wrapping ErrInputStarved.
func (p *Program) Run(inputs ...int64) ([]int64, error) {
	return p.RunContext(context.Background(), inputs...)
}

// RunContext is Run with cooperative cancellation.
func (p *Program) RunContext(ctx context.Context, inputs ...int64) ([]int64, error) {
	p.AppendInputs(inputs...)

	outputs := []int64{}
	for {
		event, err := p.RunUntilEventContext(ctx)
		if err != nil {
			return outputs, err
		}

		switch event.Kind {
		case EventOutput:
			outputs = append(outputs, event.Value)
		case EventCompleted:
			return outputs, nil
		case EventNeedsInput:
			return outputs, &ExecutionError{PC: p.pc, Word: p.memory[p.pc], Err: ErrInputStarved}
		}
	}
}

// step executes a single instruction. It returns true if the instruction
// produced an event that ends the current invocation.
func (p *Program) step() (Event, bool, error) {
	word, err := p.read(p.pc)
	if err != nil {
		return Event{}, false, err
	}
	ins, err := Decode(word)
	if err != nil {
		return Event{}, false, err
	}

	switch ins.Opcode {
	case Add, Multiply, LessThan, Equals:
		if err := p.executeBinary(ins); err != nil {
			return Event{}, false, err
		}

	case Input:
		if len(p.inputs) == 0 {
			// pc stays on the input instruction so that it is executed again
			// once input is available
			return Event{Kind: EventNeedsInput}, true, nil
		}
		dst, err := p.target(ins, 1)
		if err != nil {
			return Event{}, false, err
		}
		if err := p.write(dst, p.inputs[0]); err != nil {
			return Event{}, false, err
		}
		p.inputs = p.inputs[1:]
		p.pc += 2

	case Output:
		value, err := p.param(ins, 1)
		if err != nil {
			return Event{}, false, err
		}
		p.pc += 2
		p.cycles++
		return Event{Kind: EventOutput, Value: value}, true, nil

	case JumpIfTrue, JumpIfFalse:
		if err := p.executeJump(ins); err != nil {
			return Event{}, false, err
		}

	case AdjustRelativeBase:
		value, err := p.param(ins, 1)
		if err != nil {
			return Event{}, false, err
		}
		base, err := p.add(p.relativeBase, value)
		if err != nil {
			return Event{}, false, err
		}
		p.relativeBase = base
		p.pc += 2

	case Halt:
		p.halted = true
		p.cycles++
		return Event{Kind: EventCompleted}, true, nil
	}

	p.cycles++
	return Event{}, false, nil
}

// executeBinary executes the instructions that combine two parameters and
// store the result in the third.
func (p *Program) executeBinary(ins Instruction) error {
	a, err := p.param(ins, 1)
	if err != nil {
		return err
	}
	b, err := p.param(ins, 2)
	if err != nil {
		return err
	}

	var result int64
	switch ins.Opcode {
	case Add:
		result, err = p.add(a, b)
	case Multiply:
		result, err = p.multiply(a, b)
	case LessThan:
		if a < b {
			result = 1
		}
	case Equals:
		if a == b {
			result = 1
		}
	}
	if err != nil {
		return err
	}

	dst, err := p.target(ins, 3)
	if err != nil {
		return err
	}
	if err := p.write(dst, result); err != nil {
		return err
	}
	p.pc += 4
	return nil
}

func (p *Program) executeJump(ins Instruction) error {
	condition, err := p.param(ins, 1)
	if err != nil {
		return err
	}
	destination, err := p.param(ins, 2)
	if err != nil {
		return err
	}

	if (ins.Opcode == JumpIfTrue) == (condition != 0) {
		if destination < 0 || destination >= int64(len(p.memory)) {
			return fmt.Errorf("%w: jump to %d", ErrOutOfBounds, destination)
		}
		p.pc = int(destination)
		return nil
	}
	p.pc += 3
	return nil
}

// param resolves the value of the 1-based parameter of the instruction at pc.
func (p *Program) param(ins Instruction, index int) (int64, error) {
	raw, err := p.read(p.pc + index)
	if err != nil {
		return 0, err
	}

	switch ins.Modes.At(index) {
	case Immediate:
		return raw, nil
	case Relative:
		address, err := p.add(raw, p.relativeBase)
		if err != nil {
			return 0, err
		}
		return p.readAddress(address)
	default:
		return p.readAddress(raw)
	}
}

// target resolves the address that the 1-based parameter of the instruction
// at pc writes to. Immediate mode is not valid for a destination and is
// treated like position mode.
func (p *Program) target(ins Instruction, index int) (int64, error) {
	raw, err := p.read(p.pc + index)
	if err != nil {
		return 0, err
	}
	if ins.Modes.At(index) == Relative {
		return p.add(raw, p.relativeBase)
	}
	return raw, nil
}

func (p *Program) read(address int) (int64, error) {
	if address < 0 || address >= len(p.memory) {
		return 0, fmt.Errorf("%w: read at %d", ErrOutOfBounds, address)
	}
	return p.memory[address], nil
}

func (p *Program) readAddress(address int64) (int64, error) {
	if address < 0 || address >= int64(len(p.memory)) {
		return 0, fmt.Errorf("%w: read at %d", ErrOutOfBounds, address)
	}
	return p.memory[address], nil
}

func (p *Program) write(address, value int64) error {
	if address < 0 || address >= int64(len(p.memory)) {
		return fmt.Errorf("%w: write at %d", ErrOutOfBounds, address)
	}
	p.memory[address] = value
	return nil
}

func (p *Program) add(a, b int64) (int64, error) {
	c := a + b
	if p.overflow == OverflowFail && ((a > 0 && b > 0 && c < 0) || (a < 0 && b < 0 && c >= 0)) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return c, nil
}

func (p *Program) multiply(a, b int64) (int64, error) {
	c := a * b
	if p.overflow == OverflowFail && a != 0 && b != 0 {
		if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
		}
	}
	return c, nil
}

// fault stores the error as terminal state of the program.
func (p *Program) fault(err error) {
	word := int64(0)
	if p.pc >= 0 && p.pc < len(p.memory) {
		word = p.memory[p.pc]
	}
	p.err = &ExecutionError{PC: p.pc, Word: word, Err: err}

	if p.logger != nil {
		p.logger.Debug("Program faulted",
			log.Int("pc", p.pc),
			log.Err(err))
	}
}

func (p *Program) debugEvent(event Event) {
	if p.logger == nil {
		return
	}
	p.logger.Debug("Program suspended",
		log.String("event", event.String()),
		log.Int("pc", p.pc),
		log.Int("pending", len(p.inputs)))
}

// Memory returns a copy of the whole memory including the scratch space.
func (p *Program) Memory() []int64 {
	memory := make([]int64, len(p.memory))
	copy(memory, p.memory)
	return memory
}

// Cell returns the value of a single memory cell.
func (p *Program) Cell(address int) (int64, error) {
	return p.read(address)
}

// SetCell patches a single memory cell, for example to set the parameters
// of a tape before running it.
func (p *Program) SetCell(address int, value int64) error {
	return p.write(int64(address), value)
}

// PC returns the program counter.
func (p *Program) PC() int {
	return p.pc
}

// RelativeBase returns the relative base register.
func (p *Program) RelativeBase() int64 {
	return p.relativeBase
}

// PendingInputs returns the number of inputs that have not been consumed yet.
func (p *Program) PendingInputs() int {
	return len(p.inputs)
}

// Halted returns whether the program executed a halt instruction.
func (p *Program) Halted() bool {
	return p.halted
}

// Err returns the fatal error of a faulted program.
func (p *Program) Err() error {
	return p.err
}

// Cycles returns the number of instructions executed.
func (p *Program) Cycles() uint64 {
	return p.cycles
}
