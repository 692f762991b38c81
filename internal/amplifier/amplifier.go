// Package amplifier chains several instances of a tape so that the outputs of
// one instance become the inputs of the next one.
package amplifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrogolib/log"
)

// ErrDeadlock is returned when every instance of a feedback loop waits for
// input that no other instance will produce.
var ErrDeadlock = errors.New("all amplifiers are waiting for input")

// ErrNoSignal is returned when the last amplifier completed without
// producing any output.
var ErrNoSignal = errors.New("no output signal")

// Chain runs instances of a tape, one per phase setting. Every instance
// receives its phase setting as first input.
type Chain struct {
	logger *log.Logger
	cells  []int64
	opts   []intcode.Option
}

// New returns a chain for the parsed tape. The options are passed to every
// program instance.
func New(logger *log.Logger, cells []int64, opts ...intcode.Option) *Chain {
	return &Chain{
		logger: logger,
		cells:  cells,
		opts:   opts,
	}
}

func (c *Chain) instances(phases []int64) []*intcode.Program {
	programs := make([]*intcode.Program, len(phases))
	for i, phase := range phases {
		programs[i] = intcode.NewFromCells(c.cells, c.opts...)
		programs[i].AppendInputs(phase)
	}
	return programs
}

// Series runs each instance to completion once, starting with signal 0. The
// last output of an instance is the input signal of the next one.
func (c *Chain) Series(ctx context.Context, phases []int64) (int64, error) {
	var signal int64
	for i, program := range c.instances(phases) {
		outputs, err := program.RunContext(ctx, signal)
		if err != nil {
			return 0, fmt.Errorf("running amplifier %d: %w", i, err)
		}
		if len(outputs) == 0 {
			return 0, fmt.Errorf("amplifier %d: %w", i, ErrNoSignal)
		}
		signal = outputs[len(outputs)-1]
	}

	c.logger.Debug("Amplifier series finished",
		log.String("phases", fmt.Sprint(phases)),
		log.Int64("signal", signal))
	return signal, nil
}

// Feedback connects the last instance back to the first one and runs all
// instances round-robin until the last one completes. It returns the last
// signal emitted by the last instance.
func (c *Chain) Feedback(ctx context.Context, phases []int64) (int64, error) {
	programs := c.instances(phases)
	if len(programs) == 0 {
		return 0, ErrNoSignal
	}
	programs[0].AppendInputs(0)

	var signal int64
	var signalled bool
	completed := make([]bool, len(programs))

	for {
		progress := false

		for i, program := range programs {
			if completed[i] {
				continue
			}

			event, err := program.RunUntilEventContext(ctx)
			if err != nil {
				return 0, fmt.Errorf("running amplifier %d: %w", i, err)
			}

			switch event.Kind {
			case intcode.EventOutput:
				progress = true
				next := programs[(i+1)%len(programs)]
				next.AppendInputs(event.Value)
				if i == len(programs)-1 {
					signal = event.Value
					signalled = true
				}

			case intcode.EventCompleted:
				progress = true
				completed[i] = true

			case intcode.EventNeedsInput:
			}
		}

		if completed[len(completed)-1] {
			break
		}
		if !progress {
			return 0, ErrDeadlock
		}
	}

	if !signalled {
		return 0, ErrNoSignal
	}
	c.logger.Debug("Amplifier feedback loop finished",
		log.String("phases", fmt.Sprint(phases)),
		log.Int64("signal", signal))
	return signal, nil
}
