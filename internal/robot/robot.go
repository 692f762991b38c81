// Package robot runs a tape as the controller of a hull painting robot. The
// program reads the color of the panel below the robot and answers with the
// color to paint followed by the direction to turn.
package robot

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrogolib/log"
)

// ErrInvalidCommand is returned when the program outputs a value that is
// neither a color nor a turn direction.
var ErrInvalidCommand = errors.New("invalid robot command")

// ErrIncompleteStep is returned when the program completes or asks for
// input after emitting the color but before the turn direction.
var ErrIncompleteStep = errors.New("incomplete robot step")

// Robot paints a hull as instructed by a program.
type Robot struct {
	logger *log.Logger
	cells  []int64
	start  Color
	opts   []intcode.Option
}

// New returns a robot controlled by the parsed tape. The panel the robot
// starts on has the passed color. The options are passed to the program.
func New(logger *log.Logger, cells []int64, start Color, opts ...intcode.Option) *Robot {
	return &Robot{
		logger: logger,
		cells:  cells,
		start:  start,
		opts:   opts,
	}
}

// Paint runs the program until it completes and returns the painted hull.
func (r *Robot) Paint(ctx context.Context) (*Hull, error) {
	program := intcode.NewFromCells(r.cells, r.opts...)
	hull := NewHull()
	if r.start != Black {
		hull.panels[Point{}] = r.start
	}

	var position Point
	facing := Up
	var pending []int64 // outputs of the current step
	steps := 0

	for {
		event, err := program.RunUntilEventContext(ctx)
		if err != nil {
			return hull, fmt.Errorf("running robot program: %w", err)
		}

		switch event.Kind {
		case intcode.EventNeedsInput:
			if len(pending) > 0 {
				return hull, fmt.Errorf("%w: input requested before turn", ErrIncompleteStep)
			}
			program.AppendInputs(int64(hull.Color(position)))

		case intcode.EventOutput:
			if event.Value != 0 && event.Value != 1 {
				return hull, fmt.Errorf("%w: %d", ErrInvalidCommand, event.Value)
			}
			pending = append(pending, event.Value)
			if len(pending) < 2 {
				continue
			}

			hull.Paint(position, Color(pending[0]))
			facing = facing.Turn(pending[1] == 1)
			position = facing.Move(position)
			pending = pending[:0]
			steps++

		case intcode.EventCompleted:
			if len(pending) > 0 {
				return hull, fmt.Errorf("%w: program completed before turn", ErrIncompleteStep)
			}
			r.logger.Debug("Robot finished painting",
				log.Int("steps", steps),
				log.Int("painted", hull.Painted()),
				log.Uint64("cycles", program.Cycles()))
			return hull, nil
		}
	}
}
