// Package pipeline orchestrates the workflow of loading and executing a tape.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrointcode/internal/amplifier"
	"github.com/retroenv/retrointcode/internal/config"
	"github.com/retroenv/retrointcode/internal/disasm"
	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrointcode/internal/loader"
	"github.com/retroenv/retrointcode/internal/options"
	"github.com/retroenv/retrointcode/internal/robot"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete execution workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new execution pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute runs the complete pipeline: it applies the config file, loads the
// tape and processes it as requested by the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler, writer io.Writer) error {
	if opts.Config != "" {
		file, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		file.Apply(&opts)
	}

	cells, err := p.loader.Load(opts)
	if err != nil {
		return fmt.Errorf("loading tape: %w", err)
	}

	return p.ExecuteWithCells(ctx, cells, opts, disasmOpts, writer)
}

// ExecuteWithCells runs the pipeline with an already parsed tape.
// This is useful for testing and programmatic usage where the tape is already in memory.
func (p *Pipeline) ExecuteWithCells(ctx context.Context, cells []int64, opts options.Program,
	disasmOpts options.Disassembler, writer io.Writer) error {

	if err := validateOptions(opts); err != nil {
		return err
	}
	p.printInfo(opts, cells)

	if opts.Disassemble {
		dis := disasm.New(p.logger, cells, disasmOpts)
		if err := dis.Process(writer); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		return nil
	}

	programOpts, err := p.programOptions(opts)
	if err != nil {
		return err
	}

	switch {
	case opts.Paint:
		return p.runRobot(ctx, cells, opts, programOpts, writer)
	case opts.Phases != nil:
		return p.runAmplifier(ctx, cells, opts, programOpts, writer)
	default:
		return p.runProgram(ctx, cells, opts, programOpts, writer)
	}
}

// validateOptions checks for conflicting option combinations. It runs after
// the config file was applied, so that every source of a value is known.
func validateOptions(opts options.Program) error {
	if _, err := intcode.ParseOverflowPolicy(opts.Overflow); err != nil {
		return err
	}
	if opts.Disassemble && (opts.Sweep || opts.Phases != nil || opts.Paint) {
		return errors.New("disassembling can not be combined with amplifier or robot options")
	}
	if opts.Paint && (opts.Phases != nil || opts.Sweep || opts.Feedback) {
		return errors.New("the painting robot can not be combined with amplifier options")
	}
	if opts.Paint && opts.Inputs != nil {
		return errors.New("inputs can not be combined with the painting robot")
	}
	if opts.StartWhite && !opts.Paint {
		return errors.New("the start panel color requires the painting robot")
	}
	if opts.Sweep && opts.Phases == nil {
		return errors.New("sweeping requires phase settings")
	}
	if opts.Sweep && opts.Inputs != nil {
		return errors.New("inputs can not be combined with a phase sweep")
	}
	return nil
}

// programOptions converts the machine options to interpreter options.
func (p *Pipeline) programOptions(opts options.Program) ([]intcode.Option, error) {
	policy, err := intcode.ParseOverflowPolicy(opts.Overflow)
	if err != nil {
		return nil, err
	}

	programOpts := []intcode.Option{intcode.WithOverflowPolicy(policy)}
	if opts.Scratch != nil {
		programOpts = append(programOpts, intcode.WithScratchSize(*opts.Scratch))
	}
	if opts.Debug {
		programOpts = append(programOpts, intcode.WithLogger(p.logger))
	}
	return programOpts, nil
}

// runProgram runs a single program instance to completion. Outputs produced
// before a failure are still written.
func (p *Pipeline) runProgram(ctx context.Context, cells []int64, opts options.Program,
	programOpts []intcode.Option, writer io.Writer) error {

	program := intcode.NewFromCells(cells, programOpts...)
	outputs, runErr := program.RunContext(ctx, opts.Inputs...)

	if err := writeValues(writer, outputs); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}

	p.logger.Debug("Program completed",
		log.Int("outputs", len(outputs)),
		log.Uint64("cycles", program.Cycles()))
	return nil
}

// runAmplifier runs the tape as amplifier chain.
func (p *Pipeline) runAmplifier(ctx context.Context, cells []int64, opts options.Program,
	programOpts []intcode.Option, writer io.Writer) error {

	chain := amplifier.New(p.logger, cells, programOpts...)

	if opts.Sweep {
		result, err := chain.Sweep(ctx, opts.Phases, opts.Feedback)
		if err != nil {
			return fmt.Errorf("sweeping phase settings: %w", err)
		}
		if err := writeValues(writer, []int64{result.Signal}); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer, formatList(result.Phases)); err != nil {
			return fmt.Errorf("writing phases: %w", err)
		}
		return nil
	}

	run := chain.Series
	if opts.Feedback {
		run = chain.Feedback
	}
	signal, err := run(ctx, opts.Phases)
	if err != nil {
		return fmt.Errorf("running amplifier chain: %w", err)
	}
	return writeValues(writer, []int64{signal})
}

// runRobot runs the tape as controller of the hull painting robot and writes
// the number of painted panels followed by the rendered hull.
func (p *Pipeline) runRobot(ctx context.Context, cells []int64, opts options.Program,
	programOpts []intcode.Option, writer io.Writer) error {

	start := robot.Black
	if opts.StartWhite {
		start = robot.White
	}

	hull, err := robot.New(p.logger, cells, start, programOpts...).Paint(ctx)
	if err != nil {
		return fmt.Errorf("painting hull: %w", err)
	}

	if err := writeValues(writer, []int64{int64(hull.Painted())}); err != nil {
		return err
	}
	if _, err := io.WriteString(writer, hull.Render()); err != nil {
		return fmt.Errorf("writing hull: %w", err)
	}
	return nil
}

// printInfo prints information about the tape being processed.
func (p *Pipeline) printInfo(opts options.Program, cells []int64) {
	if opts.Quiet {
		return
	}

	mode := "run"
	switch {
	case opts.Disassemble:
		mode = "disassemble"
	case opts.Paint:
		mode = "paint"
	case opts.Sweep:
		mode = "sweep"
	case opts.Feedback:
		mode = "feedback"
	case opts.Phases != nil:
		mode = "series"
	}

	p.logger.Info("Processing tape",
		log.String("file", opts.Input),
		log.Int("cells", len(cells)),
		log.String("mode", mode),
	)
}

func writeValues(writer io.Writer, values []int64) error {
	for _, value := range values {
		if _, err := fmt.Fprintln(writer, value); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

func formatList(values []int64) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.FormatInt(value, 10)
	}
	return strings.Join(parts, ",")
}
