// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrointcode/internal/options"
)

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	var lists listFlags
	var scratch int
	readOptionFlags(flags, &opts, &lists, &scratch)
	var noCellComments, noOffsets bool
	readDisasmOptionFlags(flags, &noCellComments, &noOffsets)

	err := flags.Parse(os.Args[1:])
	disasmOptions := options.NewDisassembler()
	disasmOptions.CellComments = !noCellComments
	disasmOptions.OffsetComments = !noOffsets

	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, disasmOptions, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, disasmOptions, err
	}
	opts.Input = args[0]

	if err := lists.apply(&opts); err != nil {
		return opts, disasmOptions, err
	}
	if err := applyScratch(flags, &opts, scratch); err != nil {
		return opts, disasmOptions, err
	}

	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrointcode [options] <tape file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after tape file, please pass the tape file as last argument", arg),
			}
		}
	}
	return nil
}

// applyScratch sets the scratch size only if the flag was passed, so that a
// config file can still provide it.
func applyScratch(flags *flag.FlagSet, opts *options.Program, scratch int) error {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "scratch" {
			set = true
		}
	})
	if !set {
		return nil
	}
	if scratch < 0 {
		return fmt.Errorf("invalid scratch size %d", scratch)
	}
	opts.Scratch = &scratch
	return nil
}

// listFlags holds the raw values of flags that contain comma separated lists.
type listFlags struct {
	inputs string
	phases string
}

func (l listFlags) apply(opts *options.Program) error {
	var err error
	if opts.Inputs, err = parseList(l.inputs); err != nil {
		return fmt.Errorf("parsing inputs: %w", err)
	}
	if opts.Phases, err = parseList(l.phases); err != nil {
		return fmt.Errorf("parsing phases: %w", err)
	}
	return nil
}

// parseList parses a comma separated list of integers, an empty string
// returns a nil slice.
func parseList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]int64, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s'", part)
		}
		values[i] = value
	}
	return values, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, lists *listFlags, scratch *int) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Config, "c", "", "name of a YAML config file with machine settings")
	flags.StringVar(&lists.inputs, "i", "", "comma separated list of inputs to pass to the program")
	flags.IntVar(scratch, "scratch", intcode.DefaultScratchSize, "number of scratch cells appended to the tape")
	flags.StringVar(&opts.Overflow, "overflow", "", "arithmetic overflow policy (wrap/fail)")
	flags.StringVar(&lists.phases, "phases", "", "comma separated phase settings to run the tape as amplifier chain")
	flags.BoolVar(&opts.Feedback, "feedback", false, "connect the amplifier chain as feedback loop")
	flags.BoolVar(&opts.Sweep, "sweep", false, "find the permutation of the phase settings with the highest signal")
	flags.BoolVar(&opts.Paint, "paint", false, "run the tape as controller of a hull painting robot")
	flags.BoolVar(&opts.StartWhite, "start-white", false, "the painting robot starts on a white panel")
	flags.BoolVar(&opts.Disassemble, "d", false, "output a disassembly listing of the tape instead of running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readDisasmOptionFlags(flags *flag.FlagSet, noCellComments, noOffsets *bool) {
	flags.BoolVar(noCellComments, "nocellcomments", false, "do not output instruction cells in comments")
	flags.BoolVar(noOffsets, "nooffsets", false, "do not output offsets in comments")
}
