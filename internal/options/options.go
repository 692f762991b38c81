// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // tape file to load
	Output string // file to write results to, stdout if empty
	Config string // optional YAML configuration file
}

// Flags contains behavior options.
type Flags struct {
	Debug       bool
	Quiet       bool
	Disassemble bool // print a listing of the tape instead of running it
}

// Machine contains the options controlling program execution. Unset values
// are filled from the configuration file or use the interpreter default.
type Machine struct {
	Inputs   []int64 // initial input queue
	Scratch  *int    // scratch cells appended to the tape, nil selects the default
	Overflow string  // overflow policy name

	Phases   []int64 // phase settings of an amplifier chain
	Feedback bool    // connect the amplifier chain as feedback loop
	Sweep    bool    // search the phase permutation with the highest signal

	Paint      bool // run the tape as hull painting robot controller
	StartWhite bool // the robot starts on a white panel
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Machine
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	CellComments   bool // output the raw instruction cells as comment
	OffsetComments bool // prefix every line with the offset of the instruction
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		CellComments:   true,
		OffsetComments: true,
	}
}
