package intcode

// Mode is the addressing mode of a single instruction parameter.
type Mode uint8

// Addressing modes, numbered by their mode digit.
const (
	Position  Mode = 0 // parameter is an address
	Immediate Mode = 1 // parameter is the value itself
	Relative  Mode = 2 // parameter is an offset to the relative base
)

var modeNames = map[Mode]string{
	Position:  "position",
	Immediate: "immediate",
	Relative:  "relative",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Modes is the decoded mode digit block of an instruction word.
// The digit of parameter 1 is the least significant one.
type Modes struct {
	digits int64
}

// DecodeModes decodes the mode digit block, which is the instruction word
// without its two opcode digits.
func DecodeModes(digits int64) Modes {
	if digits < 0 {
		digits = -digits
	}
	return Modes{digits: digits}
}

// At returns the mode of the 1-based parameter position. A position without a
// corresponding digit and unrecognized digits resolve to Position.
func (m Modes) At(param int) Mode {
	if param < 1 {
		return Position
	}

	n := m.digits
	for i := 1; i < param; i++ {
		n /= 10
		if n == 0 {
			return Position
		}
	}

	switch mode := Mode(n % 10); mode {
	case Immediate, Relative:
		return mode
	default:
		return Position
	}
}
