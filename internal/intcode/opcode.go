package intcode

import "fmt"

// Opcode is the operation selector stored in the low two decimal digits of
// an instruction word.
type Opcode uint8

// Supported opcodes.
const (
	Add                Opcode = 1
	Multiply           Opcode = 2
	Input              Opcode = 3
	Output             Opcode = 4
	JumpIfTrue         Opcode = 5
	JumpIfFalse        Opcode = 6
	LessThan           Opcode = 7
	Equals             Opcode = 8
	AdjustRelativeBase Opcode = 9
	Halt               Opcode = 99
)

type opcodeInfo struct {
	name   string
	params int
}

var opcodes = map[Opcode]opcodeInfo{
	Add:                {name: "add", params: 3},
	Multiply:           {name: "mul", params: 3},
	Input:              {name: "in", params: 1},
	Output:             {name: "out", params: 1},
	JumpIfTrue:         {name: "jnz", params: 2},
	JumpIfFalse:        {name: "jz", params: 2},
	LessThan:           {name: "lt", params: 3},
	Equals:             {name: "eq", params: 3},
	AdjustRelativeBase: {name: "arb", params: 1},
	Halt:               {name: "hlt", params: 0},
}

// String returns the mnemonic of the opcode.
func (o Opcode) String() string {
	if info, ok := opcodes[o]; ok {
		return info.name
	}
	return fmt.Sprintf("op%d", uint8(o))
}

// Params returns the number of parameters the opcode takes.
func (o Opcode) Params() int {
	return opcodes[o].params
}

// Width returns the number of cells the instruction occupies including the
// instruction word itself.
func (o Opcode) Width() int {
	return o.Params() + 1
}

// Instruction is an opcode paired with the addressing modes of its
// parameters. It is decoded on every fetch and never cached.
type Instruction struct {
	Opcode Opcode
	Modes  Modes
}

// Decode splits an instruction word into its opcode and mode digits.
func Decode(word int64) (Instruction, error) {
	code := word % 100
	if code < 0 {
		return Instruction{}, fmt.Errorf("%w: %d", ErrInvalidOpcode, code)
	}

	op := Opcode(code)
	if _, ok := opcodes[op]; !ok {
		return Instruction{}, fmt.Errorf("%w: %d", ErrInvalidOpcode, code)
	}

	return Instruction{
		Opcode: op,
		Modes:  DecodeModes(word / 100),
	}, nil
}
