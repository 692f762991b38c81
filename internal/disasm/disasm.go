// Package disasm implements a disassembler that prints a readable listing of
// a tape.
package disasm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrointcode/internal/intcode"
	"github.com/retroenv/retrointcode/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler
	cells   []int64
}

// New creates a new disassembler for the parsed tape.
func New(logger *log.Logger, cells []int64, options options.Disassembler) *Disasm {
	return &Disasm{
		logger:  logger,
		options: options,
		cells:   cells,
	}
}

// Process walks the tape linearly and writes one line per instruction. Cells
// that do not decode to a complete instruction are written as data.
func (dis *Disasm) Process(writer io.Writer) error {
	var instructions, data int

	for offset := 0; offset < len(dis.cells); {
		ins, err := intcode.Decode(dis.cells[offset])
		width := ins.Opcode.Width()
		if err != nil || offset+width > len(dis.cells) {
			text := ".data " + strconv.FormatInt(dis.cells[offset], 10)
			if err := dis.writeLine(writer, offset, text, nil); err != nil {
				return err
			}
			data++
			offset++
			continue
		}

		code := dis.cells[offset : offset+width]
		if err := dis.writeLine(writer, offset, formatInstruction(ins, code[1:]), code); err != nil {
			return err
		}
		instructions++
		offset += width
	}

	dis.logger.Debug("Disassembled tape",
		log.Int("cells", len(dis.cells)),
		log.Int("instructions", instructions),
		log.Int("data", data))
	return nil
}

func (dis *Disasm) writeLine(writer io.Writer, offset int, text string, code []int64) error {
	var line strings.Builder
	if dis.options.OffsetComments {
		fmt.Fprintf(&line, "%04d: ", offset)
	}
	line.WriteString(text)

	if dis.options.CellComments && len(code) > 0 {
		values := make([]string, len(code))
		for i, value := range code {
			values[i] = strconv.FormatInt(value, 10)
		}
		line.WriteString("  ; ")
		line.WriteString(strings.Join(values, ","))
	}
	line.WriteByte('\n')

	if _, err := io.WriteString(writer, line.String()); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func formatInstruction(ins intcode.Instruction, params []int64) string {
	if len(params) == 0 {
		return ins.Opcode.String()
	}

	operands := make([]string, len(params))
	for i, param := range params {
		operands[i] = formatOperand(ins.Modes.At(i+1), param)
	}
	return ins.Opcode.String() + " " + strings.Join(operands, ", ")
}

func formatOperand(mode intcode.Mode, param int64) string {
	value := strconv.FormatInt(param, 10)
	switch mode {
	case intcode.Immediate:
		return "#" + value
	case intcode.Relative:
		if param < 0 {
			return "rb[" + value + "]"
		}
		return "rb[+" + value + "]"
	default:
		return "[" + value + "]"
	}
}
