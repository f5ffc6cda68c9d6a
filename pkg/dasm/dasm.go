// Package dasm decodes raw 8086/8088 machine code into a NASM-compatible
// assembly listing. Only the mov/add/sub/cmp register-memory and immediate
// encodings are covered; anything else aborts the whole pass.
package dasm

import (
	"strings"

	"github.com/Manu343726/ocho86/pkg/utils"
)

// The fixed architecture header every listing starts with
const ListingHeader = "bits 16\n"

// Decode runs a single forward pass over the instruction byte stream and
// returns every decoded instruction. The pass is all-or-nothing: the first
// unrecognized opcode, unhandled format or truncated encoding aborts it, and
// the error names the offending offset.
func Decode(data []byte) ([]Instruction, error) {
	c := newCursor(data)

	var instructions []Instruction
	for !c.done() {
		start := c.offset()

		byte0, _ := c.peek(0)
		byte1, _ := c.peek(1)

		encoding, err := Classify(byte0, byte1)
		if err != nil {
			return nil, utils.MakeError(err, "at offset %v", start)
		}

		instruction, err := decodeOne(c, encoding)
		if err != nil {
			return nil, utils.MakeError(err, "in instruction starting at offset %v", start)
		}

		instruction.Offset = start
		instruction.Bytes = data[start:c.offset()]
		instructions = append(instructions, instruction)
	}

	return instructions, nil
}

// Disassemble decodes the whole byte stream and renders it as a NASM
// listing: the architecture header, a blank line, then one instruction per
// line. On error no partial listing is returned.
func Disassemble(data []byte) (string, error) {
	instructions, err := Decode(data)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(ListingHeader)

	for i := range instructions {
		builder.WriteString("\n")
		builder.WriteString(instructions[i].String())
	}

	return builder.String(), nil
}
