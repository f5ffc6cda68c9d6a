package dasm

import (
	"strings"
)

// Stores a fully decoded instruction
type Instruction struct {
	// Byte offset of the first instruction byte within the stream
	Offset int
	// Raw encoding bytes, exactly the bytes the decoder consumed
	Bytes []byte
	// Encoding format the instruction was decoded from
	Format Format
	// Operation mnemonic
	Op Op
	// Operand width selected by the w-bit
	Width WidthBit
	// Destination and source operands, in rendered order
	Dest   Operand
	Source Operand
}

// Returns the NASM assembly text of the instruction. The byte/word size
// qualifier is emitted only when an immediate targets a memory destination,
// where the assembler could not otherwise infer the immediate width.
func (i *Instruction) String() string {
	var builder strings.Builder

	builder.WriteString(i.Op.String())
	builder.WriteString(" ")

	if i.Dest.Kind() == OperandKind_Memory && i.Source.Kind() == OperandKind_Immediate {
		builder.WriteString(i.Width.Qualifier())
		builder.WriteString(" ")
	}

	builder.WriteString(i.Dest.String())
	builder.WriteString(", ")
	builder.WriteString(i.Source.String())

	return builder.String()
}
