package dasm

import (
	"fmt"
	"strings"

	"github.com/Manu343726/ocho86/pkg/utils"
)

// Represents an instruction operation (the rendered mnemonic)
type Op uint

const (
	Op_Mov Op = iota
	Op_Add
	Op_Sub
	Op_Cmp

	// Total operations implemented
	TOTAL_OPS
)

var mnemonics = map[Op]string{
	Op_Mov: "mov",
	Op_Add: "add",
	Op_Sub: "sub",
	Op_Cmp: "cmp",
}

// Returns the mnemonic of the operation
func (op Op) String() string {
	return mnemonics[op]
}

// Represents one of the supported instruction encoding shapes. Each format
// implies a fixed decode procedure and byte-consumption schedule.
type Format uint

const (
	Format_RegisterOrMemoryToOrFromRegister Format = iota
	Format_ImmediateToRegister
	Format_ImmediateToRegisterOrMemory
	Format_MemoryToAccumulator
	Format_AccumulatorToMemory
	Format_ImmediateToAccumulator
	Format_RegisterOrMemoryToSegmentRegister
	Format_SegmentRegisterToRegisterOrMemory

	// Total encoding formats recognized
	TOTAL_FORMATS
)

var formatNames = map[Format]string{
	Format_RegisterOrMemoryToOrFromRegister:  "register/memory to/from register",
	Format_ImmediateToRegister:               "immediate to register",
	Format_ImmediateToRegisterOrMemory:       "immediate to register/memory",
	Format_MemoryToAccumulator:               "memory to accumulator",
	Format_AccumulatorToMemory:               "accumulator to memory",
	Format_ImmediateToAccumulator:            "immediate to accumulator",
	Format_RegisterOrMemoryToSegmentRegister: "register/memory to segment register",
	Format_SegmentRegisterToRegisterOrMemory: "segment register to register/memory",
}

func (f Format) String() string {
	return formatNames[f]
}

// Describes one recognized opcode bit pattern: a leading byte matching
// (byte0 & Mask) == Value, the encoding format it selects, and the operation
// it renders as.
//
// When OpFromReg is set the leading byte alone is ambiguous (the 0x80-0x83
// arithmetic immediate group) and the operation is selected by the reg
// subfield (bits 3-5) of the second byte instead of the Op field.
type Encoding struct {
	Mask      byte
	Value     byte
	Format    Format
	Op        Op
	OpFromReg bool
}

// Returns the leading-byte bit pattern of the encoding, with the bits not
// covered by the mask rendered as 'x'
func (e *Encoding) Pattern() string {
	pattern := []byte(utils.FormatUintBinary(uint64(e.Value), 8))
	mask := utils.FormatUintBinary(uint64(e.Mask), 8)

	for i := range pattern {
		if mask[i] == '0' {
			pattern[i] = 'x'
		}
	}

	return string(pattern)
}

// The ordered encoding table. Matching is top-down, so more specific patterns
// (larger masks) are listed before wider ones; two entries must never match
// the same leading byte.
var Encodings = []Encoding{
	{Mask: 0xFF, Value: 0x8E, Format: Format_RegisterOrMemoryToSegmentRegister, Op: Op_Mov},
	{Mask: 0xFF, Value: 0x8C, Format: Format_SegmentRegisterToRegisterOrMemory, Op: Op_Mov},
	{Mask: 0xFE, Value: 0xC6, Format: Format_ImmediateToRegisterOrMemory, Op: Op_Mov},
	{Mask: 0xFE, Value: 0xA0, Format: Format_MemoryToAccumulator, Op: Op_Mov},
	{Mask: 0xFE, Value: 0xA2, Format: Format_AccumulatorToMemory, Op: Op_Mov},
	{Mask: 0xFE, Value: 0x04, Format: Format_ImmediateToAccumulator, Op: Op_Add},
	{Mask: 0xFE, Value: 0x2C, Format: Format_ImmediateToAccumulator, Op: Op_Sub},
	{Mask: 0xFE, Value: 0x3C, Format: Format_ImmediateToAccumulator, Op: Op_Cmp},
	{Mask: 0xFC, Value: 0x88, Format: Format_RegisterOrMemoryToOrFromRegister, Op: Op_Mov},
	{Mask: 0xFC, Value: 0x00, Format: Format_RegisterOrMemoryToOrFromRegister, Op: Op_Add},
	{Mask: 0xFC, Value: 0x28, Format: Format_RegisterOrMemoryToOrFromRegister, Op: Op_Sub},
	{Mask: 0xFC, Value: 0x38, Format: Format_RegisterOrMemoryToOrFromRegister, Op: Op_Cmp},
	{Mask: 0xFC, Value: 0x80, Format: Format_ImmediateToRegisterOrMemory, OpFromReg: true},
	{Mask: 0xF0, Value: 0xB0, Format: Format_ImmediateToRegister, Op: Op_Mov},
}

// Operation selected by the reg subfield of the second byte for the 0x80-0x83
// arithmetic immediate group
var immediateGroupOps = map[byte]Op{
	0b000: Op_Add,
	0b101: Op_Sub,
	0b111: Op_Cmp,
}

// Classify matches the leading byte(s) of the next instruction against the
// encoding table and returns the matching encoding with its operation
// resolved. byte1 is inspected only for the ambiguous arithmetic immediate
// group, where the reg subfield selects the operation.
func Classify(byte0, byte1 byte) (Encoding, error) {
	for _, encoding := range Encodings {
		if byte0&encoding.Mask != encoding.Value {
			continue
		}

		if !encoding.OpFromReg {
			return encoding, nil
		}

		reg := byte(utils.CreateBitView(&byte1).Read(3, 3))
		op, handled := immediateGroupOps[reg]
		if !handled {
			return Encoding{}, utils.MakeError(ErrUnhandledFormat, "reg subfield %v of opcode %v selects no supported operation", utils.FormatUintBinary(uint64(reg), 3), utils.FormatUintBinary(uint64(byte0), 8))
		}

		encoding.Op = op
		return encoding, nil
	}

	return Encoding{}, utils.MakeError(ErrUnrecognizedOpcode, "pattern %v", utils.FormatUintBinary(uint64(byte0), 8))
}

// Returns information about the recognized instruction encodings
type EncodingTableDescriptor struct {
	Encodings []Encoding
}

// Descriptor of the whole encoding table
var Descriptor = EncodingTableDescriptor{
	Encodings: Encodings,
}

// Dumps the encoding table reference as one big multiline string
func (d *EncodingTableDescriptor) Documentation(leftpad int) string {
	leftpadStr := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	builder.WriteString(leftpadStr)
	builder.WriteString(fmt.Sprintf("total recognized encodings: %v\n", len(d.Encodings)))
	builder.WriteString(leftpadStr)
	builder.WriteString(fmt.Sprintf("total operations: %v\n\n", int(TOTAL_OPS)))

	builder.WriteString(leftpadStr)
	builder.WriteString("Encodings (matched top-down):\n\n")

	for i := range d.Encodings {
		encoding := &d.Encodings[i]

		operation := encoding.Op.String()
		if encoding.OpFromReg {
			operation = "add/sub/cmp (by reg subfield)"
		}

		builder.WriteString(leftpadStr)
		builder.WriteString(fmt.Sprintf(" - %v: %v, %v\n", encoding.Pattern(), operation, encoding.Format))
	}

	return builder.String()
}

// Like Documentation(), but with zero leftpad
func (d *EncodingTableDescriptor) DocString() string {
	return d.Documentation(0)
}
