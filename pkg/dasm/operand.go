package dasm

import (
	"strconv"
	"strings"
)

// Represents the kind of operand a decoded value refers to
type OperandKind uint

const (
	OperandKind_Register OperandKind = iota
	OperandKind_Memory
	OperandKind_Immediate
)

func (k OperandKind) String() string {
	switch k {
	case OperandKind_Register:
		return "register"
	case OperandKind_Memory:
		return "memory"
	case OperandKind_Immediate:
		return "immediate"
	}

	panic("unreachable")
}

// An effective-address expression: a fixed base/index register combination
// plus an optional signed displacement, or a pure 16-bit direct address.
type MemoryExpression struct {
	// Base register combination, e.g. "bx + si". Empty for direct addresses.
	Base string
	// Signed displacement added to the base expression
	Displacement int16
	// True for the mod=0/rm=110 pure-address special case
	Direct bool
}

// Renders the effective address in NASM bracket syntax. A zero displacement
// is suppressed, except for direct addresses, which always show their value.
func (m *MemoryExpression) String() string {
	var builder strings.Builder

	builder.WriteString("[")

	if m.Direct {
		builder.WriteString(strconv.Itoa(int(uint16(m.Displacement))))
	} else {
		builder.WriteString(m.Base)

		if m.Displacement > 0 {
			builder.WriteString(" + ")
			builder.WriteString(strconv.Itoa(int(m.Displacement)))
		} else if m.Displacement < 0 {
			builder.WriteString(" - ")
			builder.WriteString(strconv.Itoa(-int(m.Displacement)))
		}
	}

	builder.WriteString("]")

	return builder.String()
}

// Stores the value of a decoded instruction operand
type Operand struct {
	register  string
	memory    *MemoryExpression
	immediate *int32
}

// Returns the kind of operand this value refers to
func (o *Operand) Kind() OperandKind {
	if o.register != "" {
		return OperandKind_Register
	} else if o.memory != nil {
		return OperandKind_Memory
	} else if o.immediate != nil {
		return OperandKind_Immediate
	}

	panic("unreachable")
}

// Returns the NASM string representation of the operand
func (o *Operand) String() string {
	if o.register != "" {
		return o.register
	} else if o.memory != nil {
		return o.memory.String()
	} else if o.immediate != nil {
		return strconv.Itoa(int(*o.immediate))
	}

	panic("unreachable")
}

// Builds a register operand from a width bit and a 3-bit register index
func RegisterOperand(w WidthBit, index byte) Operand {
	return Operand{register: RegisterName(w, index)}
}

// Builds the implicit accumulator operand (al or ax) for the given width
func AccumulatorOperand(w WidthBit) Operand {
	return Operand{register: AccumulatorName(w)}
}

// Builds a memory operand from a base expression and a signed displacement
func MemoryOperand(base string, displacement int16) Operand {
	return Operand{memory: &MemoryExpression{Base: base, Displacement: displacement}}
}

// Builds a memory operand addressing a pure 16-bit direct address
func DirectMemoryOperand(address uint16) Operand {
	return Operand{memory: &MemoryExpression{Displacement: int16(address), Direct: true}}
}

// Builds an immediate operand. The value is stored already interpreted per
// the encoding's width and sign-extension rules.
func ImmediateOperand(value int32) Operand {
	immediate := value
	return Operand{immediate: &immediate}
}
