package dasm

import (
	"github.com/Manu343726/ocho86/pkg/utils"
)

// Instruction byte bit fields shared by several formats
const (
	wBit = 0
	dBit = 1
	sBit = 1
)

// Splits a mod/reg/rm byte into its three bit groups
func modRegRM(b byte) (mod, reg, rm byte) {
	view := utils.CreateBitView(&b)
	return byte(view.Read(6, 2)), byte(view.Read(3, 3)), byte(view.Read(0, 3))
}

// Consumes the immediate bytes of an instruction: one byte rendered verbatim,
// a little-endian word, or one byte sign-extended to 16 bits.
func readImmediate(c *cursor, w WidthBit, signExtend bool) (int32, error) {
	if signExtend {
		b, err := c.next()
		if err != nil {
			return 0, err
		}
		return int32(int8(b)), nil
	}

	if w == WordWidth {
		value, err := c.word()
		if err != nil {
			return 0, err
		}
		return int32(value), nil
	}

	b, err := c.next()
	if err != nil {
		return 0, err
	}
	return int32(b), nil
}

// mov/add/sub/cmp between a register and a register-or-memory operand.
// Consumes the opcode byte, the mod/reg/rm byte, and whatever displacement
// the addressing mode requires; the d-bit picks which operand is the
// destination.
func decodeRegisterOrMemoryToOrFromRegister(c *cursor, encoding Encoding) (Instruction, error) {
	byte0, err := c.next()
	if err != nil {
		return Instruction{}, err
	}

	view := utils.CreateBitView(&byte0)
	w := WidthBit(view.Read(wBit, 1))
	d := view.Read(dBit, 1)

	byte1, err := c.next()
	if err != nil {
		return Instruction{}, err
	}
	mod, reg, rm := modRegRM(byte1)

	rmOperand, err := resolveRM(c, mod, rm, w)
	if err != nil {
		return Instruction{}, err
	}
	regOperand := RegisterOperand(w, reg)

	dest, source := rmOperand, regOperand
	if d == 1 {
		dest, source = regOperand, rmOperand
	}

	return Instruction{Format: encoding.Format, Op: encoding.Op, Width: w, Dest: dest, Source: source}, nil
}

// mov immediate into a register named by the low 3 bits of the opcode byte.
// Consumes the opcode byte plus 1 (byte width) or 2 (word width) data bytes.
func decodeImmediateToRegister(c *cursor, encoding Encoding) (Instruction, error) {
	byte0, err := c.next()
	if err != nil {
		return Instruction{}, err
	}

	view := utils.CreateBitView(&byte0)
	w := WidthBit(view.Read(3, 1))
	reg := byte(view.Read(0, 3))

	value, err := readImmediate(c, w, false)
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Format: encoding.Format,
		Op:     encoding.Op,
		Width:  w,
		Dest:   RegisterOperand(w, reg),
		Source: ImmediateOperand(value),
	}, nil
}

// mov/add/sub/cmp immediate into a register-or-memory operand. Consumes the
// opcode byte, the mod/reg/rm byte, the displacement the addressing mode
// requires, then the data bytes. For the arithmetic group the s-bit shrinks a
// word immediate to one sign-extended byte; the mov form has no s-bit.
func decodeImmediateToRegisterOrMemory(c *cursor, encoding Encoding) (Instruction, error) {
	byte0, err := c.next()
	if err != nil {
		return Instruction{}, err
	}

	view := utils.CreateBitView(&byte0)
	w := WidthBit(view.Read(wBit, 1))
	signExtend := encoding.OpFromReg && view.Read(sBit, 1) == 1 && w == WordWidth

	byte1, err := c.next()
	if err != nil {
		return Instruction{}, err
	}
	mod, _, rm := modRegRM(byte1)

	dest, err := resolveRM(c, mod, rm, w)
	if err != nil {
		return Instruction{}, err
	}

	value, err := readImmediate(c, w, signExtend)
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Format: encoding.Format,
		Op:     encoding.Op,
		Width:  w,
		Dest:   dest,
		Source: ImmediateOperand(value),
	}, nil
}

// mov between the accumulator and a direct memory address; direction depends
// on the format. Consumes the opcode byte plus 1 or 2 address bytes, the
// address width following the w-bit.
func decodeAccumulatorTransfer(c *cursor, encoding Encoding) (Instruction, error) {
	byte0, err := c.next()
	if err != nil {
		return Instruction{}, err
	}

	w := WidthBit(utils.CreateBitView(&byte0).Read(wBit, 1))

	var address uint16
	if w == WordWidth {
		address, err = c.word()
	} else {
		var b byte
		b, err = c.next()
		address = uint16(b)
	}
	if err != nil {
		return Instruction{}, err
	}

	accumulator := AccumulatorOperand(w)
	memory := DirectMemoryOperand(address)

	dest, source := accumulator, memory
	if encoding.Format == Format_AccumulatorToMemory {
		dest, source = memory, accumulator
	}

	return Instruction{Format: encoding.Format, Op: encoding.Op, Width: w, Dest: dest, Source: source}, nil
}

// add/sub/cmp immediate against the accumulator. Consumes the opcode byte
// plus 1 or 2 data bytes following the w-bit; the operation comes from the
// fixed leading bit pattern, not from a subfield.
func decodeImmediateToAccumulator(c *cursor, encoding Encoding) (Instruction, error) {
	byte0, err := c.next()
	if err != nil {
		return Instruction{}, err
	}

	w := WidthBit(utils.CreateBitView(&byte0).Read(wBit, 1))

	value, err := readImmediate(c, w, false)
	if err != nil {
		return Instruction{}, err
	}

	return Instruction{
		Format: encoding.Format,
		Op:     encoding.Op,
		Width:  w,
		Dest:   AccumulatorOperand(w),
		Source: ImmediateOperand(value),
	}, nil
}

// Dispatches the classified encoding to its decode routine
func decodeOne(c *cursor, encoding Encoding) (Instruction, error) {
	switch encoding.Format {
	case Format_RegisterOrMemoryToOrFromRegister:
		return decodeRegisterOrMemoryToOrFromRegister(c, encoding)
	case Format_ImmediateToRegister:
		return decodeImmediateToRegister(c, encoding)
	case Format_ImmediateToRegisterOrMemory:
		return decodeImmediateToRegisterOrMemory(c, encoding)
	case Format_MemoryToAccumulator, Format_AccumulatorToMemory:
		return decodeAccumulatorTransfer(c, encoding)
	case Format_ImmediateToAccumulator:
		return decodeImmediateToAccumulator(c, encoding)
	}

	return Instruction{}, utils.MakeError(ErrUnhandledFormat, "no decoder wired up for %v", encoding.Format)
}
