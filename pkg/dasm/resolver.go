package dasm

// Addressing modes encoded in the mod field of a mod/reg/rm byte
const (
	mod_MemoryNoDisplacement = 0b00
	mod_MemoryDisplacement8  = 0b01
	mod_MemoryDisplacement16 = 0b10
	mod_Register             = 0b11
)

// The eight fixed base/index register combinations indexed by the rm field
var effectiveAddressBases = [8]string{
	"bx + si",
	"bx + di",
	"bp + si",
	"bp + di",
	"si",
	"di",
	"bp",
	"bx",
}

// resolveRM decodes the register-or-memory operand selected by the mod and rm
// fields, consuming the displacement bytes the mode requires:
//
//   - mod=11: register direct, no extra bytes
//   - mod=00: memory with no displacement, except rm=110 which is a pure
//     16-bit direct address (2 bytes) rather than [bp]
//   - mod=01: memory plus 8-bit displacement, sign-extended (1 byte)
//   - mod=10: memory plus 16-bit displacement (2 bytes)
func resolveRM(c *cursor, mod, rm byte, w WidthBit) (Operand, error) {
	switch mod {
	case mod_Register:
		return RegisterOperand(w, rm), nil

	case mod_MemoryNoDisplacement:
		if rm == 0b110 {
			address, err := c.word()
			if err != nil {
				return Operand{}, err
			}
			return DirectMemoryOperand(address), nil
		}
		return MemoryOperand(effectiveAddressBases[rm], 0), nil

	case mod_MemoryDisplacement8:
		displacement, err := c.next()
		if err != nil {
			return Operand{}, err
		}
		return MemoryOperand(effectiveAddressBases[rm], int16(int8(displacement))), nil

	case mod_MemoryDisplacement16:
		displacement, err := c.word()
		if err != nil {
			return Operand{}, err
		}
		return MemoryOperand(effectiveAddressBases[rm], int16(displacement)), nil
	}

	panic("unreachable")
}
