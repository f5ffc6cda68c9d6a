package dasm

// Selects whether an operand is a byte (8-bit) or word (16-bit) register/immediate
type WidthBit byte

const (
	ByteWidth WidthBit = 0
	WordWidth WidthBit = 1
)

// Returns the NASM size qualifier keyword for the width
func (w WidthBit) Qualifier() string {
	if w == WordWidth {
		return "word"
	}
	return "byte"
}

// Register names indexed by the 3-bit register field, per operand width
var (
	byteRegisters = [8]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}
	wordRegisters = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}
)

// Returns the mnemonic of the register selected by a width bit and a 3-bit register index
func RegisterName(w WidthBit, index byte) string {
	if w == WordWidth {
		return wordRegisters[index&0b111]
	}
	return byteRegisters[index&0b111]
}

// Returns the mnemonic of the accumulator register for the given width (al or ax)
func AccumulatorName(w WidthBit) string {
	return RegisterName(w, 0)
}
