package dasm

import (
	"testing"

	"github.com/Manu343726/ocho86/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Decodes a stream expected to hold exactly one instruction
func decodeSingle(t *testing.T, data []byte) Instruction {
	t.Helper()

	instructions, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, instructions, 1)

	return instructions[0]
}

func TestDecode_RegisterOrMemoryToOrFromRegister(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		rendered string
	}{
		{"mov reg to reg", []byte{0x89, 0xD9}, "mov cx, bx"},
		{"mov byte reg to reg", []byte{0x88, 0xE5}, "mov ch, ah"},
		{"mov memory to reg", []byte{0x8A, 0x00}, "mov al, [bx + si]"},
		{"mov reg to memory", []byte{0x88, 0x6E, 0x00}, "mov [bp], ch"},
		{"mov direct address to reg", []byte{0x8B, 0x16, 0x64, 0x00}, "mov dx, [100]"},
		{"mov negative displacement", []byte{0x8B, 0x56, 0xDB}, "mov dx, [bp - 37]"},
		{"add reg to reg", []byte{0x01, 0xD8}, "add ax, bx"},
		{"sub memory from reg", []byte{0x2B, 0x18}, "sub bx, [bx + si]"},
		{"cmp reg with memory", []byte{0x3B, 0x18}, "cmp bx, [bx + si]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instruction := decodeSingle(t, tt.data)

			assert.Equal(t, tt.rendered, instruction.String())
			assert.Equal(t, Format_RegisterOrMemoryToOrFromRegister, instruction.Format)
		})
	}
}

func TestDecode_ImmediateToRegister(t *testing.T) {
	t.Run("byte width consumes 2 bytes", func(t *testing.T) {
		instruction := decodeSingle(t, []byte{0xB1, 0x0C})

		assert.Equal(t, "mov cl, 12", instruction.String())
		assert.Len(t, instruction.Bytes, 2)
	})

	t.Run("word width consumes 3 bytes", func(t *testing.T) {
		instruction := decodeSingle(t, []byte{0xB9, 0x0C, 0x00})

		assert.Equal(t, "mov cx, 12", instruction.String())
		assert.Len(t, instruction.Bytes, 3)
	})

	t.Run("word immediate is little-endian", func(t *testing.T) {
		instruction := decodeSingle(t, []byte{0xBA, 0x6C, 0x0F})

		assert.Equal(t, "mov dx, 3948", instruction.String())
	})

	t.Run("byte immediate renders verbatim", func(t *testing.T) {
		// 0xF4 is 244 when read as a raw byte value
		instruction := decodeSingle(t, []byte{0xB5, 0xF4})

		assert.Equal(t, "mov ch, 244", instruction.String())
	})
}

func TestDecode_ImmediateToRegisterOrMemory(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		rendered string
	}{
		{"mov byte imm to memory", []byte{0xC6, 0x03, 0x07}, "mov byte [bp + di], 7"},
		{"mov word imm to memory", []byte{0xC7, 0x85, 0xE8, 0x03, 0x5B, 0x01}, "mov word [di + 1000], 347"},
		{"add sign-extended imm to memory", []byte{0x83, 0x82, 0xE8, 0x03, 0x1D}, "add word [bp + si + 1000], 29"},
		{"add word imm to memory", []byte{0x81, 0x07, 0xE8, 0x03}, "add word [bx], 1000"},
		{"sub byte imm from memory", []byte{0x80, 0x2F, 0x22}, "sub byte [bx], 34"},
		{"cmp word imm with memory", []byte{0x81, 0x3E, 0x64, 0x00, 0x22, 0x12}, "cmp word [100], 4642"},
		{"add sign-extended imm to register", []byte{0x83, 0xC6, 0x02}, "add si, 2"},
		{"cmp imm with register", []byte{0x83, 0xFE, 0x02}, "cmp si, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instruction := decodeSingle(t, tt.data)

			assert.Equal(t, tt.rendered, instruction.String())
		})
	}
}

func TestDecode_SizeQualifierOnlyForMemoryDestination(t *testing.T) {
	// Register destinations need no byte/word disambiguation
	register := decodeSingle(t, []byte{0x83, 0xC6, 0x02})
	assert.NotContains(t, register.String(), "word")

	memory := decodeSingle(t, []byte{0x83, 0x07, 0x02})
	assert.Contains(t, memory.String(), "word")
}

func TestDecode_AccumulatorTransfers(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		rendered string
	}{
		{"word memory to accumulator", []byte{0xA1, 0xFB, 0x09}, "mov ax, [2555]"},
		{"byte memory to accumulator", []byte{0xA0, 0x7B}, "mov al, [123]"},
		{"word accumulator to memory", []byte{0xA3, 0x0F, 0x00}, "mov [15], ax"},
		{"byte accumulator to memory", []byte{0xA2, 0x7B}, "mov [123], al"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instruction := decodeSingle(t, tt.data)

			assert.Equal(t, tt.rendered, instruction.String())
		})
	}
}

func TestDecode_ImmediateToAccumulator(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		rendered string
	}{
		{"add word imm", []byte{0x05, 0xE8, 0x03}, "add ax, 1000"},
		{"add byte imm", []byte{0x04, 0x09}, "add al, 9"},
		{"sub byte imm", []byte{0x2C, 0x09}, "sub al, 9"},
		{"cmp word imm", []byte{0x3D, 0x65, 0x00}, "cmp ax, 101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instruction := decodeSingle(t, tt.data)

			assert.Equal(t, tt.rendered, instruction.String())
		})
	}
}

func TestDecode_UnrecognizedOpcode(t *testing.T) {
	_, err := Decode([]byte{0xF4})

	require.ErrorIs(t, err, ErrUnrecognizedOpcode)
	assert.Contains(t, err.Error(), "11110100")
	assert.Contains(t, err.Error(), "offset 0")
}

func TestDecode_UnrecognizedOpcodeAfterValidInstruction(t *testing.T) {
	_, err := Decode([]byte{0x89, 0xD9, 0xF4})

	require.ErrorIs(t, err, ErrUnrecognizedOpcode)
	assert.Contains(t, err.Error(), "offset 2")
}

func TestDecode_UnhandledSegmentRegisterMovs(t *testing.T) {
	// Recognized encodings with no decoder wired up fail distinctly from
	// unrecognized ones
	for _, data := range [][]byte{{0x8E, 0xC0}, {0x8C, 0xC0}} {
		_, err := Decode(data)

		require.ErrorIs(t, err, ErrUnhandledFormat)
		require.NotErrorIs(t, err, ErrUnrecognizedOpcode)
	}
}

func TestDecode_TruncatedStream(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"missing mod/reg/rm byte", []byte{0x89}},
		{"missing displacement byte", []byte{0x8B, 0x56}},
		{"missing immediate high byte", []byte{0xB9, 0x0C}},
		{"missing immediate group second byte", []byte{0x83}},
		{"missing address byte", []byte{0xA1, 0xFB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)

			require.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestDecode_CursorAdvancesExactly(t *testing.T) {
	data := []byte{
		0x89, 0xD9, // mov cx, bx
		0x83, 0x82, 0xE8, 0x03, 0x1D, // add word [bp + si + 1000], 29
		0x05, 0xE8, 0x03, // add ax, 1000
		0xB1, 0x0C, // mov cl, 12
	}

	instructions, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, instructions, 4)

	// Every byte is consumed exactly once, in order
	offset := 0
	for i := range instructions {
		assert.Equal(t, offset, instructions[i].Offset)
		assert.Equal(t, data[offset:offset+len(instructions[i].Bytes)], instructions[i].Bytes)
		offset += len(instructions[i].Bytes)
	}
	assert.Equal(t, len(data), offset)
}

func TestDecode_MovRegisterPairsRoundTrip(t *testing.T) {
	// Reverse of RegisterName over both width tables
	registerIndex := map[string]byte{}
	for _, index := range utils.Iota(8, func(i int) byte { return byte(i) }) {
		registerIndex[RegisterName(ByteWidth, index)] = index
		registerIndex[RegisterName(WordWidth, index)] = index
	}

	for w := byte(0); w <= 1; w++ {
		for reg := byte(0); reg < 8; reg++ {
			for rm := byte(0); rm < 8; rm++ {
				data := []byte{0x88 | w, 0xC0 | reg<<3 | rm}

				instruction := decodeSingle(t, data)

				// d=0: rm is the destination, reg the source
				require.Equal(t, rm, registerIndex[instruction.Dest.String()])
				require.Equal(t, reg, registerIndex[instruction.Source.String()])
			}
		}
	}
}

func TestDisassemble_Listing(t *testing.T) {
	listing, err := Disassemble([]byte{0x89, 0xD9, 0x88, 0xE5})

	require.NoError(t, err)
	assert.Equal(t, "bits 16\n\nmov cx, bx\nmov ch, ah", listing)
}

func TestDisassemble_EmptyStream(t *testing.T) {
	listing, err := Disassemble(nil)

	require.NoError(t, err)
	assert.Equal(t, "bits 16\n", listing)
}

func TestDisassemble_NoPartialOutput(t *testing.T) {
	listing, err := Disassemble([]byte{0x89, 0xD9, 0xF4})

	require.Error(t, err)
	assert.Empty(t, listing)
}
