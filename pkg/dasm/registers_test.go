package dasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterName(t *testing.T) {
	assert.Equal(t, "al", RegisterName(ByteWidth, 0))
	assert.Equal(t, "bh", RegisterName(ByteWidth, 7))
	assert.Equal(t, "ax", RegisterName(WordWidth, 0))
	assert.Equal(t, "bx", RegisterName(WordWidth, 3))
	assert.Equal(t, "di", RegisterName(WordWidth, 7))
}

func TestAccumulatorName(t *testing.T) {
	assert.Equal(t, "al", AccumulatorName(ByteWidth))
	assert.Equal(t, "ax", AccumulatorName(WordWidth))
}

func TestWidthBitQualifier(t *testing.T) {
	assert.Equal(t, "byte", ByteWidth.Qualifier())
	assert.Equal(t, "word", WordWidth.Qualifier())
}
