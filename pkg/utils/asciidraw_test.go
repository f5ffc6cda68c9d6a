package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsciiFrame_Structure(t *testing.T) {
	fields := []AsciiFrameField{
		{Name: "opcode 100010", Begin: 0, Width: 6},
		{Name: "d 0", Begin: 6, Width: 1},
		{Name: "w 1", Begin: 7, Width: 1},
	}

	frame := AsciiFrame(fields, 8, "bits", AsciiFrameUnitLayout_LeftToRight, 0)

	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	require.Len(t, lines, 5)

	// Indices, top border, body, bottom border, width arrows
	assert.Equal(t, lines[1], lines[3])
	assert.Equal(t, len(lines[1]), len(lines[2]))
	assert.Contains(t, lines[2], "opcode 100010")
	assert.Contains(t, lines[2], "d 0")
	assert.Contains(t, lines[2], "w 1")
	assert.Contains(t, lines[4], "6 bits")
	assert.True(t, strings.HasPrefix(lines[1], "+"))
	assert.True(t, strings.HasSuffix(lines[1], "+"))
}

func TestAsciiFrame_FillsGaps(t *testing.T) {
	fields := []AsciiFrameField{
		{Name: "flags", Begin: 2, Width: 4},
	}

	frame := AsciiFrame(fields, 8, "bits", AsciiFrameUnitLayout_LeftToRight, 0)

	assert.Contains(t, frame, "(unused)")
}

func TestAsciiFrame_RightToLeftIndices(t *testing.T) {
	fields := []AsciiFrameField{
		{Name: "low", Begin: 0, Width: 4},
		{Name: "high", Begin: 4, Width: 4},
	}

	frame := AsciiFrame(fields, 8, "bits", AsciiFrameUnitLayout_RightToLeft, 0)

	lines := strings.Split(frame, "\n")
	// Unit numbering decreases left to right, ending at 0
	assert.True(t, strings.HasPrefix(lines[0], "7"))
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[0], " "), "0"))
}

func TestAsciiFrame_Leftpad(t *testing.T) {
	fields := []AsciiFrameField{
		{Name: "byte", Begin: 0, Width: 8},
	}

	frame := AsciiFrame(fields, 8, "bits", AsciiFrameUnitLayout_LeftToRight, 4)

	for _, line := range strings.Split(strings.TrimRight(frame, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "    "))
	}
}

func TestAsciiFrame_OverlappingFieldsPanic(t *testing.T) {
	fields := []AsciiFrameField{
		{Name: "a", Begin: 0, Width: 4},
		{Name: "b", Begin: 2, Width: 4},
	}

	assert.Panics(t, func() {
		AsciiFrame(fields, 8, "bits", AsciiFrameUnitLayout_LeftToRight, 0)
	})
}
