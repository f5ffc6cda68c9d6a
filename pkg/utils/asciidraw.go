package utils

import (
	"fmt"
	"strings"
)

type AsciiFrameField struct {
	// Name of the field
	Name string

	// Units within the frame the field begins from
	Begin int

	// Field width
	Width int
}

// The last unit within the frame used by this field
func (f *AsciiFrameField) TopUnit() int {
	return f.Begin + f.Width - 1
}

type AsciiFrameUnitLayout uint

const (
	// Units increase left to right
	AsciiFrameUnitLayout_LeftToRight AsciiFrameUnitLayout = iota
	// Units increase right to left
	AsciiFrameUnitLayout_RightToLeft
)

// Pads text with a filler on both sides up to the target length
func centerText(text string, filler string, length int) string {
	left := (length - len(text)) / 2
	right := length - len(text) - left

	return strings.Repeat(filler, left) + text + strings.Repeat(filler, right)
}

// Inserts "(unused)" fields wherever the given fields leave frame units
// uncovered. Fields must be sorted by position and must not overlap.
func fillAsciiFrameGaps(fields []AsciiFrameField, frameWidth int) []AsciiFrameField {
	result := make([]AsciiFrameField, 0, len(fields))
	currentUnit := 0

	for _, field := range fields {
		if field.Begin > currentUnit {
			result = append(result, AsciiFrameField{
				Name:  "(unused)",
				Begin: currentUnit,
				Width: field.Begin - currentUnit,
			})
		} else if field.Begin < currentUnit {
			panic("make sure fields are sorted by position and are not overlapping")
		}

		result = append(result, field)
		currentUnit = field.TopUnit() + 1
	}

	if currentUnit < frameWidth {
		result = append(result, AsciiFrameField{
			Name:  "(unused)",
			Begin: currentUnit,
			Width: frameWidth - currentUnit,
		})
	}

	return result
}

// Draws an ascii diagram of a binary frame composed of contiguous fields of
// different unit lengths:
//
//	7          5            0
//	+----------+------------+
//	|   mod    |     rm     |
//	+----------+------------+
//	 <-2 bits-> <--6 bits-->
func AsciiFrame(fields []AsciiFrameField, frameWidth int, unit string, layout AsciiFrameUnitLayout, leftpad int) string {
	cells := fillAsciiFrameGaps(fields, frameWidth)

	if layout == AsciiFrameUnitLayout_RightToLeft {
		for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
	}

	pad := strings.Repeat(" ", leftpad)

	var indices, border, body, widths strings.Builder
	for _, row := range []*strings.Builder{&indices, &border, &body, &widths} {
		row.WriteString(pad)
	}

	for i := range cells {
		cell := &cells[i]

		name := fmt.Sprintf(" %v ", cell.Name)
		widthLabel := fmt.Sprintf(" %v %v ", cell.Width, unit)

		index := cell.Begin
		if layout == AsciiFrameUnitLayout_RightToLeft {
			index = cell.TopUnit()
		}
		indexLabel := fmt.Sprint(index)

		cellWidth := Max([]int{len(name), len(widthLabel) + 4, len(indexLabel) + 1})

		indices.WriteString(fmt.Sprintf("%-*v", cellWidth+1, index))
		border.WriteString("+")
		border.WriteString(strings.Repeat("-", cellWidth))
		body.WriteString("|")
		body.WriteString(centerText(name, " ", cellWidth))
		widths.WriteString(" ")
		widths.WriteString(fmt.Sprintf("<-%v->", centerText(widthLabel, "-", cellWidth-4)))
	}

	lastIndex := frameWidth - 1
	if layout == AsciiFrameUnitLayout_RightToLeft {
		lastIndex = 0
	}
	indices.WriteString(fmt.Sprint(lastIndex))
	border.WriteString("+")
	body.WriteString("|")

	return strings.Join([]string{
		indices.String(),
		border.String(),
		body.String(),
		border.String(),
		widths.String(),
	}, "\n") + "\n"
}
