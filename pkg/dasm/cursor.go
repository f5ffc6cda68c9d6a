package dasm

import (
	"github.com/Manu343726/ocho86/pkg/utils"
)

// cursor walks the instruction byte stream, tracking the offset of the next
// unconsumed byte. Every read is bounds checked; the offset never decreases.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// Offset of the next unconsumed byte
func (c *cursor) offset() int {
	return c.pos
}

// True once every byte of the stream has been consumed
func (c *cursor) done() bool {
	return c.pos >= len(c.data)
}

// Returns the byte at the given lookahead distance without consuming anything
func (c *cursor) peek(ahead int) (byte, bool) {
	if c.pos+ahead >= len(c.data) {
		return 0, false
	}
	return c.data[c.pos+ahead], true
}

// Consumes and returns the next byte of the stream
func (c *cursor) next() (byte, error) {
	if c.done() {
		return 0, utils.MakeError(ErrTruncated, "expected 1 more byte at offset %v", c.pos)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// Consumes the next two bytes of the stream as a little-endian 16-bit word
func (c *cursor) word() (uint16, error) {
	low, err := c.next()
	if err != nil {
		return 0, err
	}
	high, err := c.next()
	if err != nil {
		return 0, err
	}
	return uint16(low) | uint16(high)<<8, nil
}
