package vm

import "encoding/binary"

// Cursor walks the three operand bytes following an instruction's opcode
// byte. It is the decoder's handle onto "the rest of the word" (spec.md
// §4.4): next_u8/next_u16/next_reg pop bytes off the front in encoding
// order.
type Cursor struct {
	bytes [3]byte
	pos   int
}

func newCursor(word [4]byte) *Cursor {
	return &Cursor{bytes: [3]byte{word[1], word[2], word[3]}}
}

// NextU8 pops one byte.
func (c *Cursor) NextU8() uint8 {
	b := c.bytes[c.pos]
	c.pos++
	return b
}

// NextU16 pops two bytes, interpreted big-endian.
func (c *Cursor) NextU16() uint16 {
	v := binary.BigEndian.Uint16(c.bytes[c.pos:])
	c.pos += 2
	return v
}

// NextReg pops one byte naming a register index.
func (c *Cursor) NextReg() uint8 {
	return c.NextU8()
}
