package vm

import (
	"fmt"
	"unicode/utf8"

	op "github.com/epie-vm/epie/pkg/opcode"
)

// execute dispatches on opcode and performs its semantics (spec.md §4.5).
// It returns ErrHalted for HLT, an unrecognized opcode, a division by
// zero, an out-of-range memory access, or an unterminated string; nil
// otherwise.
func (m *VM) execute(code op.Opcode, c *Cursor) error {
	switch code {
	case op.HLT:
		m.logf("halt")
		return ErrHalted

	case op.LDBI, op.LDHI, op.LDWI:
		ra := c.NextReg()
		imm := c.NextU16()
		m.setReg(ra, signExtendImmediate(imm, op.WidthOf(code)))
		return nil

	case op.LDBD, op.LDHD, op.LDWD:
		ra := c.NextReg()
		addr := c.NextU16()
		v, ok := m.loadWidth(uint32(addr), op.WidthOf(code))
		if !ok {
			return ErrHalted
		}
		m.setReg(ra, v)
		return nil

	case op.LDBR, op.LDHR, op.LDWR:
		ra := c.NextReg()
		rb := c.NextReg()
		v, ok := m.loadWidth(uint32(m.reg(rb)), op.WidthOf(code))
		if !ok {
			return ErrHalted
		}
		m.setReg(ra, v)
		return nil

	case op.STRBD, op.STRHD, op.STRWD:
		ra := c.NextReg()
		addr := c.NextU16()
		if !m.storeWidth(uint32(addr), op.WidthOf(code), m.reg(ra)) {
			return ErrHalted
		}
		return nil

	case op.STRBR, op.STRHR, op.STRWR:
		ra := c.NextReg()
		rb := c.NextReg()
		if !m.storeWidth(uint32(m.reg(rb)), op.WidthOf(code), m.reg(ra)) {
			return ErrHalted
		}
		return nil

	case op.MOV:
		ra := c.NextReg()
		rb := c.NextReg()
		m.setReg(ra, m.reg(rb))
		return nil

	case op.ADD:
		ra, rb, rc := c.NextReg(), c.NextReg(), c.NextReg()
		m.setReg(ra, m.reg(rb)+m.reg(rc))
		return nil
	case op.ADDI:
		ra := c.NextReg()
		imm := int32(int16(c.NextU16()))
		m.setReg(ra, m.reg(ra)+imm)
		return nil
	case op.INC:
		ra := c.NextReg()
		m.setReg(ra, m.reg(ra)+1)
		return nil

	case op.SUB:
		ra, rb, rc := c.NextReg(), c.NextReg(), c.NextReg()
		m.setReg(ra, m.reg(rb)-m.reg(rc))
		return nil
	case op.SUBI:
		ra := c.NextReg()
		imm := int32(int16(c.NextU16()))
		m.setReg(ra, m.reg(ra)-imm)
		return nil

	case op.MUL:
		ra, rb, rc := c.NextReg(), c.NextReg(), c.NextReg()
		m.setReg(ra, m.reg(rb)*m.reg(rc))
		return nil
	case op.MULI:
		ra := c.NextReg()
		imm := int32(int16(c.NextU16()))
		m.setReg(ra, m.reg(ra)*imm)
		return nil

	case op.DIV:
		ra, rb, rc := c.NextReg(), c.NextReg(), c.NextReg()
		return m.divide(ra, m.reg(rb), m.reg(rc))
	case op.DIVI:
		ra := c.NextReg()
		imm := int32(int16(c.NextU16()))
		return m.divide(ra, m.reg(ra), imm)

	case op.EQ, op.NEQ, op.GT, op.GTE, op.LT, op.LTE:
		ra, rb := c.NextReg(), c.NextReg()
		m.EqFlag = compare(code, m.reg(ra), m.reg(rb))
		return nil
	case op.EQI, op.NEQI, op.GTI, op.GTEI, op.LTI, op.LTEI:
		ra := c.NextReg()
		imm := int32(int16(c.NextU16()))
		m.EqFlag = compare(code, m.reg(ra), imm)
		return nil

	case op.JMPD, op.DJMP:
		m.PC = uint32(c.NextU16())
		return nil
	case op.JMPI:
		addr := uint32(c.NextU16())
		v, ok := m.loadWidth(addr, op.Word)
		if !ok {
			return ErrHalted
		}
		m.PC = uint32(v)
		return nil
	case op.JMPR:
		rb := c.NextReg()
		m.PC = uint32(m.reg(rb))
		return nil

	case op.JEQD, op.JEQI, op.JEQR, op.JNED, op.JNEI, op.JNER:
		return m.predicatedJump(code, c)

	case op.PRTSD:
		addr := uint32(c.NextU16())
		return m.printString(addr)
	case op.PRTSR:
		rb := c.NextReg()
		return m.printString(uint32(m.reg(rb)))

	default:
		m.logf("unrecognized opcode: 0x%02x", uint8(code))
		return ErrHalted
	}
}

func (m *VM) predicatedJump(code op.Opcode, c *Cursor) error {
	wantEq := code == op.JEQD || code == op.JEQI || code == op.JEQR
	switch code {
	case op.JEQD, op.JNED:
		target := uint32(c.NextU16())
		if m.EqFlag == wantEq {
			m.PC = target
		}
	case op.JEQI, op.JNEI:
		addr := uint32(c.NextU16())
		if m.EqFlag == wantEq {
			v, ok := m.loadWidth(addr, op.Word)
			if !ok {
				return ErrHalted
			}
			m.PC = uint32(v)
		}
	case op.JEQR, op.JNER:
		rb := c.NextReg()
		if m.EqFlag == wantEq {
			m.PC = uint32(m.reg(rb))
		}
	}
	return nil
}

// divide implements signed division: quotient to ra, remainder to the VM's
// Remainder register as the reinterpreted bit pattern of the signed
// remainder (spec.md §4.5). Division by zero halts with a diagnostic
// rather than panicking — the spec leaves this undefined and recommends a
// halting fault.
func (m *VM) divide(ra uint8, dividend, divisor int32) error {
	if divisor == 0 {
		m.logf("division by zero")
		return ErrHalted
	}
	m.setReg(ra, dividend/divisor)
	m.Remainder = uint32(dividend % divisor)
	return nil
}

func compare(code op.Opcode, a, b int32) bool {
	switch code {
	case op.EQ, op.EQI:
		return a == b
	case op.NEQ, op.NEQI:
		return a != b
	case op.GT, op.GTI:
		return a > b
	case op.GTE, op.GTEI:
		return a >= b
	case op.LT, op.LTI:
		return a < b
	case op.LTE, op.LTEI:
		return a <= b
	default:
		return false
	}
}

// signExtendImmediate interprets the 16-bit encoded immediate according to
// its load width: byte and half variants sign-extend through the
// corresponding signed integer width, word variants are stored as-is
// (spec.md §4.5).
func signExtendImmediate(v uint16, w op.Width) int32 {
	switch w {
	case op.Byte:
		return int32(int8(v))
	case op.Half:
		return int32(int16(v))
	default: // op.Word
		return int32(v)
	}
}

// printString reads a NUL-terminated string at addr and writes it to
// Stdout followed by a newline; invalid UTF-8 produces a diagnostic line
// instead (spec.md §4.5).
func (m *VM) printString(addr uint32) error {
	raw, ok := m.readCString(addr)
	if !ok {
		return ErrHalted
	}
	if !utf8.Valid(raw) {
		m.logf("invalid UTF-8 string at address %d", addr)
		return nil
	}
	fmt.Fprintln(m.Stdout, string(raw))
	return nil
}
