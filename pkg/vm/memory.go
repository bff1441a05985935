package vm

import (
	"encoding/binary"

	"github.com/epie-vm/epie/pkg/opcode"
)

// loadWidth reads w bytes at addr from the flat program image, sign-extends
// byte/half reads to 32 bits, and reports whether the read was in bounds
// (spec.md §4.5: "Byte, half-word, and word widths read 1/2/4 bytes
// big-endian, sign-extended to the 32-bit register").
func (m *VM) loadWidth(addr uint32, w opcode.Width) (int32, bool) {
	size := w.Size()
	if size == 0 || uint64(addr)+uint64(size) > uint64(len(m.Program)) {
		m.logf("memory read out of range at address %d", addr)
		return 0, false
	}
	b := m.Program[addr : addr+uint32(size)]
	switch w {
	case opcode.Byte:
		return int32(int8(b[0])), true
	case opcode.Half:
		return int32(int16(binary.BigEndian.Uint16(b))), true
	case opcode.Word:
		return int32(binary.BigEndian.Uint32(b)), true
	default:
		return 0, false
	}
}

// storeWidth truncates v to w bytes and writes it big-endian at addr,
// reporting whether the write was in bounds (spec.md §4.5: "Store: ...
// the register value is truncated to the target width, big-endian").
func (m *VM) storeWidth(addr uint32, w opcode.Width, v int32) bool {
	size := w.Size()
	if size == 0 || uint64(addr)+uint64(size) > uint64(len(m.Program)) {
		m.logf("memory write out of range at address %d", addr)
		return false
	}
	b := m.Program[addr : addr+uint32(size)]
	switch w {
	case opcode.Byte:
		b[0] = byte(v)
	case opcode.Half:
		binary.BigEndian.PutUint16(b, uint16(v))
	case opcode.Word:
		binary.BigEndian.PutUint32(b, uint32(v))
	}
	return true
}

// readCString reads bytes starting at addr up to (not including) the first
// NUL, reporting whether it stayed in bounds.
func (m *VM) readCString(addr uint32) ([]byte, bool) {
	var out []byte
	for i := addr; ; i++ {
		if i >= uint32(len(m.Program)) {
			m.logf("unterminated string at address %d", addr)
			return out, false
		}
		b := m.Program[i]
		if b == 0 {
			return out, true
		}
		out = append(out, b)
	}
}
