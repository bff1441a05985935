package vm

import (
	"fmt"

	"github.com/epie-vm/epie/pkg/opcode"
)

// Disassemble decodes a single 4-byte instruction word and renders it as
// textual assembly, mirroring the teacher's (bassosimone/risc32)
// Disassemble(ci uint32) string — used by trace modes in the CLIs rather
// than by the VM's own execution path.
func Disassemble(word [4]byte) string {
	code := opcode.Opcode(word[0])
	cur := newCursor(word)
	mnemonic := code.String()

	switch opcode.SignatureOf(code) {
	case opcode.SigNone:
		return mnemonic
	case opcode.SigR:
		return fmt.Sprintf("%s $%d", mnemonic, cur.NextReg())
	case opcode.SigRR:
		ra, rb := cur.NextReg(), cur.NextReg()
		return fmt.Sprintf("%s $%d, $%d", mnemonic, ra, rb)
	case opcode.SigRRR:
		ra, rb, rc := cur.NextReg(), cur.NextReg(), cur.NextReg()
		return fmt.Sprintf("%s $%d, $%d, $%d", mnemonic, ra, rb, rc)
	case opcode.SigRImm:
		ra := cur.NextReg()
		imm := int32(int16(cur.NextU16()))
		return fmt.Sprintf("%s $%d, %d", mnemonic, ra, imm)
	case opcode.SigRAddr:
		ra := cur.NextReg()
		addr := cur.NextU16()
		return fmt.Sprintf("%s $%d, %d", mnemonic, ra, addr)
	case opcode.SigAddr:
		addr := cur.NextU16()
		return fmt.Sprintf("%s %d", mnemonic, addr)
	default:
		return mnemonic
	}
}
