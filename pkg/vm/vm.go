// Package vm implements the EPIE bytecode interpreter: registers, the
// fetch/decode/execute loop, and per-opcode semantics (spec.md §4.5).
//
// Instruction format
//
// Every instruction is a 4-byte word: an 8-bit opcode followed by up to
// three operand bytes, whose meaning is opcode-dependent (spec.md §4.2,
// §6). There is no bit-packing — every field is byte-aligned, unlike the
// RiSC-32 machine this package's shape is descended from.
//
// Program image
//
// Loads and stores index the whole container image — header, data
// section, and code section are one flat, writable address space
// (spec.md §4.5, §5). There is no paging, no memory protection, and no
// user/kernel mode: those are explicit Non-goals.
package vm

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/epie-vm/epie/pkg/container"
	"github.com/epie-vm/epie/pkg/opcode"
)

// NumRegisters is the number of general-purpose registers. None is
// reserved; any index may be written (spec.md §4.5).
const NumRegisters = 32

// ErrHalted is the sentinel Step/Run return to signal a clean stop: an
// explicit HLT, running off the end of the program image, an unrecognized
// opcode, a division by zero, or an out-of-range memory access. Mirrors the teacher's (bassosimone/risc32) ErrHalted +
// errors.Is loop-termination idiom.
var ErrHalted = errors.New("vm: halted")

// VM is one virtual machine instance. It is not goroutine-safe; a single
// goroutine should drive it (spec.md §5).
type VM struct {
	Registers [NumRegisters]int32
	PC        uint32
	EqFlag    bool
	Remainder uint32

	Program   []byte
	CodeStart uint32

	// Stdout receives print-string opcode output. Defaults to os.Stdout.
	Stdout io.Writer
	// Logger receives diagnostic lines (unrecognized opcode, bad header
	// magic, invalid UTF-8, division by zero). Defaults to a logger over
	// os.Stderr with no timestamp prefix, matching the teacher's
	// log.SetFlags(0) convention.
	Logger *log.Logger
}

// New returns a VM with no program loaded and default Stdout/Logger.
func New() *VM {
	return &VM{
		Stdout: os.Stdout,
		Logger: log.New(os.Stderr, "", 0),
	}
}

// Load installs image as the VM's program, positions PC at the image's
// code offset, and resets all other state. A bad magic prefix is logged
// but is not fatal (spec.md §9: "header verification failure is
// currently not fatal").
func (m *VM) Load(image []byte) {
	header := container.DecodeHeader(image)
	if !header.ValidMagic {
		m.logf("bad container magic: expected %q", container.Magic)
	}
	m.Program = image
	m.CodeStart = header.CodeOffset
	m.PC = header.CodeOffset
	m.Registers = [NumRegisters]int32{}
	m.EqFlag = false
	m.Remainder = 0
}

// Run executes instructions until the VM halts. It always returns nil: a
// halt is a normal, expected termination (spec.md §7: "the VM does not
// raise typed errors").
func (m *VM) Run() error {
	for {
		if err := m.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				return nil
			}
			return err
		}
	}
}

// Step fetches, decodes, and executes exactly one instruction. It returns
// ErrHalted when the VM has stopped (spec.md §4.5's "one step").
func (m *VM) Step() error {
	if m.PC+4 > uint32(len(m.Program)) {
		return ErrHalted
	}
	var word [4]byte
	copy(word[:], m.Program[m.PC:m.PC+4])
	m.PC += 4

	op := opcode.Opcode(word[0])
	cur := newCursor(word)
	return m.execute(op, cur)
}

func (m *VM) logf(format string, args ...interface{}) {
	if m.Logger != nil {
		m.Logger.Printf(format, args...)
	}
}

// reg returns the value of register idx, or 0 and a diagnostic for an
// out-of-range index that a hand-crafted (non-assembler-produced) image
// might contain.
func (m *VM) reg(idx uint8) int32 {
	if int(idx) >= NumRegisters {
		m.logf("register index %d out of range", idx)
		return 0
	}
	return m.Registers[idx]
}

func (m *VM) setReg(idx uint8, v int32) {
	if int(idx) >= NumRegisters {
		m.logf("register index %d out of range", idx)
		return
	}
	m.Registers[idx] = v
}
