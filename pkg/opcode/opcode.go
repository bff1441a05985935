// Package opcode defines the closed instruction set of the EPIE virtual
// machine: the mnemonic table, the numeric 8-bit opcodes, and the operand
// signature each opcode expects. The assembler and the VM both key off this
// table instead of duplicating the mapping.
package opcode

import "strings"

// Opcode is the 8-bit tag occupying the first byte of every instruction word.
type Opcode uint8

// IGL is the sentinel opcode for an unrecognized mnemonic or bytecode value.
// It is a legal token: the assembler happily emits it, the VM rejects it at
// runtime.
const IGL Opcode = 0xFF

// The stabilized opcode table. Values are load-bearing: spec.md's worked
// examples pin HLT=0x00, INC=0x13, and DJMP=0x15 exactly; the rest of the
// table is laid out around those fixed points by instruction family.
const (
	HLT Opcode = 0x00

	LDBI Opcode = 0x01 // load byte immediate, sign-extended
	LDHI Opcode = 0x02 // load half immediate, sign-extended
	LDWI Opcode = 0x03 // load word immediate, stored as-is

	LDBD Opcode = 0x04 // load byte, direct address
	LDHD Opcode = 0x05 // load half, direct address
	LDWD Opcode = 0x06 // load word, direct address

	LDBR Opcode = 0x07 // load byte, address in register
	LDHR Opcode = 0x08 // load half, address in register
	LDWR Opcode = 0x09 // load word, address in register

	STRBD Opcode = 0x0A // store byte, direct address
	STRHD Opcode = 0x0B // store half, direct address
	STRWD Opcode = 0x0C // store word, direct address

	STRBR Opcode = 0x0D // store byte, address in register
	STRHR Opcode = 0x0E // store half, address in register
	STRWR Opcode = 0x0F // store word, address in register

	MOV Opcode = 0x10

	ADD  Opcode = 0x11
	ADDI Opcode = 0x12
	INC  Opcode = 0x13 // increment register by one

	SUB  Opcode = 0x14
	DJMP Opcode = 0x15 // unconditional direct jump (loop-construct idiom)
	SUBI Opcode = 0x16

	MUL  Opcode = 0x17
	MULI Opcode = 0x18
	DIV  Opcode = 0x19
	DIVI Opcode = 0x1A

	EQ   Opcode = 0x1B
	EQI  Opcode = 0x1C
	NEQ  Opcode = 0x1D
	NEQI Opcode = 0x1E
	GT   Opcode = 0x1F
	GTI  Opcode = 0x20
	GTE  Opcode = 0x21
	GTEI Opcode = 0x22
	LT   Opcode = 0x23
	LTI  Opcode = 0x24
	LTE  Opcode = 0x25
	LTEI Opcode = 0x26

	JMPD Opcode = 0x27 // jump, address is the target pc
	JMPI Opcode = 0x28 // jump, address points at a u32 holding the target pc
	JMPR Opcode = 0x29 // jump, target pc is in a register

	JEQD Opcode = 0x2A
	JEQI Opcode = 0x2B
	JEQR Opcode = 0x2C

	JNED Opcode = 0x2D
	JNEI Opcode = 0x2E
	JNER Opcode = 0x2F

	PRTSD Opcode = 0x30 // print NUL-terminated string, direct address
	PRTSR Opcode = 0x31 // print NUL-terminated string, address in register
)

// Width is the data width a load/store/immediate-load opcode operates on.
type Width int

const (
	NoWidth Width = iota
	Byte
	Half
	Word
)

// Size returns the width's size in bytes, or 0 for NoWidth.
func (w Width) Size() int {
	switch w {
	case Byte:
		return 1
	case Half:
		return 2
	case Word:
		return 4
	default:
		return 0
	}
}

// Signature describes the operand shape an opcode expects. The assembler
// uses it to decide how to encode each operand; the VM uses it to decide
// how to decode and dispatch.
type Signature int

const (
	SigNone Signature = iota // ()
	SigR                     // (R)
	SigRR                    // (R,R)
	SigRRR                   // (R,R,R)
	SigRImm                  // (R,Imm16)
	SigRAddr                 // (R,Addr16)
	SigAddr                  // (Addr16)
)

// Info is the static metadata associated with an opcode.
type Info struct {
	Mnemonic  string
	Signature Signature
	Width     Width
}

var table = map[Opcode]Info{
	HLT: {"HLT", SigNone, NoWidth},

	LDBI: {"LDBI", SigRImm, Byte},
	LDHI: {"LDHI", SigRImm, Half},
	LDWI: {"LDWI", SigRImm, Word},

	LDBD: {"LDBD", SigRAddr, Byte},
	LDHD: {"LDHD", SigRAddr, Half},
	LDWD: {"LDWD", SigRAddr, Word},

	LDBR: {"LDBR", SigRR, Byte},
	LDHR: {"LDHR", SigRR, Half},
	LDWR: {"LDWR", SigRR, Word},

	STRBD: {"STRBD", SigRAddr, Byte},
	STRHD: {"STRHD", SigRAddr, Half},
	STRWD: {"STRWD", SigRAddr, Word},

	STRBR: {"STRBR", SigRR, Byte},
	STRHR: {"STRHR", SigRR, Half},
	STRWR: {"STRWR", SigRR, Word},

	MOV: {"MOV", SigRR, NoWidth},

	ADD:  {"ADD", SigRRR, NoWidth},
	ADDI: {"ADDI", SigRImm, NoWidth},
	INC:  {"INC", SigR, NoWidth},

	SUB:  {"SUB", SigRRR, NoWidth},
	DJMP: {"DJMP", SigAddr, NoWidth},
	SUBI: {"SUBI", SigRImm, NoWidth},

	MUL:  {"MUL", SigRRR, NoWidth},
	MULI: {"MULI", SigRImm, NoWidth},
	DIV:  {"DIV", SigRRR, NoWidth},
	DIVI: {"DIVI", SigRImm, NoWidth},

	EQ:   {"EQ", SigRR, NoWidth},
	EQI:  {"EQI", SigRImm, NoWidth},
	NEQ:  {"NEQ", SigRR, NoWidth},
	NEQI: {"NEQI", SigRImm, NoWidth},
	GT:   {"GT", SigRR, NoWidth},
	GTI:  {"GTI", SigRImm, NoWidth},
	GTE:  {"GTE", SigRR, NoWidth},
	GTEI: {"GTEI", SigRImm, NoWidth},
	LT:   {"LT", SigRR, NoWidth},
	LTI:  {"LTI", SigRImm, NoWidth},
	LTE:  {"LTE", SigRR, NoWidth},
	LTEI: {"LTEI", SigRImm, NoWidth},

	JMPD: {"JMPD", SigAddr, NoWidth},
	JMPI: {"JMPI", SigAddr, NoWidth},
	JMPR: {"JMPR", SigR, NoWidth},

	JEQD: {"JEQD", SigAddr, NoWidth},
	JEQI: {"JEQI", SigAddr, NoWidth},
	JEQR: {"JEQR", SigR, NoWidth},

	JNED: {"JNED", SigAddr, NoWidth},
	JNEI: {"JNEI", SigAddr, NoWidth},
	JNER: {"JNER", SigR, NoWidth},

	PRTSD: {"PRTSD", SigAddr, NoWidth},
	PRTSR: {"PRTSR", SigR, NoWidth},
}

var byMnemonic map[string]Opcode

func init() {
	byMnemonic = make(map[string]Opcode, len(table))
	for op, info := range table {
		byMnemonic[info.Mnemonic] = op
	}
}

// Lookup maps a mnemonic to its opcode, case-insensitively. It returns
// (IGL, false) for anything that isn't a known mnemonic — the parser treats
// that as the legal-but-meaningless IGL instruction rather than a parse
// error.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := byMnemonic[strings.ToUpper(mnemonic)]
	if !ok {
		return IGL, false
	}
	return op, true
}

// SignatureOf returns the operand signature for op. IGL and any other
// unknown opcode reports SigNone.
func SignatureOf(op Opcode) Signature {
	return table[op].Signature
}

// WidthOf returns the data width associated with op, or NoWidth if op has
// none.
func WidthOf(op Opcode) Width {
	return table[op].Width
}

// String renders the opcode's mnemonic, "IGL" for the sentinel, or
// "UNKNOWN" for any other unrecognized value.
func (op Opcode) String() string {
	if info, ok := table[op]; ok {
		return info.Mnemonic
	}
	if op == IGL {
		return "IGL"
	}
	return "UNKNOWN"
}
