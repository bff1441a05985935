// Package assemble implements the two-pass EPIE assembler: parsing,
// symbol resolution, directive-driven data-section layout, and
// fixed-width instruction encoding into a container image (spec.md §4.3).
package assemble

import (
	"encoding/binary"
	"fmt"

	"github.com/epie-vm/epie/pkg/container"
	"github.com/epie-vm/epie/pkg/opcode"
)

const headerSize = container.HeaderSize

// defaultAlignment is the alignment used by a sized directive when no
// .align directive is pending.
const defaultAlignment = 4

// Assemble compiles src into a container image, or returns the first
// error encountered. Assemble is pure: it has no side effects and never
// returns a partial image on failure (spec.md §4.3's error policy).
func Assemble(src string) ([]byte, error) {
	instructions, err := NewParser(src).Parse()
	if err != nil {
		return nil, err
	}
	symbols, err := resolveSymbols(instructions)
	if err != nil {
		return nil, err
	}
	data, code, err := emit(instructions, symbols)
	if err != nil {
		return nil, err
	}
	return container.Encode(data, code), nil
}

// resolveSymbols is pass 1: it walks the instruction list once, assigning
// every labelled instruction or directive its absolute offset into the
// final image and sizing every directive. It never emits bytes.
func resolveSymbols(instructions []Instruction) (SymbolTable, error) {
	symbols := newSymbolTable()
	section := noSection
	var pendingAlignment uint32
	offset := uint32(headerSize)

	for _, instr := range instructions {
		switch instr.Kind {
		case KindDirective:
			switch instr.Directive {
			case opcode.Data:
				section = dataSection
			case opcode.Code:
				section = codeSection
			case opcode.Align:
				n, err := directiveImmediate(instr)
				if err != nil {
					return nil, err
				}
				pendingAlignment = n
			default:
				if section == noSection {
					return nil, fmt.Errorf("%w: line %d", ErrNoSegment, instr.Line)
				}
				size, err := sizeOfDirective(instr, pendingAlignment)
				if err != nil {
					return nil, err
				}
				pendingAlignment = 0
				if instr.Label != "" {
					if err := symbols.declare(instr.Label, offset); err != nil {
						return nil, fmt.Errorf("%w: label %q on line %d", err, instr.Label, instr.Line)
					}
				}
				offset += size
			}
		case KindOpcode:
			if instr.Label != "" {
				if section == noSection {
					return nil, fmt.Errorf("%w: line %d", ErrNoSegment, instr.Line)
				}
				if err := symbols.declare(instr.Label, offset); err != nil {
					return nil, fmt.Errorf("%w: label %q on line %d", err, instr.Label, instr.Line)
				}
			}
			offset += 4
		}
	}
	return symbols, nil
}

// emit is pass 2: it walks the instruction list again, this time purely
// to produce bytes. It must not repeat any pass-1 side effect (spec.md §9).
func emit(instructions []Instruction, symbols SymbolTable) (data, code []byte, err error) {
	section := noSection
	var pendingAlignment uint32

	for _, instr := range instructions {
		switch instr.Kind {
		case KindDirective:
			switch instr.Directive {
			case opcode.Data:
				section = dataSection
			case opcode.Code:
				section = codeSection
			case opcode.Align:
				n, err := directiveImmediate(instr)
				if err != nil {
					return nil, nil, err
				}
				pendingAlignment = n
			default:
				bytes, err := encodeDirective(instr, pendingAlignment)
				if err != nil {
					return nil, nil, err
				}
				pendingAlignment = 0
				switch section {
				case dataSection:
					data = append(data, bytes...)
				case codeSection:
					code = append(code, bytes...)
				}
			}
		case KindOpcode:
			word, err := encodeInstruction(instr, symbols)
			if err != nil {
				return nil, nil, err
			}
			code = append(code, word[:]...)
		}
	}
	return data, code, nil
}

func directiveImmediate(instr Instruction) (uint32, error) {
	if len(instr.Operands) != 1 || instr.Operands[0].Kind != OperandImmediate {
		return 0, fmt.Errorf("%w: %s expects a single numeric operand on line %d", ErrBadOperand, instr.Directive, instr.Line)
	}
	return uint32(instr.Operands[0].Imm), nil
}

func alignUp(x, a uint32) uint32 {
	if a == 0 {
		return x
	}
	return ((x + a - 1) / a) * a
}

// defaultAlignmentFor returns a directive's alignment when no .align is
// pending. Ascii/Asciiz default to the 4-byte word default; Byte/Half/Word
// default to their own element width, so a packed array of halves or bytes
// isn't silently padded out to a word boundary (spec.md §8 scenario 4:
// ".half 100, 200, 300" emits exactly 6 bytes, not 8).
func defaultAlignmentFor(d opcode.Directive) uint32 {
	switch d {
	case opcode.ByteDir:
		return 1
	case opcode.HalfDir:
		return 2
	default:
		return defaultAlignment
	}
}

func effectiveAlignment(d opcode.Directive, pending uint32) uint32 {
	if pending != 0 {
		return pending
	}
	return defaultAlignmentFor(d)
}

// sizeOfDirective computes a sized directive's footprint per spec.md
// §4.3's directive sizing table.
func sizeOfDirective(instr Instruction, pendingAlignment uint32) (uint32, error) {
	a := effectiveAlignment(instr.Directive, pendingAlignment)
	switch instr.Directive {
	case opcode.Ascii:
		s, err := directiveString(instr)
		if err != nil {
			return 0, err
		}
		return alignUp(uint32(len(s)), a), nil
	case opcode.Asciiz:
		s, err := directiveString(instr)
		if err != nil {
			return 0, err
		}
		return alignUp(uint32(len(s))+1, a), nil
	case opcode.ByteDir:
		return alignUp(uint32(len(instr.Operands)), a), nil
	case opcode.HalfDir:
		return alignUp(uint32(len(instr.Operands))*2, a), nil
	case opcode.WordDir:
		return alignUp(uint32(len(instr.Operands))*4, a), nil
	case opcode.Space:
		n, err := directiveImmediate(instr)
		if err != nil {
			return 0, err
		}
		return n, nil
	default:
		// Unknown directive words: legal parse, zero footprint.
		return 0, nil
	}
}

func directiveString(instr Instruction) (string, error) {
	if len(instr.Operands) != 1 || instr.Operands[0].Kind != OperandString {
		return "", fmt.Errorf("%w: %s expects a single string operand on line %d", ErrBadOperand, instr.Directive, instr.Line)
	}
	return instr.Operands[0].Str, nil
}

// encodeDirective renders a sized directive's bytes per spec.md §4.3's
// "Emitted bytes in pass 2" column. Its size must match sizeOfDirective's
// computation for the same instruction and pendingAlignment.
func encodeDirective(instr Instruction, pendingAlignment uint32) ([]byte, error) {
	size, err := sizeOfDirective(instr, pendingAlignment)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	switch instr.Directive {
	case opcode.Ascii:
		s, _ := directiveString(instr)
		copy(out, s)
	case opcode.Asciiz:
		s, _ := directiveString(instr)
		copy(out, s) // out[len(s)] stays 0 (the NUL terminator) by zero-init
	case opcode.ByteDir:
		for i, op := range instr.Operands {
			if op.Kind != OperandImmediate {
				return nil, fmt.Errorf("%w: .byte operand %d on line %d is not numeric", ErrBadOperand, i, instr.Line)
			}
			out[i] = byte(uint32(op.Imm))
		}
	case opcode.HalfDir:
		for i, op := range instr.Operands {
			if op.Kind != OperandImmediate {
				return nil, fmt.Errorf("%w: .half operand %d on line %d is not numeric", ErrBadOperand, i, instr.Line)
			}
			binary.BigEndian.PutUint16(out[i*2:], uint16(uint32(op.Imm)))
		}
	case opcode.WordDir:
		for i, op := range instr.Operands {
			if op.Kind != OperandImmediate {
				return nil, fmt.Errorf("%w: .word operand %d on line %d is not numeric", ErrBadOperand, i, instr.Line)
			}
			binary.BigEndian.PutUint32(out[i*4:], uint32(op.Imm))
		}
	case opcode.Space:
		// out is already all zero bytes.
	}
	return out, nil
}

// encodeInstruction encodes one opcode instruction into its 4-byte word
// per spec.md §4.3: [opcode, operand bytes...], zero-padded.
func encodeInstruction(instr Instruction, symbols SymbolTable) ([4]byte, error) {
	var word [4]byte
	word[0] = byte(instr.Op)
	n := 1
	for _, op := range instr.Operands {
		switch op.Kind {
		case OperandRegister:
			if op.Reg >= 32 {
				return word, fmt.Errorf("%w: register $%d out of range on line %d", ErrBadOperand, op.Reg, instr.Line)
			}
			if n >= 4 {
				return word, fmt.Errorf("%w: too many operand bytes on line %d", ErrBadOperand, instr.Line)
			}
			word[n] = op.Reg
			n++
		case OperandImmediate:
			if n+2 > 4 {
				return word, fmt.Errorf("%w: too many operand bytes on line %d", ErrBadOperand, instr.Line)
			}
			binary.BigEndian.PutUint16(word[n:], uint16(uint32(op.Imm)))
			n += 2
		case OperandLabelRef:
			sym, ok := symbols[op.Label]
			if !ok {
				return word, fmt.Errorf("%w: undefined label %q on line %d", ErrBadOperand, op.Label, instr.Line)
			}
			if n+2 > 4 {
				return word, fmt.Errorf("%w: too many operand bytes on line %d", ErrBadOperand, instr.Line)
			}
			binary.BigEndian.PutUint16(word[n:], uint16(sym.Offset))
			n += 2
		case OperandString:
			return word, fmt.Errorf("%w: string literal in opcode position on line %d", ErrBadOperand, instr.Line)
		}
	}
	return word, nil
}
