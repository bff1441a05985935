package assemble

import "errors"

// The assembler's error taxonomy (spec.md §7). Each is a distinct sentinel
// wrapped with fmt.Errorf("%w: ...") at the raise site, the same pattern
// the teacher uses for ErrCannotEncode/ErrOutOfRange in pkg/asm/instruction.go.
// The assembler aborts at the first error; it does not accumulate (spec.md
// §9's "error accumulation" note picks the later, simpler policy).
var (
	// ErrParse indicates the parser could not tokenize or structure the input.
	ErrParse = errors.New("assemble: parse error")

	// ErrNoSegment indicates a label-bearing or data-emitting instruction
	// appeared before any .data/.code directive.
	ErrNoSegment = errors.New("assemble: no segment declaration found")

	// ErrSymbolRedeclared indicates the same label name was introduced twice.
	ErrSymbolRedeclared = errors.New("assemble: symbol already declared")

	// ErrBadOperand indicates an operand's shape is wrong for its position,
	// a register index is out of range, or a label reference never resolved.
	ErrBadOperand = errors.New("assemble: incorrect operand")
)
