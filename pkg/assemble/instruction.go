package assemble

import "github.com/epie-vm/epie/pkg/opcode"

// InstructionKind distinguishes a decoded opcode instruction from a
// directive pseudo-instruction.
type InstructionKind int

const (
	KindOpcode InstructionKind = iota
	KindDirective
)

// Instruction is one parsed line of source: an opcode or a directive, an
// optional label, and its operand list (spec.md §3).
type Instruction struct {
	Kind      InstructionKind
	Op        opcode.Opcode    // valid when Kind == KindOpcode
	Directive opcode.Directive // valid when Kind == KindDirective
	Label     string           // "" if unlabelled
	Operands  []Operand
	Line      int
}
