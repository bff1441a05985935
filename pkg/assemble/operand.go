package assemble

// OperandKind tags the variant held by an Operand.
type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandImmediate
	OperandLabelRef
	OperandString
)

// Operand is the parser's tagged operand value — a closed sum type
// (spec.md §3's Token/Operand entity), preferred over an interface
// hierarchy per spec.md §9's "operand polymorphism" note.
type Operand struct {
	Kind  OperandKind
	Reg   uint8  // valid when Kind == OperandRegister
	Imm   int32  // valid when Kind == OperandImmediate
	Label string // valid when Kind == OperandLabelRef
	Str   string // valid when Kind == OperandString
}
