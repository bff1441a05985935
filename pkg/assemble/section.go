package assemble

// Section identifies which output buffer directive/opcode bytes go into.
// The assembler tracks the current section as a state register (spec.md
// §3), switched by the .data/.code directives and otherwise left alone.
type Section int

const (
	noSection Section = iota
	dataSection
	codeSection
)
