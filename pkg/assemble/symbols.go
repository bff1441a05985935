package assemble

// Symbol binds a label name to an absolute byte offset into the final
// container image (spec.md §3: "A symbol's offset is an absolute offset
// into the final container image ... not a section-relative offset").
type Symbol struct {
	Offset uint32
}

// SymbolTable maps label names to symbols. It is scoped to a single
// Assemble call and is immutable after pass 1 (spec.md §9).
type SymbolTable map[string]Symbol

func newSymbolTable() SymbolTable {
	return make(SymbolTable)
}

// declare installs name at offset, or reports ErrSymbolRedeclared if the
// name is already present.
func (st SymbolTable) declare(name string, offset uint32) error {
	if _, exists := st[name]; exists {
		return ErrSymbolRedeclared
	}
	st[name] = Symbol{Offset: offset}
	return nil
}
