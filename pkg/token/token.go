// Package token turns EPIE assembly source text into a flat token stream.
// It knows nothing about opcodes, directives, or instruction shape — that
// belongs to pkg/assemble. The lexer only classifies characters into the
// grammar's terminal symbols (spec.md §4.1).
package token

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	EOF      Kind = iota
	Word          // bare alpha+ word: an opcode or directive mnemonic, or a label name
	Colon         // ':'
	Register      // "$N"
	Number        // signed integer literal: decimal, 0x, or 0b
	LabelRef      // "@name"
	String        // 'quoted' or "quoted" literal, unescaped contents
)

// Token is one lexical unit plus the source line it started on.
type Token struct {
	Kind Kind
	Text string // Word text, or the string literal's decoded contents
	Num  int32  // valid when Kind == Register or Kind == Number
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<eof>"
	case Register:
		return fmt.Sprintf("$%d", t.Num)
	case Number:
		return fmt.Sprintf("%d", t.Num)
	case LabelRef:
		return "@" + t.Text
	case String:
		return fmt.Sprintf("%q", t.Text)
	default:
		return t.Text
	}
}
