package opcode

import "strings"

// Directive is the closed enumeration of assembler pseudo-ops. Unknown
// directive words map to Unknown, mirroring IGL's role for opcodes: it is
// a legal parse result, which the assembler lays out with a zero-byte
// footprint rather than rejecting.
type Directive int

const (
	Unknown Directive = iota
	Data
	Code
	Ascii
	Asciiz
	ByteDir
	HalfDir
	WordDir
	Space
	Align
)

var directiveNames = map[Directive]string{
	Data:    ".data",
	Code:    ".code",
	Ascii:   ".ascii",
	Asciiz:  ".asciiz",
	ByteDir: ".byte",
	HalfDir: ".half",
	WordDir: ".word",
	Space:   ".space",
	Align:   ".align",
}

var directiveByName map[string]Directive

func init() {
	directiveByName = make(map[string]Directive, len(directiveNames))
	for d, name := range directiveNames {
		directiveByName[name] = d
	}
}

// LookupDirective maps a ".word"-style token to its Directive,
// case-insensitively. Unknown words map to Unknown, not an error: the
// parser never rejects input on an unrecognized directive name.
func LookupDirective(word string) Directive {
	d, ok := directiveByName[strings.ToLower(word)]
	if !ok {
		return Unknown
	}
	return d
}

// String renders the directive's source spelling.
func (d Directive) String() string {
	if name, ok := directiveNames[d]; ok {
		return name
	}
	return "<unknown directive>"
}
