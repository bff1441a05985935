package assemble

import (
	"fmt"

	"github.com/epie-vm/epie/pkg/opcode"
	"github.com/epie-vm/epie/pkg/token"
)

// maxOperands is the parser-enforced operand count invariant (spec.md §3:
// "every Instruction produced by a successful parse has operands.len() <= 3").
const maxOperands = 3

// Parser turns a token stream into a flat Instruction slice. It does not
// validate operand arities against an opcode's signature — the assembler
// does that implicitly through its emit rules (spec.md §4.1).
type Parser struct {
	lex *token.Lexer
}

// NewParser returns a Parser reading from src.
func NewParser(src string) *Parser {
	return &Parser{lex: token.NewLexer(src)}
}

// Parse runs the parser to completion and returns every instruction in
// source order, or the first parse error encountered.
func (p *Parser) Parse() ([]Instruction, error) {
	var instructions []Instruction
	var pendingLabel string
	haveLabel := false

	tok, err := p.lex.Next()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	for tok.Kind != token.EOF {
		if tok.Kind != token.Word {
			return nil, fmt.Errorf("%w: unexpected %s on line %d", ErrParse, tok, tok.Line)
		}

		next, err := p.lex.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, err)
		}
		if next.Kind == token.Colon {
			pendingLabel = tok.Text
			haveLabel = true
			tok, err = p.lex.Next()
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrParse, err)
			}
			continue
		}

		instr, err := p.parseInstruction(tok)
		if err != nil {
			return nil, err
		}
		if haveLabel {
			instr.Label = pendingLabel
			haveLabel = false
			pendingLabel = ""
		}

		instr.Operands, tok, err = p.parseOperands(next)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, instr)
	}

	if haveLabel {
		return nil, fmt.Errorf("%w: label %q has no instruction to attach to", ErrParse, pendingLabel)
	}
	return instructions, nil
}

// parseInstruction classifies the mnemonic token as an opcode or a
// directive. Unknown bare words become the IGL sentinel opcode; unknown
// "."-prefixed words become the Unknown directive. Neither is a parse
// error — both are legal, meaningless tokens the assembler may reject
// later.
func (p *Parser) parseInstruction(tok token.Token) (Instruction, error) {
	line := tok.Line
	if len(tok.Text) > 0 && tok.Text[0] == '.' {
		return Instruction{Kind: KindDirective, Directive: opcode.LookupDirective(tok.Text), Line: line}, nil
	}
	op, ok := opcode.Lookup(tok.Text)
	if !ok {
		op = opcode.IGL
	}
	return Instruction{Kind: KindOpcode, Op: op, Line: line}, nil
}

// parseOperands consumes operand tokens starting at first, returning them
// along with the first token that is not itself an operand (the start of
// the next instruction, or EOF).
func (p *Parser) parseOperands(first token.Token) ([]Operand, token.Token, error) {
	var operands []Operand
	tok := first
	for {
		operand, ok, err := operandFromToken(tok)
		if err != nil {
			return nil, token.Token{}, err
		}
		if !ok {
			return operands, tok, nil
		}
		if len(operands) >= maxOperands {
			return nil, token.Token{}, fmt.Errorf("%w: more than %d operands on line %d", ErrParse, maxOperands, tok.Line)
		}
		operands = append(operands, operand)

		tok, err = p.lex.Next()
		if err != nil {
			return nil, token.Token{}, fmt.Errorf("%w: %s", ErrParse, err)
		}
	}
}

func operandFromToken(tok token.Token) (Operand, bool, error) {
	switch tok.Kind {
	case token.Register:
		if tok.Num < 0 || tok.Num >= 32 {
			return Operand{}, false, fmt.Errorf("%w: register $%d out of range on line %d", ErrBadOperand, tok.Num, tok.Line)
		}
		return Operand{Kind: OperandRegister, Reg: uint8(tok.Num)}, true, nil
	case token.Number:
		return Operand{Kind: OperandImmediate, Imm: tok.Num}, true, nil
	case token.LabelRef:
		return Operand{Kind: OperandLabelRef, Label: tok.Text}, true, nil
	case token.String:
		return Operand{Kind: OperandString, Str: tok.Text}, true, nil
	default:
		return Operand{}, false, nil
	}
}
