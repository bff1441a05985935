package token

import "testing"

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src)
	var out []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}

func TestLexerBasicInstruction(t *testing.T) {
	toks := collectTokens(t, "inc $5 ; comment\n")
	want := []Kind{Word, Register, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[0].Text != "inc" {
		t.Errorf("mnemonic text = %q, want \"inc\"", toks[0].Text)
	}
	if toks[1].Num != 5 {
		t.Errorf("register num = %d, want 5", toks[1].Num)
	}
}

func TestLexerLabelAndColon(t *testing.T) {
	toks := collectTokens(t, "loop: djmp @loop")
	want := []Kind{Word, Colon, Word, LabelRef, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[3].Text != "loop" {
		t.Errorf("label ref text = %q, want \"loop\"", toks[3].Text)
	}
}

func TestLexerCommaIsWhitespace(t *testing.T) {
	toks := collectTokens(t, ".half 100, 200, 300")
	want := []Kind{Word, Number, Number, Number, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexerNumericLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want int32
	}{
		{"100", 100},
		{"-1", -1},
		{"0x0050", 0x50},
		{"0b1010", 0b1010},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := collectTokens(t, tt.src)
			if len(toks) != 2 || toks[0].Kind != Number {
				t.Fatalf("unexpected tokens for %q: %+v", tt.src, toks)
			}
			if toks[0].Num != tt.want {
				t.Errorf("Num = %d, want %d", toks[0].Num, tt.want)
			}
		})
	}
}

func TestLexerStringLiteralBothQuoteStyles(t *testing.T) {
	toks := collectTokens(t, `.ascii 'Hell' .asciiz "world!"`)
	if len(toks) != 5 {
		t.Fatalf("got %d tokens, want 5: %+v", len(toks), toks)
	}
	if toks[1].Kind != String || toks[1].Text != "Hell" {
		t.Errorf("token 1 = %+v, want String \"Hell\"", toks[1])
	}
	if toks[3].Kind != String || toks[3].Text != "world!" {
		t.Errorf("token 3 = %+v, want String \"world!\"", toks[3])
	}
}

func TestLexerUnterminatedStringIsError(t *testing.T) {
	lex := NewLexer(`.ascii 'oops`)
	if _, err := lex.Next(); err != nil {
		t.Fatalf("unexpected error on directive token: %v", err)
	}
	if _, err := lex.Next(); err == nil {
		t.Fatal("expected an error for unterminated string literal")
	}
}

func TestLexerRegisterOutOfDigitsIsError(t *testing.T) {
	lex := NewLexer("$")
	if _, err := lex.Next(); err == nil {
		t.Fatal("expected an error for a bare '$' with no digits")
	}
}
