package opcode

import "testing"

func TestLookupRoundTrip(t *testing.T) {
	tests := []struct {
		mnemonic string
		want     Opcode
	}{
		{"hlt", HLT},
		{"HLT", HLT},
		{"Inc", INC},
		{"djmp", DJMP},
		{"PRTSR", PRTSR},
	}
	for _, tt := range tests {
		t.Run(tt.mnemonic, func(t *testing.T) {
			got, ok := Lookup(tt.mnemonic)
			if !ok {
				t.Fatalf("Lookup(%q) reported not found", tt.mnemonic)
			}
			if got != tt.want {
				t.Fatalf("Lookup(%q) = %v, want %v", tt.mnemonic, got, tt.want)
			}
			if got.String() != tt.want.String() {
				t.Fatalf("String() = %q, want %q", got.String(), tt.want.String())
			}
		})
	}
}

func TestLookupUnknownMnemonic(t *testing.T) {
	if _, ok := Lookup("nonsense"); ok {
		t.Fatal("Lookup(\"nonsense\") should report not found")
	}
}

func TestPinnedEncodingValues(t *testing.T) {
	// These three values are pinned directly by spec.md §8 scenario 2's
	// worked byte sequences ("13 05 00 00" for inc, "15 ..." for djmp) and
	// the minimal-halt scenario's "00 00 00 00".
	if HLT != 0x00 {
		t.Fatalf("HLT = 0x%02x, want 0x00", byte(HLT))
	}
	if INC != 0x13 {
		t.Fatalf("INC = 0x%02x, want 0x13", byte(INC))
	}
	if DJMP != 0x15 {
		t.Fatalf("DJMP = 0x%02x, want 0x15", byte(DJMP))
	}
}

func TestSignatureAndWidthOf(t *testing.T) {
	tests := []struct {
		op   Opcode
		sig  Signature
		wid  Width
	}{
		{HLT, SigNone, NoWidth},
		{LDBI, SigRImm, Byte},
		{LDHD, SigRAddr, Half},
		{LDWR, SigRR, Word},
		{ADD, SigRRR, NoWidth},
		{INC, SigR, NoWidth},
		{DJMP, SigAddr, NoWidth},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if got := SignatureOf(tt.op); got != tt.sig {
				t.Errorf("SignatureOf(%v) = %v, want %v", tt.op, got, tt.sig)
			}
			if got := WidthOf(tt.op); got != tt.wid {
				t.Errorf("WidthOf(%v) = %v, want %v", tt.op, got, tt.wid)
			}
		})
	}
}

func TestIGLIsLegalButUnrecognized(t *testing.T) {
	if SignatureOf(IGL) != SigNone {
		t.Fatalf("SignatureOf(IGL) = %v, want SigNone", SignatureOf(IGL))
	}
	if IGL.String() != "IGL" {
		t.Fatalf("IGL.String() = %q, want \"IGL\"", IGL.String())
	}
}

func TestLookupDirective(t *testing.T) {
	tests := []struct {
		word string
		want Directive
	}{
		{".data", Data},
		{".CODE", Code},
		{".Ascii", Ascii},
		{".asciiz", Asciiz},
		{".byte", ByteDir},
		{".half", HalfDir},
		{".word", WordDir},
		{".space", Space},
		{".align", Align},
		{".nonsense", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := LookupDirective(tt.word); got != tt.want {
				t.Errorf("LookupDirective(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestWidthSize(t *testing.T) {
	tests := []struct {
		w    Width
		size int
	}{
		{NoWidth, 0},
		{Byte, 1},
		{Half, 2},
		{Word, 4},
	}
	for _, tt := range tests {
		if got := tt.w.Size(); got != tt.size {
			t.Errorf("Width(%d).Size() = %d, want %d", tt.w, got, tt.size)
		}
	}
}
