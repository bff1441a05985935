package container

import "testing"

func TestEncodeDecodeHeaderInvariant(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	code := []byte{0x13, 0x05, 0x00, 0x00}

	image := Encode(data, code)

	wantLen := HeaderSize + len(data) + len(code)
	if len(image) != wantLen {
		t.Fatalf("len(image) = %d, want %d", len(image), wantLen)
	}
	if string(image[0:4]) != Magic {
		t.Fatalf("magic = %q, want %q", image[0:4], Magic)
	}

	h := DecodeHeader(image)
	if !h.ValidMagic {
		t.Fatal("ValidMagic = false, want true")
	}
	if h.DataOffset != HeaderSize {
		t.Errorf("DataOffset = %d, want %d", h.DataOffset, HeaderSize)
	}
	if h.DataLength != uint32(len(data)) {
		t.Errorf("DataLength = %d, want %d", h.DataLength, len(data))
	}
	if h.CodeOffset != uint32(HeaderSize+len(data)) {
		t.Errorf("CodeOffset = %d, want %d", h.CodeOffset, HeaderSize+len(data))
	}
	if h.CodeLength != uint32(len(code)) {
		t.Errorf("CodeLength = %d, want %d", h.CodeLength, len(code))
	}

	gotData := image[h.DataOffset : h.DataOffset+h.DataLength]
	if string(gotData) != string(data) {
		t.Errorf("round-tripped data = % x, want % x", gotData, data)
	}
	gotCode := image[h.CodeOffset : h.CodeOffset+h.CodeLength]
	if string(gotCode) != string(code) {
		t.Errorf("round-tripped code = % x, want % x", gotCode, code)
	}
}

func TestEncodeMinimalHalt(t *testing.T) {
	// spec.md §8 scenario 1: ".code\n  hlt" assembles to a header with
	// D=0, C=4, followed by "00 00 00 00".
	image := Encode(nil, []byte{0x00, 0x00, 0x00, 0x00})
	if len(image) != HeaderSize+4 {
		t.Fatalf("len(image) = %d, want %d", len(image), HeaderSize+4)
	}
	h := DecodeHeader(image)
	if h.DataLength != 0 || h.CodeLength != 4 {
		t.Fatalf("header = %+v, want DataLength=0 CodeLength=4", h)
	}
	if h.CodeOffset != HeaderSize {
		t.Fatalf("CodeOffset = %d, want %d", h.CodeOffset, HeaderSize)
	}
}

func TestDecodeHeaderBadMagicIsNotFatal(t *testing.T) {
	image := make([]byte, HeaderSize)
	copy(image, "NOPE")
	h := DecodeHeader(image)
	if h.ValidMagic {
		t.Fatal("ValidMagic = true for a bad magic prefix, want false")
	}
}

func TestDecodeHeaderShortInputNeverPanics(t *testing.T) {
	h := DecodeHeader([]byte{1, 2, 3})
	if h.ValidMagic {
		t.Fatal("ValidMagic = true for too-short input, want false")
	}
}
