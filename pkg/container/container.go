// Package container implements the 64-byte EPIE container header: the
// codec the assembler writes and the VM reads (spec.md §4.6, §6).
package container

import "encoding/binary"

// HeaderSize is the fixed size, in bytes, of the container header.
const HeaderSize = 64

// Magic is the 4-byte ASCII signature at the start of every container image.
const Magic = "EPIE"

const (
	offMagic      = 0
	offReserved   = 4
	offDataOffset = 8
	offDataLength = 12
	offCodeOffset = 16
	offCodeLength = 20
)

// Encode assembles a full container image: the 64-byte header followed by
// the data section and the code section, per spec.md §6's layout table.
func Encode(data, code []byte) []byte {
	image := make([]byte, HeaderSize+len(data)+len(code))
	copy(image[offMagic:], Magic)
	binary.BigEndian.PutUint32(image[offDataOffset:], HeaderSize)
	binary.BigEndian.PutUint32(image[offDataLength:], uint32(len(data)))
	binary.BigEndian.PutUint32(image[offCodeOffset:], uint32(HeaderSize+len(data)))
	binary.BigEndian.PutUint32(image[offCodeLength:], uint32(len(code)))
	copy(image[HeaderSize:], data)
	copy(image[HeaderSize+len(data):], code)
	return image
}

// Header is the decoded form of a container's 64-byte header.
type Header struct {
	ValidMagic bool
	DataOffset uint32
	DataLength uint32
	CodeOffset uint32
	CodeLength uint32
}

// DecodeHeader reads the header fields out of the first 64 bytes of image.
// It never errors: a bad magic is reported via ValidMagic so the caller
// can decide how to react (spec.md §9: header verification failure is not
// necessarily fatal).
func DecodeHeader(image []byte) Header {
	var h Header
	if len(image) < HeaderSize {
		return h
	}
	h.ValidMagic = string(image[offMagic:offMagic+4]) == Magic
	h.DataOffset = binary.BigEndian.Uint32(image[offDataOffset:])
	h.DataLength = binary.BigEndian.Uint32(image[offDataLength:])
	h.CodeOffset = binary.BigEndian.Uint32(image[offCodeOffset:])
	h.CodeLength = binary.BigEndian.Uint32(image[offCodeLength:])
	return h
}
