package fpff

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Section is one typed payload inside a container. The ten concrete
// types below form the closed set of section kinds; nothing else
// satisfies the interface.
//
// Every section must encode to a non-empty payload, so empty text,
// empty block lists, and media consisting of only a signature are
// rejected. validate reports a bare description; callers wrap it with
// the appropriate sentinel.
type Section interface {
	Type() SectionType
	validate() error
}

// ASCII is 7-bit clean text.
type ASCII string

// UTF8 is valid UTF-8 text.
type UTF8 string

// Word is one 4-byte block of a WORDS section.
type Word [4]byte

// DWord is one 8-byte block of a DWORDS section.
type DWord [8]byte

// Words is an ordered sequence of 4-byte blocks, stored raw rather
// than interpreted as integers.
type Words []Word

// DWords is an ordered sequence of 8-byte blocks.
type DWords []DWord

// Doubles is an ordered sequence of 64-bit floats.
type Doubles []float64

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64
	Lon float64
}

// Ref is an index into the owning container's section list. Bounds are
// checked against the section count at decode time, not at mutation
// time; see Container.Check.
type Ref uint32

// PNG holds complete PNG file bytes, signature included. Only the
// bytes after the 8-byte signature are stored on disk.
type PNG []byte

// GIF87 holds complete GIF87a file bytes, signature included.
type GIF87 []byte

// GIF89 holds complete GIF89a file bytes, signature included.
type GIF89 []byte

func (ASCII) Type() SectionType   { return TypeASCII }
func (UTF8) Type() SectionType    { return TypeUTF8 }
func (Words) Type() SectionType   { return TypeWords }
func (DWords) Type() SectionType  { return TypeDWords }
func (Doubles) Type() SectionType { return TypeDoubles }
func (Coord) Type() SectionType   { return TypeCoord }
func (Ref) Type() SectionType     { return TypeRef }
func (PNG) Type() SectionType     { return TypePNG }
func (GIF87) Type() SectionType   { return TypeGIF87 }
func (GIF89) Type() SectionType   { return TypeGIF89 }

func (s ASCII) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("ASCII payload is empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return fmt.Errorf("ASCII payload has non-ASCII byte 0x%02X at %d", s[i], i)
		}
	}
	return nil
}

func (s UTF8) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("UTF8 payload is empty")
	}
	if !utf8.ValidString(string(s)) {
		return fmt.Errorf("UTF8 payload is not valid UTF-8")
	}
	return nil
}

func (s Words) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("WORDS payload is empty")
	}
	return nil
}

func (s DWords) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("DWORDS payload is empty")
	}
	return nil
}

func (s Doubles) validate() error {
	if len(s) == 0 {
		return fmt.Errorf("DOUBLES payload is empty")
	}
	return nil
}

func (Coord) validate() error { return nil }

func (Ref) validate() error { return nil }

func (s PNG) validate() error {
	return validateMedia("PNG", s, pngSignature[:])
}

func (s GIF87) validate() error {
	return validateMedia("GIF87a", s, gif87Signature[:])
}

func (s GIF89) validate() error {
	return validateMedia("GIF89a", s, gif89Signature[:])
}

func validateMedia(name string, data, sig []byte) error {
	if !bytes.HasPrefix(data, sig) {
		return fmt.Errorf("%s payload does not start with the %s signature", name, name)
	}
	if len(data) == len(sig) {
		return fmt.Errorf("%s payload has no bytes past the signature", name)
	}
	return nil
}
