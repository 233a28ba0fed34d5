package fpff

import "time"

const (
	VersionV1 uint32 = 1

	fileHeaderSize    = 24
	sectionHeaderSize = 8

	maxAuthorLen = 8
)

// Magic is the canonical 4-byte FPFF signature. It is stored
// byte-reversed on disk (DE DA FE BE).
var Magic = [4]byte{0xBE, 0xFE, 0xDA, 0xDE}

// SectionType identifies the payload shape of a section. The on-disk
// tag values are fixed by the format.
type SectionType uint32

const (
	TypeASCII   SectionType = 1
	TypeUTF8    SectionType = 2
	TypeWords   SectionType = 3
	TypeDWords  SectionType = 4
	TypeDoubles SectionType = 5
	TypeCoord   SectionType = 6
	TypeRef     SectionType = 7
	TypePNG     SectionType = 8
	TypeGIF87   SectionType = 9
	TypeGIF89   SectionType = 10
)

// String returns the conventional name of the type tag.
func (t SectionType) String() string {
	switch t {
	case TypeASCII:
		return "ASCII"
	case TypeUTF8:
		return "UTF8"
	case TypeWords:
		return "WORDS"
	case TypeDWords:
		return "DWORDS"
	case TypeDoubles:
		return "DOUBLES"
	case TypeCoord:
		return "COORD"
	case TypeRef:
		return "REF"
	case TypePNG:
		return "PNG"
	case TypeGIF87:
		return "GIF87a"
	case TypeGIF89:
		return "GIF89a"
	}
	return "UNKNOWN"
}

// Media signatures, stripped from stored payloads and restored on
// decode.
var (
	pngSignature   = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	gif87Signature = [6]byte{'G', 'I', 'F', '8', '7', 'a'}
	gif89Signature = [6]byte{'G', 'I', 'F', '8', '9', 'a'}
)

// Container is a logical representation of an FPFF file.
//
// Version is fixed at VersionV1 for this revision. Timestamp is Unix
// seconds. Author is ASCII and at most 8 bytes; both constraints are
// enforced at encode time. Sections are ordered and addressed by
// position; use Append, Insert, and Remove to keep the list
// consistent.
type Container struct {
	Version   uint32
	Timestamp uint32
	Author    string

	sections []Section
}

// New returns an empty v1 Container stamped with the current time.
func New(author string) *Container {
	return &Container{
		Version:   VersionV1,
		Timestamp: uint32(time.Now().Unix()),
		Author:    author,
	}
}

// Len returns the number of sections.
func (c *Container) Len() int { return len(c.sections) }

// At returns the section at index i. It panics if i is out of range,
// matching slice semantics.
func (c *Container) At(i int) Section { return c.sections[i] }

// Sections returns a copy of the ordered section list. Mutating the
// returned slice does not affect the container.
func (c *Container) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}
