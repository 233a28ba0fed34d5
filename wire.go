package fpff

import (
	"encoding/binary"
	"io"
)

// fileHeader is the 24-byte FPFF header in canonical (in-memory) byte
// order. Magic and Author are stored byte-reversed on disk; the
// read/write helpers undo and apply that reversal, so the struct
// always holds canonical bytes. Author is right-aligned with leading
// zero padding.
type fileHeader struct {
	Magic     [4]byte
	Version   uint32
	Timestamp uint32
	Author    [8]byte
	NSections uint32
}

// sectionHeader is the 8-byte per-section header.
type sectionHeader struct {
	Type   uint32
	Length uint32
}

func readFileHeader(r io.Reader) (fileHeader, error) {
	var buf [fileHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fileHeader{}, err
	}
	var h fileHeader
	copy(h.Magic[:], buf[0:4])
	reverseBytes(h.Magic[:])
	h.Version = binary.LittleEndian.Uint32(buf[4:8])
	h.Timestamp = binary.LittleEndian.Uint32(buf[8:12])
	copy(h.Author[:], buf[12:20])
	reverseBytes(h.Author[:])
	h.NSections = binary.LittleEndian.Uint32(buf[20:24])
	return h, nil
}

func writeFileHeader(w io.Writer, h fileHeader) error {
	var buf [fileHeaderSize]byte
	copy(buf[0:4], h.Magic[:])
	reverseBytes(buf[0:4])
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.Timestamp)
	copy(buf[12:20], h.Author[:])
	reverseBytes(buf[12:20])
	binary.LittleEndian.PutUint32(buf[20:24], h.NSections)
	_, err := w.Write(buf[:])
	return err
}

func readSectionHeader(r io.Reader) (sectionHeader, error) {
	var buf [sectionHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return sectionHeader{}, err
	}
	var sh sectionHeader
	sh.Type = binary.LittleEndian.Uint32(buf[0:4])
	sh.Length = binary.LittleEndian.Uint32(buf[4:8])
	return sh, nil
}

func writeSectionHeader(w io.Writer, sh sectionHeader) error {
	var buf [sectionHeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], sh.Type)
	binary.LittleEndian.PutUint32(buf[4:8], sh.Length)
	_, err := w.Write(buf[:])
	return err
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// authorField packs an author string into the canonical 8-byte header
// field: right-aligned with leading zero padding.
func authorField(author string) [8]byte {
	var a [8]byte
	copy(a[len(a)-len(author):], author)
	return a
}
