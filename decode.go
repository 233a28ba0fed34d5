package fpff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Decode reads an FPFF container from r.
//
// The decoding process:
//  1. Reads and validates the 24-byte file header
//  2. Reads each section eagerly, in on-disk order
//  3. Dispatches on the type tag and materializes the payload
//
// r is read sequentially with no backtracking, so it does not need to
// be seekable. Decode returns ErrInvalidMagic if the stream is not an
// FPFF file, ErrUnsupportedVersion if the version is not 1, ErrFormat
// for any malformed section, ErrUnsupportedType for a type tag outside
// 1..10, and ErrLimitExceeded if a size limit is exceeded. No partial
// Container is ever returned.
//
// Use ReadOption functions to customize behavior:
//   - WithReadLimits(l): set custom size limits
func Decode(r io.Reader, opts ...ReadOption) (*Container, error) {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	h, err := readFileHeader(r)
	if err != nil {
		return nil, err
	}
	if h.Magic != Magic {
		return nil, ErrInvalidMagic
	}
	if h.Version != VersionV1 {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, h.Version)
	}
	authorBytes := bytes.Trim(h.Author[:], "\x00")
	for i, b := range authorBytes {
		if b > 0x7F {
			return nil, fmt.Errorf("%w: author has non-ASCII byte at %d", ErrFormat, i)
		}
	}
	if h.NSections > cfg.limits.MaxSections {
		return nil, fmt.Errorf("%w: %d sections", ErrLimitExceeded, h.NSections)
	}

	sections := make([]Section, 0, h.NSections)
	for i := uint32(0); i < h.NSections; i++ {
		sh, err := readSectionHeader(r)
		if err != nil {
			return nil, err
		}
		if sh.Length == 0 {
			return nil, fmt.Errorf("section %d: %w: length must be positive", i, ErrFormat)
		}
		if sh.Length > cfg.limits.MaxSectionPayloadLen {
			return nil, fmt.Errorf("section %d: %w: payload is %d bytes", i, ErrLimitExceeded, sh.Length)
		}
		payload := make([]byte, sh.Length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		s, err := decodeSection(SectionType(sh.Type), payload, h.NSections)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		sections = append(sections, s)
	}

	return &Container{
		Version:   h.Version,
		Timestamp: h.Timestamp,
		Author:    string(authorBytes),
		sections:  sections,
	}, nil
}

// decodeSection materializes one section payload. nsects is the
// container's section count, needed to bounds-check REF targets.
func decodeSection(t SectionType, payload []byte, nsects uint32) (Section, error) {
	switch t {
	case TypeASCII:
		for i := 0; i < len(payload); i++ {
			if payload[i] > 0x7F {
				return nil, fmt.Errorf("%w: non-ASCII byte 0x%02X at %d", ErrFormat, payload[i], i)
			}
		}
		return ASCII(payload), nil
	case TypeUTF8:
		if !utf8.Valid(payload) {
			return nil, fmt.Errorf("%w: invalid UTF-8", ErrFormat)
		}
		return UTF8(payload), nil
	case TypeWords:
		if len(payload)%4 != 0 {
			return nil, fmt.Errorf("%w: WORDS length %d not a multiple of 4", ErrFormat, len(payload))
		}
		words := make(Words, len(payload)/4)
		for i := range words {
			copy(words[i][:], payload[i*4:])
		}
		return words, nil
	case TypeDWords:
		if len(payload)%8 != 0 {
			return nil, fmt.Errorf("%w: DWORDS length %d not a multiple of 8", ErrFormat, len(payload))
		}
		dwords := make(DWords, len(payload)/8)
		for i := range dwords {
			copy(dwords[i][:], payload[i*8:])
		}
		return dwords, nil
	case TypeDoubles:
		if len(payload)%8 != 0 {
			return nil, fmt.Errorf("%w: DOUBLES length %d not a multiple of 8", ErrFormat, len(payload))
		}
		doubles := make(Doubles, len(payload)/8)
		for i := range doubles {
			doubles[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
		}
		return doubles, nil
	case TypeCoord:
		if len(payload) != 16 {
			return nil, fmt.Errorf("%w: COORD length %d, want 16", ErrFormat, len(payload))
		}
		return Coord{
			Lat: math.Float64frombits(binary.LittleEndian.Uint64(payload[0:8])),
			Lon: math.Float64frombits(binary.LittleEndian.Uint64(payload[8:16])),
		}, nil
	case TypeRef:
		if len(payload) != 4 {
			return nil, fmt.Errorf("%w: REF length %d, want 4", ErrFormat, len(payload))
		}
		ref := binary.LittleEndian.Uint32(payload)
		if ref >= nsects {
			return nil, fmt.Errorf("%w: REF %d out of bounds for %d sections", ErrFormat, ref, nsects)
		}
		return Ref(ref), nil
	case TypePNG:
		return PNG(append(append([]byte{}, pngSignature[:]...), payload...)), nil
	case TypeGIF87:
		return GIF87(append(append([]byte{}, gif87Signature[:]...), payload...)), nil
	case TypeGIF89:
		return GIF89(append(append([]byte{}, gif89Signature[:]...), payload...)), nil
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedType, t)
	}
}
