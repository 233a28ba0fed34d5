package fpff

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encode writes c to w using the FPFF v1 byte layout.
//
// Every section's payload is validated against its type before any
// byte is emitted, so encoding is all-or-nothing: a shape violation
// reports ErrEncoding and leaves w untouched. The author must be
// ASCII and at most 8 bytes. REF values are not bounds-checked here;
// see Container.Check.
//
// Use WriteOption functions to customize behavior:
//   - WithWriteLimits(l): set custom size limits
func Encode(w io.Writer, c *Container, opts ...WriteOption) error {
	cfg := writeConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if c == nil {
		return fmt.Errorf("%w: container is nil", ErrEncoding)
	}
	if c.Version != VersionV1 {
		return fmt.Errorf("%w: version must be %d, got %d", ErrEncoding, VersionV1, c.Version)
	}
	if len(c.Author) > maxAuthorLen {
		return fmt.Errorf("%w: author %q exceeds %d bytes", ErrEncoding, c.Author, maxAuthorLen)
	}
	for i := 0; i < len(c.Author); i++ {
		if c.Author[i] > 0x7F {
			return fmt.Errorf("%w: author has non-ASCII byte at %d", ErrEncoding, i)
		}
	}
	if uint64(len(c.sections)) > uint64(cfg.limits.MaxSections) {
		return fmt.Errorf("%w: %d sections", ErrLimitExceeded, len(c.sections))
	}

	payloads := make([][]byte, len(c.sections))
	for i, s := range c.sections {
		p, err := sectionPayload(s)
		if err != nil {
			return fmt.Errorf("%w: section %d: %v", ErrEncoding, i, err)
		}
		if uint64(len(p)) > uint64(cfg.limits.MaxSectionPayloadLen) {
			return fmt.Errorf("%w: section %d payload is %d bytes", ErrLimitExceeded, i, len(p))
		}
		payloads[i] = p
	}

	h := fileHeader{
		Magic:     Magic,
		Version:   c.Version,
		Timestamp: c.Timestamp,
		Author:    authorField(c.Author),
		NSections: uint32(len(c.sections)),
	}
	if err := writeFileHeader(w, h); err != nil {
		return err
	}
	for i, s := range c.sections {
		sh := sectionHeader{
			Type:   uint32(s.Type()),
			Length: uint32(len(payloads[i])),
		}
		if err := writeSectionHeader(w, sh); err != nil {
			return err
		}
		if _, err := w.Write(payloads[i]); err != nil {
			return err
		}
	}
	return nil
}

// sectionPayload validates s and renders its on-disk payload bytes.
// Media sections emit their bytes minus the leading signature.
func sectionPayload(s Section) ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	switch v := s.(type) {
	case ASCII:
		return []byte(v), nil
	case UTF8:
		return []byte(v), nil
	case Words:
		buf := make([]byte, 0, len(v)*4)
		for _, w := range v {
			buf = append(buf, w[:]...)
		}
		return buf, nil
	case DWords:
		buf := make([]byte, 0, len(v)*8)
		for _, w := range v {
			buf = append(buf, w[:]...)
		}
		return buf, nil
	case Doubles:
		buf := make([]byte, 0, len(v)*8)
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
		return buf, nil
	case Coord:
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(v.Lat))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(v.Lon))
		return buf[:], nil
	case Ref:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		return buf[:], nil
	case PNG:
		return []byte(v)[len(pngSignature):], nil
	case GIF87:
		return []byte(v)[len(gif87Signature):], nil
	case GIF89:
		return []byte(v)[len(gif89Signature):], nil
	default:
		return nil, fmt.Errorf("unsupported section type %T", s)
	}
}
