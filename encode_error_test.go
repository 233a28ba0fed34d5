package fpff

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncode_ShapeViolations(t *testing.T) {
	cases := []struct {
		name    string
		section Section
	}{
		{"non-ascii text", ASCII("héllo")},
		{"empty ascii", ASCII("")},
		{"empty utf8", UTF8("")},
		{"invalid utf8", UTF8(string([]byte{0xC0, 0x20}))},
		{"empty words", Words{}},
		{"empty dwords", DWords{}},
		{"empty doubles", Doubles{}},
		{"png without signature", PNG([]byte{0x01, 0x02, 0x03})},
		{"png bare signature", PNG(pngSignature[:])},
		{"gif87 without signature", GIF87([]byte("GIF89a??"))},
		{"gif89 bare signature", GIF89(gif89Signature[:])},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Container{Version: VersionV1}
			c.sections = append(c.sections, tc.section)
			var buf bytes.Buffer
			err := Encode(&buf, c)
			if !errors.Is(err, ErrEncoding) {
				t.Fatalf("expected ErrEncoding, got %v", err)
			}
			if buf.Len() != 0 {
				t.Fatalf("encode emitted %d bytes before failing", buf.Len())
			}
		})
	}
}

func TestEncode_NonASCIIAuthor(t *testing.T) {
	c := &Container{Version: VersionV1, Author: "日本"}
	err := Encode(&bytes.Buffer{}, c)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
}

func TestEncode_WrongVersion(t *testing.T) {
	c := &Container{Version: 2}
	err := Encode(&bytes.Buffer{}, c)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
}

func TestEncode_SectionCountLimit(t *testing.T) {
	c := &Container{Version: VersionV1}
	for i := 0; i < 4; i++ {
		if err := c.Append(ASCII("x")); err != nil {
			t.Fatal(err)
		}
	}
	err := Encode(&bytes.Buffer{}, c, WithWriteLimits(Limits{MaxSections: 2}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestEncode_PayloadLengthLimit(t *testing.T) {
	c := &Container{Version: VersionV1}
	if err := c.Append(ASCII("this payload is too big")); err != nil {
		t.Fatal(err)
	}
	err := Encode(&bytes.Buffer{}, c, WithWriteLimits(Limits{MaxSectionPayloadLen: 4}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestEncode_RefNotBoundsChecked(t *testing.T) {
	// REF bounds are a decode-time invariant; Encode only checks shape.
	c := &Container{Version: VersionV1}
	if err := c.Append(Ref(99)); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(bytes.NewReader(buf.Bytes())); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat on decode, got %v", err)
	}
}
