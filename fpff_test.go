package fpff

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
)

func sampleContainer(t *testing.T) *Container {
	t.Helper()
	c := &Container{Version: VersionV1, Timestamp: 1700000000, Author: "jasmaa"}
	sections := []Section{
		ASCII("Hello, world!"),
		UTF8("おはよう世界"),
		Words{{0x00, 0x00, 0x00, 0x00}, {0xFF, 0xFF, 0xFF, 0xFF}},
		DWords{{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x9A, 0x00, 0xFF}},
		Ref(1),
		Doubles{-1, 0, 0.3, -0.53},
		Coord{Lat: 90.23, Lon: -200.34},
		PNG(append(pngSignature[:], 0x01, 0x02, 0x03)),
		GIF87(append(gif87Signature[:], 0xAA)),
		GIF89(append(gif89Signature[:], 0xBB, 0xCC)),
	}
	for _, s := range sections {
		if err := c.Append(s); err != nil {
			t.Fatalf("Append(%v): %v", s.Type(), err)
		}
	}
	return c
}

type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.n -= len(p)
	return len(p), nil
}

func TestFileHeaderRoundTrip(t *testing.T) {
	in := fileHeader{
		Magic:     Magic,
		Version:   VersionV1,
		Timestamp: 1700000000,
		Author:    authorField("jasmaa"),
		NSections: 7,
	}
	var buf bytes.Buffer
	if err := writeFileHeader(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := readFileHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("file header mismatch: %#v vs %#v", in, out)
	}

	buf.Reset()
	shIn := sectionHeader{Type: uint32(TypeCoord), Length: 16}
	if err := writeSectionHeader(&buf, shIn); err != nil {
		t.Fatal(err)
	}
	shOut, err := readSectionHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if shIn != shOut {
		t.Fatalf("section header mismatch: %#v vs %#v", shIn, shOut)
	}
}

func TestMagicWireOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Container{Version: VersionV1}); err != nil {
		t.Fatal(err)
	}
	want := []byte{0xDE, 0xDA, 0xFE, 0xBE}
	if !bytes.Equal(buf.Bytes()[:4], want) {
		t.Fatalf("on-disk magic = % X, want % X", buf.Bytes()[:4], want)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := sampleContainer(t)
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(c, got) {
		t.Fatalf("container mismatch\nwant: %#v\ngot:  %#v", c, got)
	}
}

func TestEmptyContainer(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Container{Version: VersionV1}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Version != VersionV1 || got.Author != "" || got.Len() != 0 {
		t.Fatalf("got version=%d author=%q len=%d", got.Version, got.Author, got.Len())
	}
}

func TestAuthorRoundTrip(t *testing.T) {
	for _, author := range []string{"", "jasmaa", "12345678"} {
		t.Run("author="+author, func(t *testing.T) {
			c := &Container{Version: VersionV1, Author: author}
			var buf bytes.Buffer
			if err := Encode(&buf, c); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Author != author {
				t.Fatalf("author = %q, want %q", got.Author, author)
			}
		})
	}
}

func TestAuthorTooLong(t *testing.T) {
	c := &Container{Version: VersionV1, Author: "123456789"}
	var buf bytes.Buffer
	err := Encode(&buf, c)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("encode emitted %d bytes before failing", buf.Len())
	}
}

func TestDecode_InvalidMagic(t *testing.T) {
	c := &Container{Version: VersionV1}
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	b[0] = 0x00
	_, err := Decode(bytes.NewReader(b))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	c := &Container{Version: VersionV1}
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	b[4] = 2
	_, err := Decode(bytes.NewReader(b))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestMediaRoundTrip(t *testing.T) {
	image := append(pngSignature[:], 0xDE, 0xAD, 0xBE, 0xEF)
	c := &Container{Version: VersionV1}
	if err := c.Append(PNG(image)); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatal(err)
	}
	// The stored payload is the image minus its 8-byte signature.
	payload := buf.Bytes()[fileHeaderSize+sectionHeaderSize:]
	if !bytes.Equal(payload, image[8:]) {
		t.Fatalf("stored payload = % X, want % X", payload, image[8:])
	}
	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal([]byte(got.At(0).(PNG)), image) {
		t.Fatalf("decoded image = % X, want % X", got.At(0), image)
	}
}

func TestInsertRemoveOrdering(t *testing.T) {
	c := &Container{Version: VersionV1}
	for _, s := range []string{"a", "c", "d"} {
		if err := c.Append(ASCII(s)); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Insert(1, ASCII("b")); err != nil {
		t.Fatal(err)
	}
	if err := c.Remove(3); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if c.Len() != len(want) {
		t.Fatalf("len = %d, want %d", c.Len(), len(want))
	}
	for i, w := range want {
		if got := string(c.At(i).(ASCII)); got != w {
			t.Fatalf("section %d = %q, want %q", i, got, w)
		}
	}
}

func TestEncodeNilContainer(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, nil)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
}

func TestEncodeWriterError(t *testing.T) {
	c := sampleContainer(t)
	err := Encode(&failingWriter{n: 30}, c)
	if err == nil {
		t.Fatal("expected error")
	}
}
