package fpff

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the algorithm for the FPZ wrapper produced by
// EncodeCompressed. FPFF v1 itself carries no compression flag; the
// wrapper frames a complete container byte stream.
type Compression uint16

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

// String returns the conventional name of the compression method.
func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	}
	return "unknown"
}

// wrapperMagic is the FPZ frame signature, stored in canonical order
// (no reversal, unlike the inner FPFF magic).
var wrapperMagic = [4]byte{'F', 'P', 'F', 'Z'}

const (
	wrapperVersionV1  uint16 = 1
	wrapperHeaderSize        = 16
)

const zipEntryName = "container.fpff"

// EncodeCompressed encodes c and writes it wrapped in an FPZ frame:
// a 16-byte header (magic "FPFZ", version, compression method,
// uncompressed length) followed by the compressed container bytes.
// CompNone stores the container bytes as-is.
func EncodeCompressed(w io.Writer, c *Container, comp Compression, opts ...WriteOption) error {
	var raw bytes.Buffer
	if err := Encode(&raw, c, opts...); err != nil {
		return err
	}
	payload, err := compress(comp, raw.Bytes())
	if err != nil {
		return err
	}

	var hdr [wrapperHeaderSize]byte
	copy(hdr[0:4], wrapperMagic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], wrapperVersionV1)
	binary.LittleEndian.PutUint16(hdr[6:8], uint16(comp))
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(raw.Len()))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// DecodeCompressed reads an FPZ frame from r, decompresses the
// container bytes, and decodes them. Decompression is bounded by
// Limits.MaxWrapperUncompressed to guard against decompression bombs.
func DecodeCompressed(r io.Reader, opts ...ReadOption) (*Container, error) {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	var hdr [wrapperHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	if [4]byte(hdr[0:4]) != wrapperMagic {
		return nil, fmt.Errorf("%w: not an FPZ stream", ErrInvalidMagic)
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != wrapperVersionV1 {
		return nil, fmt.Errorf("%w: FPZ version %d", ErrUnsupportedVersion, v)
	}
	comp := Compression(binary.LittleEndian.Uint16(hdr[6:8]))
	rawLen := binary.LittleEndian.Uint64(hdr[8:16])
	if rawLen > cfg.limits.MaxWrapperUncompressed {
		return nil, fmt.Errorf("%w: uncompressed length %d", ErrLimitExceeded, rawLen)
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw, err := decompress(comp, payload, rawLen)
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != rawLen {
		return nil, fmt.Errorf("%w: decompressed length %d, want %d", ErrFormat, len(raw), rawLen)
	}
	return Decode(bytes.NewReader(raw), opts...)
}

func compress(comp Compression, in []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return in, nil
	case CompZIP:
		return zipCompress(in)
	case CompZSTD:
		return zstdCompress(in)
	case CompLZ4:
		return lz4Compress(in)
	case CompBR:
		return brotliCompress(in)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrEncoding, comp)
	}
}

func decompress(comp Compression, in []byte, expected uint64) ([]byte, error) {
	switch comp {
	case CompNone:
		return in, nil
	case CompZIP:
		return zipDecompress(in, expected)
	case CompZSTD:
		return zstdDecompress(in, expected)
	case CompLZ4:
		return lz4Decompress(in, expected)
	case CompBR:
		return brotliDecompress(in, expected)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrFormat, comp)
	}
}

// zipCompress wraps in as a single-entry ZIP archive.
func zipCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create(zipEntryName)
	if err != nil {
		_ = zw.Close()
		return nil, err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// zipDecompress extracts the single expected entry from a ZIP archive.
func zipDecompress(zipBytes []byte, expected uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip must contain exactly one entry", ErrFormat)
	}
	zf := zr.File[0]
	if zf.Name != zipEntryName {
		return nil, fmt.Errorf("%w: zip entry name must be %s", ErrFormat, zipEntryName)
	}
	if zf.UncompressedSize64 != expected {
		return nil, fmt.Errorf("%w: zip uncompressed size %d, want %d", ErrFormat, zf.UncompressedSize64, expected)
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, int64(expected)))
}

func zstdCompress(in []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, nil)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: zstd expanded beyond expected size", ErrFormat)
	}
	return out, nil
}

func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	b, err := io.ReadAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: lz4 expanded beyond expected size", ErrFormat)
	}
	return b, nil
}

func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write(in); err != nil {
		_ = bw.Close()
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	b, err := io.ReadAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: brotli expanded beyond expected size", ErrFormat)
	}
	return b, nil
}
