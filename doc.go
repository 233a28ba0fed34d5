// Package fpff implements the FPFF binary container format.
//
// FPFF is a single-file container bundling typed, variable-length data
// sections: text, fixed-width numeric blocks, 64-bit floats,
// geocoordinates, cross-references, and embedded PNG/GIF images stored
// without their leading signatures to save space.
//
// # File Format Overview
//
// An FPFF file consists of:
//   - A 24-byte fixed header with magic bytes, version, timestamp,
//     author, and section count
//   - A sequence of sections, each an 8-byte header (type tag, payload
//     length) followed by the payload bytes
//
// All multi-byte integers are little-endian. The magic and author
// fields are stored byte-reversed on disk. Section order is
// significant: REF sections address other sections by their position
// in the container.
//
// # Basic Usage
//
// To build and write an FPFF file:
//
//	c := fpff.New("jasmaa")
//	_ = c.Append(fpff.ASCII("Hello, world!"))
//	_ = c.Append(fpff.Coord{Lat: 35.0, Lon: 135.0})
//	f, _ := os.Create("out.fpff")
//	defer f.Close()
//	err := fpff.Encode(f, c)
//
// To read an FPFF file:
//
//	f, _ := os.Open("in.fpff")
//	defer f.Close()
//	c, err := fpff.Decode(f)
//
// # Security Considerations
//
// Section counts and payload lengths come from untrusted input, so
// Decode enforces configurable [Limits] before allocating. PNG and GIF
// payloads are stored and restored by signature concatenation only;
// they are never decoded or validated as images.
package fpff
