package fpff

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Export writes one file per section of c into dir, creating the
// directory if needed. Text-like sections become section-N.txt with a
// human-readable rendering: hex blocks for WORDS and DWORDS, decimals
// for DOUBLES, LAT/LON lines for COORD, and "REF: n" for REF. PNG and
// GIF sections become section-N.png and section-N.gif holding the
// complete signature-prefixed image bytes.
//
// Export reads c without modifying it and overwrites existing files of
// the same name; it never removes anything else from dir.
func Export(c *Container, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, s := range c.sections {
		name, data := exportFile(i, s)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func exportFile(i int, s Section) (name string, data []byte) {
	switch v := s.(type) {
	case PNG:
		return fmt.Sprintf("section-%d.png", i), []byte(v)
	case GIF87:
		return fmt.Sprintf("section-%d.gif", i), []byte(v)
	case GIF89:
		return fmt.Sprintf("section-%d.gif", i), []byte(v)
	default:
		return fmt.Sprintf("section-%d.txt", i), []byte(renderText(s))
	}
}

// renderText renders a non-media section for human consumption.
func renderText(s Section) string {
	switch v := s.(type) {
	case ASCII:
		return string(v)
	case UTF8:
		return string(v)
	case Words:
		blocks := make([]string, len(v))
		for i, w := range v {
			blocks[i] = hex.EncodeToString(w[:])
		}
		return strings.Join(blocks, ", ")
	case DWords:
		blocks := make([]string, len(v))
		for i, w := range v {
			blocks[i] = hex.EncodeToString(w[:])
		}
		return strings.Join(blocks, ", ")
	case Doubles:
		vals := make([]string, len(v))
		for i, f := range v {
			vals[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(vals, ", ")
	case Coord:
		return fmt.Sprintf("LAT: %s\nLON: %s",
			strconv.FormatFloat(v.Lat, 'g', -1, 64),
			strconv.FormatFloat(v.Lon, 'g', -1, 64))
	case Ref:
		return fmt.Sprintf("REF: %d", v)
	}
	return ""
}
