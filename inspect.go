package fpff

import "github.com/cespare/xxhash/v2"

// SectionInfo describes one section for inspection tooling. Size is
// the on-disk payload length and Checksum is the XXH64 digest of the
// payload bytes, useful for spotting duplicate or corrupted sections
// without comparing payloads directly.
type SectionInfo struct {
	Index    int
	Type     SectionType
	Size     int
	Checksum uint64
}

// Summary renders per-section metadata for every section in order.
// Sections whose payloads currently violate their type's shape report
// the error from the same validation Encode performs.
func (c *Container) Summary() ([]SectionInfo, error) {
	infos := make([]SectionInfo, len(c.sections))
	for i, s := range c.sections {
		p, err := sectionPayload(s)
		if err != nil {
			return nil, err
		}
		infos[i] = SectionInfo{
			Index:    i,
			Type:     s.Type(),
			Size:     len(p),
			Checksum: xxhash.Sum64(p),
		}
	}
	return infos, nil
}
