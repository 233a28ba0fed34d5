package fpff

// Limits bounds allocations driven by untrusted header fields. A zero
// value for any field means the default for that field.
type Limits struct {
	MaxSections            uint32 // section count as stored in the header
	MaxSectionPayloadLen   uint32 // per-section payload length as stored in the file
	MaxWrapperUncompressed uint64 // container bytes after FPZ decompression
}

func defaultLimits() Limits {
	return Limits{
		MaxSections:            1 << 20, // 1 Mi sections
		MaxSectionPayloadLen:   1 << 30, // 1 GiB per payload
		MaxWrapperUncompressed: 4 << 30, // 4 GiB container
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxSections == 0 {
		l.MaxSections = d.MaxSections
	}
	if l.MaxSectionPayloadLen == 0 {
		l.MaxSectionPayloadLen = d.MaxSectionPayloadLen
	}
	if l.MaxWrapperUncompressed == 0 {
		l.MaxWrapperUncompressed = d.MaxWrapperUncompressed
	}
	return l
}
