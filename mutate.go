package fpff

import "fmt"

// Insert validates s and places it at index i, shifting subsequent
// sections toward the end. Valid indices run from 0 to Len()
// inclusive. A payload whose shape does not match its type reports
// ErrTypeMismatch and leaves the container unchanged.
//
// Insert does not rewrite existing Ref sections whose targets shift;
// keeping references coherent across mutations is the caller's
// responsibility. Use Check to audit them explicitly.
func (c *Container) Insert(i int, s Section) error {
	if i < 0 || i > len(c.sections) {
		return fmt.Errorf("%w: insert at %d with %d sections", ErrIndexRange, i, len(c.sections))
	}
	if err := s.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	c.sections = append(c.sections, nil)
	copy(c.sections[i+1:], c.sections[i:])
	c.sections[i] = s
	return nil
}

// Append validates s and adds it after the last section.
func (c *Container) Append(s Section) error {
	return c.Insert(len(c.sections), s)
}

// Remove deletes the section at index i, shifting subsequent sections
// toward the front. Like Insert, it does not touch Ref sections that
// pointed at shifted positions.
func (c *Container) Remove(i int) error {
	if i < 0 || i >= len(c.sections) {
		return fmt.Errorf("%w: remove at %d with %d sections", ErrIndexRange, i, len(c.sections))
	}
	c.sections = append(c.sections[:i], c.sections[i+1:]...)
	return nil
}

// Check reports every Ref section whose target index falls outside
// the current section list. It is never called implicitly: decode
// enforces bounds on untrusted input, but after Insert and Remove
// calls the caller decides when a container must be coherent again.
func (c *Container) Check() error {
	n := uint32(len(c.sections))
	for i, s := range c.sections {
		if ref, ok := s.(Ref); ok && uint32(ref) >= n {
			return fmt.Errorf("%w: section %d: REF %d out of bounds for %d sections", ErrFormat, i, ref, n)
		}
	}
	return nil
}
