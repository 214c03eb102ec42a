package flashimage

// Shadow is an in-memory mirror of the device's application flash region,
// plus a per-page marker recording whether that page's device contents have
// been observed (read) since the shadow was created. host/pipeline uses the
// markers to avoid re-reading pages it already knows and to decide, at
// commit time, which pages still need a fetch before the CRC can be
// computed over the whole region.
type Shadow struct {
	layout Layout
	buf    []byte
	read   []bool
}

// NewShadow allocates a zeroed shadow buffer for the given layout. No pages
// are marked read.
func NewShadow(layout Layout) *Shadow {
	return &Shadow{
		layout: layout,
		buf:    make([]byte, layout.ReadableSize()),
		read:   make([]bool, layout.PageCount),
	}
}

// Layout returns the geometry the shadow was built for.
func (s *Shadow) Layout() Layout {
	return s.layout
}

// Bytes returns the full backing buffer. Callers must not retain slices of
// it across a Store call that reallocates; Shadow never reallocates after
// NewShadow, so this is safe for the lifetime of the Shadow.
func (s *Shadow) Bytes() []byte {
	return s.buf
}

// PageBytes returns the slice of the shadow buffer backing page.
func (s *Shadow) PageBytes(page int) []byte {
	start := s.layout.PageOffset(page)
	return s.buf[start : start+s.layout.PageSize]
}

// IsRead reports whether page has been fetched from the device into the
// shadow since creation.
func (s *Shadow) IsRead(page int) bool {
	return s.read[page]
}

// StorePage copies data into page's slot and marks it read. data must be
// exactly PageSize bytes.
func (s *Shadow) StorePage(page int, data []byte) {
	copy(s.PageBytes(page), data)
	s.read[page] = true
}

// MarkWritten records that page's contents were produced locally (e.g. by a
// merge-and-write) rather than fetched from the device, but are now known to
// match the device. It has the same read-marker effect as StorePage without
// copying data, for callers that already wrote directly into PageBytes.
func (s *Shadow) MarkWritten(page int) {
	s.read[page] = true
}

// UnreadPages returns the indices of all pages not yet marked read, in
// ascending order.
func (s *Shadow) UnreadPages() []int {
	var pages []int
	for p := 0; p < s.layout.PageCount; p++ {
		if !s.read[p] {
			pages = append(pages, p)
		}
	}
	return pages
}
