package flashimage

// Layout describes the page geometry of the application flash region, as
// derived from the bootloader's GetInfo response (see host/mcutable).
type Layout struct {
	// PageSize is the number of bytes per flash page.
	PageSize int

	// PageCount is app_page_count: total device pages minus the bootloader's
	// own pages.
	PageCount int
}

// ReadableSize is the full size of the application region in bytes,
// including the two CRC footer bytes.
func (l Layout) ReadableSize() int {
	return l.PageSize * l.PageCount
}

// WritableSize is the application region's size minus the two bytes
// reserved for the CRC footer (§4.6: memory_size = page_count*page_size - 2).
func (l Layout) WritableSize() int {
	return l.ReadableSize() - 2
}

// CRCComplementOffset is the offset of the stored CRC-8 complement byte
// (the second-to-last byte of the region).
func (l Layout) CRCComplementOffset() int {
	return l.ReadableSize() - 2
}

// CRCOffset is the offset of the stored CRC-8 byte (the last byte of the
// region).
func (l Layout) CRCOffset() int {
	return l.ReadableSize() - 1
}

// LastPage is the index of the final application page, which holds the CRC
// footer in its last two bytes.
func (l Layout) LastPage() int {
	return l.PageCount - 1
}

// PageRange returns the inclusive [pageStart, pageEnd] range of pages
// covering the byte range [offset, offset+size). pageStart is the first page
// containing offset; pageEnd is the first page containing offset+size-1.
func (l Layout) PageRange(offset, size int) (pageStart, pageEnd int) {
	pageStart = offset / l.PageSize
	pageEnd = (offset + size - 1) / l.PageSize
	return pageStart, pageEnd
}

// PageOffset returns the byte offset at which page begins.
func (l Layout) PageOffset(page int) int {
	return page * l.PageSize
}

// PageAligned reports whether offset falls exactly on a page boundary.
func (l Layout) PageAligned(offset int) bool {
	return offset%l.PageSize == 0
}
