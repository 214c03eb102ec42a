package pipeline

import "fmt"

// PageOutOfRangeError indicates a requested page falls outside the
// application region.
type PageOutOfRangeError struct {
	Page     int
	PageMax  int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d is out of range: valid range is 0-%d", e.Page, e.PageMax)
}

// RangeOutOfBoundsError indicates a byte offset+size request overruns the
// addressable memory for its memory type.
type RangeOutOfBoundsError struct {
	Offset, Size, MemorySize int
}

func (e *RangeOutOfBoundsError) Error() string {
	return fmt.Sprintf("offset %d + size %d exceeds memory size %d", e.Offset, e.Size, e.MemorySize)
}

// UnknownMemoryTypeError indicates an unrecognized MemoryType value.
type UnknownMemoryTypeError struct {
	MemoryType MemoryType
}

func (e *UnknownMemoryTypeError) Error() string {
	return fmt.Sprintf("unknown memory type %q", string(e.MemoryType))
}
