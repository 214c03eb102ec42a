// Package flashimage models the application flash region as the host sees
// it: page geometry, the CRC footer layout, and an in-memory shadow buffer
// used for read-modify-write partial-page writes and for the commit step.
//
// # Layout
//
// The application region occupies pages [0, PageCount) of a page_size-byte
// flash. Its last two bytes are a CRC-8 footer: byte size-2 holds the
// complement of the checksum, byte size-1 holds the checksum itself (see
// crc8.Valid). Layout derives all of this from the page geometry reported by
// GetInfo (see host/mcutable).
//
// # Shadow
//
// Shadow mirrors the device's application region in host memory, plus a
// per-page "has this page been read since connecting" marker. host/pipeline
// uses it to merge partial-page writes and to assemble the CRC footer
// without re-reading pages it already knows.
package flashimage
