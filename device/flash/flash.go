package flash

import "github.com/obdevboot/jboot/flashimage"

// Programmer simulates the device's self-programming flash controller for
// one application region. It models the two properties that matter to
// protocol correctness: erase sets a page to all-ones, and a page-write only
// clears bits (so a well-formed write sequence always erases first).
type Programmer struct {
	layout  flashimage.Layout
	memory  []byte
	fillBuf []byte
	busyWaits int
}

// NewProgrammer returns a Programmer whose memory starts fully erased
// (every byte 0xFF), matching a blank device.
func NewProgrammer(layout flashimage.Layout) *Programmer {
	p := &Programmer{
		layout:  layout,
		memory:  make([]byte, layout.ReadableSize()),
		fillBuf: make([]byte, layout.PageSize),
	}
	for i := range p.memory {
		p.memory[i] = 0xFF
	}
	return p
}

// BusyWait simulates waiting for any in-flight self-programming operation
// to complete. Every other primitive calls it first. The simulation
// completes instantly; BusyWaits counts invocations for tests that want to
// assert the serialization discipline was followed.
func (p *Programmer) BusyWait() {
	p.busyWaits++
}

// BusyWaits returns how many times BusyWait has been called.
func (p *Programmer) BusyWaits() int {
	return p.busyWaits
}

// PageErase sets page to all-ones. page is trusted; bounds checking is the
// SETUP layer's responsibility.
func (p *Programmer) PageErase(page int) {
	p.BusyWait()
	start := p.layout.PageOffset(page)
	for i := start; i < start+p.layout.PageSize; i++ {
		p.memory[i] = 0xFF
	}
	for i := range p.fillBuf {
		p.fillBuf[i] = 0xFF
	}
}

// PageFill loads one word (two bytes, low byte first) into the page buffer
// at wordOffset. Call it page_size/2 times to fill a full page before
// PageWrite.
func (p *Programmer) PageFill(wordOffset int, wordValue uint16) {
	p.BusyWait()
	byteOffset := wordOffset * 2
	p.fillBuf[byteOffset] = byte(wordValue)
	p.fillBuf[byteOffset+1] = byte(wordValue >> 8)
}

// PageWrite commits the page buffer into page. Flash self-programming can
// only clear bits, so the result is the bitwise AND of the erased page and
// the fill buffer; a page that wasn't erased first will retain stale set
// bits, matching real silicon.
func (p *Programmer) PageWrite(page int) {
	p.BusyWait()
	start := p.layout.PageOffset(page)
	for i := 0; i < p.layout.PageSize; i++ {
		p.memory[start+i] &= p.fillBuf[i]
	}
}

// RWWEnable simulates re-enabling read-while-write access to the page just
// programmed, the final step of a page-write sequence.
func (p *Programmer) RWWEnable() {
	p.BusyWait()
}

// ReadPage returns a copy of page's current contents.
func (p *Programmer) ReadPage(page int) []byte {
	start := p.layout.PageOffset(page)
	out := make([]byte, p.layout.PageSize)
	copy(out, p.memory[start:start+p.layout.PageSize])
	return out
}

// Memory returns the full simulated flash region. Callers must treat it as
// read-only except through the page primitives above.
func (p *Programmer) Memory() []byte {
	return p.memory
}
