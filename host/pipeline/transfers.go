package pipeline

import (
	"bytes"

	"github.com/obdevboot/jboot/device/proto"
	"github.com/obdevboot/jboot/hosterr"
)

// readFlashPageIntoShadow fetches page from the device and stores it in the
// shadow, marking it read.
func (p *Pipeline) readFlashPageIntoShadow(page int) error {
	buf := make([]byte, p.layout.PageSize)
	n, err := p.transport.Control(uint8(proto.FlashReadPage), 0, uint16(page), buf)
	if err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "read page", err)
	}
	if n != p.layout.PageSize {
		return hosterr.New(hosterr.Unclassified, "read page", "short read from device")
	}
	p.shadow.StorePage(page, buf)
	return nil
}

// eraseFlashPage erases one page and checks its status response.
func (p *Pipeline) eraseFlashPage(page int) error {
	resp := make([]byte, 1)
	if _, err := p.transport.Control(uint8(proto.FlashErasePage), 0, uint16(page), resp); err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "erase page", err)
	}
	return proto.ParseStatusOnlyResponse("erase page", resp)
}

// writeAndVerifyFlashPage performs the mandated ERASE -> WRITE -> READ
// (verify) sequence for one page using the shadow's current bytes for that
// page, then marks it read.
func (p *Pipeline) writeAndVerifyFlashPage(page int) error {
	if err := p.eraseFlashPage(page); err != nil {
		return err
	}

	want := make([]byte, p.layout.PageSize)
	copy(want, p.shadow.PageBytes(page))

	if _, err := p.transport.Control(uint8(proto.FlashWritePage), 0, uint16(page), want); err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "write page", err)
	}

	got := make([]byte, p.layout.PageSize)
	n, err := p.transport.Control(uint8(proto.FlashReadPage), 0, uint16(page), got)
	if err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "verify page", err)
	}
	if n != p.layout.PageSize || !bytes.Equal(got, want) {
		return hosterr.Wrap(hosterr.Unclassified, "verify page", &hosterr.VerifyMismatchError{Page: page})
	}

	p.shadow.MarkWritten(page)
	return nil
}

// readNVRAMByte fetches one NVRAM byte into the NVRAM shadow.
func (p *Pipeline) readNVRAMByte(addr int) error {
	resp := make([]byte, proto.NvramReadResponseSize)
	if _, err := p.transport.Control(uint8(proto.NvramRead), 0, uint16(addr), resp); err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "nvram read", err)
	}
	value, err := proto.ParseNvramReadResponse(resp)
	if err != nil {
		return err
	}
	p.nv.Store(addr, value)
	return nil
}

// writeNVRAMByte writes one NVRAM byte, value carried in wValue's low byte.
func (p *Pipeline) writeNVRAMByte(addr int, value byte) error {
	resp := make([]byte, 1)
	if _, err := p.transport.Control(uint8(proto.NvramWrite), uint16(value), uint16(addr), resp); err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "nvram write", err)
	}
	if err := proto.ParseStatusOnlyResponse("nvram write", resp); err != nil {
		return err
	}
	p.nv.Store(addr, value)
	return nil
}
