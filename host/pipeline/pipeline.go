package pipeline

import (
	"context"
	"io"

	"github.com/obdevboot/jboot/crc8"
	"github.com/obdevboot/jboot/device/proto"
	"github.com/obdevboot/jboot/flashimage"
	"github.com/obdevboot/jboot/hosterr"
	"github.com/obdevboot/jboot/nvram"
)

// MemoryType selects which device memory an operation targets.
type MemoryType string

const (
	// MemoryFlash addresses the application flash region.
	MemoryFlash MemoryType = "flash"

	// MemoryNVRAM addresses the device's NVRAM (EEPROM) region.
	MemoryNVRAM MemoryType = "e2prom"
)

// Transport is the control-transfer surface the pipeline needs. It matches
// host/usbdevice.Transport's Control method (and gousb.Device.Control's
// shape) without importing that package, so a *usbdevice.Transport or a
// device/sim.Device satisfies it directly.
type Transport interface {
	Control(request uint8, value, index uint16, data []byte) (int, error)
}

// Pipeline turns user-level memory operations into the control-transfer
// sequences described in §4.6, owning the flash shadow and NVRAM shadow for
// the lifetime of one invocation.
type Pipeline struct {
	transport Transport
	layout    flashimage.Layout
	shadow    *flashimage.Shadow
	nv        *nvram.Shadow
	config    Config
}

// New builds a Pipeline against transport, sized by layout (flash) and
// nvramSize (NVRAM).
func New(transport Transport, layout flashimage.Layout, nvramSize int, opts ...Option) *Pipeline {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pipeline{
		transport: transport,
		layout:    layout,
		shadow:    flashimage.NewShadow(layout),
		nv:        nvram.NewShadow(nvramSize),
		config:    cfg,
	}
}

// Connect issues the CONNECT request, confirming the device is responsive
// before any other operation.
func (p *Pipeline) Connect(ctx context.Context) error {
	resp := make([]byte, 1)
	if _, err := p.transport.Control(uint8(proto.Connect), 0, 0, resp); err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "connect", err)
	}
	return proto.ParseStatusOnlyResponse("connect", resp)
}

// GetInfo issues the GETINFO request and returns the device's identity:
// resident bootloader version, bootloader footprint, and MCU signature.
func (p *Pipeline) GetInfo(ctx context.Context) (*proto.TargetInfo, error) {
	resp := make([]byte, proto.GetInfoResponseSize)
	if _, err := p.transport.Control(uint8(proto.GetInfo), 0, 0, resp); err != nil {
		return nil, hosterr.Wrap(hosterr.Unclassified, "get info", err)
	}
	return proto.ParseGetInfoResponse(resp)
}

// Dump reads memType[offset:offset+size] into out.
func (p *Pipeline) Dump(ctx context.Context, memType MemoryType, offset, size int, out io.Writer) error {
	switch memType {
	case MemoryFlash:
		if offset+size > p.layout.ReadableSize() {
			return hosterr.Wrap(hosterr.BadParameter, "dump",
				&RangeOutOfBoundsError{Offset: offset, Size: size, MemorySize: p.layout.ReadableSize()})
		}
		pageStart, pageEnd := p.layout.PageRange(offset, size)
		for page := pageStart; page <= pageEnd; page++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.readFlashPageIntoShadow(page); err != nil {
				return err
			}
			p.reportProgress(PhaseReading, page-pageStart, pageEnd-pageStart+1)
		}
		_, err := out.Write(p.shadow.Bytes()[offset : offset+size])
		return err

	case MemoryNVRAM:
		if offset+size > p.nv.Size() {
			return hosterr.Wrap(hosterr.BadParameter, "dump",
				&RangeOutOfBoundsError{Offset: offset, Size: size, MemorySize: p.nv.Size()})
		}
		for addr := offset; addr < offset+size; addr++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.readNVRAMByte(addr); err != nil {
				return err
			}
		}
		_, err := out.Write(p.nv.Bytes()[offset : offset+size])
		return err

	default:
		return hosterr.Wrap(hosterr.BadParameter, "dump", &UnknownMemoryTypeError{MemoryType: memType})
	}
}

// Erase erases flash pages [pageStart, pageEnd] inclusive.
func (p *Pipeline) Erase(ctx context.Context, pageStart, pageEnd int) error {
	if pageEnd >= p.layout.PageCount {
		return hosterr.Wrap(hosterr.BadParameter, "erase",
			&PageOutOfRangeError{Page: pageEnd, PageMax: p.layout.LastPage()})
	}
	total := pageEnd - pageStart + 1
	for page := pageStart; page <= pageEnd; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.eraseFlashPage(page); err != nil {
			return err
		}
		p.reportProgress(PhaseErasing, page-pageStart, total)
	}
	p.logInfo("erase complete", "page_start", pageStart, "page_end", pageEnd)
	return nil
}

// Write writes input into memType starting at offset.
func (p *Pipeline) Write(ctx context.Context, memType MemoryType, offset int, input []byte) error {
	switch memType {
	case MemoryFlash:
		return p.writeFlash(ctx, offset, input)
	case MemoryNVRAM:
		return p.writeNVRAM(ctx, offset, input)
	default:
		return hosterr.Wrap(hosterr.BadParameter, "write", &UnknownMemoryTypeError{MemoryType: memType})
	}
}

func (p *Pipeline) writeFlash(ctx context.Context, offset int, input []byte) error {
	memorySize := p.layout.WritableSize()
	if offset+len(input) > memorySize {
		return hosterr.Wrap(hosterr.BadParameter, "write",
			&RangeOutOfBoundsError{Offset: offset, Size: len(input), MemorySize: memorySize})
	}

	pageStart, pageEnd := p.layout.PageRange(offset, len(input))

	if !p.layout.PageAligned(offset) {
		if err := p.readFlashPageIntoShadow(pageStart); err != nil {
			return err
		}
	}
	end := offset + len(input)
	if !p.layout.PageAligned(end) && pageEnd != pageStart {
		if err := p.readFlashPageIntoShadow(pageEnd); err != nil {
			return err
		}
	}

	copy(p.shadow.Bytes()[offset:end], input)

	total := pageEnd - pageStart + 1
	for page := pageStart; page <= pageEnd; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.writeAndVerifyFlashPage(page); err != nil {
			return err
		}
		p.reportProgress(PhaseWriting, page-pageStart, total)
	}
	return nil
}

func (p *Pipeline) writeNVRAM(ctx context.Context, offset int, input []byte) error {
	if offset+len(input) > p.nv.Size() {
		return hosterr.Wrap(hosterr.BadParameter, "write",
			&RangeOutOfBoundsError{Offset: offset, Size: len(input), MemorySize: p.nv.Size()})
	}
	for i, b := range input {
		if err := ctx.Err(); err != nil {
			return err
		}
		addr := offset + i
		if err := p.writeNVRAMByte(addr, b); err != nil {
			return err
		}
	}
	return nil
}

// Commit computes the CRC-8 footer over the whole application region and
// re-programs the final page with it (§4.6 Commit).
func (p *Pipeline) Commit(ctx context.Context) error {
	p.reportProgress(PhaseCommitting, 0, 1)

	for _, page := range p.shadow.UnreadPages() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.readFlashPageIntoShadow(page); err != nil {
			return err
		}
	}

	crc := crc8.Checksum(p.shadow.Bytes()[:p.layout.WritableSize()])
	p.shadow.Bytes()[p.layout.CRCOffset()] = crc
	p.shadow.Bytes()[p.layout.CRCComplementOffset()] = ^crc

	lastPage := p.layout.LastPage()
	if err := p.eraseFlashPage(lastPage); err != nil {
		return err
	}
	if _, err := p.transport.Control(uint8(proto.FlashWritePage), 0, uint16(lastPage), p.shadow.PageBytes(lastPage)); err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "commit: write last page", err)
	}
	p.shadow.MarkWritten(lastPage)

	p.logInfo("commit complete", "crc", crc)
	p.reportProgress(PhaseComplete, 0, 1)
	return nil
}

// Reset issues REBOOT, which the spec defines to run after the final
// requested operation.
func (p *Pipeline) Reset(ctx context.Context) error {
	resp := make([]byte, 1)
	if _, err := p.transport.Control(uint8(proto.Reboot), 0, 0, resp); err != nil {
		return hosterr.Wrap(hosterr.Unclassified, "reset", err)
	}
	return proto.ParseStatusOnlyResponse("reset", resp)
}

func (p *Pipeline) reportProgress(phase Phase, current, total int) {
	if p.config.ProgressCallback == nil {
		return
	}
	pct := 100.0
	if total > 0 {
		pct = float64(current+1) / float64(total) * 100.0
	}
	p.config.ProgressCallback(Progress{
		Phase:       phase,
		CurrentPage: current,
		TotalPages:  total,
		Percentage:  pct,
	})
}

func (p *Pipeline) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(append([]interface{}{msg}, keysAndValues...)...)
	}
}

func (p *Pipeline) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(append([]interface{}{msg}, keysAndValues...)...)
	}
}
