package sim

import (
	"context"
	"time"

	"github.com/obdevboot/jboot/device/flash"
	"github.com/obdevboot/jboot/device/proto"
	"github.com/obdevboot/jboot/device/server"
	"github.com/obdevboot/jboot/device/validator"
	"github.com/obdevboot/jboot/flashimage"
	"github.com/obdevboot/jboot/nvram"
)

// Device is a complete in-process bootloader simulation: flash + NVRAM +
// protocol server, reachable through Control exactly as host/usbdevice
// reaches a real device through gousb.
type Device struct {
	vendorID, productID   uint16
	manufacturer, product string

	layout flashimage.Layout
	prog   *flash.Programmer
	nv     *nvram.Shadow
	srv    *server.Server
	info   proto.TargetInfo

	corrupt *corruption
}

type corruption struct {
	page   int
	offset int
	mask   byte
}

// Config describes the simulated target's identity and geometry.
type Config struct {
	VendorID, ProductID   uint16
	Manufacturer, Product string
	Layout                flashimage.Layout
	Info                  proto.TargetInfo
	NVRAMSize             int
}

// NewDevice returns a blank (fully erased) simulated device.
func NewDevice(cfg Config) *Device {
	prog := flash.NewProgrammer(cfg.Layout)
	nv := nvram.NewShadow(cfg.NVRAMSize)
	return &Device{
		vendorID:     cfg.VendorID,
		productID:    cfg.ProductID,
		manufacturer: cfg.Manufacturer,
		product:      cfg.Product,
		layout:       cfg.Layout,
		prog:         prog,
		nv:           nv,
		srv:          server.NewServer(cfg.Layout, prog, nv, cfg.Info),
		info:         cfg.Info,
	}
}

// Control simulates one USB vendor control transfer: a SETUP phase followed,
// for FlashReadPage/FlashWritePage, by however many data-stage calls it
// takes to fill/drain data. It returns the number of bytes transferred, in
// the same shape gousb.Device.Control does.
func (d *Device) Control(request uint8, value, index uint16, data []byte) (int, error) {
	req := proto.RequestCode(request)
	resp, multi := d.srv.Setup(req, index, value)

	if !multi {
		n := copy(data, resp)
		if req == proto.Reboot {
			d.srv.Poll()
		}
		return n, nil
	}

	switch req {
	case proto.FlashReadPage:
		total := 0
		for total < len(data) {
			n := d.srv.ReadData(data[total:])
			if n == 0 {
				break
			}
			total += n
		}
		if d.corrupt != nil && d.corrupt.page == int(index) {
			if d.corrupt.offset < total {
				data[d.corrupt.offset] ^= d.corrupt.mask
			}
			d.corrupt = nil
		}
		return total, nil

	case proto.FlashWritePage:
		total := 0
		for total < len(data) {
			n := d.srv.WriteData(data[total:])
			if n == 0 {
				break
			}
			total += n
		}
		return total, nil

	default:
		return 0, nil
	}
}

// Close releases the simulated device. It never fails.
func (d *Device) Close() error {
	return nil
}

// InjectReadCorruption arranges for the next FlashReadPage of page to come
// back with offset's byte XORed by mask, simulating a bit-flipped readback
// for verify-failure tests. The corruption fires exactly once.
func (d *Device) InjectReadCorruption(page, offset int, mask byte) {
	d.corrupt = &corruption{page: page, offset: offset, mask: mask}
}

// Memory returns the device's current raw flash contents, for test
// assertions that bypass the protocol.
func (d *Device) Memory() []byte {
	return d.prog.Memory()
}

// ReadPage returns a copy of page's current contents, for test assertions
// that bypass the protocol.
func (d *Device) ReadPage(page int) []byte {
	return d.prog.ReadPage(page)
}

// Rebooted reports whether the device has processed a REBOOT request and run
// its shutdown sequence.
func (d *Device) Rebooted() bool {
	return len(d.srv.ShutdownLog()) > 0
}

// Run drives the device's simulated main loop (§5) until a REBOOT has been
// serviced, ctx is canceled, or watchdog elapses with no tick — delegating
// directly to device/server.Server.Run.
func (d *Device) Run(ctx context.Context, watchdog time.Duration) error {
	return d.srv.Run(ctx, watchdog)
}

// PowerCycle simulates the §4.1 reset-time validity check and activation
// policy: it runs the CRC-8 validator over current flash contents and
// returns whether the device would stay resident in bootloader mode.
func (d *Device) PowerCycle(activationAsserted bool) (staysResident bool, imageValid bool) {
	imageValid, _ = validator.Validate(d.layout, d.prog.Memory())
	return validator.EnterBootloader(activationAsserted, imageValid), imageValid
}
