package usbdevice

import (
	"errors"

	"github.com/google/gousb"
)

var errNoSuchDevice = errors.New("gousb: no device matched the given VID/PID")

// gousbLister enumerates real USB devices through a libusb context. It
// implements Lister.
type gousbLister struct {
	ctx *gousb.Context
}

// NewGousbLister opens a libusb context for device enumeration. Callers own
// the returned value's lifetime; call Close when the enumerator is done.
func NewGousbLister() *gousbLister {
	return &gousbLister{ctx: gousb.NewContext()}
}

// Close releases the underlying libusb context.
func (l *gousbLister) Close() error {
	return l.ctx.Close()
}

// List returns every currently-attached USB device as a Candidate. gousb
// has no bus/device change-counter equivalent to the source tool's
// usb_find_busses/usb_find_devices, so changed is always true.
func (l *gousbLister) List() ([]Candidate, bool, error) {
	var candidates []Candidate
	_, err := l.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		candidates = append(candidates, gousbCandidate{desc: desc, ctx: l.ctx})
		return false // never open here; Enumerator opens selectively by VID/PID
	})
	if err != nil {
		return nil, false, err
	}
	return candidates, true, nil
}

type gousbCandidate struct {
	desc *gousb.DeviceDesc
	ctx  *gousb.Context
}

func (c gousbCandidate) VendorID() uint16  { return uint16(c.desc.Vendor) }
func (c gousbCandidate) ProductID() uint16 { return uint16(c.desc.Product) }

func (c gousbCandidate) Open() (RawDevice, error) {
	dev, err := c.ctx.OpenDeviceWithVIDPID(gousb.ID(c.desc.Vendor), gousb.ID(c.desc.Product))
	if err != nil {
		return nil, err
	}
	if dev == nil {
		return nil, errNoSuchDevice
	}
	return &gousbDevice{dev: dev, desc: c.desc}, nil
}

// gousbDevice adapts a *gousb.Device to RawDevice.
type gousbDevice struct {
	dev  *gousb.Device
	desc *gousb.DeviceDesc
}

func (d *gousbDevice) VendorID() uint16  { return uint16(d.desc.Vendor) }
func (d *gousbDevice) ProductID() uint16 { return uint16(d.desc.Product) }

func (d *gousbDevice) Manufacturer() (string, error) { return d.dev.Manufacturer() }
func (d *gousbDevice) Product() (string, error)      { return d.dev.Product() }

func (d *gousbDevice) Control(request uint8, value, index uint16, data []byte) (int, error) {
	const vendorIn = 0xC0  // USBRQ_TYPE_VENDOR | device-to-host | recipient device
	const vendorOut = 0x40 // USBRQ_TYPE_VENDOR | host-to-device | recipient device

	rType := uint8(vendorIn)
	if isHostToDeviceRequest(request) {
		rType = vendorOut
	}
	return d.dev.Control(rType, request, value, index, data)
}

// isHostToDeviceRequest reports whether request carries an OUT data stage
// (only FlashWritePage does, per §4.2's request table).
func isHostToDeviceRequest(request uint8) bool {
	const flashWritePage = 0x05
	return request == flashWritePage
}

func (d *gousbDevice) Close() error {
	return d.dev.Close()
}
