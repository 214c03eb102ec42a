package sim

// The methods below let *Device satisfy host/usbdevice.RawDevice without
// this package importing host/usbdevice: Go's structural interfaces make the
// match implicit, keeping the dependency edge one-directional (host code
// depends on the simulation in tests, never the reverse). Bus and Candidate
// mirror host/usbdevice.Lister/Candidate in shape, but their methods return
// the concrete sim types, so host code wraps them in a thin adapter to use
// them through those interfaces.

// VendorID and ProductID satisfy host/usbdevice.RawDevice.
func (d *Device) VendorID() uint16  { return d.vendorID }
func (d *Device) ProductID() uint16 { return d.productID }

// Manufacturer and Product satisfy host/usbdevice.RawDevice. The simulated
// device always carries both descriptors.
func (d *Device) Manufacturer() (string, error) { return d.manufacturer, nil }
func (d *Device) Product() (string, error)      { return d.product, nil }

// Bus is an in-process stand-in for host/usbdevice.Lister: a fixed set of
// devices, all "visible" on every poll.
type Bus struct {
	devices []*Device
}

// NewBus returns a Bus exposing devices.
func NewBus(devices ...*Device) *Bus {
	return &Bus{devices: devices}
}

// List returns every device on the bus as a Candidate, with changed always
// true (the simulation has no stale-enumeration state to model).
func (b *Bus) List() (candidates []Candidate, changed bool, err error) {
	for _, d := range b.devices {
		candidates = append(candidates, Candidate{dev: d})
	}
	return candidates, true, nil
}

// Candidate wraps a *Device for bus listing. Its Open returns *Device rather
// than host/usbdevice.RawDevice, so it does not satisfy
// host/usbdevice.Candidate without an adapter.
type Candidate struct {
	dev *Device
}

func (c Candidate) VendorID() uint16  { return c.dev.VendorID() }
func (c Candidate) ProductID() uint16 { return c.dev.ProductID() }

// Open returns the underlying simulated device. It never fails: there is no
// real hardware to fail to claim.
func (c Candidate) Open() (*Device, error) {
	return c.dev, nil
}
