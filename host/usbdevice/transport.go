package usbdevice

import (
	"context"
	"time"

	"github.com/obdevboot/jboot/hosterr"
)

// RawDevice is the minimal surface usbdevice needs from an opened USB
// device: its identity, descriptor strings, and vendor control transfers.
// device/sim.Device and the gousb-backed adapter in gousb_device.go both
// satisfy it.
type RawDevice interface {
	VendorID() uint16
	ProductID() uint16
	// Manufacturer and Product return the decoded descriptor string, or an
	// error if the device carries no such descriptor (index 0). Per §4.4 an
	// absent descriptor is not itself a mismatch; see descriptorEquals.
	Manufacturer() (string, error)
	Product() (string, error)
	Control(request uint8, value, index uint16, data []byte) (int, error)
	Close() error
}

// Transport wraps an opened RawDevice with the per-call deadline every
// control transfer must honor (§5: "every USB control transfer carries a
// caller-provided timeout in milliseconds").
type Transport struct {
	dev     RawDevice
	timeout time.Duration
}

// NewTransport wraps dev with a default per-call timeout. Individual calls
// may shorten it via ControlContext.
func NewTransport(dev RawDevice, timeout time.Duration) *Transport {
	return &Transport{dev: dev, timeout: timeout}
}

// Control issues a vendor control transfer using the transport's default
// timeout.
func (t *Transport) Control(request uint8, value, index uint16, data []byte) (int, error) {
	return t.ControlContext(context.Background(), request, value, index, data)
}

// ControlContext issues a vendor control transfer honoring ctx's deadline in
// addition to the transport's own timeout, whichever is sooner. RawDevice's
// Control call is synchronous and cannot be interrupted mid-flight, so the
// deadline is checked around the call: a transfer is not attempted once the
// effective deadline has already passed, and a transfer that returns after
// the deadline is reported as ERROR_TIMEOUT.
func (t *Transport) ControlContext(ctx context.Context, request uint8, value, index uint16, data []byte) (int, error) {
	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if time.Now().After(deadline) {
		return 0, hosterr.New(hosterr.Timeout, "control transfer", "deadline already elapsed")
	}

	n, err := t.dev.Control(request, value, index, data)
	if time.Now().After(deadline) {
		return n, hosterr.New(hosterr.Timeout, "control transfer", "deadline elapsed during transfer")
	}
	if err != nil {
		return n, hosterr.Wrap(hosterr.Unclassified, "control transfer", err)
	}
	return n, nil
}

// Close releases the underlying device.
func (t *Transport) Close() error {
	return t.dev.Close()
}
