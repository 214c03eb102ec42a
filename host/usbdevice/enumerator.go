package usbdevice

import (
	"context"
	"time"

	"github.com/obdevboot/jboot/hosterr"
)

// Candidate is an unopened device descriptor seen on the bus: enough to
// filter on VID/PID before paying the cost of opening it.
type Candidate interface {
	VendorID() uint16
	ProductID() uint16
	Open() (RawDevice, error)
}

// Lister enumerates currently-visible USB devices. changed reports whether
// the bus/device lists differ from the previous call, mirroring the source
// tool's usb_find_busses/usb_find_devices change counters; gousb has no
// equivalent signal, so the production Lister always reports changed=true.
type Lister interface {
	List() (candidates []Candidate, changed bool, err error)
}

// Match describes the device this Enumerator is looking for.
type Match struct {
	VendorID, ProductID     uint16
	VendorString, ProductString string
	Timeout                 time.Duration
}

// Enumerator implements the §4.4 device-matching poll loop.
type Enumerator struct {
	lister       Lister
	pollInterval time.Duration
}

// NewEnumerator builds an Enumerator that polls lister every pollInterval.
func NewEnumerator(lister Lister, pollInterval time.Duration) *Enumerator {
	return &Enumerator{lister: lister, pollInterval: pollInterval}
}

// Find polls until a device matching cfg is found, ctx is canceled, or
// cfg.Timeout elapses (ERROR_TIMEOUT). On success all non-matching devices
// opened while searching are closed; only the first match is returned.
func (e *Enumerator) Find(ctx context.Context, cfg Match) (RawDevice, error) {
	deadline := time.Now().Add(cfg.Timeout)
	firstIteration := true

	for {
		candidates, changed, err := e.lister.List()
		if err != nil {
			return nil, hosterr.Wrap(hosterr.Unclassified, "enumerate", err)
		}

		// On the very first iteration, an unchanged list may just mean
		// devices are still enumerating after a recent plug event; retry
		// without attempting to match yet.
		skipMatch := firstIteration && !changed
		firstIteration = false

		if !skipMatch {
			if match := openAndMatch(candidates, cfg); match != nil {
				return match, nil
			}
		}

		if time.Now().After(deadline) {
			return nil, hosterr.New(hosterr.Timeout, "enumerate",
				"no device matched vendor/product identity before the deadline")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}

func openAndMatch(candidates []Candidate, cfg Match) RawDevice {
	var match RawDevice

	for _, c := range candidates {
		if c.VendorID() != cfg.VendorID || c.ProductID() != cfg.ProductID {
			continue
		}
		dev, err := c.Open()
		if err != nil {
			continue
		}
		if match == nil && stringsMatch(dev, cfg) {
			match = dev
			continue
		}
		dev.Close()
	}
	return match
}

func stringsMatch(dev RawDevice, cfg Match) bool {
	if !descriptorEquals(dev.Manufacturer, cfg.VendorString) {
		return false
	}
	return descriptorEquals(dev.Product, cfg.ProductString)
}

// descriptorEquals implements the §4.4 "if index > 0, require exact
// equality; else skip" rule: fetch returning an error means the device
// carries no such descriptor, which is not a match failure.
func descriptorEquals(fetch func() (string, error), want string) bool {
	got, err := fetch()
	if err != nil {
		return true
	}
	return got == want
}
