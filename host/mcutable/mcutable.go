package mcutable

import (
	"fmt"

	"github.com/obdevboot/jboot/flashimage"
	"github.com/obdevboot/jboot/hosterr"
)

// Entry describes one supported MCU's identity and memory geometry.
type Entry struct {
	Signature [3]byte
	Name      string

	FlashSize int // total flash size in bytes, including the bootloader region
	PageSize  int

	NVRAMSize int
}

// Table is the static set of MCUs this host tool recognizes. Matching is by
// exact signature triple.
var Table = []Entry{
	{
		Signature: [3]byte{0x1e, 0x95, 0x0f},
		Name:      "ATmega328P",
		FlashSize: 32 * 1024,
		PageSize:  128,
		NVRAMSize: 2 * 1024,
	},
}

// Lookup finds the Entry matching sig. No match is ERROR_NO_DEVICE (§4.5,
// §7): the host has no idea how to size a device it doesn't recognize.
func Lookup(sig [3]byte) (Entry, error) {
	for _, e := range Table {
		if e.Signature == sig {
			return e, nil
		}
	}
	return Entry{}, hosterr.New(hosterr.NoDevice, "mcutable lookup",
		fmt.Sprintf("no MCU matches signature %02X %02X %02X", sig[0], sig[1], sig[2]))
}

// Layout derives the application region's page geometry given the
// bootloader's own size in pages (as reported by GET_INFO). app_page_count
// is the device's total page count minus the pages the bootloader occupies.
func (e Entry) Layout(bootloaderSizeInPages byte) flashimage.Layout {
	totalPages := e.FlashSize / e.PageSize
	return flashimage.Layout{
		PageSize:  e.PageSize,
		PageCount: totalPages - int(bootloaderSizeInPages),
	}
}
