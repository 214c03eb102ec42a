package validator

import (
	"github.com/obdevboot/jboot/crc8"
	"github.com/obdevboot/jboot/flashimage"
)

// Validate folds image[0 .. layout.WritableSize()) into a running CRC-8 and
// compares it against the two stored footer bytes. It reports the computed
// running checksum alongside the valid/invalid verdict so callers (and
// tests) can inspect why a check failed.
func Validate(layout flashimage.Layout, image []byte) (valid bool, running byte) {
	running = crc8.Checksum(image[:layout.WritableSize()])

	storedComplement := image[layout.CRCComplementOffset()]
	storedCRC := image[layout.CRCOffset()]

	valid = running == storedCRC && ^running == storedComplement
	return valid, running
}

// EnterBootloader implements the §4.1 policy: the device stays resident in
// bootloader mode iff the activation signal is asserted or the image is
// invalid. It never decides to run the application when activation is
// asserted, even over a valid image.
func EnterBootloader(activationAsserted bool, imageValid bool) bool {
	return activationAsserted || !imageValid
}
