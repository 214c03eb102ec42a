package crc8

import "testing"

func TestByteAccumulatesLikeChecksum(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	remainder := InitialValue
	for _, b := range data {
		remainder = Byte(b, remainder)
	}

	if got := Checksum(data); got != remainder {
		t.Errorf("Checksum(%v) = 0x%02X, want 0x%02X (folded manually)", data, got, remainder)
	}
}

func TestChecksumEmpty(t *testing.T) {
	if got := Checksum(nil); got != InitialValue {
		t.Errorf("Checksum(nil) = 0x%02X, want InitialValue 0x%02X", got, InitialValue)
	}
}

func TestChecksumFromSplitEqualsWhole(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	whole := Checksum(data)

	split := ChecksumFrom(data[4:], ChecksumFrom(data[:4], InitialValue))

	if split != whole {
		t.Errorf("split checksum = 0x%02X, want 0x%02X (matching whole-buffer checksum)", split, whole)
	}
}

func TestValid(t *testing.T) {
	data := []byte{0x10, 0x20, 0x30}
	sum := Checksum(data)

	if !Valid(data, sum, ^sum) {
		t.Errorf("Valid() = false, want true for matching crc/complement pair")
	}

	if Valid(data, sum, sum) {
		t.Errorf("Valid() = true, want false when complement is wrong")
	}

	if Valid(data, sum^0x01, ^sum) {
		t.Errorf("Valid() = true, want false when stored crc is wrong")
	}
}

// TestSymmetry is the device/host symmetry invariant from the design: for
// every byte sequence, the same algorithm run twice (as device and host each
// would) must agree.
func TestSymmetry(t *testing.T) {
	sequences := [][]byte{
		nil,
		{0x00},
		{0xFF},
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		make([]byte, 256),
	}

	for i := range sequences[4] {
		sequences[4][i] = byte(i)
	}

	for _, seq := range sequences {
		device := Checksum(seq)
		host := Checksum(append([]byte(nil), seq...))

		if device != host {
			t.Errorf("crc8 symmetry broken for %v: device=0x%02X host=0x%02X", seq, device, host)
		}
	}
}
