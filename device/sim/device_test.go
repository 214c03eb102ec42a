package sim

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/obdevboot/jboot/crc8"
	"github.com/obdevboot/jboot/device/proto"
	"github.com/obdevboot/jboot/flashimage"
)

func testConfig() Config {
	return Config{
		VendorID:     0x16c0,
		ProductID:    0x05dc,
		Manufacturer: "obdev.at",
		Product:      "USB jboot",
		Layout:       flashimage.Layout{PageSize: 8, PageCount: 4},
		Info: proto.TargetInfo{
			VersionMajor:          1,
			VersionMinor:          0,
			BootloaderSizeInPages: 14,
			Signature:             [3]byte{0x1E, 0x95, 0x0F},
		},
		NVRAMSize: 4,
	}
}

func TestBlankDeviceDumpIsAllOnes(t *testing.T) {
	d := NewDevice(testConfig())

	buf := make([]byte, 8)
	n, err := d.Control(uint8(proto.FlashReadPage), 0, 0, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 {
		t.Fatalf("read %d bytes, want 8", n)
	}
	for i, b := range buf {
		if b != 0xFF {
			t.Errorf("byte %d = 0x%02X, want 0xFF on blank device", i, b)
		}
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	d := NewDevice(testConfig())

	d.Control(uint8(proto.FlashErasePage), 0, 0, nil)

	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	n, _ := d.Control(uint8(proto.FlashWritePage), 0, 0, payload)
	if n != len(payload) {
		t.Fatalf("wrote %d bytes, want %d", n, len(payload))
	}

	got := make([]byte, 8)
	d.Control(uint8(proto.FlashReadPage), 0, 0, got)
	if !bytes.Equal(got, payload) {
		t.Errorf("readback = % X, want % X", got, payload)
	}
}

func TestInjectReadCorruption(t *testing.T) {
	d := NewDevice(testConfig())
	d.Control(uint8(proto.FlashErasePage), 0, 0, nil)

	d.InjectReadCorruption(0, 2, 0x01)

	got := make([]byte, 8)
	d.Control(uint8(proto.FlashReadPage), 0, 0, got)
	if got[2] != 0xFE {
		t.Errorf("corrupted byte = 0x%02X, want 0xFE", got[2])
	}

	// Corruption is one-shot: a second read must come back clean.
	got2 := make([]byte, 8)
	d.Control(uint8(proto.FlashReadPage), 0, 0, got2)
	if got2[2] != 0xFF {
		t.Errorf("second read byte = 0x%02X, want clean 0xFF", got2[2])
	}
}

func TestRebootMarksRebooted(t *testing.T) {
	d := NewDevice(testConfig())
	if d.Rebooted() {
		t.Fatalf("fresh device should not report rebooted")
	}
	d.Control(uint8(proto.Reboot), 0, 0, make([]byte, 1))
	if !d.Rebooted() {
		t.Errorf("device should report rebooted after REBOOT request")
	}
}

func TestPowerCycleActivationOverride(t *testing.T) {
	d := NewDevice(testConfig())

	staysResident, valid := d.PowerCycle(true)
	if !staysResident {
		t.Errorf("activation asserted should stay resident regardless of image validity")
	}
	if valid {
		t.Errorf("blank image should be invalid")
	}
}

func TestRunStopsAfterRebootRequest(t *testing.T) {
	d := NewDevice(testConfig())
	d.Control(uint8(proto.Reboot), 0, 0, make([]byte, 1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := d.Run(ctx, time.Second); err != nil {
		t.Fatalf("Run() = %v, want nil after a serviced REBOOT", err)
	}
}

func TestPowerCycleRunsAppWhenValidAndNotAsserted(t *testing.T) {
	d := NewDevice(testConfig())

	layout := d.layout
	image := d.Memory()
	for i := range image[:layout.WritableSize()] {
		image[i] = 0x00
	}
	crc := crc8.Checksum(image[:layout.WritableSize()])
	image[layout.CRCComplementOffset()] = ^crc
	image[layout.CRCOffset()] = crc

	staysResident, valid := d.PowerCycle(false)
	if !valid {
		t.Fatalf("expected image to validate with a correct footer")
	}
	if staysResident {
		t.Errorf("valid image with no activation should hand off to the application")
	}
}
