package validator

import (
	"testing"

	"github.com/obdevboot/jboot/crc8"
	"github.com/obdevboot/jboot/flashimage"
)

func testLayout() flashimage.Layout {
	return flashimage.Layout{PageSize: 8, PageCount: 2}
}

func TestValidateBlankImageIsInvalid(t *testing.T) {
	layout := testLayout()
	image := make([]byte, layout.ReadableSize())
	for i := range image {
		image[i] = 0xFF
	}

	valid, _ := Validate(layout, image)
	if valid {
		t.Errorf("blank 0xFF image reported valid")
	}
}

func TestValidateWithCorrectFooter(t *testing.T) {
	layout := testLayout()
	image := make([]byte, layout.ReadableSize())
	copy(image, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	crc := crc8.Checksum(image[:layout.WritableSize()])
	image[layout.CRCComplementOffset()] = ^crc
	image[layout.CRCOffset()] = crc

	valid, running := Validate(layout, image)
	if !valid {
		t.Errorf("expected valid image, got invalid (running=0x%02X)", running)
	}
	if running != crc {
		t.Errorf("running = 0x%02X, want 0x%02X", running, crc)
	}
}

func TestValidateRejectsComplementMismatch(t *testing.T) {
	layout := testLayout()
	image := make([]byte, layout.ReadableSize())

	crc := crc8.Checksum(image[:layout.WritableSize()])
	image[layout.CRCComplementOffset()] = crc // wrong: should be ^crc
	image[layout.CRCOffset()] = crc

	valid, _ := Validate(layout, image)
	if valid {
		t.Errorf("expected invalid image when complement byte is wrong")
	}
}

func TestEnterBootloaderPolicy(t *testing.T) {
	tests := []struct {
		name               string
		activationAsserted bool
		imageValid         bool
		want               bool
	}{
		{"valid image, no activation: run app", false, true, false},
		{"valid image, activation asserted: stay resident", true, true, true},
		{"invalid image, no activation: stay resident", false, false, true},
		{"invalid image, activation asserted: stay resident", true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnterBootloader(tt.activationAsserted, tt.imageValid); got != tt.want {
				t.Errorf("EnterBootloader(%v, %v) = %v, want %v",
					tt.activationAsserted, tt.imageValid, got, tt.want)
			}
		})
	}
}
