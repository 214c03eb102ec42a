package usbdevice

import (
	"context"
	"testing"
	"time"

	"github.com/obdevboot/jboot/device/proto"
	"github.com/obdevboot/jboot/device/sim"
)

func TestTransportControlRoundTrip(t *testing.T) {
	dev := sim.NewDevice(testDeviceConfig())
	tr := NewTransport(dev, time.Second)

	resp := make([]byte, 7)
	n, err := tr.Control(uint8(proto.GetInfo), 0, 0, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Fatalf("Control returned %d bytes, want 7", n)
	}
	if resp[0] != byte(proto.StatusOK) {
		t.Errorf("status byte = 0x%02X, want StatusOK", resp[0])
	}
}

func TestTransportControlContextRespectsElapsedDeadline(t *testing.T) {
	dev := sim.NewDevice(testDeviceConfig())
	tr := NewTransport(dev, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := tr.ControlContext(ctx, uint8(proto.GetInfo), 0, 0, make([]byte, 7))
	if err == nil {
		t.Fatalf("expected a timeout error for an already-elapsed deadline")
	}
}
