// Package sim assembles device/validator, device/flash, and device/server
// into a complete in-process stand-in for a connected bootloader, exposed
// through the same Control-transfer shape the host side uses against a real
// USB device (see host/usbdevice.Transport). It generalizes the teacher's
// examples/mock_device pattern into shared test infrastructure for
// host/pipeline and host/usbdevice.
package sim
