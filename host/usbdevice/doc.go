// Package usbdevice implements the host-side device enumerator (§4.4) and
// the control-transfer transport the rest of host/pipeline drives. It is
// built on google/gousb, the same gousb API the pack's other USB-facing
// tools (e.g. bbnote-gostlink) use for Context/OpenDevices/Control.
//
// Enumeration and ASCII descriptor decoding are abstracted behind small
// interfaces (RawDevice, Lister) so device/sim can stand in for real
// hardware in tests without linking libusb.
package usbdevice
