// Package proto defines the vendor control-transfer wire protocol shared by
// the device firmware simulation (device/server, device/sim) and the host
// side (host/pipeline, cmd/jboot).
//
// # Protocol Overview
//
// Every command is a single USB vendor control transfer: the request code is
// the bRequest byte, wIndex carries a page number or NVRAM address, and
// wValue carries a byte payload where applicable. Status-bearing responses
// put a one-byte Status first, followed by any fixed-size payload. The two
// multi-transfer commands (FlashReadPage, FlashWritePage) stream page_size
// bytes across repeated data-stage callbacks instead of returning a single
// fixed response; see device/server for that state machine.
//
// # Usage
//
// Callers build requests directly against request codes and wIndex/wValue
// (there is no frame-building step — USB control transfers already carry
// that header), then use the Parse* functions to validate and decode fixed
// responses:
//
//	info, err := proto.ParseGetInfoResponse(payload)
//	if err != nil {
//	    // payload was malformed or carried a non-OK status
//	}
package proto
