// Package server simulates the bootloader's protocol state machine: SETUP-phase
// dispatch over the eight request codes, the PAGE_READ/PAGE_WRITE
// multi-transfer data stages, and the RESET shutdown sequence (§4.2,
// §4.2.1).
//
// The source firmware shares one mutable state enum plus loose
// currentAddress/dataSize globals across usbFunctionSetup/Read/Write. Session
// replaces that with a tagged union owning its own per-state fields (§9,
// "device session as tagged variant"). Each data-stage handler checks the
// session kind first, so one invoked while idle, or with the wrong
// direction, transfers nothing instead of acting on stale fields.
package server
