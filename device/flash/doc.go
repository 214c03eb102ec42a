// Package flash simulates the bootloader's self-programming primitives
// (§4.3): busy_wait, page_erase, page_fill, page_write, and rww_enable. A
// complete page-write sequence is erase, N fills, write, busy-wait,
// rww-enable; every primitive here begins by waiting for the simulated
// silicon to go idle, mirroring the real part's serialization requirement.
//
// Page-address bounds checking is a concern of device/server's SETUP
// handling, not of this package: these primitives trust their caller.
package flash
