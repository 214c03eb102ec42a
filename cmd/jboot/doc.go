// Command jboot is the host-side CLI driver for the USB bootloader
// protocol implemented by device/server. It enumerates a matching USB
// device, queries its identity, and dispatches to host/pipeline for the
// requested erase, dump, write, commit, and reset operations (§6).
package main
