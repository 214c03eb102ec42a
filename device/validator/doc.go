// Package validator simulates the bootloader's reset-time image validity
// check (§4.1): it folds the application region into a running CRC-8 and
// decides, together with the activation signal, whether the device should
// stay resident in bootloader mode or jump to the application.
//
// This is a simulation, not firmware: Go does not run on the target MCU.
// device/sim uses it to give host-facing tests a faithful model of when the
// bootloader accepts connections versus hands off to the application.
package validator
