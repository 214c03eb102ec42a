// Package crc8 implements the reflected CRC-8 algorithm shared by the device
// firmware validator and the host commit step.
//
// # Algorithm
//
// The checksum is a bit-by-bit reflected modulo-2 division: for each input byte
// the running remainder is XORed with the byte, then shifted right eight times,
// XORing in Polynomial whenever the shifted-out bit was set. Bytes are folded in
// low-address-first order. The same sequence of bytes always produces the same
// 8-bit value on both peers, independent of platform or language — see
// TestSymmetry in crc8_test.go for the round-trip property this guarantees.
//
// # Reference
//
// Ported from the bootloader's own crc8_get/crc8_getForByte routines (AVR C,
// modulo-2 division over the application image), preserving the exact
// polynomial and bit order so device and host agree byte-for-byte.
package crc8
