// Package mcutable holds the host's static table of known MCU signatures
// and their flash/NVRAM geometry (§4.5). After GET_INFO, the host looks up
// the returned signature triple to learn page size, page count, and NVRAM
// size — values the bootloader itself never reports.
package mcutable
