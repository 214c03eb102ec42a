package proto

// RequestCode identifies a vendor control request (the USB bRequest byte).
// Values are stable on the wire — never renumber an existing code.
type RequestCode byte

// Request codes per §4.2 of the design. Each carries a fixed direction
// relative to the host.
const (
	// Connect is an IN request; the device replies {StatusOK}.
	Connect RequestCode = 0x01

	// GetInfo is an IN request; the device replies with 7 bytes:
	// {OK, ver_major, ver_minor, boot_pages, sig0, sig1, sig2}.
	GetInfo RequestCode = 0x02

	// FlashErasePage is an IN request. wIndex is the page number; the
	// device replies {OK} or {ERROR} if the page is out of range.
	FlashErasePage RequestCode = 0x03

	// FlashReadPage is an IN request with a multi-transfer data stage.
	// wIndex is the page number; the device streams page_size bytes.
	FlashReadPage RequestCode = 0x04

	// FlashWritePage is an OUT request with a multi-transfer data stage.
	// wIndex is the page number; the host streams page_size bytes.
	FlashWritePage RequestCode = 0x05

	// NvramRead is an IN request. wIndex is the address; the device
	// replies {OK, byte}.
	NvramRead RequestCode = 0x06

	// NvramWrite is an IN request. wIndex is the address, wValue's low
	// byte is the value; the device replies {OK}.
	NvramWrite RequestCode = 0x07

	// Reboot is an IN request; the device replies {OK} and arms a reset on
	// the next poll cycle.
	Reboot RequestCode = 0x08
)

// Status is the one-byte status carried in every response that has room for
// one (every request except the data-stage bytes of a multi-transfer).
type Status byte

const (
	// StatusOK indicates success.
	StatusOK Status = 0x00

	// StatusError indicates an unclassified device-side failure, including
	// an out-of-range page index.
	StatusError Status = 0x01
)

// MultiTransferSentinel is the setup-reply length the device returns to
// signal "this is a multi-transfer command; call back for more data". It is
// interpreted by the USB stack, never by application code directly.
const MultiTransferSentinel = 0xFF

// GetInfoResponseSize is the number of bytes in a GetInfo response payload,
// including the leading status byte.
const GetInfoResponseSize = 7

// NvramReadResponseSize is the number of bytes in an NvramRead response
// payload, including the leading status byte.
const NvramReadResponseSize = 2

// SignatureSize is the number of bytes in an MCU signature triple.
const SignatureSize = 3
