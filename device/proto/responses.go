package proto

import "fmt"

// ParseGetInfoResponse validates and decodes a GetInfo response payload.
//
// Payload layout (GetInfoResponseSize bytes):
//
//	[STATUS][VER_MAJOR][VER_MINOR][BOOT_PAGES][SIG0][SIG1][SIG2]
func ParseGetInfoResponse(data []byte) (*TargetInfo, error) {
	if len(data) != GetInfoResponseSize {
		return nil, fmt.Errorf("get info: invalid response length: got %d bytes, expected %d", len(data), GetInfoResponseSize)
	}

	if Status(data[0]) != StatusOK {
		return nil, &StatusResponseError{Operation: "get info", Status: Status(data[0])}
	}

	return &TargetInfo{
		VersionMajor:          data[1],
		VersionMinor:          data[2],
		BootloaderSizeInPages: data[3],
		Signature:             [SignatureSize]byte{data[4], data[5], data[6]},
	}, nil
}

// ParseNvramReadResponse validates and decodes an NvramRead response
// payload.
//
// Payload layout (NvramReadResponseSize bytes):
//
//	[STATUS][BYTE]
func ParseNvramReadResponse(data []byte) (byte, error) {
	if len(data) != NvramReadResponseSize {
		return 0, fmt.Errorf("nvram read: invalid response length: got %d bytes, expected %d", len(data), NvramReadResponseSize)
	}

	if Status(data[0]) != StatusOK {
		return 0, &StatusResponseError{Operation: "nvram read", Status: Status(data[0])}
	}

	return data[1], nil
}

// ParseStatusOnlyResponse validates a single-byte {status} response, used by
// Connect, FlashErasePage, NvramWrite, and Reboot.
func ParseStatusOnlyResponse(operation string, data []byte) error {
	if len(data) != 1 {
		return fmt.Errorf("%s: invalid response length: got %d bytes, expected 1", operation, len(data))
	}

	if Status(data[0]) != StatusOK {
		return &StatusResponseError{Operation: operation, Status: Status(data[0])}
	}

	return nil
}
