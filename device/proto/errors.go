package proto

import "fmt"

// StatusResponseError reports that the device returned a non-OK status byte
// for the named operation.
type StatusResponseError struct {
	Operation string
	Status    Status
}

func (e *StatusResponseError) Error() string {
	name := "error"
	if e.Status == StatusOK {
		name = "ok"
	}
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, name, byte(e.Status))
}

// IsStatusError reports whether err is a *StatusResponseError.
func IsStatusError(err error) bool {
	_, ok := err.(*StatusResponseError)
	return ok
}
