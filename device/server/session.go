package server

// session is a tagged union of the device's protocol state. Exactly one
// field set is meaningful at a time, selected by kind; there is no shared
// currentAddress/dataSize pair that a handler could read under the wrong
// kind.
type session struct {
	kind sessionKind

	// pageRead / pageWrite fields, valid only when kind is the matching
	// value.
	page      int
	pageAddr  int // byte offset within the page
	remaining int
}

type sessionKind int

const (
	sessionIdle sessionKind = iota
	sessionPageRead
	sessionPageWrite
	sessionReset
)

func idleSession() session {
	return session{kind: sessionIdle}
}
