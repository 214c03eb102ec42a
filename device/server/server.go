package server

import (
	"context"
	"errors"
	"time"

	"github.com/obdevboot/jboot/device/flash"
	"github.com/obdevboot/jboot/device/proto"
	"github.com/obdevboot/jboot/flashimage"
	"github.com/obdevboot/jboot/nvram"
)

// ErrWatchdogTimeout is returned by Run when a full watchdog window passes
// without a single main-loop iteration, standing in for the real
// watchdog firing against a hung poll call (§5: "any single poll that
// exceeds the watchdog window is a bug and causes an intentional watchdog
// reset").
var ErrWatchdogTimeout = errors.New("server: watchdog timeout")

// Server simulates the bootloader's main-loop protocol handling: SETUP-phase
// classification and dispatch (§4.2), the PAGE_READ/PAGE_WRITE data stages,
// and the RESET shutdown sequence (§4.2.1).
type Server struct {
	layout flashimage.Layout
	prog   *flash.Programmer
	nv     *nvram.Shadow
	info   proto.TargetInfo

	sess        session
	shutdownLog []string
}

// NewServer wires a Server around an already-programmed flash image and
// NVRAM shadow, reporting info in response to GetInfo.
func NewServer(layout flashimage.Layout, prog *flash.Programmer, nv *nvram.Shadow, info proto.TargetInfo) *Server {
	return &Server{
		layout: layout,
		prog:   prog,
		nv:     nv,
		info:   info,
		sess:   idleSession(),
	}
}

// Setup classifies and dispatches a vendor SETUP packet. For short IN
// commands it returns the full response payload with multiTransfer false.
// For FlashReadPage/FlashWritePage it transitions the session and returns
// multiTransfer true with a nil response, signaling the caller to stream
// page_size bytes via ReadData/WriteData.
func (s *Server) Setup(req proto.RequestCode, wIndex, wValue uint16) (response []byte, multiTransfer bool) {
	switch req {
	case proto.Connect:
		return []byte{byte(proto.StatusOK)}, false

	case proto.GetInfo:
		return []byte{
			byte(proto.StatusOK),
			s.info.VersionMajor,
			s.info.VersionMinor,
			s.info.BootloaderSizeInPages,
			s.info.Signature[0],
			s.info.Signature[1],
			s.info.Signature[2],
		}, false

	case proto.FlashErasePage:
		page := int(wIndex)
		if page >= s.layout.PageCount {
			return []byte{byte(proto.StatusError)}, false
		}
		s.prog.PageErase(page)
		return []byte{byte(proto.StatusOK)}, false

	case proto.FlashReadPage:
		page := int(wIndex)
		if page >= s.layout.PageCount {
			return []byte{byte(proto.StatusError)}, false
		}
		s.sess = session{kind: sessionPageRead, page: page, remaining: s.layout.PageSize}
		return nil, true

	case proto.FlashWritePage:
		page := int(wIndex)
		if page >= s.layout.PageCount {
			return []byte{byte(proto.StatusError)}, false
		}
		s.sess = session{kind: sessionPageWrite, page: page, remaining: s.layout.PageSize}
		return nil, true

	case proto.NvramRead:
		addr := int(wIndex)
		if addr < 0 || addr >= s.nv.Size() {
			return []byte{byte(proto.StatusError)}, false
		}
		return []byte{byte(proto.StatusOK), s.nv.Get(addr)}, false

	case proto.NvramWrite:
		addr := int(wIndex)
		if addr < 0 || addr >= s.nv.Size() {
			return []byte{byte(proto.StatusError)}, false
		}
		s.nv.Store(addr, byte(wValue))
		return []byte{byte(proto.StatusOK)}, false

	case proto.Reboot:
		s.sess = session{kind: sessionReset}
		return []byte{byte(proto.StatusOK)}, false

	default:
		return nil, false
	}
}

// ReadData services the PAGE_READ data stage: it fills buf with up to
// len(buf) bytes from the session's current page, advances the read
// position, and returns the number of bytes written. When the page is
// exhausted the session returns to idle.
func (s *Server) ReadData(buf []byte) int {
	if s.sess.kind != sessionPageRead {
		return 0
	}

	page := s.prog.ReadPage(s.sess.page)
	n := 0
	for n < len(buf) && s.sess.remaining > 0 {
		buf[n] = page[s.sess.pageAddr]
		s.sess.pageAddr++
		s.sess.remaining--
		n++
	}
	if s.sess.remaining == 0 {
		s.sess = idleSession()
	}
	return n
}

// WriteData services the PAGE_WRITE data stage: it consumes data two bytes
// at a time (one flash word per pair), calling the flash programmer's
// page-fill primitive, and returns the number of bytes consumed. When the
// page buffer is full it performs the write, waits for completion,
// re-enables read-while-write, and returns the session to idle.
func (s *Server) WriteData(data []byte) int {
	if s.sess.kind != sessionPageWrite {
		return 0
	}

	n := 0
	for n+1 < len(data) && s.sess.remaining > 0 {
		wordOffset := s.sess.pageAddr / 2
		wordValue := uint16(data[n]) | uint16(data[n+1])<<8
		s.prog.PageFill(wordOffset, wordValue)

		s.sess.pageAddr += 2
		s.sess.remaining -= 2
		n += 2
	}

	if s.sess.remaining == 0 {
		s.prog.PageWrite(s.sess.page)
		s.prog.RWWEnable()
		s.sess = idleSession()
	}
	return n
}

// Poll simulates one main-loop iteration: petting the watchdog and polling
// USB is implicit (the simulation has no hardware to wait on). If the
// session is RESET it runs the shutdown sequence and reports that a reset
// was triggered; the caller should stop driving the server afterward.
func (s *Server) Poll() (resetTriggered bool) {
	if s.sess.kind != sessionReset {
		return false
	}
	s.shutdown()
	return true
}

// shutdown simulates §4.2.1: disable interrupts, disconnect USB, disable the
// USB interrupt vector, relocate interrupt vectors back to address 0, then
// arm the watchdog for a hardware reset. The ordering is load-bearing and
// preserved here even though nothing downstream observes timing.
func (s *Server) shutdown() {
	s.shutdownLog = []string{
		"disable_interrupts",
		"usb_disconnect",
		"disable_usb_interrupt",
		"relocate_vectors_to_app",
		"arm_watchdog_reset",
	}
}

// ShutdownLog reports the shutdown sequence events recorded by the most
// recent reset, in order. It is nil until a RESET session has been polled.
func (s *Server) ShutdownLog() []string {
	return s.shutdownLog
}

// tickInterval is the simulated main-loop's iteration rate: how often Run
// pets the watchdog and polls for a pending reset.
const tickInterval = time.Millisecond

// Run is the single-goroutine main loop described in §5: it pets the
// watchdog and calls Poll once per tick, returning nil as soon as a RESET
// session has been serviced, ctx.Err() if ctx is canceled first, or
// ErrWatchdogTimeout if a full watchdog period passes with no tick.
func (s *Server) Run(ctx context.Context, watchdog time.Duration) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	wdTimer := time.NewTimer(watchdog)
	defer wdTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return ctx.Err()

		case <-wdTimer.C:
			s.shutdown()
			return ErrWatchdogTimeout

		case <-ticker.C:
			if !wdTimer.Stop() {
				select {
				case <-wdTimer.C:
				default:
				}
			}
			wdTimer.Reset(watchdog)

			if s.Poll() {
				return nil
			}
		}
	}
}

// Idle reports whether the session is currently idle (no in-flight
// multi-transfer or pending reset).
func (s *Server) Idle() bool {
	return s.sess.kind == sessionIdle
}
