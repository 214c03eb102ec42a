package pipeline

// Phase describes the current pipeline operation for progress reporting.
type Phase string

const (
	// PhaseReading indicates pages are being read into the shadow.
	PhaseReading Phase = "reading"

	// PhaseErasing indicates pages are being erased.
	PhaseErasing Phase = "erasing"

	// PhaseWriting indicates pages are being erased, written, and verified.
	PhaseWriting Phase = "writing"

	// PhaseCommitting indicates the CRC footer is being computed and stored.
	PhaseCommitting Phase = "committing"

	// PhaseComplete indicates the operation finished successfully.
	PhaseComplete Phase = "complete"
)

// Progress reports pipeline progress to an optional ProgressCallback.
type Progress struct {
	Phase Phase

	// CurrentPage is the page currently being processed (0-based). Not
	// meaningful for NVRAM operations.
	CurrentPage int

	// TotalPages is the number of pages (or bytes, for NVRAM) the current
	// operation covers.
	TotalPages int

	// Percentage is the completion percentage (0.0 to 100.0).
	Percentage float64
}

// ProgressCallback is called as the pipeline makes progress. Implementations
// should return quickly.
type ProgressCallback func(Progress)

// Logger is an optional logging interface, matching the shape of
// github.com/sirupsen/logrus's leveled methods so a *logrus.Logger or
// *logrus.Entry can be passed directly.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Error(args ...interface{})
}
