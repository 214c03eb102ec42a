package main

import (
	"github.com/sirupsen/logrus"

	"github.com/obdevboot/jboot/host/pipeline"
)

// progressLogger renders pipeline.Progress as a debug-level log line. The
// CLI has no interactive progress bar dependency in the pack, so it reuses
// the same logrus sink the rest of the command uses.
func progressLogger(log *logrus.Logger) pipeline.ProgressCallback {
	return func(p pipeline.Progress) {
		log.WithFields(logrus.Fields{
			"phase":   p.Phase,
			"page":    p.CurrentPage,
			"total":   p.TotalPages,
			"percent": p.Percentage,
		}).Debug("progress")
	}
}
