// Package sinks provides progress.Sink implementations.
package sinks

import (
	"go.uber.org/zap"

	"github.com/martenlienen/icml-nips-iclr-dataset/internal/progress"
)

// LogSink writes progress snapshots as structured log lines. It suppresses
// consecutive identical snapshots so quiet stretches of a run do not spam
// the log.
type LogSink struct {
	logger *zap.Logger
	last   progress.Snapshot
	seen   bool
}

// NewLogSink wires a zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Observe logs the snapshot unless it matches the previous one.
func (s *LogSink) Observe(snap progress.Snapshot) {
	if s.seen && snap == s.last {
		return
	}
	s.last = snap
	s.seen = true
	s.logger.Info("scrape progress",
		zap.Uint64("completed", snap.Completed),
		zap.Uint64("total", snap.Total),
	)
}
