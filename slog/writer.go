package slog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	"github.com/cespare/xxhash/v2"
)

// Ensure LoggingEnvelopeWriter implements gmp.EnvelopeWriter.
var _ gmp.EnvelopeWriter = (*LoggingEnvelopeWriter)(nil)

// LoggingEnvelopeWriter wraps an EnvelopeWriter with logging.
// Each log line carries a digest of the records; an unchanged page yields
// the same digest.
type LoggingEnvelopeWriter struct {
	next   gmp.EnvelopeWriter
	path   string
	logger *slog.Logger
}

// NewLoggingEnvelopeWriter creates a new LoggingEnvelopeWriter.
// path is only used for logging.
func NewLoggingEnvelopeWriter(next gmp.EnvelopeWriter, path string, logger *slog.Logger) *LoggingEnvelopeWriter {
	return &LoggingEnvelopeWriter{next: next, path: path, logger: logger}
}

// WriteEnvelope delegates to the wrapped writer and logs the operation.
func (w *LoggingEnvelopeWriter) WriteEnvelope(ctx context.Context, env *gmp.Envelope) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write envelope",
			"path", w.path,
			"count", env.Count(),
			"failed", env.Failed(),
			"digest", RecordsDigest(env.Records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteEnvelope(ctx, env)
}

// RecordsDigest returns a hex xxhash of the JSON encoding of records.
func RecordsDigest(records []gmp.Record) string {
	if records == nil {
		records = []gmp.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
