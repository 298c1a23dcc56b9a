package alignment

import (
	"context"
	"log/slog"

	"lyricsync/internal/logging"
	"lyricsync/internal/metrics"
)

// Aligner runs AggregateDetailed and reports what it dropped.
type Aligner struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewAligner builds an Aligner. Both arguments may be nil.
func NewAligner(logger *slog.Logger, m *metrics.Metrics) *Aligner {
	return &Aligner{
		logger:  logging.NewComponentLogger(logger, "alignment"),
		metrics: m,
	}
}

// Align aggregates words against lyrics, logging skipped lines at debug and
// a summary at info.
func (a *Aligner) Align(ctx context.Context, words []AlignedWord, lyrics string) Result {
	logger := logging.WithContext(ctx, a.logger)
	result := AggregateDetailed(words, lyrics)

	for _, skipped := range result.Skipped {
		logger.Debug("lyric line skipped",
			logging.Int("line", skipped.Index),
			logging.String("reason", skipped.Reason),
			logging.Int("cursor", skipped.Cursor),
		)
	}
	if len(result.Rejected) > 0 {
		logging.WarnWithContext(logger, "alignment records rejected", "alignment_records_rejected",
			logging.Int("rejected", len(result.Rejected)),
			logging.String(logging.FieldErrorHint, "check the aligner output for missing or out-of-order times"),
			logging.String(logging.FieldImpact, "rejected records were not matched to lyrics"),
		)
	}

	a.metrics.AddLinesMatched(len(result.Cues))
	a.metrics.AddLinesSkipped(len(result.Skipped))
	a.metrics.AddRecordsRejected(len(result.Rejected))

	logger.Info("lyrics aligned",
		logging.Int("words", len(words)),
		logging.Int("cues", len(result.Cues)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Int("rejected", len(result.Rejected)),
	)
	return result
}
