package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/infra-ingest/internal/domain"
	"github.com/couchcryptid/infra-ingest/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor reads up to batchSize raw files from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawFile, error)
}

// Transformer parses a raw file into one event per investigation.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawFile) ([]domain.InvestigationEvent, error)
}

// BatchLoader writes investigation events to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.InvestigationEvent) error
}

// Pipeline orchestrates the extract-transform-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   max(batchSize, 1),
	}
}

// CheckReadiness returns nil once a batch has been processed end to end.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any files yet")
	}
	return nil
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff) {
			return nil
		}
	}
}

// processBatch runs one extract-transform-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff)
	}
	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.FilesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = initialBackoff

	done, ok := p.transformAndLoad(ctx, rawBatch, backoff)
	if !ok {
		return false
	}
	if done > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

// transformAndLoad parses every file in the batch, loads the resulting
// events and commits offsets. Files that fail to parse are logged, counted
// and committed so they are not redelivered. Returns the number of files
// loaded and false if the pipeline should stop.
func (p *Pipeline) transformAndLoad(ctx context.Context, rawBatch []domain.RawFile, backoff *time.Duration) (int, bool) {
	var outBatch []domain.InvestigationEvent
	parsed := make([]domain.RawFile, 0, len(rawBatch))

	for _, raw := range rawBatch {
		events, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("parse failed, skipping file",
				"error", err,
				"file", raw.Name(),
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.ParseErrors.Inc()
			p.commitOffset(ctx, raw)
			continue
		}
		outBatch = append(outBatch, events...)
		parsed = append(parsed, raw)
	}

	if len(parsed) == 0 {
		return 0, true
	}

	if err := p.loader.LoadBatch(ctx, outBatch); err != nil {
		p.logger.Error("load batch failed", "error", err, "events", len(outBatch), "files", len(parsed))
		return 0, p.backoffOrStop(ctx, backoff)
	}
	p.metrics.EventsProduced.Add(float64(len(outBatch)))

	for _, raw := range parsed {
		p.commitOffset(ctx, raw)
	}
	return len(parsed), true
}

// backoffOrStop sleeps with the current backoff and advances it.
// Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !retry.SleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}

func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawFile) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
