package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/infra-ingest/internal/config"
	"github.com/couchcryptid/infra-ingest/internal/domain"
)

const minFetchBytes = 10 << 20

// Reader consumes raw Infra files from a Kafka topic. Each message carries
// one file: the key is the file name and the value its undecoded bytes.
// It implements pipeline.BatchExtractor.
type Reader struct {
	reader        *kafkago.Reader
	logger        *slog.Logger
	flushInterval time.Duration
}

// NewReader creates a consumer-group reader for the configured source topic.
// Offsets are committed explicitly through RawFile.Commit.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	maxBytes := max(int(cfg.MaxFileBytes), minFetchBytes)
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaSourceTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: maxBytes,
	})
	return &Reader{reader: r, logger: logger, flushInterval: cfg.BatchFlushInterval}
}

// ExtractBatch blocks until one message is available, then keeps collecting
// until batchSize messages are held or the flush interval elapses.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawFile, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}
	batch := make([]domain.RawFile, 0, batchSize)
	batch = append(batch, r.mapMessageToRawFile(first))

	if batchSize <= 1 || r.flushInterval <= 0 {
		return batch, nil
	}

	fillCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()
	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(fillCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			if ctx.Err() != nil {
				return batch, nil
			}
			return batch, err
		}
		batch = append(batch, r.mapMessageToRawFile(msg))
	}

	r.logger.Debug("extracted batch", "size", len(batch), "topic", first.Topic)
	return batch, nil
}

func (r *Reader) mapMessageToRawFile(msg kafkago.Message) domain.RawFile {
	raw := mapMessageToRawFile(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawFile copies a Kafka message into a RawFile without a commit hook.
func mapMessageToRawFile(msg kafkago.Message) domain.RawFile {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawFile{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
