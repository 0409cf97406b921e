//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/infra-ingest/internal/adapter/kafka"
	"github.com/couchcryptid/infra-ingest/internal/config"
	"github.com/couchcryptid/infra-ingest/internal/domain"
	"github.com/couchcryptid/infra-ingest/internal/observability"
	"github.com/couchcryptid/infra-ingest/internal/pipeline"
)

const (
	testSourceTopic = "test-raw-files"
	testSinkTopic   = "test-investigations"
)

// sinkMessage is one event read back from the sink topic. The value is kept
// as a generic document since fields serialize to a value or a fallback.
type sinkMessage struct {
	Key     string
	Headers map[string]string
	Doc     map[string]any
}

func readSink(ctx context.Context, t *testing.T, consumer *kafkago.Reader) sinkMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var doc map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &doc), "unmarshal sink message")
	return sinkMessage{Key: string(msg.Key), Headers: headers, Doc: doc}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 2 * time.Second,
		MaxFileBytes:       1 << 20,
	}
}

func sinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func newTransformer(t *testing.T) *pipeline.FileTransformer {
	t.Helper()
	tfm, err := pipeline.NewTransformer(pipeline.TransformOptions{MaxBytes: 1 << 20},
		discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	return tfm
}

// TestKafkaReaderWriter round-trips one file through the reader, the
// transformer and the writer.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	payload := siteFile(t, "BH1.tek")
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:     []byte("site/BH1.tek"),
		Value:   payload,
		Headers: []kafkago.Header{{Key: pipeline.EncodingHeader, Value: []byte("utf-8")}},
	}))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	batch, err := reader.ExtractBatch(ctx, 1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, "site/BH1.tek", raw.Name())
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, "utf-8", raw.Headers[pipeline.EncodingHeader])
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	events, err := newTransformer(t).Transform(ctx, raw)
	require.NoError(t, err)
	require.Len(t, events, 2)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, events))

	consumer := sinkConsumer(t, broker)
	for _, want := range events {
		got := readSink(ctx, t, consumer)
		assert.Equal(t, want.ID, got.Key)
		assert.Equal(t, want.Method, got.Headers["method"])
		assert.Equal(t, "site/BH1.tek", got.Headers["source_file"])
		_, err := time.Parse(time.RFC3339, got.Headers["processed_at"])
		assert.NoError(t, err, "processed_at should be valid RFC3339")
		assert.Equal(t, want.ID, got.Doc["id"])
	}
}

// TestPipelineEndToEnd runs the full pipeline against every fixture,
// including one with a structural error that lenient mode skips.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })

	var msgs []kafkago.Message
	for _, name := range []string{"BH1.tek", "BH2.tek", "broken.tek"} {
		msgs = append(msgs, kafkago.Message{Key: []byte("site/" + name), Value: siteFile(t, name)})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(reader, newTransformer(t), writer, discardLogger(), observability.NewMetricsForTesting(), 10)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	methods := map[string]int{}
	var diagnosed int
	for range 4 {
		got := readSink(ctx, t, consumer)
		methods[got.Headers["method"]]++
		if got.Headers["source_file"] == "site/broken.tek" {
			diagnosed++
			assert.Len(t, got.Doc["diagnostics"], 1)
		}
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	assert.Equal(t, map[string]int{"PA": 2, "VP": 1, "NO": 1}, methods)
	assert.Equal(t, 1, diagnosed)
	assert.NoError(t, p.CheckReadiness(ctx))
}

// TestPipelineStrictModeSkipsBrokenFile verifies that a file rejected in
// strict mode is committed and skipped while later files still flow.
func TestPipelineStrictModeSkipsBrokenFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-strict")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("site/broken.tek"), Value: siteFile(t, "broken.tek")},
		kafkago.Message{Key: []byte("site/BH2.tek"), Value: siteFile(t, "BH2.tek")},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	tfm, err := pipeline.NewTransformer(pipeline.TransformOptions{Mode: domain.ModeStrict, MaxBytes: 1 << 20},
		discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	p := pipeline.New(reader, tfm, writer, discardLogger(), observability.NewMetricsForTesting(), 10)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	got := readSink(ctx, t, consumer)
	assert.Equal(t, "NO", got.Headers["method"])
	assert.Equal(t, "site/BH2.tek", got.Headers["source_file"])

	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no further message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
