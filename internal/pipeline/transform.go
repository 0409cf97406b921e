package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/infra-ingest/internal/adapter/textfile"
	"github.com/couchcryptid/infra-ingest/internal/domain"
	"github.com/couchcryptid/infra-ingest/internal/observability"
)

// EncodingHeader names the message header that overrides the default charset.
const EncodingHeader = "encoding"

// FileTransformer decodes and parses raw Infra files.
// It implements Transformer.
type FileTransformer struct {
	decoder  *textfile.Decoder
	mode     domain.Mode
	maxBytes int64
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// TransformOptions configures a FileTransformer.
type TransformOptions struct {
	// Encoding is a charset label or textfile.Auto.
	Encoding string
	Mode     domain.Mode
	// MaxBytes rejects larger files when positive.
	MaxBytes int64
}

// NewTransformer creates a FileTransformer. It fails when the default
// encoding is not a known charset label.
func NewTransformer(opts TransformOptions, logger *slog.Logger, metrics *observability.Metrics) (*FileTransformer, error) {
	dec, err := textfile.NewDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return &FileTransformer{
		decoder:  dec,
		mode:     opts.Mode,
		maxBytes: opts.MaxBytes,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Transform parses raw and returns one event per investigation, in file order.
func (t *FileTransformer) Transform(_ context.Context, raw domain.RawFile) ([]domain.InvestigationEvent, error) {
	src, err := t.Decode(raw.Name(), raw.Value, raw.Headers[EncodingHeader])
	if err != nil {
		return nil, err
	}
	f, err := t.ParseSource(src)
	if err != nil {
		return nil, err
	}
	return domain.NewInvestigationEvents(f), nil
}

// Decode turns data into a parser input. A non-empty hint replaces the
// default encoding for this file only.
func (t *FileTransformer) Decode(name string, data []byte, hint string) (domain.Source, error) {
	if t.maxBytes > 0 && int64(len(data)) > t.maxBytes {
		return domain.Source{}, fmt.Errorf("read %s: %d bytes exceeds limit of %d", name, len(data), t.maxBytes)
	}
	dec := t.decoder
	if hint != "" {
		var err error
		if dec, err = textfile.NewDecoder(hint); err != nil {
			return domain.Source{}, fmt.Errorf("read %s: %w", name, err)
		}
	}
	t.metrics.FileBytes.Observe(float64(len(data)))
	return dec.Source(name, data)
}

// ReadFile reads the file at path and decodes it with the default
// encoding, recording its size like Transform does.
func (t *FileTransformer) ReadFile(path string) (domain.Source, error) {
	data, err := textfile.ReadBytes(path, t.maxBytes)
	if err != nil {
		return domain.Source{}, err
	}
	return t.Decode(path, data, "")
}

// ParseSource parses src with the configured mode and records per-file metrics.
func (t *FileTransformer) ParseSource(src domain.Source) (*domain.InfraFile, error) {
	return t.parse(src, t.mode)
}

// ParseBytes decodes and parses data with an explicit mode. It serves
// one-off requests that may override the configured mode.
func (t *FileTransformer) ParseBytes(name string, data []byte, hint string, mode domain.Mode) (*domain.InfraFile, error) {
	src, err := t.Decode(name, data, hint)
	if err != nil {
		return nil, err
	}
	return t.parse(src, mode)
}

func (t *FileTransformer) parse(src domain.Source, mode domain.Mode) (*domain.InfraFile, error) {
	f, err := domain.Parse(src,
		domain.WithMode(mode),
		domain.WithLogger(t.logger.With("file", src.Path)),
	)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Path, err)
	}

	for _, d := range f.Diagnostics {
		t.metrics.Diagnostics.WithLabelValues(diagnosticLabel(d.Code)).Inc()
	}
	for m, n := range f.CountByMethod() {
		t.metrics.Investigations.WithLabelValues(m.String()).Add(float64(n))
	}
	t.logger.Debug("parsed file",
		"file", src.Path,
		"encoding", src.Encoding,
		"mode", mode,
		"investigations", len(f.Investigations),
		"diagnostics", len(f.Diagnostics),
	)
	return f, nil
}

// Mode returns the configured parse mode.
func (t *FileTransformer) Mode() domain.Mode { return t.mode }

// diagnosticLabel keeps the metric label set bounded: observation rows are
// keyed by their leading number, so they share one label.
func diagnosticLabel(code string) string {
	switch code {
	case "RK", "LB", "EOF":
		return code
	default:
		return "row"
	}
}
