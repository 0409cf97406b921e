package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/infra-ingest/internal/adapter/textfile"
	"github.com/couchcryptid/infra-ingest/internal/domain"
	"github.com/couchcryptid/infra-ingest/internal/observability"
)

// FileResult is the outcome of parsing one file. Exactly one of File and Err is set.
type FileResult struct {
	Path string
	File *domain.InfraFile
	Err  error
}

// Collection holds the per-file results of a directory, in walk order.
type Collection struct {
	Files []FileResult
}

// Parsed returns the successfully parsed files.
func (c *Collection) Parsed() []*domain.InfraFile {
	out := make([]*domain.InfraFile, 0, len(c.Files))
	for _, r := range c.Files {
		if r.Err == nil {
			out = append(out, r.File)
		}
	}
	return out
}

// Failed returns the files that could not be read or parsed.
func (c *Collection) Failed() []FileResult {
	var out []FileResult
	for _, r := range c.Files {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Investigations merges the investigations of every parsed file. Each one
// already carries its file's Source and Spatial.
func (c *Collection) Investigations() []domain.Investigation {
	var out []domain.Investigation
	for _, f := range c.Parsed() {
		out = append(out, f.Investigations...)
	}
	return out
}

// CountByMethod tallies investigations per method across all parsed files.
func (c *Collection) CountByMethod() map[domain.MethodToken]int {
	return domain.CountByMethod(c.Investigations())
}

// Events builds the investigation events of every parsed file.
func (c *Collection) Events() []domain.InvestigationEvent {
	var out []domain.InvestigationEvent
	for _, f := range c.Parsed() {
		out = append(out, domain.NewInvestigationEvents(f)...)
	}
	return out
}

// Collector parses every file under a directory with bounded concurrency.
type Collector struct {
	transformer *FileTransformer
	workers     int
	exts        []string
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewCollector creates a Collector running at most workers parses at once.
// When exts is non-empty only files with those extensions are read.
func NewCollector(t *FileTransformer, workers int, logger *slog.Logger, metrics *observability.Metrics, exts ...string) *Collector {
	return &Collector{
		transformer: t,
		workers:     max(workers, 1),
		exts:        exts,
		logger:      logger,
		metrics:     metrics,
	}
}

// CollectDir parses the files under dir. A file that fails does not stop
// the others; its error is kept in the result. The returned error is only
// set when the directory cannot be walked or ctx is cancelled.
func (c *Collector) CollectDir(ctx context.Context, dir string) (*Collection, error) {
	paths, err := textfile.Walk(dir, c.exts...)
	if err != nil {
		return nil, err
	}
	c.logger.Info("collecting directory", "dir", dir, "files", len(paths), "workers", c.workers)

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.collectFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Collection{Files: results}, nil
}

func (c *Collector) collectFile(path string) FileResult {
	c.metrics.FilesConsumed.Inc()
	src, err := c.transformer.ReadFile(path)
	if err != nil {
		c.metrics.ParseErrors.Inc()
		c.logger.Warn("read failed, skipping file", "file", path, "error", err)
		return FileResult{Path: path, Err: err}
	}
	f, err := c.transformer.ParseSource(src)
	if err != nil {
		c.metrics.ParseErrors.Inc()
		c.logger.Warn("parse failed, skipping file", "file", path, "error", err)
		return FileResult{Path: path, Err: err}
	}
	return FileResult{Path: path, File: f}
}
