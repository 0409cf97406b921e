// Command infra parses Infra ground investigation files from the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/infra-ingest/internal/config"
	"github.com/couchcryptid/infra-ingest/internal/domain"
	"github.com/couchcryptid/infra-ingest/internal/observability"
	"github.com/couchcryptid/infra-ingest/internal/pipeline"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	metrics = observability.NewMetricsWith(prometheus.NewRegistry())
)

var rootCmd = &cobra.Command{
	Use:           "infra",
	Short:         "Parse Infra format ground investigation files",
	Long:          "Reads Finnish Infra (.tek) ground investigation files, reports their contents and loads them into SQLite or Kafka.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if enc, _ := cmd.Flags().GetString("encoding"); enc != "" {
			cfg.SourceEncoding = enc
		}
		if m, _ := cmd.Flags().GetString("mode"); m != "" {
			mode, err := domain.ParseMode(m)
			if err != nil {
				return err
			}
			cfg.ParseMode = mode
		}

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.LogLevel
		}
		logger = observability.NewWriterLogger(os.Stderr, level, "text")
		return nil
	},
}

// newTransformer builds a transformer from the resolved config. The CLI
// keeps its metrics on a private registry.
func newTransformer() (*pipeline.FileTransformer, error) {
	return pipeline.NewTransformer(pipeline.TransformOptions{
		Encoding: cfg.SourceEncoding,
		Mode:     cfg.ParseMode,
		MaxBytes: cfg.MaxFileBytes,
	}, logger, metrics)
}

func newCollector() (*pipeline.Collector, error) {
	t, err := newTransformer()
	if err != nil {
		return nil, err
	}
	return pipeline.NewCollector(t, cfg.IngestWorkers, logger, metrics, ".tek"), nil
}

func init() {
	rootCmd.PersistentFlags().String("encoding", "", "source charset label or auto (default from SOURCE_ENCODING)")
	rootCmd.PersistentFlags().String("mode", "", "parse mode: lenient or strict (default from PARSE_MODE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (default from LOG_LEVEL)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
