package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	kafkaadapter "github.com/couchcryptid/infra-ingest/internal/adapter/kafka"
	"github.com/couchcryptid/infra-ingest/internal/adapter/sqlite"
	"github.com/couchcryptid/infra-ingest/internal/pipeline"
)

var loadCmd = &cobra.Command{
	Use:   "load <dir>",
	Short: "Parse a directory and load its investigations",
	Long:  "Parses every .tek file under a directory and writes one record per investigation to SQLite, the Kafka sink topic, or both.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, _ := cmd.Flags().GetString("sqlite")
		if dbPath == "" {
			dbPath = cfg.SQLitePath
		}
		toKafka, _ := cmd.Flags().GetBool("kafka")
		if dbPath == "" && !toKafka {
			return errors.New("nothing to load into: pass --sqlite or --kafka")
		}

		var loaders pipeline.FanOut
		if dbPath != "" {
			st, err := sqlite.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return err
			}
			loaders = append(loaders, st)
		}
		if toKafka {
			w := kafkaadapter.NewWriter(cfg, logger)
			defer w.Close() //nolint:errcheck
			loaders = append(loaders, w)
		}

		c, err := newCollector()
		if err != nil {
			return err
		}
		coll, err := c.CollectDir(ctx, args[0])
		if err != nil {
			return err
		}

		events := coll.Events()
		if err := loaders.LoadBatch(ctx, events); err != nil {
			return fmt.Errorf("load: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d investigations from %d files (%d failed)\n",
			len(events), len(coll.Parsed()), len(coll.Failed()))
		return nil
	},
}

func init() {
	loadCmd.Flags().String("sqlite", "", "SQLite database path (default from SQLITE_PATH)")
	loadCmd.Flags().Bool("kafka", false, "publish to the Kafka sink topic")
	rootCmd.AddCommand(loadCmd)
}
