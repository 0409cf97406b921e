package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/infra-ingest/internal/domain"
	"github.com/couchcryptid/infra-ingest/internal/pipeline"
	"github.com/couchcryptid/infra-ingest/internal/report"
)

// errInvalidFiles makes validate exit non-zero after printing its table.
var errInvalidFiles = errors.New("some files failed to parse")

// -- summary --

var summaryCmd = &cobra.Command{
	Use:   "summary <dir>",
	Short: "Count investigations per method under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCollector()
		if err != nil {
			return err
		}
		coll, err := c.CollectDir(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := report.Summary(out, coll.CountByMethod()); err != nil {
			return err
		}
		if failed := coll.Failed(); len(failed) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%d of %d files could not be parsed\n", len(failed), len(coll.Files))
		}
		return nil
	},
}

// -- validate --

var validateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check every file under a directory parses",
	Long:  "Parses every .tek file under a directory and lists problems. Runs in strict mode unless --mode is given.",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("mode") {
			cfg.ParseMode = domain.ModeStrict
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCollector()
		if err != nil {
			return err
		}
		coll, err := c.CollectDir(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		formatValidation(cmd.OutOrStdout(), coll)
		if len(coll.Failed()) > 0 {
			return errInvalidFiles
		}
		return nil
	},
}

// formatValidation writes one row per file: its status, investigation
// count, lenient diagnostics and the failure reason if any.
func formatValidation(out io.Writer, coll *pipeline.Collection) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STATUS\tFILE\tINVESTIGATIONS\tDIAGNOSTICS\tERROR")
	_, _ = fmt.Fprintln(w, "------\t----\t--------------\t-----------\t-----")
	for _, r := range coll.Files {
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "FAIL\t%s\t-\t-\t%v\n", r.Path, r.Err)
			continue
		}
		_, _ = fmt.Fprintf(w, "OK\t%s\t%d\t%d\t\n", r.Path, len(r.File.Investigations), len(r.File.Diagnostics))
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "\n%d files, %d failed\n", len(coll.Files), len(coll.Failed()))
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(validateCmd)
}
