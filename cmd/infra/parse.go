package main

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/infra-ingest/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one file and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		t, err := newTransformer()
		if err != nil {
			return err
		}
		src, err := t.ReadFile(args[0])
		if err != nil {
			return err
		}
		f, err := t.ParseSource(src)
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), format, f)
	},
}

func init() {
	parseCmd.Flags().StringP("format", "f", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(parseCmd)
}
