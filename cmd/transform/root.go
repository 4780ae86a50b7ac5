package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/campusreuse/restore/internal/pkg/csvformat"
)

// simpleHeader is the output layout; it round-trips through the importer's
// "simple" format detection.
var simpleHeader = []string{"Name", "Email", "Housing", "Grad Year"}

func newRootCommand() *cobra.Command {
	var outputFlag string
	var previewFlag bool

	cmd := &cobra.Command{
		Use:   "transform <input.csv>",
		Short: "Normalize a donor spreadsheet export into the simple donor layout",
		Long: "Reads a CSV exported from any of the known donor tracking sheets,\n" +
			"detects its layout from the header row, and writes the rows back out\n" +
			"in the canonical Name/Email/Housing/Grad Year layout. Emails are\n" +
			"lowercased and rows sharing an email are collapsed, later rows winning.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readCSVFile(args[0])
			if err != nil {
				return err
			}

			ext := csvformat.Extract(rows)

			if previewFlag {
				fmt.Fprintln(cmd.OutOrStdout(), renderRecordsTable(ext.Records))
				fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(ext))
				return nil
			}

			out := cmd.OutOrStdout()
			if outputFlag != "" {
				f, err := os.Create(outputFlag)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := writeSimpleCSV(out, ext.Records); err != nil {
				return fmt.Errorf("write normalized CSV: %w", err)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), renderSummaryTable(ext))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the normalized CSV to this path instead of stdout")
	cmd.Flags().BoolVar(&previewFlag, "preview", false, "Print the normalized records as a table instead of writing CSV")

	return cmd
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Historical sheets have ragged rows; length checks happen per column
	// during extraction.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	return rows, nil
}

func writeSimpleCSV(w io.Writer, records []csvformat.DonorRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(simpleHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Name, rec.Email, rec.Housing, rec.GradYear}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
