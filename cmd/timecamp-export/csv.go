package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"timecamp-export/internal/report"
)

var (
	csvRange    rangeFlags
	csvBillable bool
	csvLayout   string
	csvOutput   string
)

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write time entries as a payroll CSV",
	Args:  cobra.NoArgs,
	RunE:  runCSV,
}

func init() {
	csvRange.register(csvCmd)
	csvCmd.Flags().BoolVar(&csvBillable, "billable", false, "Only billable entries")
	csvCmd.Flags().StringVar(&csvLayout, "layout", "legacy", "Column layout: legacy, complete")
	csvCmd.Flags().StringVarP(&csvOutput, "output", "o", "", "Output file (default: stdout)")
}

func runCSV(cmd *cobra.Command, args []string) error {
	layout, err := report.LayoutByName(csvLayout)
	if err != nil {
		return err
	}
	req, err := csvRange.request()
	if err != nil {
		return err
	}
	entries, err := newApp().Entries(cmd.Context(), req)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if csvOutput != "" {
		f, err := os.Create(csvOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := report.WriteCSV(w, layout, entries, csvBillable); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if csvOutput != "" {
		logger.Info("csv written", "path", csvOutput, "entries", len(entries))
	}
	return nil
}
