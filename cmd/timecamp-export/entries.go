package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"timecamp-export/internal/domain"
	"timecamp-export/internal/report"
)

var (
	entriesRange    rangeFlags
	entriesBillable bool
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Print one line per time entry",
	Args:  cobra.NoArgs,
	RunE:  runEntries,
}

func init() {
	entriesRange.register(entriesCmd)
	entriesCmd.Flags().BoolVar(&entriesBillable, "billable", false, "Only billable entries")
}

func runEntries(cmd *cobra.Command, args []string) error {
	req, err := entriesRange.request()
	if err != nil {
		return err
	}
	entries, err := newApp().Entries(cmd.Context(), req)
	if err != nil {
		return err
	}
	if entriesBillable {
		entries = domain.OnlyBillable(entries)
	}
	colour := isatty.IsTerminal(os.Stdout.Fd())
	printListing(cmd.OutOrStdout(), entries, colour)
	return nil
}

// printListing writes the listing, tinting each line with its task colour
// when colour is set.
func printListing(w io.Writer, entries []domain.TimeEntry, colour bool) {
	lines := report.Listing(entries)
	if len(entries) == 0 || !colour {
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
		return
	}
	for i, e := range entries {
		line := lines[i]
		if e.Color.Valid {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color.String())).Render(line)
		}
		fmt.Fprintln(w, line)
	}
}
