package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncRange rangeFlags

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upsert time entries into the configured MySQL/SQLite sinks",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	syncRange.register(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	req, err := syncRange.request()
	if err != nil {
		return err
	}
	a := newApp()
	defer a.Close()
	if err := a.OpenSinks(cmd.Context()); err != nil {
		return err
	}
	n, err := a.RunOnce(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "synced %d entries\n", n)
	return nil
}
