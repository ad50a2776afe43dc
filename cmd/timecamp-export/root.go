package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timecamp-export/internal/app"
	"timecamp-export/internal/config"
	"timecamp-export/internal/domain"
	"timecamp-export/internal/timeparse"
	"timecamp-export/internal/usecase"
)

var (
	flagToken   string
	flagVerbose bool

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "timecamp-export",
	Short: "Fetch TimeCamp time entries and export them",
	Long: `timecamp-export reads time entries from the TimeCamp API for a date range
and prints them as a listing, writes a payroll CSV, or upserts them into
MySQL/SQLite export tables.

Configuration is read from the environment and an optional .env file:
TIMECAMP_API_TOKEN, TIMECAMP_BASE_URL, TIMECAMP_STRICT_FILTERS, MYSQL_DSN,
SQLITE_PATH, HTTP_ADDR, LOG_LEVEL.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "TimeCamp API token (overrides TIMECAMP_API_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(csvCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if token := strings.TrimSpace(flagToken); token != "" {
		cfg.TimeCamp.APIToken = token
	}
	level := cfg.LogLevel
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger = newLogger(level)
	return nil
}

func newLogger(level slog.Level) *slog.Logger {
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}

// rangeFlags are the fetch window flags shared by entries, csv and sync.
type rangeFlags struct {
	from, to         string
	taskIDs, userIDs string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start date, YYYY-MM-DD or RFC3339 (default: first day of --to's month)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date, YYYY-MM-DD or RFC3339 (default: today)")
	cmd.Flags().StringVar(&f.taskIDs, "task-ids", "", "Comma separated task ids")
	cmd.Flags().StringVar(&f.userIDs, "user-ids", "", "Comma separated user ids")
}

func (f *rangeFlags) request() (usecase.Request, error) {
	from, to, err := timeparse.Range(f.from, f.to, time.Now())
	if err != nil {
		return usecase.Request{}, err
	}
	return usecase.Request{
		From: from,
		To:   to,
		Filter: domain.Filter{
			TaskIDs: domain.SplitIDs(f.taskIDs),
			UserIDs: domain.SplitIDs(f.userIDs),
		},
	}, nil
}

func newApp() *app.App { return app.New(logger, cfg) }
