package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	msql "timecamp-export/internal/adapter/mysql"
	"timecamp-export/internal/adapter/sqlite"
	tc "timecamp-export/internal/adapter/timecamp"
	"timecamp-export/internal/config"
	"timecamp-export/internal/domain"
	"timecamp-export/internal/ports"
	"timecamp-export/internal/usecase"
)

// ErrSyncRunning is returned by RunOnce while another sync is in progress.
var ErrSyncRunning = errors.New("sync already running")

// ErrNoSinks is returned by RunOnce when no export sink is configured.
var ErrNoSinks = errors.New("no export sink configured (set MYSQL_DSN or SQLITE_PATH)")

// App wires adapters and use cases.
type App struct {
	log      *slog.Logger
	cfg      config.Config
	timecamp ports.TimeCampClient
	export   *usecase.ExportUseCase

	syncMu  sync.Mutex
	sinks   []ports.Sink
	closers []io.Closer
}

func New(log *slog.Logger, cfg config.Config) *App {
	client := tc.NewClient(cfg.TimeCamp.BaseURL, cfg.TimeCamp.APIToken, log,
		tc.WithStrictFilters(cfg.TimeCamp.StrictFilters))
	a := Assemble(log, client)
	a.cfg = cfg
	return a
}

// Assemble builds an App around an existing client and sinks.
func Assemble(log *slog.Logger, client ports.TimeCampClient, sinks ...ports.Sink) *App {
	return &App{
		log:      log,
		timecamp: client,
		export:   &usecase.ExportUseCase{Log: log, TimeCamp: client},
		sinks:    sinks,
	}
}

// OpenSinks connects the sinks named in the configuration and runs their
// migrations. It is a no-op once sinks are present.
func (a *App) OpenSinks(ctx context.Context) error {
	if len(a.sinks) > 0 {
		return nil
	}
	if a.cfg.MySQL.DSN != "" {
		sink, err := msql.NewClient(ctx, a.cfg.MySQL.DSN, a.log)
		if err != nil {
			return fmt.Errorf("open mysql sink: %w", err)
		}
		a.sinks = append(a.sinks, sink)
		a.closers = append(a.closers, sink)
	}
	if a.cfg.SQLite.Path != "" {
		sink, err := sqlite.NewClient(ctx, a.cfg.SQLite.Path, a.log)
		if err != nil {
			return fmt.Errorf("open sqlite sink: %w", err)
		}
		a.sinks = append(a.sinks, sink)
		a.closers = append(a.closers, sink)
	}
	return nil
}

// Entries fetches the deduplicated entries for req.
func (a *App) Entries(ctx context.Context, req usecase.Request) ([]domain.TimeEntry, error) {
	return a.export.Fetch(ctx, req)
}

// RunOnce fetches req and writes it to every sink. Only one sync runs at a
// time; a concurrent call fails with ErrSyncRunning.
func (a *App) RunOnce(ctx context.Context, req usecase.Request) (int, error) {
	if !a.syncMu.TryLock() {
		return 0, ErrSyncRunning
	}
	defer a.syncMu.Unlock()
	if len(a.sinks) == 0 {
		return 0, ErrNoSinks
	}
	uc := &usecase.SyncUseCase{Log: a.log, TimeCamp: a.timecamp, Sinks: a.sinks}
	return uc.Run(ctx, req)
}

// Close releases sinks opened by OpenSinks.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
