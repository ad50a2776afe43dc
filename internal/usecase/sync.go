package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"timecamp-export/internal/ports"
)

// SyncUseCase coordinates fetching from TimeCamp and writing to every Sink.
type SyncUseCase struct {
	Log      *slog.Logger
	TimeCamp ports.TimeCampClient
	Sinks    []ports.Sink
}

func (uc *SyncUseCase) Run(ctx context.Context, req Request) (int, error) {
	if uc.TimeCamp == nil || len(uc.Sinks) == 0 {
		return 0, errors.New("usecase not initialized: missing dependencies")
	}
	fetch := ExportUseCase{Log: uc.Log, TimeCamp: uc.TimeCamp}
	entries, err := fetch.Fetch(ctx, req)
	if err != nil {
		return 0, err
	}

	if len(entries) == 0 {
		uc.Log.Info("no entries to sync")
		return 0, nil
	}

	for i, sink := range uc.Sinks {
		if err := sink.SyncEntries(ctx, entries); err != nil {
			return 0, fmt.Errorf("sink %d: %w", i, err)
		}
	}
	uc.Log.Info("sync completed", slog.Int("count", len(entries)), slog.Int("sinks", len(uc.Sinks)))
	return len(entries), nil
}
