package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"timecamp-export/internal/domain"
	"timecamp-export/internal/ports"
)

// Request is one fetch window plus optional task/user narrowing.
type Request struct {
	From   time.Time
	To     time.Time
	Filter domain.Filter
}

// ExportUseCase fetches entries for rendering.
type ExportUseCase struct {
	Log      *slog.Logger
	TimeCamp ports.TimeCampClient
}

// Fetch returns the entries for req with duplicate IDs removed, first
// occurrence wins.
func (uc *ExportUseCase) Fetch(ctx context.Context, req Request) ([]domain.TimeEntry, error) {
	if uc.TimeCamp == nil {
		return nil, errors.New("usecase not initialized: missing timecamp client")
	}
	uc.Log.Info("fetching time entries", slog.Time("from", req.From), slog.Time("to", req.To))

	entries, err := uc.TimeCamp.ListTimeEntries(ctx, req.From, req.To, req.Filter)
	if err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}
	unique := domain.Dedupe(entries, domain.SameEntry)
	uc.Log.Info("fetched time entries",
		slog.Int("count", len(unique)),
		slog.Int("duplicates", len(entries)-len(unique)),
	)
	return unique, nil
}
