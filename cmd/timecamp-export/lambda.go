package main

import (
	"context"
	"log/slog"
	"time"

	"timecamp-export/internal/app"
	"timecamp-export/internal/config"
	"timecamp-export/internal/domain"
	"timecamp-export/internal/report"
	"timecamp-export/internal/timeparse"
	"timecamp-export/internal/usecase"
)

// Event is the Lambda invocation payload.
type Event struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Billable bool     `json:"billable"`
	Layout   string   `json:"layout"`
	TaskIDs  []string `json:"task_ids"`
	UserIDs  []string `json:"user_ids"`
}

// handleLambda returns the CSV document for the requested range.
func handleLambda(ctx context.Context, ev Event) (string, error) {
	c, err := config.Load()
	if err != nil {
		return "", err
	}
	log := newLogger(c.LogLevel)
	return exportCSV(ctx, app.New(log, c), ev)
}

func exportCSV(ctx context.Context, a *app.App, ev Event) (string, error) {
	layout, err := report.LayoutByName(ev.Layout)
	if err != nil {
		return "", err
	}
	from, to, err := timeparse.Range(ev.From, ev.To, time.Now())
	if err != nil {
		return "", err
	}
	entries, err := a.Entries(ctx, usecase.Request{
		From:   from,
		To:     to,
		Filter: domain.Filter{TaskIDs: ev.TaskIDs, UserIDs: ev.UserIDs},
	})
	if err != nil {
		slog.Error("lambda export failed", slog.String("error", err.Error()))
		return "", err
	}
	return layout.Render(entries, ev.Billable), nil
}
