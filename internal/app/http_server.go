package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	tc "timecamp-export/internal/adapter/timecamp"
	"timecamp-export/internal/codec"
	"timecamp-export/internal/domain"
	"timecamp-export/internal/report"
	"timecamp-export/internal/timeparse"
	"timecamp-export/internal/usecase"
)

// RequestIDHeader carries the per-request id assigned by the server.
const RequestIDHeader = "X-Request-Id"

// HTTPServer returns a configured http.Server exposing the listing, the CSV
// export and the sync trigger. Call ListenAndServe on the returned server in
// a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("http server configured", slog.String("addr", addr))
	return srv
}

// Handler returns the server's routes wrapped in request logging.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// /entries?from=...&to=...&format=text|csv&billable=true&layout=legacy|complete&task_ids=..&user_ids=..
	mux.HandleFunc("/entries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req, err := parseRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		q := r.URL.Query()
		format := q.Get("format")
		if format == "" {
			format = "text"
		}
		if format != "text" && format != "csv" {
			writeError(w, http.StatusBadRequest, errors.New("format must be text or csv"))
			return
		}
		layout, err := report.LayoutByName(q.Get("layout"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		billable := false
		if v := q.Get("billable"); v != "" {
			if billable, err = strconv.ParseBool(v); err != nil {
				writeError(w, http.StatusBadRequest, errors.New("billable must be a boolean"))
				return
			}
		}

		entries, err := a.Entries(r.Context(), req)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}

		if format == "csv" {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="timecamp.csv"`)
			w.WriteHeader(http.StatusOK)
			if err := report.WriteCSV(w, layout, entries, billable); err != nil {
				a.log.Warn("writing csv response", slog.String("error", err.Error()))
			}
			return
		}
		if billable {
			entries = domain.OnlyBillable(entries)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strings.Join(report.Listing(entries), "\n") + "\n"))
	})

	// /sync?from=...&to=...[&timeout=5m]
	mux.HandleFunc("/sync", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req, err := parseRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		ctx := r.Context()
		if tStr := r.URL.Query().Get("timeout"); tStr != "" {
			if d, err := time.ParseDuration(tStr); err == nil && d > 0 {
				var cancel func()
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}
		}

		n, err := a.RunOnce(ctx, req)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err != nil {
			w.WriteHeader(statusFor(err))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "error",
				"error":  err.Error(),
				"from":   req.From.Format(time.RFC3339),
				"to":     req.To.Format(time.RFC3339),
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"count":  n,
			"from":   req.From.Format(time.RFC3339),
			"to":     req.To.Format(time.RFC3339),
		})
	})

	return loggingMiddleware(a.log, mux)
}

func parseRequest(r *http.Request) (usecase.Request, error) {
	q := r.URL.Query()
	from, to, err := timeparse.Range(q.Get("from"), q.Get("to"), time.Now())
	if err != nil {
		return usecase.Request{}, err
	}
	return usecase.Request{
		From: from,
		To:   to,
		Filter: domain.Filter{
			TaskIDs: domain.SplitIDs(q.Get("task_ids")),
			UserIDs: domain.SplitIDs(q.Get("user_ids")),
		},
	}, nil
}

// statusFor maps fetch and sync errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		se *tc.ServiceError
		de *codec.DecodeError
	)
	switch {
	case errors.Is(err, tc.ErrInvalidRange), errors.Is(err, tc.ErrFiltersUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, tc.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrSyncRunning):
		return http.StatusConflict
	case errors.Is(err, ErrNoSinks):
		return http.StatusServiceUnavailable
	case errors.As(err, &se), errors.As(err, &de):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	http.Error(w, "An error occurred - "+err.Error(), status)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware assigns a request id and logs every request.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("http request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}
