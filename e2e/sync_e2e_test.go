//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	msql "timecamp-export/internal/adapter/mysql"
	"timecamp-export/internal/adapter/timecamp"
	"timecamp-export/internal/domain"
	"timecamp-export/internal/ports"
	"timecamp-export/internal/usecase"
)

const entriesJSON = `[
	{"id":"1","duration":"5400","user_id":"7","user_name":"Ada","task_id":"123","name":"Dev work","last_modify":"2025-08-01 10:31:00","date":"2025-08-01","start_time":"09:00:00","end_time":"10:30:00","description":"Dev work","billable":"1","addons_external_id":"0","invoiceId":"0","color":"#4dc2ff"},
	{"id":"2","duration":"3600","user_id":"7","user_name":"Ada","task_id":"456","name":"Meeting","last_modify":"2025-08-01 12:00:00","date":"2025-08-01","start_time":"11:00:00","end_time":"","description":"Meeting","billable":"0","addons_external_id":"0","invoiceId":"0","color":""}
]`

func TestSyncToMySQL_UpsertsEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_DATABASE":      "testdb",
			"MYSQL_ROOT_PASSWORD": "secret",
			"MYSQL_USER":          "test",
			"MYSQL_PASSWORD":      "pass",
		},
		WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(90 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start mysql container")
	t.Cleanup(func() { _ = mysqlC.Terminate(context.Background()) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", "test", "pass", host, port.Port(), "testdb")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	sink, err := msql.NewClient(ctx, dsn, logger)
	require.NoError(t, err, "mysql client")
	t.Cleanup(func() { _ = sink.Close() })

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(entriesJSON))
	}))
	t.Cleanup(api.Close)

	client := timecamp.NewClient(api.URL, "token", logger)
	uc := &usecase.SyncUseCase{Log: logger, TimeCamp: ports.TimeCampClient(client), Sinks: []ports.Sink{sink}}
	window := usecase.Request{
		From: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
	}

	n, err := uc.Run(ctx, window)
	require.NoError(t, err, "sync run")
	require.Equal(t, 2, n)

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM timecamp_time_entries").Scan(&count))
	require.Equal(t, 2, count)

	var (
		dur      int64
		billable bool
		endTime  sql.NullString
	)
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT duration_sec, billable, end_time FROM timecamp_time_entries WHERE id = '2'").Scan(&dur, &billable, &endTime))
	require.Equal(t, int64(3600), dur)
	require.False(t, billable)
	require.False(t, endTime.Valid)

	// idempotent upsert
	_, err = uc.Run(ctx, window)
	require.NoError(t, err, "sync run 2")
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM timecamp_time_entries").Scan(&count))
	require.Equal(t, 2, count)

	// sink accepts entries decoded independently of the client
	var extra []domain.TimeEntry
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"3","duration":"60","date":"2025-08-01"}]`), &extra))
	require.NoError(t, sink.SyncEntries(ctx, extra))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM timecamp_time_entries").Scan(&count))
	require.Equal(t, 3, count)
}
