package timecamp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"timecamp-export/internal/codec"
	"timecamp-export/internal/domain"
)

// DefaultBaseURL is the TimeCamp third party API root.
const DefaultBaseURL = "https://www.timecamp.com/third_party/api"

// Client implements ports.TimeCampClient using the TimeCamp third party API.
type Client struct {
	baseURL       string
	apiToken      string
	http          *http.Client
	strictFilters bool
	log           *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client. The token is
// still injected through an oauth2 transport wrapped around its Transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithStrictFilters makes any non-empty task/user filter fail with
// ErrFiltersUnsupported instead of being sent to the API.
func WithStrictFilters(strict bool) Option {
	return func(c *Client) { c.strictFilters = strict }
}

// NewClient returns a client for baseURL (DefaultBaseURL when empty). A
// blank apiToken is treated as missing.
func NewClient(baseURL, apiToken string, log *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: strings.TrimSpace(apiToken),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = authorized(c.http, c.apiToken)
	return c
}

// authorized returns a copy of h whose requests carry
// "Authorization: Bearer <token>".
func authorized(h *http.Client, token string) *http.Client {
	base := h.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	out := *h
	out.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   base,
	}
	return &out
}

// ListTimeEntries fetches entries dated within [from, to].
// GET /entries/format/json/from/<yyyy-mm-dd>/to/<yyyy-mm-dd>[/task_ids/..][/user_ids/..]
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time, filter domain.Filter) ([]domain.TimeEntry, error) {
	if c.apiToken == "" {
		return nil, ErrAuthentication
	}
	if to.Before(from) {
		return nil, &InvalidRangeError{From: from, To: to}
	}
	if c.strictFilters && !filter.IsEmpty() {
		return nil, ErrFiltersUnsupported
	}

	u := c.entriesURL(from, to, filter)
	c.log.Debug("timecamp request", slog.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ServiceError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var entries []domain.TimeEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		var de *codec.DecodeError
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, &codec.DecodeError{Field: "entries", Err: err}
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, &codec.DecodeError{Field: "id", Err: fmt.Errorf("entry %d has no id", i)}
		}
	}
	if entries == nil {
		entries = []domain.TimeEntry{}
	}
	c.log.Debug("timecamp response", slog.Int("count", len(entries)))
	return entries, nil
}

func (c *Client) entriesURL(from, to time.Time, filter domain.Filter) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/entries/format/json")
	b.WriteString("/from/" + from.Format(codec.DateLayout))
	b.WriteString("/to/" + to.Format(codec.DateLayout))
	if ids := domain.CleanIDs(filter.TaskIDs); len(ids) > 0 {
		b.WriteString("/task_ids/" + joinEscaped(ids))
	}
	if ids := domain.CleanIDs(filter.UserIDs); len(ids) > 0 {
		b.WriteString("/user_ids/" + joinEscaped(ids))
	}
	return b.String()
}

func joinEscaped(ids []string) string {
	esc := make([]string, len(ids))
	for i, id := range ids {
		esc[i] = url.PathEscape(id)
	}
	return strings.Join(esc, ",")
}
