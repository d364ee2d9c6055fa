// Package recordstore is the typed HTTP client for the record store API. The
// store owns every record; anything held locally is a cache that must be
// invalidated after a mutation (see the mutation package).
package recordstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/agencydesk/api-agency/internal/aggregate"
	"github.com/agencydesk/api-agency/internal/agent"
	"github.com/agencydesk/api-agency/internal/clientrec"
	"github.com/agencydesk/api-agency/internal/commission"
	"github.com/agencydesk/api-agency/internal/lead"
	"github.com/agencydesk/api-agency/internal/policy"
	"github.com/agencydesk/api-agency/internal/update"
)

// Client talks to the record store. Per-entity services share one transport.
type Client struct {
	baseURL    string
	httpClient *http.Client

	Agents      *Service[agent.Agent]
	Clients     *Service[clientrec.Client]
	Leads       *Service[lead.Lead]
	Policies    *Service[policy.Policy]
	Commissions *Service[commission.Commission]
	Updates     *Service[update.Update]
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Agents = &Service[agent.Agent]{client: c, path: "agents"}
	c.Clients = &Service[clientrec.Client]{client: c, path: "clients"}
	c.Leads = &Service[lead.Lead]{client: c, path: "leads"}
	c.Policies = &Service[policy.Policy]{client: c, path: "policies"}
	c.Commissions = &Service[commission.Commission]{client: c, path: "commissions"}
	c.Updates = &Service[update.Update]{client: c, path: "updates"}
	return c
}

// CommissionStats fetches the derived dashboard summary.
func (c *Client) CommissionStats(ctx context.Context) (aggregate.Stats, error) {
	var stats aggregate.Stats
	err := c.do(ctx, http.MethodGet, "commissions/stats", nil, nil, &stats)
	return stats, err
}

// WeeklyByAgent fetches the current week's commissions and split for an
// agent. A rate of zero uses the server's configured default.
func (c *Client) WeeklyByAgent(ctx context.Context, agentID uint, rate float64) (commission.WeeklyResponse, error) {
	var query url.Values
	if rate > 0 {
		query = url.Values{"rate": {fmt.Sprintf("%g", rate)}}
	}
	var resp commission.WeeklyResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("commissions/weekly/by-agent/%d", agentID), query, nil, &resp)
	return resp, err
}

// errorBody mirrors the store's error response shape.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// do issues one request and maps the response onto the error taxonomy:
// 400 -> ValidationError, 404 -> ErrNotFound, other failures ->
// TransportError. out is filled from a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &TransportError{Err: fmt.Errorf("encode payload: %w", err)}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil

	case resp.StatusCode == http.StatusBadRequest:
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err != nil || eb.Error == "" {
			eb.Error = string(raw)
		}
		return &ValidationError{Message: eb.Error, Fields: eb.Fields}

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)

	default:
		return &TransportError{Status: resp.StatusCode, Body: string(raw)}
	}
}
