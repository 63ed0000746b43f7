// Package solver talks to the external optimizer service. The engine
// never trusts solver output: every proposal is replayed through the
// same assignment transaction manual callers use.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"roster-backend/config"
)

// Client is an HTTP client for the optimizer service.
type Client struct {
	cfg    config.SolverConfig
	client *http.Client
}

// NewClient creates a solver client from configuration.
func NewClient(cfg config.SolverConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Optimize posts the request to the solver and decodes its reply. A
// solver-side timeout comes back as a well-formed TIMEOUT response so
// callers can fall through to suggestions instead of an error path.
func (c *Client) Optimize(ctx context.Context, req *OptimizeRequest) (*OptimizeResponse, error) {
	if req.Settings.TimeoutSeconds <= 0 {
		req.Settings.TimeoutSeconds = c.cfg.TimeoutSeconds
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode optimize request: %w", err)
	}

	url := c.cfg.URL + "/optimize"
	log.Debugf("calling solver at %s", url)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build solver request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			log.Printf("solver request timed out after %s", c.cfg.Timeout)
			return &OptimizeResponse{
				Status:      StatusTimeout,
				Assignments: []Assignment{},
				Diagnostics: Diagnostics{
					Reason: fmt.Sprintf("solver timed out after %s", c.cfg.Timeout),
				},
				Suggestions: []Suggestion{{
					Type:        "reduce_scope",
					Description: "Try reducing the date range or number of shifts",
				}},
			}, nil
		}
		return nil, fmt.Errorf("solver request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("solver returned %d: %s", resp.StatusCode, msg)
	}

	var result OptimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode solver response: %w", err)
	}
	return &result, nil
}

// Health probes the solver's /health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("solver health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solver health check returned %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &health, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
