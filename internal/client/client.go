// Package client is the synchronous peer-service call facade. Every fetch
// is a single GET with no retry; resilience beyond one attempt belongs to
// the caller. Write paths treat failures as hard (the operation aborts),
// read-path enrichment treats them as soft (log and degrade).
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNotFound means the peer answered and the entity does not exist.
	ErrNotFound = errors.New("peer entity not found")
	// ErrUnavailable covers transport errors, timeouts and 5xx responses;
	// the entity's existence is unknown.
	ErrUnavailable = errors.New("peer service unavailable")
)

// envelope is the wire shape every domain service produces.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// fetch GETs {baseURL}/{id} and unwraps the envelope's data into out.
func (c *Client) fetch(ctx context.Context, id string, out interface{}) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build peer request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("peer call failed")
		return ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		c.logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("peer returned server error")
		return ErrUnavailable
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("peer returned unexpected status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Warn().Err(err).Str("url", url).Msg("peer returned malformed envelope")
		return ErrUnavailable
	}
	if !env.Success {
		return ErrNotFound
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode peer entity: %w", err)
	}
	return nil
}
