// Package store is the gateway to the external schedule store's
// SQL-over-HTTP execution interface. The engine only ever issues read
// statements; everything else is refused before a request is made.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skedhub/sked-engine/pkg/apperrors"
	"github.com/skedhub/sked-engine/pkg/logging"
	"github.com/skedhub/sked-engine/pkg/sql"
)

// DefaultTimeout bounds a store round trip. Deliberately short: a slow
// store should fail the request, not hang it, and there are no retries
// against the rate-limited external API.
const DefaultTimeout = 10 * time.Second

// Config holds settings for the store client.
type Config struct {
	BaseURL  string
	APIToken string
	Table    string
	Timeout  time.Duration
}

// Gateway executes compiled SQL and returns rows. Implemented by Client
// and by test fakes.
type Gateway interface {
	Execute(ctx context.Context, stmt string) ([]map[string]any, error)
}

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL    string
	token      string
	table      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a store client.
func NewClient(cfg *Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		table:      cfg.Table,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("store"),
	}
}

type sqlRequest struct {
	SQL   string `json:"sql"`
	Table string `json:"table"`
}

type sqlResponse struct {
	Rows  []map[string]any `json:"rows"`
	Error string           `json:"error"`
}

// Execute submits one read statement and returns its rows. An empty row
// set is success. Store-level failures are returned wrapped in
// apperrors.ErrStoreUnavailable with full detail for logging; callers
// must not surface that detail to end users.
func (c *Client) Execute(ctx context.Context, stmt string) ([]map[string]any, error) {
	normalized, err := sql.NormalizeRead(stmt)
	if err != nil {
		return nil, fmt.Errorf("refusing statement: %w", err)
	}

	if c.baseURL == "" || c.token == "" {
		c.logger.Error("store credentials not configured")
		return nil, fmt.Errorf("%w: API token missing", apperrors.ErrStoreUnavailable)
	}

	body, err := json.Marshal(sqlRequest{SQL: normalized, Table: c.table})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", apperrors.ErrStoreUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/sql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("store request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", apperrors.ErrStoreUnavailable, err)
	}

	var decoded sqlResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		c.logger.Error("store returned malformed response",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_len", len(payload)))
		return nil, fmt.Errorf("%w: malformed response (status %d)", apperrors.ErrStoreUnavailable, resp.StatusCode)
	}

	if decoded.Error != "" || resp.StatusCode != http.StatusOK {
		// Full detail stays server-side; the store's error text can
		// include credentials context.
		c.logger.Error("store rejected query",
			zap.Int("status", resp.StatusCode),
			zap.String("store_error", logging.Sanitize(decoded.Error)),
			zap.String("sql", logging.SanitizeStatement(normalized)))
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrStoreUnavailable, resp.StatusCode, decoded.Error)
	}

	c.logger.Debug("store query completed",
		zap.Int("rows", len(decoded.Rows)),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("sql", logging.SanitizeStatement(normalized)))

	if decoded.Rows == nil {
		return []map[string]any{}, nil
	}
	return decoded.Rows, nil
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)
