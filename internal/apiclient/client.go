// Package apiclient wraps HTTP access to the GaGoForge REST backend:
// bearer-token attachment, a single refresh-and-retry on 401, and JSON
// request/response plumbing.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/odai307/gagoforge-client/configs"
	"github.com/odai307/gagoforge-client/internal/logger"
	"github.com/odai307/gagoforge-client/internal/tokenstore"
)

type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store

	// Serializes token refreshes so concurrent 401s do not race.
	refreshMu sync.Mutex
}

func New(cfg *configs.Config, tokens tokenstore.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		tokens:  tokens,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = b
	}

	status, respBody, err := c.roundTrip(ctx, method, path, payload, true)
	if err != nil {
		return err
	}

	// One refresh-and-retry on 401. A second 401 means the refreshed
	// credentials are no good either.
	if status == http.StatusUnauthorized {
		if err := c.refreshAccess(ctx); err != nil {
			return err
		}
		status, respBody, err = c.roundTrip(ctx, method, path, payload, true)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			_ = c.tokens.Clear(ctx)
			return ErrSessionExpired
		}
	}

	if status < 200 || status >= 300 {
		return decodeAPIError(status, respBody)
	}
	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, withAuth bool) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if withAuth {
		if token, ok := c.tokens.Access(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Log.Warn("Request transport failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	logger.Log.Debug("Request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID))
	return resp.StatusCode, respBody, nil
}

// refreshAccess exchanges the stored refresh token for a new access token.
// The refresh call carries no bearer header and is never itself retried;
// any failure clears stored credentials.
func (c *Client) refreshAccess(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	refresh, ok := c.tokens.Refresh(ctx)
	if !ok {
		_ = c.tokens.Clear(ctx)
		return ErrSessionExpired
	}

	payload, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return fmt.Errorf("failed to encode refresh request: %w", err)
	}
	status, body, err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh/", payload, false)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		_ = c.tokens.Clear(ctx)
		logger.Log.Warn("Token refresh rejected", zap.Int("status", status))
		return ErrSessionExpired
	}

	var tokens struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &tokens); err != nil || tokens.Access == "" {
		_ = c.tokens.Clear(ctx)
		return ErrSessionExpired
	}
	return c.tokens.SetAccess(ctx, tokens.Access)
}
