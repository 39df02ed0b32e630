// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the correction service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/tensaku-tui/internal/model"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL points at a locally running backend.
	// Uses an explicit IPv4 address to avoid IPv6 resolution issues on Windows.
	DefaultBaseURL = "http://127.0.0.1:8000/api"

	// DefaultTimeout is the fixed ceiling applied to every call.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to the backend.
	DefaultUserAgent = "tensaku-tui"
)

// maxErrorBody bounds how much of a failed response is read for a message.
const maxErrorBody = 64 << 10

// ClientConfig holds configuration options for the correction service client.
type ClientConfig struct {
	// BaseURL is the API root including the /api prefix (default: http://127.0.0.1:8000/api)
	BaseURL string

	// Timeout for every request (default: 10s). There is no per-call override.
	Timeout time.Duration

	// UserAgent header sent with every request (default: tensaku-tui)
	UserAgent string

	// RateLimit caps requests per second; 0 disables limiting (default: 0)
	RateLimit float64

	// RateBurst is the limiter burst size (default: 1 when RateLimit > 0)
	RateBurst int

	// Logger receives request-level debug output (default: no-op)
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the correction service's REST surface.
//
// The Client is safe for concurrent use; the service itself imposes no
// concurrency limit and neither does the client unless RateLimit is set.
//
// Example:
//
//	client := api.NewClient()
//	result, err := client.Correct(ctx, model.CorrectionRequest{Text: "こんにちは"})
//	if api.IsNetworkFailure(err) {
//	    // retry later
//	}
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.RateLimit > 0 && config.RateBurst <= 0 {
		config.RateBurst = 1
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("api"),
	}
	if config.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst)
	}
	return c
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CORRECTION
// =============================================================================

// Correct requests correction variants for req.Text.
func (c *Client) Correct(ctx context.Context, req model.CorrectionRequest) (*model.CorrectionResult, error) {
	body := CorrectRequest{
		Text:            req.Text,
		UserID:          req.UserID,
		PreferredModel:  req.PreferredModel,
		CorrectionStyle: req.Style,
	}

	var resp CorrectResponse
	if err := c.do(ctx, http.MethodPost, "/correct", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels returns the available model catalog, keyed by model id.
func (c *Client) ListModels(ctx context.Context) (map[string]string, error) {
	var resp ModelsResponse
	if err := c.do(ctx, http.MethodGet, "/models", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Models == nil {
		resp.Models = map[string]string{}
	}
	return resp.Models, nil
}

// SetUserModel persists modelName as the user's preferred model and returns
// the server's acknowledgement message.
func (c *Client) SetUserModel(ctx context.Context, userID, modelName string) (string, error) {
	body := SetModelRequest{UserID: userID, ModelName: modelName}

	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/user/model", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// GetUserSettings fetches the stored preferences for userID.
func (c *Client) GetUserSettings(ctx context.Context, userID string) (*model.UserSettings, error) {
	var resp SettingsResponse
	path := "/user/" + url.PathEscape(userID) + "/settings"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &model.UserSettings{
		UserID:         resp.UserID,
		PreferredModel: resp.PreferredAIModel,
		DefaultStyle:   resp.DefaultCorrectionStyle,
	}, nil
}

// =============================================================================
// HISTORY
// =============================================================================

// GetHistory fetches one page of userID's correction history.
func (c *Client) GetHistory(ctx context.Context, userID string, limit, offset int) (*model.HistoryPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var resp HistoryResponse
	path := "/user/" + url.PathEscape(userID) + "/history"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one JSON round trip. in may be nil for bodyless requests.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return classifyTransportError(err)
		}
	}

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &ClientError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return classifyTransportError(err)
	}
	defer drainAndClose(resp.Body)

	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ClientError{
			Type:       ErrTypeService,
			Message:    readErrorMessage(resp),
			StatusCode: resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{
			Type:       ErrTypeInvalidResponse,
			Message:    "failed to decode response",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}
	return nil
}

// classifyTransportError maps a failed round trip onto Timeout or Network.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
	}
	return &ClientError{Type: ErrTypeNetwork, Message: ErrUnreachable.Message, Cause: err}
}

// readErrorMessage extracts a human message from a failed response, preferring
// the backend's detail field and falling back to the status text.
func readErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return resp.Status
	}

	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil || len(er.Detail) == 0 {
		return resp.Status
	}

	var detail string
	if err := json.Unmarshal(er.Detail, &detail); err == nil && detail != "" {
		return detail
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(er.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return resp.Status
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
