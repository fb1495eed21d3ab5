package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const (
	defaultBaseURL = "https://www.googleapis.com"
	defaultTimeout = 10 * time.Second
)

// Config configures the shared Google REST transport.
type Config struct {
	// BaseURL defaults to https://www.googleapis.com; overridable for tests
	BaseURL string

	// HTTPClient defaults to a client with a 10s timeout
	HTTPClient *http.Client

	// Limiter is consulted before each outbound request; nil disables limiting
	Limiter *rate.Limiter
}

// Client is the request/response plumbing shared by the identity, Gmail,
// and Calendar surfaces. It holds no mutable state and is safe for
// concurrent use. Retries, caching, and token refresh are caller concerns.
type Client struct {
	cfg Config
	log *logger.Logger
}

// NewClient constructs the shared transport.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{cfg: cfg, log: logger.Get().With("component", "google_client")}
}

// StatusError carries a non-2xx response from googleapis.com.
// It unwraps to ErrAuth for credential/scope rejections (401/403)
// and ErrAPI for everything else.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("google http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("google http %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrAuth
	default:
		return errors.ErrAPI
	}
}

func (c *Client) get(ctx context.Context, service, endpoint, path string, params url.Values, bearer string, target interface{}) error {
	return c.do(ctx, http.MethodGet, service, endpoint, path, params, bearer, nil, target)
}

func (c *Client) post(ctx context.Context, service, endpoint, path string, params url.Values, bearer string, payload, target interface{}) error {
	return c.do(ctx, http.MethodPost, service, endpoint, path, params, bearer, payload, target)
}

func (c *Client) do(ctx context.Context, method, service, endpoint, path string, params url.Values, bearer string, payload, target interface{}) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, params, bearer, payload, target)
	metrics.ObserveGoogleAPICall(service, endpoint, statusLabel(err), time.Since(start))

	if err != nil {
		c.log.Debugw("google api call failed", "service", service, "endpoint", endpoint, "error", err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, params url.Values, bearer string, payload, target interface{}) error {
	if c.cfg.Limiter != nil {
		if err := c.cfg.Limiter.Wait(ctx); err != nil {
			return errors.Wrap(errors.ErrTimeout, "rate limiter wait")
		}
	}

	reqURL := c.cfg.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(errors.ErrInvalidArgument, "encode request payload")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidArgument, "build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrapf(errors.ErrTimeout, "%v", ctx.Err())
		}
		return errors.Wrapf(errors.ErrTransport, "%v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrapf(errors.ErrTimeout, "%v", ctx.Err())
		}
		return errors.Wrapf(errors.ErrTransport, "read response: %v", err)
	}

	if resp.StatusCode >= 400 {
		return &StatusError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, target); err != nil {
		return errors.Wrapf(errors.ErrDecode, "%v", err)
	}
	return nil
}

// errorMessage extracts a human-readable message from Google's error
// envelope. Both the structured {"error":{"code","message","status"}}
// shape and the legacy {"error","error_description"} shape occur.
func errorMessage(body []byte) string {
	var structured struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Error.Message != "" {
		return structured.Error.Message
	}

	var legacy struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &legacy); err == nil && legacy.Error != "" {
		if legacy.ErrorDescription != "" {
			return legacy.Error + ": " + legacy.ErrorDescription
		}
		return legacy.Error
	}

	return string(body)
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, errors.ErrAuth):
		return "auth_error"
	case errors.Is(err, errors.ErrTimeout):
		return "timeout"
	case errors.Is(err, errors.ErrTransport):
		return "transport_error"
	case errors.Is(err, errors.ErrDecode):
		return "decode_error"
	default:
		return "api_error"
	}
}
