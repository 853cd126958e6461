package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Config represents client configuration.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	ServiceToken string
	UserAgent    string
	Debug        bool
}

// Client talks to the Evaluaasi REST API.
type Client struct {
	httpClient   *resty.Client
	baseURL      string
	serviceToken string
	logger       *zap.Logger
}

// NewClient creates a new API client. The client never retries; callers decide
// what a failure means.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "evaluaasi-support-gateway/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.Debug {
		httpClient.SetDebug(true)
	}

	client := &Client{
		httpClient:   httpClient,
		baseURL:      cfg.BaseURL,
		serviceToken: cfg.ServiceToken,
		logger:       logger,
	}

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		client.decorate(req)
		return nil
	})

	return client
}

// decorate forwards the caller's token and request id.
func (c *Client) decorate(req *resty.Request) {
	ctx := req.Context()
	token := TokenFromContext(ctx)
	if token == "" {
		token = c.serviceToken
	}
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.SetHeader("X-Request-ID", id)
	}
}

// Get performs a GET request and decodes the JSON body into result.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	req := c.httpClient.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if result != nil {
		req.SetResult(result)
	}
	return c.execute(req, http.MethodGet, path)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.send(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.send(ctx, http.MethodPut, path, body, result)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.send(ctx, http.MethodPatch, path, body, result)
}

func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	return c.execute(req, method, path)
}

func (c *Client) execute(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		if isDecodeFailure(resp, err) {
			c.logger.Warn("backend response could not be decoded",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err))
			return &DecodeError{
				Operation:  method,
				URL:        c.baseURL + path,
				StatusCode: resp.StatusCode(),
				Err:        err,
			}
		}
		return &NetworkError{
			Operation: method,
			URL:       c.baseURL + path,
			Err:       err,
		}
	}
	if resp.IsError() {
		apiErr := newAPIError(method, path, resp.StatusCode(), resp.Body())
		if resp.StatusCode() >= http.StatusInternalServerError {
			c.logger.Warn("backend error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode()))
		}
		return apiErr
	}
	return nil
}

// isDecodeFailure reports whether a response arrived but its body did not fit
// the result type.
func isDecodeFailure(resp *resty.Response, err error) bool {
	if resp == nil || resp.RawResponse == nil {
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// Ping checks if the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.Get(ctx, "/health", nil, nil)
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{Method: method, Path: path, StatusCode: status}
	var payload map[string]any
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		apiErr.Payload = payload
		for _, key := range []string{"message", "error", "msg"} {
			if msg, ok := payload[key].(string); ok && msg != "" {
				apiErr.Message = msg
				break
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
