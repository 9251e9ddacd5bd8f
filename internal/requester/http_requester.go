package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chatterm/chatterm/internal/config"
	"github.com/chatterm/chatterm/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// HTTPRequester is the single interception point for every outbound
// call to the backend. It builds the request, tags it with a request
// ID, applies authentication last and executes it. Transport failures
// are returned to the caller untouched; a non-2xx status is a Response,
// not an error — interpreting it is the caller's job.
type HTTPRequester struct {
	client  *http.Client
	cfg     *config.ServerConfig
	authMgr AuthManager
}

type HTTPRequesterParams struct {
	fx.In

	Config      *config.Config
	AuthManager AuthManager
}

// NewHTTPRequester creates a new HTTPRequester for the configured backend
func NewHTTPRequester(params HTTPRequesterParams) *HTTPRequester {
	return &HTTPRequester{
		client: &http.Client{
			Timeout: params.Config.Server.RequestTimeout(),
		},
		cfg:     &params.Config.Server,
		authMgr: params.AuthManager,
	}
}

// SetTimeout sets the timeout for the HTTP client
func (r *HTTPRequester) SetTimeout(timeout time.Duration) {
	r.client.Timeout = timeout
}

// Get issues a GET request to the given path.
func (r *HTTPRequester) Get(ctx context.Context, path string) (*Response, error) {
	return r.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body to the given path.
func (r *HTTPRequester) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return r.Do(ctx, http.MethodPost, path, body)
}

// Do builds and executes a request against the backend.
func (r *HTTPRequester) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	req, err := r.buildRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	logger.Debug("dispatching request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	resp, err := r.execute(req)
	if err != nil {
		logger.Error("request failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func (r *HTTPRequester) buildRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	url := strings.TrimRight(r.cfg.BaseURL, "/") + path

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range r.cfg.Headers {
		httpReq.Header.Set(key, value)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	// Authentication is applied last, immediately before dispatch.
	if err := r.authMgr.ApplyAuth(httpReq); err != nil {
		return nil, fmt.Errorf("failed to apply authentication: %w", err)
	}

	return httpReq, nil
}

// execute performs the actual HTTP request execution
func (r *HTTPRequester) execute(httpReq *http.Request) (*Response, error) {
	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
		Headers:    resp.Header,
	}, nil
}
