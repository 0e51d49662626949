package smoke

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/mule-ai/smoke/internal/config"
)

// Runner sends the smoke request. It holds no state between runs.
type Runner struct {
	cfg        config.Config
	httpClient *http.Client
	logger     logr.Logger
}

type Option func(*Runner)

// WithHTTPClient replaces the default client, which times out after cfg.Timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Runner) { r.httpClient = c }
}

func NewRunner(cfg config.Config, logger logr.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: logger.WithName("smoke"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs exactly one request built from the configuration.
func (r *Runner) Run(ctx context.Context) Outcome {
	req := NewRequest(r.cfg.URL, r.cfg.Prompt)
	resp, err := r.Send(ctx, req)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Response: resp}
}

// Send POSTs req and returns whatever the server answered. Only failures to
// complete the exchange are errors, and those are always *TransportError.
func (r *Runner) Send(ctx context.Context, req *Request) (*Response, error) {
	logger := r.logger.WithValues("url", req.URL, "request_id", req.ID)

	body, err := req.Encode()
	if err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "create request", URL: req.URL, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", req.ID)

	logger.V(1).Info("sending request", "timeout", r.httpClient.Timeout.String())
	start := time.Now()

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		terr := &TransportError{Op: "send request", URL: req.URL, Err: err}
		logger.Error(err, "request failed", "timeout", terr.Timeout())
		return nil, terr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Op: "read response body", URL: req.URL, Err: err}
		logger.Error(err, "failed to read response body", "status", resp.StatusCode, "timeout", terr.Timeout())
		return nil, terr
	}

	elapsed := time.Since(start)
	logger.Info("request completed", "status", resp.StatusCode, "duration", elapsed.String())

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
		Duration:   elapsed,
	}, nil
}
