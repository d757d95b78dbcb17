// Package huggingface is a small client for the Hugging Face Inference API.
//
// Every call is throttled by a token bucket, guarded by a circuit breaker and
// retried with backoff on 429/5xx. A 503 "model is loading" answer carries an
// estimated load time that is used as the retry delay.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gianpd/summarizerAI/internal/resilience/circuitbreaker"
	"github.com/gianpd/summarizerAI/internal/resilience/retry"
)

// maxResponseSize bounds the JSON read from the API.
const maxResponseSize = 4 << 20

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("huggingface inference unavailable")

// Options are the "options" object of an inference request.
type Options struct {
	WaitForModel bool `json:"wait_for_model,omitempty"`
	UseCache     bool `json:"use_cache"`
}

// Request is the common body of inference calls.
type Request struct {
	Inputs     string  `json:"inputs"`
	Parameters any     `json:"parameters,omitempty"`
	Options    Options `json:"options"`
}

type apiError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// Client calls models hosted on the Inference API.
type Client struct {
	httpClient     *http.Client
	limiter        *RateLimiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
	logger         *slog.Logger
}

// NewClient creates a client; name identifies its circuit breaker in logs.
func NewClient(name string, cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		limiter:        NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ConfigFor(circuitbreaker.KindHuggingFace, name)),
		retryConfig:    retry.InferenceConfig(),
		config:         cfg,
		logger:         logger,
	}
}

// WithRetryConfig replaces the retry policy; tests use it to shorten delays.
func (c *Client) WithRetryConfig(cfg retry.Config) *Client {
	c.retryConfig = cfg
	return c
}

// Breaker exposes the client's circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.circuitBreaker
}

// NewRequest builds a request for inputs with the client's model options.
func (c *Client) NewRequest(inputs string, parameters any) Request {
	return Request{
		Inputs:     inputs,
		Parameters: parameters,
		Options:    Options{WaitForModel: c.config.WaitForModel, UseCache: true},
	}
}

// Infer posts req to model and decodes the JSON answer into out.
func (c *Client) Infer(ctx context.Context, model string, req Request, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	return retry.WithBackoff(ctx, c.retryConfig, func() error {
		if err := c.limiter.Allow(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		_, err := circuitbreaker.Do(c.circuitBreaker, func() (struct{}, error) {
			return struct{}{}, c.post(ctx, model, body, out)
		})
		if circuitbreaker.IsRejected(err) {
			c.logger.WarnContext(ctx, "huggingface circuit breaker open, request rejected",
				slog.String("circuit", c.circuitBreaker.Name()),
				slog.String("model", model))
			return fmt.Errorf("%w: %s", ErrUnavailable, model)
		}
		return err
	})
}

func (c *Client) post(ctx context.Context, model string, body []byte, out any) error {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/models/" + model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", model, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.DebugContext(ctx, "huggingface inference call",
		slog.String("model", model),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, payload)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s response: %w", model, err)
	}
	return nil
}

// statusError converts a non-200 answer into a retry.HTTPError carrying the
// server's delay hint.
func statusError(resp *http.Response, payload []byte) error {
	httpErr := &retry.HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var apiErr apiError
	if json.Unmarshal(payload, &apiErr) == nil && apiErr.Error != "" {
		httpErr.Message = apiErr.Error
		if apiErr.EstimatedTime > 0 {
			httpErr.RetryAfter = time.Duration(apiErr.EstimatedTime * float64(time.Second))
		}
	}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		httpErr.RetryAfter = time.Duration(secs) * time.Second
	}
	return httpErr
}
