package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"tripbook/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var (
	ErrUnauthorized = errors.New("booking api: unauthorized")
	ErrNotFound     = errors.New("booking api: not found")
)

// APIError is a non-2xx answer from the booking API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking api returned status %d: %s", e.StatusCode, e.Body)
}

const tracerName = "tripbook/pkg/bookingclient"

// Client talks to the remote booking, seat and payment API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

func NewClient(httpClient *http.Client, baseURL string, log logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     log,
	}
}

// do sends body as JSON (when non-nil) and decodes a 2xx answer into out
// (when non-nil).
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("booking_api.path", path),
	)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.logger.Error("failed to build booking api request", logger.Field{Key: "op", Value: op}, logger.Err(err))
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("%s: external api call failed: %w", op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		span.SetStatus(codes.Error, "unauthorized")
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		span.SetStatus(codes.Error, "not found")
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		c.logger.Warn("booking api returned non-2xx",
			logger.Field{Key: "op", Value: op},
			logger.Field{Key: "status", Value: resp.StatusCode},
			logger.Field{Key: "body", Value: apiErr.Body},
		)
		span.SetStatus(codes.Error, "non-2xx")
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
