// Package capi submits server events to the Facebook Conversions API.
package capi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Porto7/dev-pixel/internal/config"
	"github.com/Porto7/dev-pixel/internal/domain"
	"github.com/Porto7/dev-pixel/internal/metrics"
)

// EventsRequest is the request body of the events edge
type EventsRequest struct {
	Data          []*domain.ServerEvent `json:"data"`
	TestEventCode string                `json:"test_event_code,omitempty"`
}

// Response is the parsed body of a successful events call
type Response struct {
	EventsReceived int
	FBTraceID      string
	Messages       []interface{}
	Raw            map[string]interface{}
}

// APIError is returned when the Conversions API answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	body, _ := json.Marshal(e.Body)
	return fmt.Sprintf("conversions api error: status %d: %s", e.StatusCode, body)
}

// Client represents a Conversions API client
type Client struct {
	httpClient *http.Client
	config     config.Pixel
	log        *zap.Logger
}

// NewClient creates a new Conversions API client. A nil httpClient uses a
// plain client without a timeout override.
func NewClient(pixelConfig config.Pixel, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	log.Info("Conversions API client created",
		zap.String("pixel_id", pixelConfig.ID),
		zap.String("api_version", pixelConfig.APIVersion),
		zap.Bool("test_mode", pixelConfig.TestEventCode != ""))

	return &Client{
		httpClient: httpClient,
		config:     pixelConfig,
		log:        log,
	}
}

// endpoint returns the events edge URL; the access token travels as a query parameter.
func (c *Client) endpoint() string {
	base := strings.TrimRight(c.config.GraphURL, "/")
	return fmt.Sprintf("%s/%s/%s/events?access_token=%s",
		base,
		url.PathEscape(c.config.APIVersion),
		url.PathEscape(c.config.ID),
		url.QueryEscape(c.config.AccessToken),
	)
}

// SendEvent submits one event as a single-element batch. It makes exactly
// one attempt.
func (c *Client) SendEvent(ctx context.Context, event *domain.ServerEvent) (*Response, error) {
	body, err := json.Marshal(EventsRequest{
		Data:          []*domain.ServerEvent{event},
		TestEventCode: c.config.TestEventCode,
	})
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("marshal").Inc()
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("transport").Inc()
		c.log.Error("Failed to send event to Conversions API",
			zap.String("event_name", string(event.EventName)),
			zap.Error(redact(err, c.config.AccessToken)))
		return nil, fmt.Errorf("failed to send event: %w", redact(err, c.config.AccessToken))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed map[string]interface{}
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamErrors.WithLabelValues("status").Inc()
		if decodeErr != nil {
			parsed = map[string]interface{}{"raw": string(raw)}
		}
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: parsed}
		c.log.Error("Conversions API rejected event",
			zap.String("event_name", string(event.EventName)),
			zap.Int("status", resp.StatusCode),
			zap.Any("response", parsed))
		return nil, apiErr
	}

	if decodeErr != nil {
		metrics.UpstreamErrors.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	result := &Response{Raw: parsed}
	if n, ok := parsed["events_received"].(float64); ok {
		result.EventsReceived = int(n)
	}
	if id, ok := parsed["fbtrace_id"].(string); ok {
		result.FBTraceID = id
	}
	if msgs, ok := parsed["messages"].([]interface{}); ok {
		result.Messages = msgs
	}

	c.log.Info("Event sent to Conversions API",
		zap.String("event_name", string(event.EventName)),
		zap.Int("events_received", result.EventsReceived),
		zap.String("fbtrace_id", result.FBTraceID))

	return result, nil
}

// redact keeps the access token out of errors that embed the request URL
func redact(err error, token string) error {
	if token == "" {
		return err
	}
	msg := err.Error()
	for _, t := range []string{token, url.QueryEscape(token)} {
		msg = strings.ReplaceAll(msg, t, "REDACTED")
	}
	if msg == err.Error() {
		return err
	}
	return errors.New(msg)
}
