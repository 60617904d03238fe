package kit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"emdash-brief/pkg/logger"
	"emdash-brief/pkg/metrics"
	"emdash-brief/pkg/telemetry"
	"emdash-brief/pkg/utils"
)

const (
	systemName     = "kit"
	defaultBaseURL = "https://api.kit.com"

	// BusinessNameField is the custom subscriber field holding the business name.
	BusinessNameField = "Business Name"
)

// Subscriber is the mailing-list payload derived from a submission.
type Subscriber struct {
	Email        string
	FirstName    string
	BusinessName string
	Tags         []string
}

// Client defines the interface for adding subscribers to the Kit mailing list.
// Subscribe reports success only; failures are logged and never returned.
type Client interface {
	Subscribe(ctx context.Context, sub Subscriber) bool
}

type clientImpl struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

type Option func(*clientImpl)

func WithBaseURL(baseURL string) Option {
	return func(c *clientImpl) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *clientImpl) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *clientImpl) {
		c.logger = l
	}
}

// NewClient creates a new Kit client
func NewClient(apiKey string, opts ...Option) Client {
	c := &clientImpl{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		logger:     logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type subscriberRequest struct {
	EmailAddress string            `json:"email_address"`
	FirstName    string            `json:"first_name,omitempty"`
	State        string            `json:"state"`
	Fields       map[string]string `json:"fields,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
}

func (c *clientImpl) Subscribe(ctx context.Context, sub Subscriber) bool {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, "kit.subscribe")
	defer span.End()

	log := c.logger.WithFields(map[string]interface{}{
		"emailHash": utils.HashEmail(sub.Email),
		"tags":      sub.Tags,
	})

	if c.apiKey == "" {
		log.Warn("Skipping Kit subscribe: KIT_API_KEY is not set", nil)
		metrics.ObserveOutbound(systemName, metrics.ResultSkipped, start)
		return false
	}

	if err := c.subscribe(ctx, sub, span.SetAttributes); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.WithError(err).Warn("Failed to add Kit subscriber", nil)
		metrics.ObserveOutbound(systemName, metrics.ResultFailure, start)
		return false
	}

	log.Info("Added Kit subscriber", nil)
	metrics.ObserveOutbound(systemName, metrics.ResultSuccess, start)
	return true
}

func (c *clientImpl) subscribe(ctx context.Context, sub Subscriber, annotate func(...attribute.KeyValue)) error {
	payload := subscriberRequest{
		EmailAddress: sub.Email,
		FirstName:    sub.FirstName,
		State:        "active",
		Tags:         sub.Tags,
	}
	if sub.BusinessName != "" {
		payload.Fields = map[string]string{BusinessNameField: sub.BusinessName}
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v4/subscribers", bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("X-Kit-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error adding subscriber: %w", err)
	}
	defer resp.Body.Close()

	annotate(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("error from Kit API (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
