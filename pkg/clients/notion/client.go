package notion

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

	apperrors "emdash-brief/pkg/errors"
	"emdash-brief/pkg/logger"
	"emdash-brief/pkg/metrics"
	"emdash-brief/pkg/telemetry"
)

const (
	systemName     = "notion"
	defaultBaseURL = "https://api.notion.com"
	defaultVersion = "2022-06-28"
)

// Client defines the interface for creating database pages in Notion
type Client interface {
	CreatePage(ctx context.Context, props Properties) (string, error)
}

type clientImpl struct {
	token      string
	databaseID string
	baseURL    string
	version    string
	httpClient *http.Client
	logger     logger.Logger
}

// Option customizes a client.
type Option func(*clientImpl)

func WithBaseURL(baseURL string) Option {
	return func(c *clientImpl) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithVersion(version string) Option {
	return func(c *clientImpl) {
		if version != "" {
			c.version = version
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

// NewClient creates a new Notion client writing into databaseID
func NewClient(token, databaseID string, opts ...Option) Client {
	c := &clientImpl{
		token:      token,
		databaseID: databaseID,
		baseURL:    defaultBaseURL,
		version:    defaultVersion,
		httpClient: &http.Client{},
		logger:     logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createPageRequest struct {
	Parent struct {
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
	Properties Properties `json:"properties"`
}

type apiError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreatePage creates one page under the configured database and returns its id.
// Every failure is a *errors.RemoteError.
func (c *clientImpl) CreatePage(ctx context.Context, props Properties) (id string, err error) {
	start := time.Now()
	ctx, span := telemetry.Tracer().Start(ctx, "notion.create_page")
	defer func() {
		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultFailure
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.ObserveOutbound(systemName, result, start)
		span.End()
	}()

	if c.token == "" {
		return "", apperrors.NewNotConfiguredError(systemName, "NOTION_TOKEN")
	}
	if c.databaseID == "" {
		return "", apperrors.NewNotConfiguredError(systemName, "NOTION_DATABASE_ID")
	}

	var payload createPageRequest
	payload.Parent.DatabaseID = c.databaseID
	payload.Properties = props

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", &apperrors.RemoteError{
			System:  systemName,
			Message: fmt.Sprintf("error creating payload: %v", err),
			Kind:    apperrors.ErrCodeRemoteFailed,
			Err:     err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(jsonPayload))
	if err != nil {
		return "", apperrors.NewTransportError(systemName, fmt.Errorf("error creating request: %w", err))
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewTransportError(systemName, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperrors.RemoteError{
			System:  systemName,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("error reading response: %v", err),
			Kind:    apperrors.ErrCodeRemoteFailed,
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeError(resp.StatusCode, body)
	}

	var page struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &page); err != nil || page.ID == "" {
		return "", &apperrors.RemoteError{
			System:  systemName,
			Status:  resp.StatusCode,
			Message: "response did not contain a page id",
			Kind:    apperrors.ErrCodeRemoteFailed,
			Err:     err,
		}
	}

	c.logger.Info("Created Notion page", map[string]interface{}{
		"pageId":     page.ID,
		"properties": len(props),
	})
	return page.ID, nil
}

func decodeError(status int, body []byte) *apperrors.RemoteError {
	remoteErr := &apperrors.RemoteError{
		System:  systemName,
		Status:  status,
		Message: string(body),
		Kind:    apperrors.ErrCodeRemoteFailed,
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		remoteErr.Code = apiErr.Code
		remoteErr.Message = apiErr.Message
	}
	if remoteErr.Message == "" {
		remoteErr.Message = http.StatusText(status)
	}
	return remoteErr
}
