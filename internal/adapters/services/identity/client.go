// Package identity wraps the remote identity/authentication service. The
// peer owns identity records; this client only speaks its RPC contract.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ExistsReply struct {
	Exists     bool   `json:"exists"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

type CreateReply struct {
	Success    bool   `json:"success"`
	UserID     string `json:"user_id"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

type DeleteReply struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

type ActiveReply struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

type EmailReply struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type VerifyReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) ExistsByEmail(ctx context.Context, email string) (ExistsReply, error) {
	const op = "identity.Client.ExistsByEmail"

	var reply ExistsReply
	err := c.call(ctx, "/v1/users/exists", map[string]any{"email": email}, &reply)
	if err != nil {
		return ExistsReply{}, errorx.Wrap(err, op)
	}

	return reply, nil
}

func (c *Client) CreateUser(ctx context.Context, email, password string) (CreateReply, error) {
	const op = "identity.Client.CreateUser"

	var reply CreateReply
	err := c.call(ctx, "/v1/users", map[string]any{"email": email, "password": password}, &reply)
	if err != nil {
		return CreateReply{}, errorx.Wrap(err, op)
	}

	return reply, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) (DeleteReply, error) {
	const op = "identity.Client.DeleteUser"

	var reply DeleteReply
	err := c.call(ctx, "/v1/users/delete", map[string]any{"id": userID}, &reply)
	if err != nil {
		return DeleteReply{}, errorx.Wrap(err, op)
	}

	return reply, nil
}

func (c *Client) SetActive(ctx context.Context, userID string, active bool) (ActiveReply, error) {
	const op = "identity.Client.SetActive"

	var reply ActiveReply
	err := c.call(ctx, "/v1/users/active", map[string]any{"id": userID, "is_active": active}, &reply)
	if err != nil {
		return ActiveReply{}, errorx.Wrap(err, op)
	}

	return reply, nil
}

func (c *Client) GetEmailByID(ctx context.Context, userID string) (EmailReply, error) {
	const op = "identity.Client.GetEmailByID"

	var reply EmailReply
	err := c.call(ctx, "/v1/users/email", map[string]any{"id": userID}, &reply)
	if err != nil {
		return EmailReply{}, errorx.Wrap(err, op)
	}

	return reply, nil
}

func (c *Client) MarkVerified(ctx context.Context, email, code string) (VerifyReply, error) {
	const op = "identity.Client.MarkVerified"

	var reply VerifyReply
	err := c.call(ctx, "/v1/users/verify", map[string]any{"email": email, "code": code}, &reply)
	if err != nil {
		return VerifyReply{}, errorx.Wrap(err, op)
	}

	return reply, nil
}

// RemoteError converts a remote-reported failure into the uniform error
// shape, keeping the peer's status classification and message unchanged.
func RemoteError(statusCode int, message string) *errorx.I18nError {
	var e *errorx.I18nError
	switch statusCode {
	case http.StatusBadRequest:
		e = errorx.NewInvalidRequest()
	case http.StatusNotFound:
		e = errorx.NewNotFound()
	case http.StatusConflict:
		e = errorx.NewConflict()
	default:
		e = errorx.NewUpstreamError()
	}

	if message != "" {
		e = e.WithMessage(message)
	}
	if statusCode != 0 {
		e = e.WithHTTPCode(statusCode)
	}
	return e
}

func (c *Client) call(ctx context.Context, path string, payload map[string]any, reply any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A timeout is a remote failure like any other; the saga compensates
		// the same way.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errorx.NewUpstreamTimeout().WithCause(err)
		}
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return errorx.NewUpstreamTimeout().WithCause(err)
		}
		return errorx.NewUpstreamError().WithCause(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorx.NewUpstreamError().WithCause(err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return errorx.NewUpstreamError().WithCause(fmt.Errorf("identity service returned %d: %s", resp.StatusCode, data))
	}

	if err := json.Unmarshal(data, reply); err != nil {
		return errorx.NewUpstreamError().WithCause(fmt.Errorf("failed to decode identity response: %w", err))
	}

	return nil
}
