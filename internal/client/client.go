// Package client talks to the ticket intake API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-intake/internal/api/dto"
)

// DefaultTimeout bounds a single API call when the caller sets none.
const DefaultTimeout = 10 * time.Second

// ErrUnreachable wraps transport failures: refused connections, timeouts and
// responses that are not valid JSON.
var ErrUnreachable = errors.New("ticket server unreachable")

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ticket server returned %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client calls the intake API at a fixed base URL.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New returns a client for the server at baseURL, e.g. http://localhost:3001.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// CreateTicket submits a ticket and returns the stored record.
func (c *Client) CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	var ticket dto.TicketResponse
	if err := c.do(ctx, fiber.Post(c.baseURL+"/api/tickets").JSON(req), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListTickets returns every ticket in creation order.
func (c *Client) ListTickets(ctx context.Context) ([]dto.TicketResponse, error) {
	tickets := []dto.TicketResponse{}
	if err := c.do(ctx, fiber.Get(c.baseURL+"/api/tickets"), &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) do(ctx context.Context, agent *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	code, body, errs := agent.Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrUnreachable, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return decodeAPIError(code, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnreachable, err)
	}
	return nil
}

func decodeAPIError(code int, body []byte) error {
	apiErr := &APIError{StatusCode: code, Code: "UNKNOWN", Message: strings.TrimSpace(string(body))}
	var envelope dto.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", code)
	}
	return apiErr
}
