package dto

import "github.com/spec-kit/ticket-intake/internal/domain"

// CreateTicketRequest payload. Absent fields decode as empty strings.
type CreateTicketRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
}

// TicketResponse is the wire form of a stored ticket.
type TicketResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	IssueType   string              `json:"issueType"`
	Description string              `json:"description"`
	Team        domain.Team         `json:"team"`
	Reply       string              `json:"reply"`
	Status      domain.TicketStatus `json:"status"`
}

// ErrorResponse is the envelope rendered for failed requests.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
