package repository

import "github.com/spec-kit/ticket-intake/internal/domain"

// ticketRecord is the serialized form used by the document and key-value stores.
type ticketRecord struct {
	ID          int64  `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email" bson:"email"`
	IssueType   string `json:"issueType" bson:"issue_type"`
	Description string `json:"description" bson:"description"`
	Team        string `json:"team" bson:"team"`
	Reply       string `json:"reply" bson:"reply"`
	Status      string `json:"status" bson:"status"`
}

func newTicketRecord(ticket *domain.Ticket) ticketRecord {
	return ticketRecord{
		ID:          ticket.ID,
		Name:        ticket.Name,
		Email:       ticket.Email,
		IssueType:   ticket.IssueType,
		Description: ticket.Description,
		Team:        string(ticket.Team),
		Reply:       ticket.Reply,
		Status:      string(ticket.Status),
	}
}

func (r ticketRecord) toDomain() domain.Ticket {
	return domain.Ticket{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		IssueType:   r.IssueType,
		Description: r.Description,
		Team:        domain.Team(r.Team),
		Reply:       r.Reply,
		Status:      domain.TicketStatus(r.Status),
	}
}
