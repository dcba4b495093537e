package domain

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

// TicketStatusOpen is assigned at creation and never changes.
const TicketStatusOpen TicketStatus = "Open"

// IssueTypes lists the issue types offered by the submission form. The API
// accepts any text.
var IssueTypes = []string{
	"Payment Issue",
	"Login Problem",
	"Bug Report",
	"General Question",
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          int64
	Name        string
	Email       string
	IssueType   string
	Description string
	Team        Team
	Reply       string
	Status      TicketStatus
}
