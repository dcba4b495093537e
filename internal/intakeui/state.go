package intakeui

import "github.com/spec-kit/ticket-intake/internal/api/dto"

// State is the submission lifecycle of the form. Exactly one of Idle,
// Loading, Loaded or Failed.
type State interface {
	isState()
}

// Idle means nothing has been submitted yet.
type Idle struct{}

// Loading means a submission is in flight. Previous is the ticket still on
// screen from an earlier submission, if any.
type Loading struct {
	Previous *dto.TicketResponse
}

// Loaded holds the ticket returned by the last successful submission.
type Loaded struct {
	Ticket dto.TicketResponse
}

// Failed holds the message shown after a submission failed. Previous is the
// ticket from an earlier successful submission, if any.
type Failed struct {
	Message  string
	Previous *dto.TicketResponse
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Loaded) isState()  {}
func (Failed) isState()  {}

// shownTicket returns the ticket the response pane displays in state s.
func shownTicket(s State) *dto.TicketResponse {
	switch s := s.(type) {
	case Loaded:
		return &s.Ticket
	case Loading:
		return s.Previous
	case Failed:
		return s.Previous
	}
	return nil
}
