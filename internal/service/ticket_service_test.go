package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/spec-kit/ticket-intake/internal/domain"
	"github.com/spec-kit/ticket-intake/internal/events"
	"github.com/spec-kit/ticket-intake/internal/repository"
	apperrors "github.com/spec-kit/ticket-intake/pkg/util/errorutil"
)

func newTestTicketService(dispatcher events.Dispatcher) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo: repository.NewMemoryTicketRepository(),
		Dispatcher: dispatcher,
	})
}

func TestCreateTicketPaymentScenario(t *testing.T) {
	svc := newTestTicketService(nil)

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Name:        "A",
		Email:       "a@x.com",
		IssueType:   "Payment Issue",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	want := domain.Ticket{
		ID:          1,
		Name:        "A",
		Email:       "a@x.com",
		IssueType:   "Payment Issue",
		Description: "d",
		Team:        domain.TeamFinance,
		Reply:       "Thank you! Our Finance team will help you with your payment issue within 24 hours.",
		Status:      domain.TicketStatusOpen,
	}
	if *ticket != want {
		t.Errorf("ticket = %+v, want %+v", *ticket, want)
	}
}

func TestCreateTicketSequentialIDs(t *testing.T) {
	svc := newTestTicketService(nil)
	ctx := context.Background()

	first, err := svc.CreateTicket(ctx, TicketCreateInput{IssueType: "Bug Report"})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	second, err := svc.CreateTicket(ctx, TicketCreateInput{IssueType: "General Question"})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
	if first.Team != domain.TeamTech || second.Team != domain.TeamSupport {
		t.Errorf("teams = %q, %q; want Tech, Support", first.Team, second.Team)
	}
}

func TestCreateTicketKeepsEmptyFields(t *testing.T) {
	svc := newTestTicketService(nil)

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if ticket.Team != domain.TeamSupport {
		t.Errorf("team = %q, want Support", ticket.Team)
	}
	if ticket.Reply == "" {
		t.Error("reply must be set even when every field is empty")
	}
	if ticket.Name != "" || ticket.Email != "" || ticket.Description != "" {
		t.Errorf("empty fields changed: %+v", ticket)
	}
}

func TestListTicketsMatchesCreates(t *testing.T) {
	svc := newTestTicketService(nil)
	ctx := context.Background()

	empty, err := svc.ListTickets(ctx)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("ListTickets on empty store = %#v", empty)
	}

	var created []domain.Ticket
	for _, issueType := range domain.IssueTypes {
		ticket, err := svc.CreateTicket(ctx, TicketCreateInput{Name: "n", IssueType: issueType})
		if err != nil {
			t.Fatalf("CreateTicket(%q): %v", issueType, err)
		}
		created = append(created, *ticket)
	}

	listed, err := svc.ListTickets(ctx)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(listed) != len(created) {
		t.Fatalf("listed %d tickets, want %d", len(listed), len(created))
	}
	for i := range created {
		if listed[i] != created[i] {
			t.Errorf("listed[%d] = %+v, want %+v", i, listed[i], created[i])
		}
	}
}

func TestGetTicketNotFound(t *testing.T) {
	svc := newTestTicketService(nil)

	_, err := svc.GetTicket(context.Background(), 42)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %v, want DomainError", err)
	}
	if domainErr.HTTPStatus != http.StatusNotFound {
		t.Errorf("status = %d, want 404", domainErr.HTTPStatus)
	}
}

func TestCreateTicketPublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})
	svc := newTestTicketService(dispatcher)

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{Email: "a@x.com", IssueType: "Login Problem"})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("published %d events, want 1", len(published))
	}
	event := published[0]
	if event.ID == "" || event.Timestamp.IsZero() {
		t.Errorf("event id/timestamp not filled: %+v", event)
	}
	if event.TicketID != ticket.ID {
		t.Errorf("event ticket id = %d, want %d", event.TicketID, ticket.ID)
	}
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		t.Fatalf("payload type %T", event.Payload)
	}
	if payload.Team != domain.TeamTech || payload.Email != "a@x.com" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestCreateTicketSurvivesFailingSubscriber(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventTicketCreated, func(context.Context, events.Event) error {
		return errors.New("mailer down")
	})
	svc := newTestTicketService(dispatcher)

	if _, err := svc.CreateTicket(context.Background(), TicketCreateInput{IssueType: "Bug Report"}); err != nil {
		t.Fatalf("CreateTicket should not fail on subscriber errors: %v", err)
	}
}
