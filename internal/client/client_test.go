package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intake/internal/api/dto"
	httptransport "github.com/spec-kit/ticket-intake/internal/api/http"
	"github.com/spec-kit/ticket-intake/internal/config"
	"github.com/spec-kit/ticket-intake/internal/domain"
	"github.com/spec-kit/ticket-intake/internal/observability"
	"github.com/spec-kit/ticket-intake/internal/repository"
	"github.com/spec-kit/ticket-intake/internal/service"
)

// startServer runs the intake API on a random local port and returns its base URL.
func startServer(t *testing.T) string {
	t.Helper()
	store := repository.NewMemoryTicketRepository()
	app := httptransport.NewServer(httptransport.ServerDependencies{
		App:          config.AppConfig{Name: "support-ticket-intake", Version: "test"},
		StoreBackend: config.StoreBackendMemory,
		Logger:       zap.NewNop(),
		Metrics:      observability.NewMetrics(),
		Tickets:      service.NewTicketService(service.TicketDependencies{TicketRepo: store}),
		Store:        store,
	})
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(listener) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + listener.Addr().String()
}

// closedAddress returns a base URL nothing is listening on.
func closedAddress(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()
	return "http://" + addr
}

func TestCreateAndListTickets(t *testing.T) {
	c := New(startServer(t), 5*time.Second)
	ctx := context.Background()

	created, err := c.CreateTicket(ctx, dto.CreateTicketRequest{
		Name:        "A",
		Email:       "a@x.com",
		IssueType:   "Payment Issue",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if created.ID != 1 || created.Team != domain.TeamFinance || created.Status != domain.TicketStatusOpen {
		t.Errorf("created = %+v", created)
	}

	second, err := c.CreateTicket(ctx, dto.CreateTicketRequest{Name: "B", IssueType: "Login Problem"})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	tickets, err := c.ListTickets(ctx)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("listed %d tickets, want 2", len(tickets))
	}
	if tickets[0] != *created || tickets[1] != *second {
		t.Errorf("tickets = %+v", tickets)
	}
}

func TestConcurrentSubmissionsGetDistinctIDs(t *testing.T) {
	c := New(startServer(t), 5*time.Second)
	const count = 25

	var wg sync.WaitGroup
	ids := make(chan int64, count)
	errs := make(chan error, count)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket, err := c.CreateTicket(context.Background(), dto.CreateTicketRequest{IssueType: "Bug Report"})
			if err != nil {
				errs <- err
				return
			}
			ids <- ticket.ID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)
	for err := range errs {
		t.Fatalf("CreateTicket: %v", err)
	}

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d issued twice", id)
		}
		if id < 1 || id > count {
			t.Fatalf("id %d outside 1..%d", id, count)
		}
		seen[id] = true
	}
}

func TestCreateTicketUnreachableServer(t *testing.T) {
	c := New(closedAddress(t), 2*time.Second)

	_, err := c.CreateTicket(context.Background(), dto.CreateTicketRequest{Name: "A"})
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("error = %v, want ErrUnreachable", err)
	}
}

func TestAPIErrorsAreDecoded(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/api/tickets", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: dto.ErrorBody{
			Code:    "VALIDATION_FAILED",
			Message: "invalid payload",
		}})
	})
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(listener) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	c := New("http://"+listener.Addr().String()+"/", 5*time.Second)
	_, err = c.CreateTicket(context.Background(), dto.CreateTicketRequest{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != fiber.StatusBadRequest || apiErr.Code != "VALIDATION_FAILED" || apiErr.Message != "invalid payload" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if errors.Is(err, ErrUnreachable) {
		t.Error("API errors must not be reported as unreachable")
	}
}

func TestCancelledContext(t *testing.T) {
	c := New(closedAddress(t), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListTickets(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
