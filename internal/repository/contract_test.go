package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

// testTicketRepository exercises the behavior every TicketRepository must
// share. The repository must be empty.
func testTicketRepository(t *testing.T, repo TicketRepository) {
	t.Helper()
	ctx := context.Background()

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List on empty store: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("List on empty store = %#v, want empty non-nil slice", empty)
	}

	inputs := []domain.Ticket{
		{Name: "A", Email: "a@x.com", IssueType: "Payment Issue", Description: "d", Team: domain.TeamFinance, Reply: "r1", Status: domain.TicketStatusOpen},
		{Name: "B", Email: "b@x.com", IssueType: "Bug Report", Description: "crash", Team: domain.TeamTech, Reply: "r2", Status: domain.TicketStatusOpen},
		{Name: "", Email: "", IssueType: "", Description: "", Team: domain.TeamSupport, Reply: "r3", Status: domain.TicketStatusOpen},
	}
	created := make([]domain.Ticket, 0, len(inputs))
	for i := range inputs {
		ticket := inputs[i]
		if err := repo.Create(ctx, &ticket); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		if want := int64(i + 1); ticket.ID != want {
			t.Errorf("Create #%d assigned id %d, want %d", i, ticket.ID, want)
		}
		created = append(created, ticket)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != len(created) {
		t.Fatalf("List returned %d tickets, want %d", len(listed), len(created))
	}
	for i := range created {
		if listed[i] != created[i] {
			t.Errorf("List[%d] = %+v, want %+v", i, listed[i], created[i])
		}
	}

	got, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID(2): %v", err)
	}
	if *got != created[1] {
		t.Errorf("GetByID(2) = %+v, want %+v", *got, created[1])
	}

	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("GetByID(99) error = %v, want ErrTicketNotFound", err)
	}
}

// testConcurrentCreates checks that parallel creates never share an id and
// that List follows id order.
func testConcurrentCreates(t *testing.T, repo TicketRepository, count int) {
	t.Helper()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, count)
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket := domain.Ticket{IssueType: "General Question", Team: domain.TeamSupport, Status: domain.TicketStatusOpen}
			errs <- repo.Create(ctx, &ticket)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != count {
		t.Fatalf("List returned %d tickets, want %d", len(listed), count)
	}
	for i, ticket := range listed {
		if want := int64(i + 1); ticket.ID != want {
			t.Fatalf("List[%d].ID = %d, want %d", i, ticket.ID, want)
		}
	}
}
