package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[int64]domain.Ticket
	nextID  int64
}

// NewMemoryTicketRepository returns a process-local store. Tickets live until
// the process exits.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{
		tickets: make(map[int64]domain.Ticket),
		nextID:  1,
	}
}

func (r *memoryTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = r.nextID
	r.nextID++
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Ticket, 0, len(r.tickets))
	ids := make([]int64, 0, len(r.tickets))
	for id := range r.tickets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		result = append(result, r.tickets[id])
	}
	return result, nil
}

func (r *memoryTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return &ticket, nil
}

func (r *memoryTicketRepository) Ping(context.Context) error {
	return nil
}
