package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

// ErrTicketNotFound is returned when no ticket has the requested id.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepository encapsulates ticket persistence. Create assigns the next
// sequential id to ticket.ID; List returns tickets in id order, which is also
// creation order.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Ping(ctx context.Context) error
}

type postgresTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTicketRepository instantiates a repository backed by the tickets table.
func NewPostgresTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &postgresTicketRepository{pool: pool}
}

func (r *postgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (name, email, issue_type, description, team, reply, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Name,
		ticket.Email,
		ticket.IssueType,
		ticket.Description,
		ticket.Team,
		ticket.Reply,
		ticket.Status,
	).Scan(&ticket.ID); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *postgresTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, name, email, issue_type, description, team, reply, status
        FROM tickets ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *postgresTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT id, name, email, issue_type, description, team, reply, status
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	return &ticket, nil
}

func (r *postgresTicketRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return r.pool.Ping(ctx)
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.Name,
		&ticket.Email,
		&ticket.IssueType,
		&ticket.Description,
		&ticket.Team,
		&ticket.Reply,
		&ticket.Status,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
