package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

type redisTicketRepository struct {
	client   *redis.Client
	seqKey   string
	indexKey string
	dataKey  string
}

// NewRedisTicketRepository stores tickets under keys starting with prefix:
// a sequence counter, a sorted set of ids scored by id, and a hash of id to
// JSON record.
func NewRedisTicketRepository(client *redis.Client, prefix string) TicketRepository {
	return &redisTicketRepository{
		client:   client,
		seqKey:   prefix + "tickets:seq",
		indexKey: prefix + "tickets:index",
		dataKey:  prefix + "tickets:data",
	}
}

func (r *redisTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	id, err := r.client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return fmt.Errorf("allocate ticket id: %w", err)
	}
	ticket.ID = id

	payload, err := json.Marshal(newTicketRecord(ticket))
	if err != nil {
		return fmt.Errorf("encode ticket %d: %w", id, err)
	}
	member := strconv.FormatInt(id, 10)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.dataKey, member, payload)
		pipe.ZAdd(ctx, r.indexKey, redis.Z{Score: float64(id), Member: member})
		return nil
	})
	if err != nil {
		return fmt.Errorf("store ticket %d: %w", id, err)
	}
	return nil
}

func (r *redisTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list ticket ids: %w", err)
	}
	result := make([]domain.Ticket, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	values, err := r.client.HMGet(ctx, r.dataKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("ticket %s indexed but missing", ids[i])
		}
		ticket, err := decodeTicket(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, nil
}

func (r *redisTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	raw, err := r.client.HGet(ctx, r.dataKey, strconv.FormatInt(id, 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	ticket, err := decodeTicket(raw)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *redisTicketRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}

func decodeTicket(raw string) (domain.Ticket, error) {
	var record ticketRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.Ticket{}, fmt.Errorf("decode ticket: %w", err)
	}
	return record.toDomain(), nil
}
