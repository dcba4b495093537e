package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

const (
	ticketsCollection  = "tickets"
	countersCollection = "counters"
	ticketSequenceID   = "tickets"
)

type mongoTicketRepository struct {
	db       *mongo.Database
	tickets  *mongo.Collection
	counters *mongo.Collection
}

// NewMongoTicketRepository stores tickets in the tickets collection, using the
// ticket id as _id. Ids come from a counter document in the counters collection.
func NewMongoTicketRepository(db *mongo.Database) TicketRepository {
	return &mongoTicketRepository{
		db:       db,
		tickets:  db.Collection(ticketsCollection),
		counters: db.Collection(countersCollection),
	}
}

func (r *mongoTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var err error
	// Two first-ever upserts can race on the counter's _id; the loser retries.
	for attempt := 0; attempt < 2; attempt++ {
		err = r.counters.FindOneAndUpdate(ctx,
			bson.M{"_id": ticketSequenceID},
			bson.M{"$inc": bson.M{"seq": int64(1)}},
			opts,
		).Decode(&counter)
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("allocate ticket id: %w", err)
	}
	ticket.ID = counter.Seq

	if _, err := r.tickets.InsertOne(ctx, newTicketRecord(ticket)); err != nil {
		return fmt.Errorf("insert ticket %d: %w", ticket.ID, err)
	}
	return nil
}

func (r *mongoTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	cursor, err := r.tickets.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	var records []ticketRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	result := make([]domain.Ticket, 0, len(records))
	for _, record := range records {
		result = append(result, record.toDomain())
	}
	return result, nil
}

func (r *mongoTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var record ticketRecord
	if err := r.tickets.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	ticket := record.toDomain()
	return &ticket, nil
}

func (r *mongoTicketRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}
