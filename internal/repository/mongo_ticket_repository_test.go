package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Runs against the server named by TEST_MONGO_URI using a throwaway database.
func TestMongoTicketRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("ticket_intake_test_" + time.Now().Format("20060102150405"))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	testTicketRepository(t, NewMongoTicketRepository(db))
	testConcurrentCreates(t, NewMongoTicketRepository(client.Database(db.Name()+"_concurrent")), 20)
	t.Cleanup(func() { _ = client.Database(db.Name() + "_concurrent").Drop(context.Background()) })
}
