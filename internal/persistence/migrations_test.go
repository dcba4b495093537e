package persistence

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMigrationNamesAreEmbeddedInOrder(t *testing.T) {
	names, err := migrationNames()
	if err != nil {
		t.Fatalf("migrationNames: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded migrations")
	}
	if names[0] != "0001_create_tickets.sql" {
		t.Errorf("first migration = %q", names[0])
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("migrations out of order: %q before %q", names[i-1], names[i])
		}
	}
}

func TestTicketsMigrationIsRerunnable(t *testing.T) {
	content, err := migrationFiles.ReadFile("migrations/0001_create_tickets.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(content), "CREATE TABLE IF NOT EXISTS tickets") {
		t.Error("tickets migration should use IF NOT EXISTS")
	}
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, zap.NewNop()); err != nil {
		t.Errorf("RunMigrations(nil pool) = %v, want nil", err)
	}
}
