package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/courier/internal/adapters/sqlite"
	"github.com/example/courier/internal/db"
	"github.com/example/courier/internal/ports/secondary"
)

func setupAttemptTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if _, err := conn.Exec(db.SchemaSQL); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

func recordTestAttempt(t *testing.T, repo *sqlite.AttemptRepository, recipient, mode, outcome string) {
	t.Helper()
	err := repo.Record(context.Background(), &secondary.AttemptRecord{
		MessageID:   "msg-1",
		SenderID:    "COORDINATOR",
		RecipientID: recipient,
		Mode:        mode,
		Outcome:     outcome,
	})
	if err != nil {
		t.Fatalf("failed to record attempt: %v", err)
	}
}

func TestRecordAndList(t *testing.T) {
	repo := sqlite.NewAttemptRepository(setupAttemptTestDB(t))

	recordTestAttempt(t, repo, "Agent-1", "INJECTED", "SUCCESS")
	recordTestAttempt(t, repo, "Agent-2", "FALLBACK_INBOX", "SUCCESS")
	recordTestAttempt(t, repo, "Agent-3", "FALLBACK_INBOX", "FAILED")

	attempts, err := repo.List(context.Background(), secondary.AttemptFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(attempts))
	}
	// Newest first.
	if attempts[0].RecipientID != "Agent-3" || attempts[2].RecipientID != "Agent-1" {
		t.Errorf("unexpected order: %s .. %s", attempts[0].RecipientID, attempts[2].RecipientID)
	}
	if attempts[0].Timestamp == "" {
		t.Error("timestamp must be populated")
	}
}

func TestListFilters(t *testing.T) {
	repo := sqlite.NewAttemptRepository(setupAttemptTestDB(t))

	recordTestAttempt(t, repo, "Agent-1", "INJECTED", "SUCCESS")
	recordTestAttempt(t, repo, "Agent-1", "FALLBACK_INBOX", "FAILED")
	recordTestAttempt(t, repo, "Agent-2", "INJECTED", "SUCCESS")

	byRecipient, err := repo.List(context.Background(), secondary.AttemptFilters{RecipientID: "Agent-1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byRecipient) != 2 {
		t.Errorf("expected 2 attempts for Agent-1, got %d", len(byRecipient))
	}

	byOutcome, err := repo.List(context.Background(), secondary.AttemptFilters{Outcome: "FAILED"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byOutcome) != 1 || byOutcome[0].RecipientID != "Agent-1" {
		t.Errorf("unexpected FAILED attempts: %+v", byOutcome)
	}

	limited, err := repo.List(context.Background(), secondary.AttemptFilters{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 || limited[0].RecipientID != "Agent-2" {
		t.Errorf("expected only the newest attempt, got %+v", limited)
	}
}

func TestRecordRejectsUnknownMode(t *testing.T) {
	repo := sqlite.NewAttemptRepository(setupAttemptTestDB(t))

	err := repo.Record(context.Background(), &secondary.AttemptRecord{
		MessageID:   "msg-1",
		SenderID:    "COORDINATOR",
		RecipientID: "Agent-1",
		Mode:        "CARRIER_PIGEON",
		Outcome:     "SUCCESS",
	})
	if err == nil {
		t.Error("expected schema check to reject unknown mode")
	}
}
