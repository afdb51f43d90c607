package inbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
)

func testMessage(t *testing.T, body string) *models.Message {
	t.Helper()
	msg, err := models.NewMessage("COORDINATOR", []string{"Agent-1"}, body, models.PriorityHigh, []string{"infra"})
	if err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	return msg
}

func TestWriteCreatesEntry(t *testing.T) {
	w := NewWriter(t.TempDir())
	msg := testMessage(t, "please review the plan")

	entry, err := w.Write(context.Background(), msg, "Agent-1", secondary.InboxMeta{Reason: "inactive recipient"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	ef, err := ReadEntryFile(entry.Path)
	if err != nil {
		t.Fatalf("ReadEntryFile failed: %v", err)
	}
	if ef.MessageID != msg.ID || ef.RecipientID != "Agent-1" {
		t.Errorf("unexpected entry identity %s/%s", ef.MessageID, ef.RecipientID)
	}
	if ef.Body != "please review the plan" || ef.Priority != "HIGH" {
		t.Errorf("unexpected entry content %q/%s", ef.Body, ef.Priority)
	}
	if ef.Reason != "inactive recipient" {
		t.Errorf("unexpected reason %q", ef.Reason)
	}
	if ef.DeliveredAt.IsZero() {
		t.Error("delivery timestamp must be set")
	}
}

func TestWriteSameMessageTwiceProducesDistinctEntries(t *testing.T) {
	w := NewWriter(t.TempDir())
	msg := testMessage(t, "retry me")

	first, err := w.Write(context.Background(), msg, "Agent-1", secondary.InboxMeta{})
	if err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	second, err := w.Write(context.Background(), msg, "Agent-1", secondary.InboxMeta{})
	if err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	if first.Path == second.Path {
		t.Fatal("repeated writes must never overwrite an entry")
	}
	entries, err := w.List(context.Background(), "Agent-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestWriteIsolatesRecipients(t *testing.T) {
	w := NewWriter(t.TempDir())
	msg := testMessage(t, "hello")

	if _, err := w.Write(context.Background(), msg, "Agent-1", secondary.InboxMeta{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := w.Write(context.Background(), msg, "Agent-2", secondary.InboxMeta{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	for _, id := range []string{"Agent-1", "Agent-2"} {
		entries, err := w.List(context.Background(), id)
		if err != nil {
			t.Fatalf("List(%s) failed: %v", id, err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry for %s, got %d", id, len(entries))
		}
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	w := NewWriter(t.TempDir())
	msg := testMessage(t, "hello")

	if _, err := w.Write(context.Background(), msg, "Agent-1", secondary.InboxMeta{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	files, err := os.ReadDir(w.Dir("Agent-1"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", f.Name())
		}
	}
}

func TestWriteFailureReturnsInboxWriteError(t *testing.T) {
	root := t.TempDir()
	// A file where the recipient directory should be forces MkdirAll to fail.
	if err := os.WriteFile(filepath.Join(root, "Agent-1"), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	w := NewWriter(root)

	_, err := w.Write(context.Background(), testMessage(t, "hello"), "Agent-1", secondary.InboxMeta{})
	var writeErr *secondary.InboxWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected InboxWriteError, got %v", err)
	}
	if writeErr.RecipientID != "Agent-1" {
		t.Errorf("unexpected recipient in error: %s", writeErr.RecipientID)
	}
}

func TestListEmptyInbox(t *testing.T) {
	w := NewWriter(t.TempDir())

	entries, err := w.List(context.Background(), "Agent-9")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty listing, got %d entries", len(entries))
	}
}

func TestListSkipsForeignFiles(t *testing.T) {
	w := NewWriter(t.TempDir())
	msg := testMessage(t, "hello")
	if _, err := w.Write(context.Background(), msg, "Agent-1", secondary.InboxMeta{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(w.Dir("Agent-1"), "notes.txt"), []byte("scratch"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	entries, err := w.List(context.Background(), "Agent-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}
