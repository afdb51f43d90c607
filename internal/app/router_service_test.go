package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/courier/internal/adapters/automation"
	"github.com/example/courier/internal/ctxutil"
	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/primary"
)

func newTestRouter(t *testing.T, sim *automation.RecordingSimulator, inbox *mockInboxWriter, profiles ...*models.AgentProfile) *RouterServiceImpl {
	t.Helper()
	reg := newTestRegistry(t, profiles...)
	engine := NewDeliveryEngine(reg, sim, inbox, nil)
	return NewRouterService(reg, engine)
}

func TestSendMessageRejectsInvalidRequests(t *testing.T) {
	router := newTestRouter(t, automation.NewRecordingSimulator(), &mockInboxWriter{})

	tests := []struct {
		name string
		req  primary.SendMessageRequest
	}{
		{"empty body", primary.SendMessageRequest{SenderID: "A", Recipients: []string{"B"}}},
		{"no recipients", primary.SendMessageRequest{SenderID: "A", Body: "hi"}},
		{"bad priority", primary.SendMessageRequest{SenderID: "A", Recipients: []string{"B"}, Body: "hi", Priority: "SOMEDAY"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := router.SendMessage(context.Background(), tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSendMessageDeduplicatesRecipients(t *testing.T) {
	sim := automation.NewRecordingSimulator()
	router := newTestRouter(t, sim, &mockInboxWriter{},
		testProfile("Agent-1", true), testProfile("Agent-2", true))

	report, err := router.SendMessage(context.Background(), primary.SendMessageRequest{
		SenderID:   "COORDINATOR",
		Recipients: []string{"Agent-1", "Agent-2", "Agent-1"},
		Body:       "sync up",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if len(report.Attempts) != 2 {
		t.Fatalf("expected 2 attempts after dedupe, got %d", len(report.Attempts))
	}
	if report.Injected != 2 {
		t.Errorf("expected 2 injections, got %d", report.Injected)
	}
	if len(sim.Sequences()) != 2 {
		t.Errorf("expected 2 sequences, got %d", len(sim.Sequences()))
	}
}

func TestBroadcastReachesEveryActiveAgentExactlyOnce(t *testing.T) {
	sim := automation.NewRecordingSimulator()
	router := newTestRouter(t, sim, &mockInboxWriter{},
		testProfile("Agent-1", true),
		testProfile("Agent-2", true),
		testProfile("Agent-3", false),
		testProfile("Agent-4", true))

	report, err := router.Broadcast(context.Background(), primary.SendMessageRequest{
		SenderID: "COORDINATOR",
		Body:     "standup in five",
	})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if len(report.Attempts) != 3 {
		t.Fatalf("expected 3 attempts (active agents only), got %d", len(report.Attempts))
	}
	seen := make(map[string]int)
	for _, a := range report.Attempts {
		seen[a.RecipientID]++
	}
	for _, id := range []string{"Agent-1", "Agent-2", "Agent-4"} {
		if seen[id] != 1 {
			t.Errorf("expected exactly 1 attempt for %s, got %d", id, seen[id])
		}
	}
	if seen["Agent-3"] != 0 {
		t.Error("inactive agent must be excluded from broadcast")
	}
}

func TestBroadcastSkipsSender(t *testing.T) {
	router := newTestRouter(t, automation.NewRecordingSimulator(), &mockInboxWriter{},
		testProfile("Agent-1", true), testProfile("Agent-2", true))

	report, err := router.Broadcast(context.Background(), primary.SendMessageRequest{
		SenderID: "Agent-1",
		Body:     "done with my task",
	})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if len(report.Attempts) != 1 || report.Attempts[0].RecipientID != "Agent-2" {
		t.Fatalf("sender must not broadcast to itself: %+v", report.Attempts)
	}
}

func TestSendMessageTakesSenderFromContext(t *testing.T) {
	reg := newTestRegistry(t, testProfile("Agent-1", true), testProfile("Agent-2", true))
	repo := &mockAttemptRepo{}
	engine := NewDeliveryEngine(reg, automation.NewRecordingSimulator(), &mockInboxWriter{}, repo)
	router := NewRouterService(reg, engine)

	ctx := ctxutil.WithSenderID(context.Background(), "Agent-9")
	report, err := router.SendMessage(ctx, primary.SendMessageRequest{
		Recipients: []string{"Agent-1"},
		Body:       "hi",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(report.Attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(report.Attempts))
	}
	if len(repo.records) != 1 || repo.records[0].SenderID != "Agent-9" {
		t.Fatalf("expected audited sender Agent-9, got %+v", repo.records)
	}

	// An explicit sender wins over the context.
	report, err = router.SendMessage(ctx, primary.SendMessageRequest{
		SenderID:   "COORDINATOR",
		Recipients: []string{"Agent-1"},
		Body:       "hi again",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if got := repo.records[len(repo.records)-1].SenderID; got != "COORDINATOR" {
		t.Errorf("explicit sender must override the context, got %q", got)
	}

	// The context identity also drives the broadcast self-skip.
	bctx := ctxutil.WithSenderID(context.Background(), "Agent-1")
	report, err = router.Broadcast(bctx, primary.SendMessageRequest{Body: "ping"})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}
	if len(report.Attempts) != 1 || report.Attempts[0].RecipientID != "Agent-2" {
		t.Fatalf("context sender must be skipped on broadcast: %+v", report.Attempts)
	}
}

func TestBroadcastContinuesPastFailures(t *testing.T) {
	sim := automation.NewRecordingSimulator()
	sim.FailFor["Agent-2"] = errors.New("window not focused")
	inbox := &mockInboxWriter{}
	router := newTestRouter(t, sim, inbox,
		testProfile("Agent-1", true),
		testProfile("Agent-2", true),
		testProfile("Agent-3", true))

	report, err := router.Broadcast(context.Background(), primary.SendMessageRequest{
		SenderID: "COORDINATOR",
		Body:     "standup in five",
	})
	if err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if len(report.Attempts) != 3 {
		t.Fatalf("one bad recipient must not block the rest: got %d attempts", len(report.Attempts))
	}
	if report.Injected != 2 || report.Fallback != 1 || report.Failed != 0 {
		t.Errorf("expected 2 injected / 1 fallback / 0 failed, got %d/%d/%d",
			report.Injected, report.Fallback, report.Failed)
	}
	if len(inbox.entries) != 1 || inbox.entries[0].RecipientID != "Agent-2" {
		t.Errorf("failed recipient must land in its inbox: %+v", inbox.entries)
	}
	if !report.AllDelivered() {
		t.Error("fallback still counts as delivered")
	}
}

func TestSendMessageCancellationStopsSchedulingRecipients(t *testing.T) {
	sim := automation.NewRecordingSimulator()
	router := newTestRouter(t, sim, &mockInboxWriter{},
		testProfile("Agent-1", true), testProfile("Agent-2", true))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := router.SendMessage(ctx, primary.SendMessageRequest{
		SenderID:   "COORDINATOR",
		Recipients: []string{"Agent-1", "Agent-2"},
		Body:       "hi",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(report.Attempts) != 0 {
		t.Errorf("cancelled context must not schedule recipients, got %d attempts", len(report.Attempts))
	}
}

func TestSendMessageDryRunTouchesNothing(t *testing.T) {
	sim := automation.NewRecordingSimulator()
	inbox := &mockInboxWriter{}
	router := newTestRouter(t, sim, inbox, testProfile("Agent-1", true))

	report, err := router.SendMessage(context.Background(), primary.SendMessageRequest{
		SenderID:   "COORDINATOR",
		Recipients: []string{"Agent-1"},
		Body:       "rehearsal",
		DryRun:     true,
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if report.Injected != 1 {
		t.Errorf("dry run must still report the would-be outcome, got %+v", report)
	}
	if len(sim.Sequences()) != 0 {
		t.Error("dry run must not use the real simulator")
	}
	if len(inbox.entries) != 0 {
		t.Error("dry run must not write to the real inbox")
	}
}
