package app

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
	"github.com/example/courier/internal/registry"
)

// stubRoster feeds a fixed profile set into a registry.
type stubRoster struct {
	profiles []*models.AgentProfile
}

func (s *stubRoster) Name() string { return "stub-roster" }

func (s *stubRoster) LoadProfiles() ([]*models.AgentProfile, []string, error) {
	return s.profiles, nil, nil
}

func newTestRegistry(t *testing.T, profiles ...*models.AgentProfile) *registry.Registry {
	t.Helper()
	reg := registry.New(&stubRoster{profiles: profiles}, 19)
	if _, err := reg.Load(); err != nil {
		t.Fatalf("registry load failed: %v", err)
	}
	return reg
}

func testProfile(id string, active bool) *models.AgentProfile {
	return &models.AgentProfile{
		ID:        id,
		Role:      models.RoleImplementer,
		ChatInput: models.Point{X: 100, Y: 200},
		Active:    active,
	}
}

func testMessage(t *testing.T, sender string, recipients []string, body string, priority models.Priority) *models.Message {
	t.Helper()
	msg, err := models.NewMessage(sender, recipients, body, priority, nil)
	if err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	return msg
}

// mockInboxWriter records fallback writes in memory.
type mockInboxWriter struct {
	mu      sync.Mutex
	entries []mockInboxEntry
	failErr error
}

type mockInboxEntry struct {
	MessageID   string
	RecipientID string
	Reason      string
}

func (m *mockInboxWriter) Write(ctx context.Context, msg *models.Message, recipientID string, meta secondary.InboxMeta) (*secondary.InboxEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, &secondary.InboxWriteError{RecipientID: recipientID, Cause: m.failErr}
	}
	m.entries = append(m.entries, mockInboxEntry{
		MessageID:   msg.ID,
		RecipientID: recipientID,
		Reason:      meta.Reason,
	})
	return &secondary.InboxEntry{MessageID: msg.ID, RecipientID: recipientID}, nil
}

func (m *mockInboxWriter) List(ctx context.Context, recipientID string) ([]*secondary.InboxEntry, error) {
	return nil, nil
}

// mockAttemptRepo records audit entries in memory.
type mockAttemptRepo struct {
	mu      sync.Mutex
	records []*secondary.AttemptRecord
}

func (m *mockAttemptRepo) Record(ctx context.Context, attempt *secondary.AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, attempt)
	return nil
}

func (m *mockAttemptRepo) List(ctx context.Context, filters secondary.AttemptFilters) ([]*secondary.AttemptRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*secondary.AttemptRecord(nil), m.records...), nil
}

// mapSource is an in-memory read-only config source keyed by entity then field.
type mapSource struct {
	name string
	data map[string]map[string]string
}

func (m *mapSource) Name() string { return m.name }

func (m *mapSource) EntityIDs() ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mapSource) Field(entityID, field string) (string, bool, error) {
	fields, ok := m.data[entityID]
	if !ok {
		return "", false, nil
	}
	v, ok := fields[field]
	return v, ok, nil
}

// writableMapSource adds SetField on top of mapSource.
type writableMapSource struct {
	mapSource
	setErr error
}

func (m *writableMapSource) SetField(entityID, field, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.data[entityID] == nil {
		m.data[entityID] = make(map[string]string)
	}
	m.data[entityID][field] = value
	return nil
}
