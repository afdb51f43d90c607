package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/courier/internal/models"
)

func writeMatrix(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capabilities.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write matrix: %v", err)
	}
	return path
}

const sampleMatrix = `agents:
  - id: Agent-1
    role: IMPLEMENTER
    active: true
    capabilities: [sql, go]
  - id: Agent-2
    role: OBSERVER
`

func TestMatrixEntityIDs(t *testing.T) {
	m := NewCapabilityMatrix(writeMatrix(t, sampleMatrix))

	ids, err := m.EntityIDs()
	if err != nil {
		t.Fatalf("EntityIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "Agent-1" || ids[1] != "Agent-2" {
		t.Errorf("unexpected IDs %v", ids)
	}
}

func TestMatrixField(t *testing.T) {
	m := NewCapabilityMatrix(writeMatrix(t, sampleMatrix))

	if v, ok, _ := m.Field("Agent-1", models.FieldRole); !ok || v != "IMPLEMENTER" {
		t.Errorf("unexpected role %q (ok=%v)", v, ok)
	}
	if v, ok, _ := m.Field("Agent-1", models.FieldCapabilities); !ok || v != "go,sql" {
		t.Errorf("unexpected capabilities %q (ok=%v)", v, ok)
	}

	// The matrix holds no opinion on coordinates, display names or fields an
	// entry omits.
	if _, ok, _ := m.Field("Agent-1", models.FieldChatCoords); ok {
		t.Error("matrix must not report coordinates")
	}
	if _, ok, _ := m.Field("Agent-1", models.FieldDisplayName); ok {
		t.Error("matrix must not report display names")
	}
	if _, ok, _ := m.Field("Agent-2", models.FieldActive); ok {
		t.Error("Agent-2 declares no active flag")
	}
}

func TestMatrixSetField(t *testing.T) {
	path := writeMatrix(t, sampleMatrix)
	m := NewCapabilityMatrix(path)

	if err := m.SetField("Agent-2", models.FieldRole, "DOCS_WRITER"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	if v, _, _ := m.Field("Agent-2", models.FieldRole); v != "DOCS_WRITER" {
		t.Errorf("role not updated: %q", v)
	}
	if v, _, _ := m.Field("Agent-1", models.FieldRole); v != "IMPLEMENTER" {
		t.Errorf("untouched entry changed: %q", v)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	orig := strings.Split(sampleMatrix, "\n")
	got := strings.Split(string(raw), "\n")
	if len(got) != len(orig) {
		t.Fatalf("line count changed: %d -> %d\n%s", len(orig), len(got), raw)
	}
	var changed []int
	for i := range orig {
		if orig[i] != got[i] {
			changed = append(changed, i)
		}
	}
	if len(changed) != 1 {
		t.Fatalf("expected exactly one changed line, got %d: %v\n%s", len(changed), changed, raw)
	}

	if err := m.SetField("Agent-404", models.FieldRole, "OBSERVER"); err == nil {
		t.Error("expected error for absent agent")
	}
}
