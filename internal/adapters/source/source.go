// Package source contains ConfigSource adapters for the file formats that
// describe agents: the YAML roster, the unified JSON config and the YAML
// capability matrix. The validator only ever sees the uniform ConfigSource
// interface; format knowledge stays in here.
package source

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/courier/internal/models"
)

// Canonical serialized values compared across sources. Every adapter must
// produce these exact forms so the validator can compare strings.

func coordValue(p models.Point) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func boolValue(b bool) string {
	return strconv.FormatBool(b)
}

// capabilityValue canonicalizes a capability list: sorted, comma joined.
// Capability declarations are sets, so ordering differences between sources
// are not conflicts.
func capabilityValue(caps []string) string {
	sorted := append([]string(nil), caps...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// parseCoordValue parses the canonical "x,y" form back into a point.
func parseCoordValue(v string) (models.Point, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return models.Point{}, fmt.Errorf("coordinate value %q must be x,y", v)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return models.Point{}, fmt.Errorf("coordinate x %q is not an integer", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return models.Point{}, fmt.Errorf("coordinate y %q is not an integer", parts[1])
	}
	return models.Point{X: x, Y: y}, nil
}

// parseCapabilityValue splits the canonical comma-joined form.
func parseCapabilityValue(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
