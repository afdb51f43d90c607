package source

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/example/courier/internal/models"
)

// RosterYAML is the canonical coordinate config source: a YAML file mapping
// agent IDs to role, coordinates, active flag and capabilities. It feeds the
// coordinate registry and doubles as an SSOT source for the validator.
type RosterYAML struct {
	path string
}

// NewRosterYAML creates a roster source for the given file path.
func NewRosterYAML(path string) *RosterYAML {
	return &RosterYAML{path: path}
}

type rosterFile struct {
	Agents map[string]rosterEntry `yaml:"agents"`
}

type rosterEntry struct {
	Role         string   `yaml:"role"`
	DisplayName  string   `yaml:"display_name"`
	Chat         *[]int   `yaml:"chat_input_coordinates"`
	Onboarding   *[]int   `yaml:"onboarding_input_coordinates"`
	Active       bool     `yaml:"active"`
	Capabilities []string `yaml:"capabilities"`
	TmuxTarget   string   `yaml:"tmux_target"`
}

// Name returns the roster file path.
func (r *RosterYAML) Name() string {
	return r.path
}

func (r *RosterYAML) parse() (*rosterFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, &models.MalformedConfigError{Source: r.path, Reason: "cannot read roster", Cause: err}
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &models.MalformedConfigError{Source: r.path, Reason: "cannot parse roster", Cause: err}
	}
	if len(file.Agents) == 0 {
		return nil, &models.MalformedConfigError{Source: r.path, Reason: "roster declares no agents"}
	}
	return &file, nil
}

// LoadProfiles implements registry.RosterSource.
func (r *RosterYAML) LoadProfiles() ([]*models.AgentProfile, []string, error) {
	file, err := r.parse()
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(file.Agents))
	for id := range file.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var profiles []*models.AgentProfile
	var warnings []string
	for _, id := range ids {
		entry := file.Agents[id]

		if !models.ValidRole(models.Role(entry.Role)) {
			return nil, nil, &models.MalformedConfigError{
				Source: r.path,
				Reason: fmt.Sprintf("agent %s: unknown role %q", id, entry.Role),
			}
		}

		p := &models.AgentProfile{
			ID:           id,
			Role:         models.Role(entry.Role),
			DisplayName:  entry.DisplayName,
			Active:       entry.Active,
			Capabilities: entry.Capabilities,
			TmuxTarget:   entry.TmuxTarget,
		}

		chat, err := coordPair(entry.Chat)
		if err != nil {
			if entry.Active {
				return nil, nil, &models.MalformedConfigError{
					Source: r.path,
					Reason: fmt.Sprintf("agent %s: chat_input_coordinates: %v", id, err),
				}
			}
			warnings = append(warnings, fmt.Sprintf("inactive agent %s has no usable chat coordinates", id))
		} else {
			p.ChatInput = chat
		}

		if entry.Onboarding != nil {
			ob, err := coordPair(entry.Onboarding)
			if err != nil {
				return nil, nil, &models.MalformedConfigError{
					Source: r.path,
					Reason: fmt.Sprintf("agent %s: onboarding_input_coordinates: %v", id, err),
				}
			}
			p.Onboarding = ob
			p.OnboardingExplicit = true
		}

		profiles = append(profiles, p)
	}

	return profiles, warnings, nil
}

func coordPair(raw *[]int) (models.Point, error) {
	if raw == nil {
		return models.Point{}, fmt.Errorf("missing")
	}
	if len(*raw) != 2 {
		return models.Point{}, fmt.Errorf("expected [x, y], got %d values", len(*raw))
	}
	return models.Point{X: (*raw)[0], Y: (*raw)[1]}, nil
}

// EntityIDs implements secondary.ConfigSource.
func (r *RosterYAML) EntityIDs() ([]string, error) {
	file, err := r.parse()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(file.Agents))
	for id := range file.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Field implements secondary.ConfigSource.
func (r *RosterYAML) Field(entityID, field string) (string, bool, error) {
	file, err := r.parse()
	if err != nil {
		return "", false, err
	}
	entry, ok := file.Agents[entityID]
	if !ok {
		return "", false, nil
	}

	switch field {
	case models.FieldRole:
		return entry.Role, entry.Role != "", nil
	case models.FieldDisplayName:
		return entry.DisplayName, entry.DisplayName != "", nil
	case models.FieldActive:
		return boolValue(entry.Active), true, nil
	case models.FieldChatCoords:
		p, err := coordPair(entry.Chat)
		if err != nil {
			return "", false, nil
		}
		return coordValue(p), true, nil
	case models.FieldCapabilities:
		if entry.Capabilities == nil {
			return "", false, nil
		}
		return capabilityValue(entry.Capabilities), true, nil
	}
	return "", false, nil
}

// SetField implements secondary.WritableSource. The document is edited as a
// node tree and rewritten whole, so every untouched entry, comment and key
// ordering survives.
func (r *RosterYAML) SetField(entityID, field, value string) error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return fmt.Errorf("empty document")
	}

	agents := mappingValue(doc.Content[0], "agents")
	if agents == nil {
		return fmt.Errorf("no agents mapping")
	}
	entry := mappingValue(agents, entityID)
	if entry == nil {
		return fmt.Errorf("agent %s not present", entityID)
	}

	node, err := fieldNode(field, value)
	if err != nil {
		return err
	}
	setMappingValue(entry, field, node)

	out, err := marshalYAMLDoc(&doc)
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, out)
}
