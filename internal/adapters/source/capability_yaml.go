package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/courier/internal/models"
)

// CapabilityMatrix reads the capability/role matrix: a YAML list of agent
// entries. It carries no coordinates; only role, capabilities and active
// status are compared against the other sources.
type CapabilityMatrix struct {
	path string
}

// NewCapabilityMatrix creates a capability matrix source for the given path.
func NewCapabilityMatrix(path string) *CapabilityMatrix {
	return &CapabilityMatrix{path: path}
}

type matrixFile struct {
	Agents []matrixEntry `yaml:"agents"`
}

type matrixEntry struct {
	ID           string   `yaml:"id"`
	Role         string   `yaml:"role"`
	Active       *bool    `yaml:"active"`
	Capabilities []string `yaml:"capabilities"`
}

// Name returns the matrix file path.
func (c *CapabilityMatrix) Name() string {
	return c.path
}

func (c *CapabilityMatrix) parse() (*matrixFile, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, &models.MalformedConfigError{Source: c.path, Reason: "cannot read matrix", Cause: err}
	}
	var file matrixFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &models.MalformedConfigError{Source: c.path, Reason: "cannot parse matrix", Cause: err}
	}
	return &file, nil
}

func (c *CapabilityMatrix) entry(entityID string) (*matrixEntry, error) {
	file, err := c.parse()
	if err != nil {
		return nil, err
	}
	for i := range file.Agents {
		if file.Agents[i].ID == entityID {
			return &file.Agents[i], nil
		}
	}
	return nil, nil
}

// EntityIDs implements secondary.ConfigSource.
func (c *CapabilityMatrix) EntityIDs() ([]string, error) {
	file, err := c.parse()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(file.Agents))
	for _, e := range file.Agents {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// Field implements secondary.ConfigSource.
func (c *CapabilityMatrix) Field(entityID, field string) (string, bool, error) {
	entry, err := c.entry(entityID)
	if err != nil {
		return "", false, err
	}
	if entry == nil {
		return "", false, nil
	}

	switch field {
	case models.FieldRole:
		return entry.Role, entry.Role != "", nil
	case models.FieldActive:
		if entry.Active == nil {
			return "", false, nil
		}
		return boolValue(*entry.Active), true, nil
	case models.FieldCapabilities:
		if entry.Capabilities == nil {
			return "", false, nil
		}
		return capabilityValue(entry.Capabilities), true, nil
	}
	return "", false, nil
}

// SetField implements secondary.WritableSource.
func (c *CapabilityMatrix) SetField(entityID, field, value string) error {
	data, err := os.ReadFile(c.path)
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
	if agents == nil || agents.Kind != yaml.SequenceNode {
		return fmt.Errorf("no agents list")
	}

	var entry *yaml.Node
	for _, item := range agents.Content {
		if id := mappingValue(item, "id"); id != nil && id.Value == entityID {
			entry = item
			break
		}
	}
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
	return writeFileAtomic(c.path, out)
}
