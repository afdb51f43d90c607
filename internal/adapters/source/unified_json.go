package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/example/courier/internal/models"
)

// UnifiedJSON reads the unified agent config: a JSON document with an
// "agents" object keyed by agent ID. It is independently maintained from the
// roster, which is exactly why the validator exists.
type UnifiedJSON struct {
	path string
}

// NewUnifiedJSON creates a unified config source for the given file path.
func NewUnifiedJSON(path string) *UnifiedJSON {
	return &UnifiedJSON{path: path}
}

type unifiedFile struct {
	Agents map[string]unifiedEntry `json:"agents"`
}

type unifiedEntry struct {
	Role         string   `json:"role"`
	DisplayName  string   `json:"display_name"`
	Chat         *[]int   `json:"chat_input_coordinates"`
	Active       *bool    `json:"active"`
	Capabilities []string `json:"capabilities"`
}

// Name returns the config file path.
func (u *UnifiedJSON) Name() string {
	return u.path
}

func (u *UnifiedJSON) parse() (*unifiedFile, error) {
	data, err := os.ReadFile(u.path)
	if err != nil {
		return nil, &models.MalformedConfigError{Source: u.path, Reason: "cannot read config", Cause: err}
	}
	var file unifiedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &models.MalformedConfigError{Source: u.path, Reason: "cannot parse config", Cause: err}
	}
	return &file, nil
}

// EntityIDs implements secondary.ConfigSource.
func (u *UnifiedJSON) EntityIDs() ([]string, error) {
	file, err := u.parse()
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
func (u *UnifiedJSON) Field(entityID, field string) (string, bool, error) {
	file, err := u.parse()
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
		if entry.Active == nil {
			return "", false, nil
		}
		return boolValue(*entry.Active), true, nil
	case models.FieldChatCoords:
		if entry.Chat == nil || len(*entry.Chat) != 2 {
			return "", false, nil
		}
		return coordValue(models.Point{X: (*entry.Chat)[0], Y: (*entry.Chat)[1]}), true, nil
	case models.FieldCapabilities:
		if entry.Capabilities == nil {
			return "", false, nil
		}
		return capabilityValue(entry.Capabilities), true, nil
	}
	return "", false, nil
}

// SetField implements secondary.WritableSource. The new value is spliced
// into the raw document bytes in place of the old one; every other byte of
// the file, including key order and formatting, is left exactly as found.
func (u *UnifiedJSON) SetField(entityID, field, value string) error {
	data, err := os.ReadFile(u.path)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("document is not valid JSON")
	}

	typed, err := jsonFieldValue(field, value)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(typed)
	if err != nil {
		return err
	}

	out, err := spliceAgentField(data, entityID, field, encoded)
	if err != nil {
		return err
	}
	return writeFileAtomic(u.path, out)
}

// spliceAgentField walks the token stream to the target field inside
// doc.agents[entityID] and replaces just that value's bytes. A field the
// entry does not yet have is inserted before the entry's closing brace.
func spliceAgentField(data []byte, entityID, field string, value []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		if key != "agents" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("agents is not an object")
		}
		for dec.More() {
			id, err := stringToken(dec)
			if err != nil {
				return nil, err
			}
			if id != entityID {
				if err := skipValue(dec); err != nil {
					return nil, err
				}
				continue
			}
			return spliceEntryField(data, dec, field, value)
		}
		return nil, fmt.Errorf("agent %s not present", entityID)
	}
	return nil, fmt.Errorf("no agents object")
}

func spliceEntryField(data []byte, dec *json.Decoder, field string, value []byte) ([]byte, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("agent entry is not an object")
	}

	hasFields := false
	for dec.More() {
		hasFields = true
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if key != field {
			continue
		}
		// RawMessage holds the value's bytes verbatim, so its length pins
		// down where the value starts in the original document.
		end := dec.InputOffset()
		start := end - int64(len(raw))
		return spliceBytes(data, start, end, value), nil
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '}' {
		return nil, fmt.Errorf("agent entry is not an object")
	}
	at := dec.InputOffset() - 1
	ins := fmt.Sprintf("%q: %s", field, value)
	if hasFields {
		ins = ", " + ins
	}
	return spliceBytes(data, at, at, []byte(ins)), nil
}

func spliceBytes(data []byte, start, end int64, value []byte) []byte {
	out := make([]byte, 0, int64(len(data))-(end-start)+int64(len(value)))
	out = append(out, data[:start]...)
	out = append(out, value...)
	out = append(out, data[end:]...)
	return out
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}

func jsonFieldValue(field, value string) (any, error) {
	switch field {
	case "role", "display_name":
		return value, nil
	case "active":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("active value %q is not a bool", value)
		}
		return b, nil
	case "chat_input_coordinates", "onboarding_input_coordinates":
		p, err := parseCoordValue(value)
		if err != nil {
			return nil, err
		}
		return []int{p.X, p.Y}, nil
	case "capabilities":
		return parseCapabilityValue(value), nil
	default:
		return nil, fmt.Errorf("field %q is not tracked", field)
	}
}
