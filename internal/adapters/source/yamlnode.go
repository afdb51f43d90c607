package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yaml.Node manipulation helpers. Fixes are applied by editing the parsed
// node tree and re-marshaling the whole document, so comments, ordering and
// untouched entries survive the rewrite.

// marshalYAMLDoc re-serializes the node tree with two-space indentation, the
// convention the roster and matrix files are written in. yaml.Marshal's
// default indent is four, which would re-indent every untouched line.
func marshalYAMLDoc(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func boolNode(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}
}

func intSeqNode(values ...int) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return seq
}

func strSeqNode(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range values {
		seq.Content = append(seq.Content, scalarNode(v))
	}
	return seq
}

// fieldNode builds the replacement node for a tracked field value given in
// canonical string form.
func fieldNode(field, value string) (*yaml.Node, error) {
	switch field {
	case "role", "display_name":
		return scalarNode(value), nil
	case "active":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("active value %q is not a bool", value)
		}
		return boolNode(b), nil
	case "chat_input_coordinates", "onboarding_input_coordinates":
		p, err := parseCoordValue(value)
		if err != nil {
			return nil, err
		}
		return intSeqNode(p.X, p.Y), nil
	case "capabilities":
		return strSeqNode(parseCapabilityValue(value)), nil
	default:
		return nil, fmt.Errorf("field %q is not tracked", field)
	}
}

// writeFileAtomic writes data next to path and renames it into place, so a
// failed write never leaves a truncated source file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
