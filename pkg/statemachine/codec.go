package statemachine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a states mapping keeping declaration order.
// A state with a null body is terminal.
func (m *StateMap) UnmarshalYAML(value *yaml.Node) error {
	if isYAMLNull(value) {
		*m = StateMap{}
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: states must be a mapping", value.Line)
	}

	var out StateMap
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]
		name := key.Value
		if out.Has(name) {
			return fmt.Errorf("line %d: duplicate state %q", key.Line, name)
		}

		var def StateDef
		if !isYAMLNull(body) {
			if err := checkStateFields(name, body); err != nil {
				return err
			}
			if err := body.Decode(&def); err != nil {
				return fmt.Errorf("state %q: %w", name, err)
			}
		}
		out.Set(name, def)
	}

	*m = out
	return nil
}

// MarshalYAML encodes the states mapping in declaration order.
func (m StateMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range m.names {
		var body yaml.Node
		if err := body.Encode(m.defs[name]); err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&body,
		)
	}
	return node, nil
}

// UnmarshalJSON decodes a states object keeping declaration order.
func (m *StateMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("states must be an object")
	}

	var out StateMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in states object", tok)
		}
		if out.Has(name) {
			return fmt.Errorf("duplicate state %q", name)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("state %q: %w", name, err)
		}
		var def StateDef
		body := json.NewDecoder(bytes.NewReader(raw))
		body.DisallowUnknownFields()
		if err := body.Decode(&def); err != nil {
			return fmt.Errorf("state %q: %w", name, err)
		}
		out.Set(name, def)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}

// MarshalJSON encodes the states object in declaration order.
func (m StateMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(m.defs[name])
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// checkStateFields rejects keys other than "transitions" in a state body.
func checkStateFields(name string, body *yaml.Node) error {
	if body.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(body.Content); i += 2 {
		if key := body.Content[i]; key.Value != "transitions" {
			return fmt.Errorf("line %d: state %q: unknown field %q", key.Line, name, key.Value)
		}
	}
	return nil
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
