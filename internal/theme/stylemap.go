package theme

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StyleMap is a string keyed collection of styles that remembers insertion
// order. Wildcard lookups walk the keys in that order, so the first declared
// wildcard wins.
type StyleMap struct {
	keys    []string
	entries map[string]StyleConfig
}

// NewStyleMap builds a map holding pairs in the given order.
func NewStyleMap(pairs ...Entry) StyleMap {
	var m StyleMap
	for _, p := range pairs {
		m.Set(p.Key, p.Config)
	}
	return m
}

// Entry is a single key/config pair of a StyleMap.
type Entry struct {
	Key    string
	Config StyleConfig
}

// Set stores cfg under key. Overwriting keeps the original position.
func (m *StyleMap) Set(key string, cfg StyleConfig) {
	if m.entries == nil {
		m.entries = make(map[string]StyleConfig)
	}
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = cfg
}

// Get returns the style stored under key.
func (m StyleMap) Get(key string) (StyleConfig, bool) {
	cfg, ok := m.entries[key]
	return cfg, ok
}

// Len returns the number of stored keys.
func (m StyleMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m StyleMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Entries returns the pairs in insertion order.
func (m StyleMap) Entries() []Entry {
	out := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Entry{Key: k, Config: m.entries[k]})
	}
	return out
}

// Clone returns a deep copy.
func (m StyleMap) Clone() StyleMap {
	var out StyleMap
	for _, k := range m.keys {
		out.Set(k, m.entries[k].clone())
	}
	return out
}

// UnmarshalYAML decodes a mapping node, keeping document order.
func (m *StyleMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: style map must be a mapping", value.Line)
	}

	*m = StyleMap{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		var cfg StyleConfig
		if err := value.Content[i+1].Decode(&cfg); err != nil {
			return err
		}
		m.Set(keyNode.Value, cfg)
	}
	return nil
}

// MarshalYAML encodes the map as a mapping node in insertion order.
func (m StyleMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		var valueNode yaml.Node
		if err := valueNode.Encode(m.entries[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &valueNode)
	}
	return node, nil
}

// IsZero lets yaml omitempty skip empty maps.
func (m StyleMap) IsZero() bool {
	return len(m.keys) == 0
}

// MarshalJSON encodes the map as an object. encoding/json sorts object keys,
// so the insertion order is not preserved in JSON output.
func (m StyleMap) MarshalJSON() ([]byte, error) {
	if m.entries == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.entries)
}
