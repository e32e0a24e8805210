package stub

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/five82/apolice/internal/policy"
)

//go:embed fixtures/apolices.yaml
var defaultFixtures []byte

// DefaultFixtures returns the embedded fixture set.
func DefaultFixtures() (policy.ResultSet, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads a YAML fixture file. An empty path loads the embedded
// fixtures.
func LoadFixtures(path string) (policy.ResultSet, error) {
	if path == "" {
		return DefaultFixtures()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes a YAML sequence of mappings into records, keeping
// mapping key order.
func ParseFixtures(data []byte) (policy.ResultSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if doc.Kind == 0 {
		return policy.ResultSet{}, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parse fixtures: line %d: expected a list of policies", root.Line)
	}

	set := make(policy.ResultSet, 0, len(root.Content))
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parse fixtures: line %d: policy must be a mapping", item.Line)
		}
		v, err := nodeValue(item)
		if err != nil {
			return nil, err
		}
		set = append(set, v.(policy.Record))
	}
	return set, nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		var rec policy.Record
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			val, err := nodeValue(v)
			if err != nil {
				return nil, err
			}
			rec.Set(k.Value, val)
		}
		return rec, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, fmt.Errorf("parse fixtures: line %d: unsupported node", n.Line)
}

// scalarValue keeps timestamps and strings as text so dates reach the
// client exactly as written.
func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("parse fixtures: line %d: %w", n.Line, err)
		}
		return v, nil
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("parse fixtures: line %d: %w", n.Line, err)
		}
		return v, nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("parse fixtures: line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return n.Value, nil
}
