package almanac

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements custom YAML unmarshaling for IntervalDef.
// Accepts either a mapping with named keys or a three element sequence in
// "destination source length" order.
func (d *IntervalDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		type plain IntervalDef

		var p plain

		err := node.Decode(&p)
		if err != nil {
			return err
		}

		*d = IntervalDef(p)

		return nil

	case yaml.SequenceNode:
		var values []uint64

		err := node.Decode(&values)
		if err != nil {
			return err
		}

		if len(values) != 3 {
			return fmt.Errorf("line %d: expected [destination, source, length], got %d values", node.Line, len(values))
		}

		*d = IntervalDef{Destination: values[0], Source: values[1], Length: values[2]}

		return nil

	default:
		return fmt.Errorf("line %d: expected mapping or sequence for interval, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for IntervalDef.
// Outputs the compact flow sequence form.
func (d IntervalDef) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []uint64{d.Destination, d.Source, d.Length} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.FormatUint(v, 10),
		})
	}

	return node, nil
}
