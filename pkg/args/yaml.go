package args

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping of options, keeping declaration order.
//
// A bare value is a flag. The explicit form
//
//	key:
//	  kind: flag_list
//	  value: [[1, 2], [3, 4]]
//
// selects any other kind.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of options", node.Line)
	}
	rec := Record{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		arg, err := decodeArgument(key, node.Content[i+1])
		if err != nil {
			return err
		}
		rec = rec.With(arg)
	}
	*r = rec
	return nil
}

func decodeArgument(key string, node *yaml.Node) (Argument, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		v, err := DecodeValue(node)
		if err != nil {
			return Argument{}, fmt.Errorf("option %q: %w", key, err)
		}
		return Argument{Key: key, Kind: Flag, Value: v}, nil
	}

	var kindNode, valueNode *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "kind":
			kindNode = node.Content[i+1]
		case "value":
			valueNode = node.Content[i+1]
		default:
			return Argument{}, fmt.Errorf("option %q: line %d: unexpected field %q, only kind and value are allowed",
				key, node.Content[i].Line, node.Content[i].Value)
		}
	}
	if kindNode == nil || valueNode == nil {
		return Argument{}, fmt.Errorf("option %q: line %d: both kind and value are required", key, node.Line)
	}
	kind, err := ParseKind(kindNode.Value)
	if err != nil {
		return Argument{}, fmt.Errorf("option %q: %w", key, err)
	}
	v, err := DecodeValue(valueNode)
	if err != nil {
		return Argument{}, fmt.Errorf("option %q: %w", key, err)
	}
	return Argument{Key: key, Kind: kind, Value: v}, nil
}

// DecodeValue decodes a scalar, a sequence of scalars or a sequence of
// sequences of scalars.
func DecodeValue(node *yaml.Node) (Value, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		s, err := DecodeScalar(node)
		if err != nil {
			return Value{}, err
		}
		return ScalarValue(s), nil
	case yaml.SequenceNode:
		return decodeSequence(node)
	default:
		return Value{}, fmt.Errorf("line %d: nested mappings are not supported as option values", node.Line)
	}
}

func decodeSequence(node *yaml.Node) (Value, error) {
	if len(node.Content) == 0 {
		return ListValue(), nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		nested := make([][]Scalar, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.SequenceNode {
				return Value{}, fmt.Errorf("line %d: cannot mix lists and scalars", item.Line)
			}
			inner, err := decodeScalars(item)
			if err != nil {
				return Value{}, err
			}
			nested = append(nested, inner)
		}
		return NestedValue(nested...), nil
	}
	list, err := decodeScalars(node)
	if err != nil {
		return Value{}, err
	}
	return ListValue(list...), nil
}

func decodeScalars(node *yaml.Node) ([]Scalar, error) {
	scalars := make([]Scalar, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: lists may nest at most two levels deep", item.Line)
		}
		s, err := DecodeScalar(item)
		if err != nil {
			return nil, err
		}
		scalars = append(scalars, s)
	}
	return scalars, nil
}

func DecodeScalar(node *yaml.Node) (Scalar, error) {
	switch node.ShortTag() {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Scalar{}, err
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Scalar{}, err
		}
		return Float(f), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Scalar{}, err
		}
		return Bool(b), nil
	case "!!null":
		return Scalar{}, fmt.Errorf("line %d: missing value", node.Line)
	default:
		return Str(node.Value), nil
	}
}
