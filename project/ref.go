package project

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Ref names a source, policy or project. In YAML a reference is either the
// plain name or a mapping carrying a name key, which lets documents refer to
// earlier entries through anchors and aliases.
type Ref string

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Ref) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*r = Ref(value.Value)
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			if key.Value == "name" && val.Kind == yaml.ScalarNode {
				*r = Ref(val.Value)
				return nil
			}
		}
		return fmt.Errorf("line %d: referenced object has no name", value.Line)
	default:
		return fmt.Errorf("line %d: expected a name or an object with a name", value.Line)
	}
}

func refs(names []string) []Ref {
	if names == nil {
		return nil
	}
	out := make([]Ref, len(names))
	for i, n := range names {
		out[i] = Ref(n)
	}
	return out
}
