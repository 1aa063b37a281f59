package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BundleSet is a name -> files mapping that keeps the order bundles
// appear in assets.yml
type BundleSet struct {
	order []string
	files map[string][]string
}

// Names returns the bundle names in definition order
func (b BundleSet) Names() []string {
	return append([]string(nil), b.order...)
}

// Files returns the files of the named bundle
func (b BundleSet) Files(name string) ([]string, bool) {
	files, ok := b.files[name]
	return files, ok
}

// Len returns the number of bundles
func (b BundleSet) Len() int {
	return len(b.order)
}

// Set defines or replaces a bundle, keeping its original position
func (b *BundleSet) Set(name string, files []string) {
	if b.files == nil {
		b.files = make(map[string][]string)
	}
	if _, exists := b.files[name]; !exists {
		b.order = append(b.order, name)
	}
	b.files[name] = files
}

// UnmarshalYAML decodes a mapping node while keeping key order
func (b *BundleSet) UnmarshalYAML(value *yaml.Node) error {
	b.order = nil
	b.files = make(map[string][]string)

	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: bundles must be a mapping of name to file list", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]

		if _, exists := b.files[key.Value]; exists {
			return fmt.Errorf("line %d: bundle %q is defined twice", key.Line, key.Value)
		}

		var files []string
		if err := val.Decode(&files); err != nil {
			return fmt.Errorf("line %d: bundle %q: %w", val.Line, key.Value, err)
		}
		b.Set(key.Value, files)
	}

	return nil
}

// MarshalYAML encodes the bundles as a mapping in definition order
func (b BundleSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range b.order {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		val := &yaml.Node{}
		if err := val.Encode(b.files[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
