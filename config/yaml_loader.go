package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var tagResolvers = make(map[string]func(*yaml.Node) (*yaml.Node, error))

func addResolver(tag string, fn func(*yaml.Node) (*yaml.Node, error)) {
	tagResolvers[tag] = fn
}

// tagProcessor resolves custom tags in the whole document before decoding
// into target.
type tagProcessor struct {
	target interface{}
}

func (p *tagProcessor) UnmarshalYAML(value *yaml.Node) error {
	resolved, err := resolveTags(value)
	if err != nil {
		return err
	}
	return resolved.Decode(p.target)
}

func resolveTags(node *yaml.Node) (*yaml.Node, error) {
	if fn, ok := tagResolvers[node.Tag]; ok {
		return fn(node)
	}
	if node.Kind == yaml.SequenceNode || node.Kind == yaml.MappingNode || node.Kind == yaml.DocumentNode {
		var err error
		for i := range node.Content {
			node.Content[i], err = resolveTags(node.Content[i])
			if err != nil {
				return nil, err
			}
		}
	}
	return node, nil
}

// resolveEnv replaces "NAME" or "NAME:-default" with the variable's value.
func resolveEnv(node *yaml.Node) (*yaml.Node, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: !env on a non-scalar node", node.Line)
	}
	name, def, _ := strings.Cut(strings.TrimSpace(node.Value), ":-")
	if name == "" {
		return nil, fmt.Errorf("line %d: !env without a variable name", node.Line)
	}
	value := os.Getenv(name)
	if value == "" {
		value = def
	}
	return &yaml.Node{
		Kind:        yaml.ScalarNode,
		Tag:         "!!str",
		Value:       value,
		HeadComment: node.HeadComment,
		LineComment: node.LineComment,
		FootComment: node.FootComment,
		Line:        node.Line,
		Column:      node.Column,
	}, nil
}

func init() {
	addResolver("!env", resolveEnv)
}
