package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"browser-actions/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

var ErrEmptyScript = errors.New("script has no commands")

type document struct {
	Commands []entity.CommandDescriptor `yaml:"commands"`
}

// LoadFile reads a command script from a YAML or JSON file.
func LoadFile(path string) ([]entity.CommandDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	cmds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

func Load(r io.Reader) ([]entity.CommandDescriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse accepts either a bare list of commands or a mapping with a
// "commands" list.
func Parse(data []byte) ([]entity.CommandDescriptor, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScript
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}

	var cmds []entity.CommandDescriptor
	body := &root
	if body.Kind == yaml.DocumentNode && len(body.Content) > 0 {
		body = body.Content[0]
	}

	switch body.Kind {
	case yaml.SequenceNode:
		if err := body.Decode(&cmds); err != nil {
			return nil, fmt.Errorf("decode commands: %w", err)
		}
	case yaml.MappingNode:
		var doc document
		if err := body.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode commands: %w", err)
		}
		cmds = doc.Commands
	default:
		return nil, fmt.Errorf("decode script: expected a list or a mapping, got %s", kindName(body.Kind))
	}

	if len(cmds) == 0 {
		return nil, ErrEmptyScript
	}
	for i, cmd := range cmds {
		if !cmd.Action.Valid() {
			return nil, fmt.Errorf("command %d: %w: %q", i+1, entity.ErrInvalidAction, cmd.Action)
		}
		if cmd.Args == nil {
			cmds[i].Args = map[string]any{}
		}
	}
	return cmds, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return fmt.Sprintf("node kind %d", k)
}
