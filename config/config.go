// Package config loads state machine definitions from YAML or JSON documents.
//
// A definition names the initial state and lists every state together with
// the events it reacts to:
//
//	initial: idle
//	states:
//	  idle:
//	    transitions:
//	      start: running
//	  running:
//	    transitions:
//	      stop: idle
//
// States keep the order in which they appear in the document.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/enetx/fsm/v2"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrNoDocument is returned when the input holds no YAML or JSON document.
var ErrNoDocument = errors.New("config: empty document")

type document struct {
	Initial string    `yaml:"initial"`
	States  yaml.Node `yaml:"states"`
}

type stateDoc struct {
	Transitions map[string]string `mapstructure:"transitions"`
}

// Load reads the definition at path.
func Load(path string) (fsm.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fsm.Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return fsm.Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Build parses data and constructs the machine it describes.
func Build(data []byte, opts ...fsm.Option) (*fsm.FSM, error) {
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return fsm.New(cfg, opts...)
}

// Parse decodes a YAML or JSON definition. It checks the document's shape
// only; whether the initial state exists is left to fsm.New.
func Parse(data []byte) (fsm.Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fsm.Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if doc.Initial == "" && doc.States.Kind == 0 {
		return fsm.Config{}, ErrNoDocument
	}

	table, err := parseStates(&doc.States)
	if err != nil {
		return fsm.Config{}, err
	}

	return fsm.Config{States: table, Initial: fsm.State(doc.Initial)}, nil
}

func parseStates(node *yaml.Node) (*fsm.StateTable, error) {
	table := fsm.NewStateTable()

	switch node.Kind {
	case 0:
		return table, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("config: line %d: states must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, body := node.Content[i], node.Content[i+1]
		name := fsm.State(key.Value)

		if table.Has(name) {
			return nil, fmt.Errorf("config: line %d: state %q defined twice", key.Line, name)
		}

		transitions, err := parseTransitions(body)
		if err != nil {
			return nil, fmt.Errorf("config: state %q: %w", name, err)
		}

		table.Add(name, transitions)
	}

	return table, nil
}

func parseTransitions(body *yaml.Node) (fsm.Transitions, error) {
	transitions := fsm.Transitions{}

	if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
		return transitions, nil
	}

	var raw map[string]any
	if err := body.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: %w", body.Line, err)
	}

	var state stateDoc
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &state,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("line %d: %w", body.Line, err)
	}

	for event, to := range state.Transitions {
		transitions[fsm.Event(event)] = fsm.State(to)
	}

	return transitions, nil
}
