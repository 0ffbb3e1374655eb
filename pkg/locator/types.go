// Package locator defines the element descriptors uicheck validates and the
// loader that reads them from declarative files. A locator file is an
// ordered list of entries, each naming one element and the selector
// expression that should find it on the page; report order follows file
// order.
package locator

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WaitState is the condition an element must reach to count as found.
type WaitState string

const (
	// StateVisible requires the element to be attached and rendered.
	StateVisible WaitState = "visible"
	// StateAttached only requires the element to be present in the DOM.
	StateAttached WaitState = "attached"
)

// ParseState maps a user-supplied wait state name to a WaitState value.
func ParseState(name string) (WaitState, error) {
	switch WaitState(strings.ToLower(strings.TrimSpace(name))) {
	case StateVisible:
		return StateVisible, nil
	case StateAttached:
		return StateAttached, nil
	}
	return "", fmt.Errorf("unknown wait state '%s' (want visible or attached)", name)
}

// Spec describes a single element to validate. State and Timeout are
// optional per-element overrides; zero values inherit the run defaults.
type Spec struct {
	Name     string        `yaml:"name" json:"name"`
	Selector string        `yaml:"selector" json:"selector"`
	State    WaitState     `yaml:"state,omitempty" json:"state,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// File is the top-level document shape: an ordered list of element specs
// under an 'elements:' key.
type File struct {
	Elements []Spec `yaml:"elements" json:"elements"`
}

// UnmarshalYAML decodes a spec entry, accepting human-friendly forms for the
// optional fields (state names, '10s'-style timeouts).
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name     string `yaml:"name"`
		Selector string `yaml:"selector"`
		State    string `yaml:"state"`
		Timeout  string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	s.Name = raw.Name
	s.Selector = raw.Selector
	if raw.State != "" {
		state, err := ParseState(raw.State)
		if err != nil {
			return err
		}
		s.State = state
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", raw.Timeout, err)
		}
		s.Timeout = d
	}
	return nil
}
