// Package locator defines the element descriptors uicheck validates.
// This file specifically handles loading locator files from disk, parsing
// them into Spec lists, and performing basic validation. YAML is the primary
// format; JSON parses through the same decoder, and XML covers
// object-repository style exports.
package locator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"gopkg.in/yaml.v3"
)

// Load reads the ordered element list from the given path. A missing path
// yields a NotFoundError; content that cannot be decoded or that fails
// validation yields a ParseError. An empty element list is well-formed.
func Load(path string) ([]Spec, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat locator file '%s': %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locator file '%s': %w", path, err)
	}

	var specs []Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		specs, err = parseXML(data)
	default:
		// .yaml, .yml and .json all go through the YAML decoder.
		specs, err = parseYAML(data)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := validateSpecs(specs); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return specs, nil
}

// parseYAML accepts both document shapes: the documented 'elements:' mapping
// and a bare top-level sequence of entries. In the mapping form an 'elements'
// key left null reads as an empty list; that is what the file looks like
// once every entry has been removed.
func parseYAML(data []byte) ([]Spec, error) {
	var file File
	wrapErr := yaml.Unmarshal(data, &file)
	if wrapErr == nil && file.Elements != nil {
		return file.Elements, nil
	}

	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		if wrapErr == nil && elementsKeyIsNull(data) {
			return nil, nil
		}
		if wrapErr != nil {
			return nil, wrapErr
		}
		return nil, err
	}
	return specs, nil
}

// elementsKeyIsNull reports whether the document is the mapping form with an
// 'elements' key that carries no value.
func elementsKeyIsNull(data []byte) bool {
	var doc struct {
		Elements yaml.Node `yaml:"elements"`
	}
	if yaml.Unmarshal(data, &doc) != nil {
		return false
	}
	return doc.Elements.Kind == yaml.ScalarNode && doc.Elements.Tag == "!!null"
}

// parseXML reads the <locators><locator name=".." selector=".."/></locators>
// form. The selector may also be given as the element's text content.
func parseXML(data []byte) ([]Spec, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	nodes, err := xmlquery.QueryAll(doc, "//locator")
	if err != nil {
		return nil, err
	}

	specs := make([]Spec, 0, len(nodes))
	for _, node := range nodes {
		spec := Spec{
			Name:     node.SelectAttr("name"),
			Selector: node.SelectAttr("selector"),
		}
		if spec.Selector == "" {
			spec.Selector = strings.TrimSpace(node.InnerText())
		}
		if v := node.SelectAttr("state"); v != "" {
			state, err := ParseState(v)
			if err != nil {
				return nil, err
			}
			spec.State = state
		}
		if v := node.SelectAttr("timeout"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout '%s': %w", v, err)
			}
			spec.Timeout = d
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// validateSpecs enforces the structural rules: every entry needs a name and
// a selector, and names must be unique because reports key on them.
func validateSpecs(specs []Spec) error {
	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("elements[%d].name is required", i)
		}
		if spec.Selector == "" {
			return fmt.Errorf("elements[%d].selector is required", i)
		}
		if _, dup := seen[spec.Name]; dup {
			return fmt.Errorf("duplicate element name '%s'", spec.Name)
		}
		seen[spec.Name] = struct{}{}
		if spec.Timeout < 0 {
			return fmt.Errorf("elements[%d].timeout must not be negative", i)
		}
	}
	return nil
}
