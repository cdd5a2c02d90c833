package timetree

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Report is the committed snapshot of a tree. Sum is in seconds.
type Report struct {
	Sum      float64  `json:"sum" yaml:"sum"`
	Children Children `json:"children" yaml:"children"`
}

// NamedReport is a child report together with its region name.
type NamedReport struct {
	Name   string
	Report Report
}

// Children holds the child reports in the order the regions were first
// entered. It is encoded as a JSON object / YAML mapping keyed by region name
// whose key order follows the slice.
type Children []NamedReport

// String renders the same text report as Entry.String for the tree the
// report was taken from.
func (r Report) String() string {
	var b strings.Builder
	writeText(&b, r, "", nil, nil)
	return b.String()
}

// Child returns the direct child report with the given name.
func (r Report) Child(name string) (Report, bool) {
	for _, c := range r.Children {
		if c.Name == name {
			return c.Report, true
		}
	}

	return Report{}, false
}

// Lookup follows path from r.
func (r Report) Lookup(path ...string) (Report, bool) {
	node := r
	for _, name := range path {
		child, ok := node.Child(name)
		if !ok {
			return Report{}, false
		}

		node = child
	}

	return node, true
}

// Walk visits r and its descendants depth-first, parents before children.
// The root is visited with an empty path and itself as parent.
func (r Report) Walk(fn func(path []string, node, parent Report)) {
	r.walk(nil, r, fn)
}

func (r Report) walk(path []string, parent Report, fn func(path []string, node, parent Report)) {
	fn(path, r, parent)

	for _, c := range r.Children {
		childPath := append(append([]string(nil), path...), c.Name)
		c.Report.walk(childPath, r, fn)
	}
}

func (r Report) commitSum() float64 {
	return r.Sum
}

func (r Report) numChildren() int {
	return len(r.Children)
}

func (r Report) childAt(i int) (string, textNode) {
	return r.Children[i].Name, r.Children[i].Report
}

func (c Children) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, child := range c {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(child.Name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(child.Report)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode region %q", child.Name)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Children) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		*c = nil
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("children: expected a JSON object, got %v", tok)
	}

	var children Children
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		name, ok := tok.(string)
		if !ok {
			return errors.Errorf("children: unexpected key %v", tok)
		}

		var child Report
		if err := dec.Decode(&child); err != nil {
			return errors.Wrapf(err, "failed to decode region %q", name)
		}

		children = append(children, NamedReport{Name: name, Report: child})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = children
	return nil
}

func (c Children) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, child := range c {
		var value yaml.Node
		if err := value.Encode(child.Report); err != nil {
			return nil, errors.Wrapf(err, "failed to encode region %q", child.Name)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: child.Name},
			&value,
		)
	}

	return node, nil
}

func (c *Children) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*c = nil
		return nil
	}

	if value.Kind != yaml.MappingNode {
		return errors.Errorf("children: expected a mapping at line %d", value.Line)
	}

	var children Children
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value

		var child Report
		if err := value.Content[i+1].Decode(&child); err != nil {
			return errors.Wrapf(err, "failed to decode region %q", name)
		}

		children = append(children, NamedReport{Name: name, Report: child})
	}

	*c = children
	return nil
}

// ParseReport decodes a report encoded by Tracker.JSON or Tracker.YAML.
// Since JSON is valid YAML, both encodings go through the YAML decoder.
func ParseReport(data []byte) (Report, error) {
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Report{}, errors.Wrap(err, "failed to parse report")
	}

	return r, nil
}
