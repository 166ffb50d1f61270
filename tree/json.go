package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"sketchgen/style"
)

// jsonNode is the test renderer shape of a node: {"type", "props",
// "children"}. "tag" is accepted as an alias of "type".
type jsonNode struct {
	Type      string            `json:"type,omitempty"`
	Tag       string            `json:"tag,omitempty"`
	SourceTag string            `json:"sourceType,omitempty"`
	Props     map[string]any    `json:"props,omitempty"`
	Children  []json.RawMessage `json:"children,omitempty"`
}

// UnmarshalJSON decodes a node. Children may be nodes, strings or numbers;
// null and boolean children render nothing and are dropped.
func (n *Node) UnmarshalJSON(data []byte) error {
	var jn jsonNode
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&jn); err != nil {
		return err
	}

	n.Tag = jn.Type
	if n.Tag == "" {
		n.Tag = jn.Tag
	}
	n.SourceTag = jn.SourceTag
	n.Props = nil
	n.Style = nil
	n.ClassName = ""

	for k, v := range jn.Props {
		switch k {
		case "style":
			m, ok := normalizeNumbers(v).(map[string]any)
			if !ok && v != nil {
				return fmt.Errorf("node %q: style must be an object, got %T", n.Tag, v)
			}
			n.Style = style.Style(m)
		case "className", "class":
			s, _ := v.(string)
			n.ClassName = s
		case "children":
			// children are taken from the node itself
		default:
			if n.Props == nil {
				n.Props = make(map[string]any, len(jn.Props))
			}
			n.Props[k] = normalizeNumbers(v)
		}
	}

	n.Children = nil
	for i, raw := range jn.Children {
		c, err := decodeChild(raw)
		if err != nil {
			return fmt.Errorf("node %q child %d: %w", n.Tag, i, err)
		}
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return nil
}

func decodeChild(raw json.RawMessage) (Child, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	switch raw[0] {
	case '{':
		var cn Node
		if err := json.Unmarshal(raw, &cn); err != nil {
			return nil, err
		}
		return &cn, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return Text(s), nil
	case 'n', 't', 'f':
		return nil, nil
	default:
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return nil, err
		}
		return Text(num.String()), nil
	}
}

// normalizeNumbers turns json.Number into float64 recursively.
func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if f, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeNumbers(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalizeNumbers(e)
		}
		return v
	default:
		return v
	}
}

// MarshalJSON encodes the node in the same shape UnmarshalJSON accepts.
func (n *Node) MarshalJSON() ([]byte, error) {
	props := make(map[string]any, len(n.Props)+2)
	for k, v := range n.Props {
		props[k] = v
	}
	if n.Style != nil {
		props["style"] = map[string]any(n.Style)
	}
	if n.ClassName != "" {
		props["className"] = n.ClassName
	}
	children := make([]any, 0, len(n.Children))
	for _, c := range n.Children {
		switch c := c.(type) {
		case *Node:
			children = append(children, c)
		case Text:
			children = append(children, string(c))
		}
	}
	return json.Marshal(struct {
		Type      string         `json:"type"`
		SourceTag string         `json:"sourceType,omitempty"`
		Props     map[string]any `json:"props"`
		Children  []any          `json:"children"`
	}{n.Tag, n.SourceTag, props, children})
}
