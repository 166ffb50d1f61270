package tree

import (
	"encoding/json"
	"testing"
)

func TestNode_UnmarshalJSON(t *testing.T) {
	data := []byte(`{
		"type": "div",
		"props": {"className": "Card big", "style": {"fontSize": 12, "color": "red"}, "name": "card", "children": "ignored"},
		"children": ["hello", 42, null, false, {"tag": "hr", "props": {}}]
	}`)

	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if n.Tag != "div" || n.ClassName != "Card big" {
		t.Errorf("tag/class = %q/%q", n.Tag, n.ClassName)
	}
	if v, ok := n.Style.Number("fontSize"); !ok || v != 12 {
		t.Errorf("fontSize = %v (%v), want 12", v, ok)
	}
	if n.Prop("name") != "card" {
		t.Errorf("name prop = %q", n.Prop("name"))
	}
	if _, ok := n.Props["children"]; ok {
		t.Error("children prop must not be kept")
	}
	if len(n.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(n.Children))
	}
	if n.Children[0] != Text("hello") || n.Children[1] != Text("42") {
		t.Errorf("leaves = %v %v", n.Children[0], n.Children[1])
	}
	if hr, ok := n.Children[2].(*Node); !ok || hr.Tag != "hr" {
		t.Errorf("third child = %#v, want hr node", n.Children[2])
	}
}

func TestNode_JSONRoundTripShape(t *testing.T) {
	n := &Node{Tag: "view", SourceTag: "div", ClassName: "a", Children: []Child{Text("x")}}
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var back Node
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Tag != "view" || back.SourceTag != "div" || back.ClassName != "a" || len(back.Children) != 1 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestNode_UnmarshalJSONBadStyle(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(`{"type":"div","props":{"style":"color:red"}}`), &n); err == nil {
		t.Error("expected error for non-object style")
	}
}
