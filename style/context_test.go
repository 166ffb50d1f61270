package style

import "testing"

func TestContext_InheritableOnly(t *testing.T) {
	root := NewContext()
	root.AddInheritableStyles(Style{"fontSize": 18.0, "backgroundColor": "red"})

	child := root.ForChildren()
	grandchild := child.ForChildren()

	got := grandchild.InheritedStyles()
	if got["fontSize"] != 18.0 {
		t.Errorf("grandchild fontSize = %v, want 18", got["fontSize"])
	}
	if _, ok := got["backgroundColor"]; ok {
		t.Error("backgroundColor must not be inherited")
	}
}

func TestContext_SiblingsIsolated(t *testing.T) {
	parent := NewContext()
	parent.AddInheritableStyles(Style{"color": "black"})

	a := parent.ForChildren()
	a.AddInheritableStyles(Style{"color": "red", "fontWeight": "bold"})
	b := parent.ForChildren()

	if got := b.InheritedStyles()["color"]; got != "black" {
		t.Errorf("sibling sees color %v, want black", got)
	}
	if _, ok := b.InheritedStyles()["fontWeight"]; ok {
		t.Error("sibling observed fontWeight addition")
	}
	if got := parent.InheritedStyles()["color"]; got != "black" {
		t.Errorf("parent color = %v, want black", got)
	}
	if got := a.ForChildren().InheritedStyles()["color"]; got != "red" {
		t.Errorf("a's child color = %v, want red", got)
	}
}

func TestContext_ValueCopiesDoNotShare(t *testing.T) {
	c := NewContext()
	c.AddInheritableStyles(Style{"color": "black"})
	snapshot := c.InheritedStyles()

	cp := c
	cp.AddInheritableStyles(Style{"color": "white"})

	if c.InheritedStyles()["color"] != "black" || snapshot["color"] != "black" {
		t.Error("copy leaked additions into original")
	}
}

func TestContext_Links(t *testing.T) {
	root := NewContext()
	if !root.IsRoot() || root.Parent() != nil || root.Depth() != 0 {
		t.Error("root links are wrong")
	}
	child := root.Enter("div").ForChildren().Enter("hr").WithCircular(true)
	if child.IsRoot() || child.Parent() == nil || child.Depth() != 1 || !child.IsCircular() {
		t.Error("child links are wrong")
	}
	if got := child.ScopePath(); got != "div > hr" {
		t.Errorf("ScopePath() = %q", got)
	}
	if got := root.ScopePath(); got != "(root)" {
		t.Errorf("root ScopePath() = %q", got)
	}
}
