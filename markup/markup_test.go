package markup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"sketchgen/tree"
)

func TestRead_XML(t *testing.T) {
	rd := NewReader(zaptest.NewLogger(t))
	root, err := rd.Read(strings.NewReader(`
<Document>
  <Page name="Home">
    <View class="Card Card--big" style="padding: 4px 8px; background-color: #fff" testID="card">
      <Text>Hello,&nbsp;world</Text>
      <Text>
        first line
        second line
      </Text>
    </View>
  </Page>
</Document>`), FormatAuto)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if root.Tag != "document" {
		t.Fatalf("root tag = %q", root.Tag)
	}
	page := root.Children[0].(*tree.Node)
	if page.Prop("name") != "Home" {
		t.Errorf("page name = %q", page.Prop("name"))
	}
	view := page.Children[0].(*tree.Node)
	if view.ClassName != "Card Card--big" {
		t.Errorf("className = %q", view.ClassName)
	}
	if view.Style["paddingLeft"] != 8.0 || view.Style["backgroundColor"] != "#fff" {
		t.Errorf("style = %v", view.Style)
	}
	if view.Prop("testID") != "card" {
		t.Errorf("props = %v", view.Props)
	}
	if len(view.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(view.Children))
	}
	if got := view.Children[0].(*tree.Node).Children[0]; got != tree.Text("Hello,\u00a0world") {
		t.Errorf("first text = %q", got)
	}
	if got := view.Children[1].(*tree.Node).Children[0]; got != tree.Text("first line second line") {
		t.Errorf("second text = %q", got)
	}
}

func TestRead_XMLCase(t *testing.T) {
	rd := NewReader(zaptest.NewLogger(t))
	root, err := rd.Read(strings.NewReader(
		`<DIV><P>Hi</P><Svg viewBox="0 0 4 4"><linearGradient id="g"/><clipPath><Rect/></clipPath></Svg></DIV>`), FormatXML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if root.Tag != "div" {
		t.Errorf("root tag = %q, want div", root.Tag)
	}
	if p := root.Children[0].(*tree.Node); p.Tag != "p" {
		t.Errorf("paragraph tag = %q, want p", p.Tag)
	}
	svg := root.Children[1].(*tree.Node)
	if svg.Tag != "svg" {
		t.Fatalf("svg tag = %q", svg.Tag)
	}
	var tags []string
	for _, c := range svg.Children {
		n := c.(*tree.Node)
		tags = append(tags, n.Tag)
		for _, cc := range n.Children {
			tags = append(tags, cc.(*tree.Node).Tag)
		}
	}
	if strings.Join(tags, ",") != "linearGradient,clipPath,Rect" {
		t.Errorf("vector element names = %v, want them as written", tags)
	}
}

func TestRead_JSON(t *testing.T) {
	rd := NewReader(nil)
	root, err := rd.Read(strings.NewReader(`{"type":"View","props":{"style":{"width":10},"className":"Box"},"children":["a",1,null]}`), FormatAuto)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if root.Tag != "View" || root.ClassName != "Box" || root.Style["width"] != 10.0 {
		t.Errorf("unexpected root %+v", root)
	}
	if len(root.Children) != 2 || root.Children[1] != tree.Text("1") {
		t.Errorf("children = %v", root.Children)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "   ", "empty description"},
		{"array", `[{"type":"View"}]`, "single element"},
		{"no type", `{"props":{}}`, "no type"},
		{"bad json", `{"type":`, "unable to decode JSON"},
		{"bad style", `{"type":"View","props":{"style":"color: red"}}`, "style must be an object"},
	}
	rd := NewReader(zaptest.NewLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rd.Read(strings.NewReader(tt.input), FormatAuto)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Read() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.jsx")
	if err := os.WriteFile(path, []byte(`<View><Text>hi</Text></View>`), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := NewReader(zaptest.NewLogger(t)).ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if root.Tag != "view" {
		t.Errorf("root = %q", root.Tag)
	}

	if _, err := NewReader(nil).ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := map[string]Format{
		"a.json": FormatJSON,
		"a.JSX":  FormatXML,
		"a.xml":  FormatXML,
		"a.txt":  FormatAuto,
	}
	for name, want := range tests {
		if got := FormatFromExt(name); got != want {
			t.Errorf("FormatFromExt(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCollapseText(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  keep  ", "  keep  "},
		{"\n   \n", ""},
		{"a \n  b", "a b"},
		{"  lead\ntrail  ", "  lead trail  "},
	}
	for _, tt := range tests {
		if got := collapseText(tt.in); got != tt.want {
			t.Errorf("collapseText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComponentTag(t *testing.T) {
	for in, want := range map[string]string{
		"View":     "view",
		"Svg":      "svg",
		"Svg.Rect": "Svg.Rect",
		"div":      "div",
		"DIV":      "div",
		"P":        "p",
		"Card":     "card",
	} {
		if got := componentTag(in); got != want {
			t.Errorf("componentTag(%q) = %q, want %q", in, got, want)
		}
	}
}
