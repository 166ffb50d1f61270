package convert

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"sketchgen/config"
	"sketchgen/layout/flex"
	"sketchgen/markup"
	"sketchgen/sketch"
	"sketchgen/state"
)

const sampleScreen = `<Document name="Design">
  <Page name="Home">
    <Artboard style="width: 320px; background-color: #fafafa">
      <View class="Card">
        <Text>Hello</Text>
      </View>
    </Artboard>
  </Page>
</Document>`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func readDocument(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	return doc
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src, dst := t.TempDir(), t.TempDir()

	writeFile(t, filepath.Join(src, "home.xml"), sampleScreen)
	writeFile(t, filepath.Join(src, "flows", "login.json"),
		`{"type": "document", "children": [{"type": "page", "children": [{"type": "div", "children": ["Sign in"]}]}]}`)
	writeFile(t, filepath.Join(src, "broken.xml"), `<Document><Card/></Document>`)
	writeFile(t, filepath.Join(src, "notes.txt"), "not a description")

	c, err := newConverter(env, env.Log)
	if err != nil {
		t.Fatalf("newConverter() error = %v", err)
	}
	err = c.process(ctx, src, dst)
	if err == nil || !strings.Contains(err.Error(), "broken.xml") {
		t.Errorf("process() error = %v, want failure for broken.xml only", err)
	}

	for _, out := range []string{
		filepath.Join(dst, "home.json"),
		filepath.Join(dst, "flows", "login.json"),
	} {
		if doc := readDocument(t, out); doc["_class"] != "document" {
			t.Errorf("%s: _class = %v", out, doc["_class"])
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "notes.json")); !os.IsNotExist(err) {
		t.Error("unrelated file converted")
	}
}

func TestProcess_SingleFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	in := filepath.Join(src, "Home Screen.xml")
	writeFile(t, in, sampleScreen)

	c, err := newConverter(env, env.Log)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.process(ctx, in, dst); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	out := filepath.Join(dst, "home-screen.json")
	doc := readDocument(t, out)
	if doc["name"] != "Design" {
		t.Errorf("document name = %v", doc["name"])
	}
	first, _ := os.ReadFile(out)

	// same input, same output: identifiers are stable
	if err := c.process(ctx, in, dst); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second process() error = %v, want already exists", err)
	}
	env.Overwrite = true
	if err := c.process(ctx, in, dst); err != nil {
		t.Fatalf("overwrite process() error = %v", err)
	}
	second, _ := os.ReadFile(out)
	if string(first) != string(second) {
		t.Error("repeated conversion produced different output")
	}
}

func TestProcess_Archive(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	arc := filepath.Join(src, "screens.zip")

	f, err := os.Create(arc)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, content := range map[string]string{
		"mobile/home.xml": sampleScreen,
		"mobile/read.me":  "skipped",
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	c, err := newConverter(env, env.Log)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.process(ctx, arc, dst); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if doc := readDocument(t, filepath.Join(dst, "mobile", "home.json")); doc["_class"] != "document" {
		t.Errorf("_class = %v", doc["_class"])
	}
	if entries, _ := os.ReadDir(filepath.Join(dst, "mobile")); len(entries) != 1 {
		t.Errorf("expected single output, got %d", len(entries))
	}
}

func TestProcess_Errors(t *testing.T) {
	ctx, env := setupTestEnv(t)
	c, err := newConverter(env, env.Log)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.process(ctx, filepath.Join(t.TempDir(), "missing.xml"), t.TempDir()); err == nil {
		t.Error("missing source must fail")
	}

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "bad.xml"), `<Document><Card/></Document>`)
	err = c.process(ctx, filepath.Join(src, "bad.xml"), t.TempDir())
	var ue *UnresolvedTypeError
	if !errors.As(err, &ue) {
		t.Errorf("process() error = %v, want UnresolvedTypeError", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := c.process(cancelled, src, t.TempDir()); err == nil {
		t.Error("cancelled context must stop processing")
	}
}

func TestProcess_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(src, "home.xml"), sampleScreen)

	rc := config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}
	rpt, err := rc.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	env.Rpt = rpt

	c, err := newConverter(env, env.Log)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.process(ctx, src, dst); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatal(err)
	}

	arc, err := zip.OpenReader(rc.Destination)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer arc.Close()
	var names []string
	for _, f := range arc.File {
		names = append(names, f.Name)
	}
	for _, want := range []string{"MANIFEST", "source-home.xml", "home.xml.1-normalized.txt", "home.xml.4-merged.txt", "result-home.xml.json"} {
		if !slices.Contains(names, want) {
			t.Errorf("report misses %q, has %v", want, names)
		}
	}
}

func TestLoadStylesheet(t *testing.T) {
	_, env := setupTestEnv(t)

	sheet, err := loadStylesheet(env, env.Log)
	if err != nil {
		t.Fatalf("loadStylesheet() error = %v", err)
	}
	if got, _ := sheet["text"].String("fontFamily"); got != "Helvetica" {
		t.Errorf("default text font = %q", got)
	}

	path := filepath.Join(t.TempDir(), "user.css")
	writeFile(t, path, `text { font-family: Georgia } .Card { color: red } a:hover { color: blue }`)
	env.StylesheetPath = path
	sheet, err = loadStylesheet(env, env.Log)
	if err != nil {
		t.Fatalf("loadStylesheet() error = %v", err)
	}
	if got, _ := sheet["text"].String("fontFamily"); got != "Georgia" {
		t.Errorf("user text font = %q, want Georgia", got)
	}
	if got, _ := sheet["Card"].String("color"); got != "red" {
		t.Errorf("Card color = %q", got)
	}

	env.StylesheetPath = filepath.Join(t.TempDir(), "missing.css")
	if _, err := loadStylesheet(env, env.Log); err == nil {
		t.Error("missing stylesheet must fail")
	}
}

func TestNewConverter_TagMappings(t *testing.T) {
	_, env := setupTestEnv(t)
	env.Cfg.Document.TagMappings = map[string][]string{"view": {"card"}}
	c, err := newConverter(env, env.Log)
	if err != nil {
		t.Fatalf("newConverter() error = %v", err)
	}
	if cls := c.opts.Table.Classify("card"); cls == nil || cls.TargetType != "view" {
		t.Errorf("card classified as %+v", cls)
	}

	env.Cfg.Document.TagMappings = map[string][]string{"widget": {"card"}}
	if _, err := newConverter(env, env.Log); err == nil {
		t.Error("unknown target must fail")
	}

	env.Cfg.Document.TagMappings = nil
	env.Cfg.Document.Direction = "sideways"
	if _, err := newConverter(env, env.Log); err == nil {
		t.Error("bad direction must fail")
	}
}

// convertMarkup runs the pipeline with the built-in stylesheet extended by
// userCSS over an XML description.
func convertMarkup(t *testing.T, userCSS, description string) *sketch.Layer {
	t.Helper()
	_, env := setupTestEnv(t)
	if userCSS != "" {
		env.StylesheetPath = filepath.Join(t.TempDir(), "user.css")
		writeFile(t, env.StylesheetPath, userCSS)
	}
	sheet, err := loadStylesheet(env, env.Log)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPipeline(Options{Stylesheet: sheet, Engine: flex.New(400, 0, nil)}, env.Log)
	if err != nil {
		t.Fatal(err)
	}
	root, err := markup.NewReader(env.Log).Read(strings.NewReader(description), markup.FormatXML)
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Convert(root, "test.xml")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return res.Document
}

func layersOf(doc *sketch.Layer, class string) []*sketch.Layer {
	var out []*sketch.Layer
	sketch.Walk(doc, func(l *sketch.Layer, _ []int) {
		if l.Class == class {
			out = append(out, l)
		}
	})
	return out
}

func TestPipeline_InheritedFonts(t *testing.T) {
	black, red := sketch.MustColor("#000000"), sketch.MustColor("#ff0000")
	tests := []struct {
		name        string
		description string
		font        sketch.FontDescriptor
		color       sketch.Color
		lineHeight  float64
	}{
		{"text defaults", `<view><div>Hi</div></view>`, sketch.FontDescriptor{Name: "Helvetica", Size: 14}, black, 20},
		{"tag rule", `<view><h1>Title</h1></view>`, sketch.FontDescriptor{Name: "Helvetica-Bold", Size: 32}, black, 40},
		{"class rule", `<view><div class="Card">Hi</div></view>`, sketch.FontDescriptor{Name: "Helvetica", Size: 30}, red, 20},
		{"explicit text", `<view><div class="Card"><Text>Hi</Text></div></view>`, sketch.FontDescriptor{Name: "Helvetica", Size: 30}, red, 20},
		{"inline wins", `<view><div class="Card"><Text style="font-size: 12px">Hi</Text></div></view>`, sketch.FontDescriptor{Name: "Helvetica", Size: 12}, red, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := convertMarkup(t, `.Card { color: #ff0000; font-size: 30px }`, tt.description)
			texts := layersOf(doc, sketch.ClassText)
			if len(texts) == 0 || texts[0].AttributedString == nil {
				t.Fatal("no text layer emitted")
			}
			attrs := texts[0].AttributedString.Attributes
			if len(attrs) != 1 {
				t.Fatalf("attributes = %+v, want one run", attrs)
			}
			if attrs[0].Font != tt.font || attrs[0].Color != tt.color || attrs[0].LineHeight != tt.lineHeight {
				t.Errorf("run = %+v %+v line height %v, want %+v %+v %v",
					attrs[0].Font, attrs[0].Color, attrs[0].LineHeight, tt.font, tt.color, tt.lineHeight)
			}
		})
	}
}

func TestPipeline_SvgVerbatim(t *testing.T) {
	doc := convertMarkup(t, "",
		`<view><svg><title>Logo</title><text x="0">Hi <tspan>there</tspan></text><linearGradient id="g"/></svg></view>`)

	svgs := layersOf(doc, sketch.ClassSvg)
	if len(svgs) != 1 {
		t.Fatalf("svg layers = %d, want 1", len(svgs))
	}
	want := `<title>Logo</title><text x="0">Hi <tspan>there</tspan></text><linearGradient id="g"/></svg>`
	if got := svgs[0].SvgMarkup; !strings.HasSuffix(got, want) {
		t.Errorf("markup = %s, want suffix %s", got, want)
	}
	if texts := layersOf(doc, sketch.ClassText); len(texts) != 0 {
		t.Errorf("vector text emitted as %d text layers", len(texts))
	}
}

func TestPipeline_UpperCaseTags(t *testing.T) {
	doc := convertMarkup(t, "", `<DIV><P>Hi</P></DIV>`)
	texts := layersOf(doc, sketch.ClassText)
	if len(texts) != 1 || texts[0].AttributedString.String != "Hi" {
		t.Errorf("text layers = %d", len(texts))
	}
}
