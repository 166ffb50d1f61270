package convert

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"sketchgen/config"
	"sketchgen/sketch"
	"sketchgen/state"
)

func setupTestEnvForOutputPath(t *testing.T, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template

	return &state.LocalEnv{Log: logger, Cfg: cfg}
}

func testDocument() *sketch.Layer {
	doc := sketch.NewContainer(sketch.ClassDocument, "Design", sketch.Rect{})
	doc.Layers = append(doc.Layers,
		sketch.NewContainer(sketch.ClassPage, "Home", sketch.Rect{}),
		sketch.NewContainer(sketch.ClassPage, "Settings", sketch.Rect{}),
	)
	return doc
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		transliterate bool
		template      string
		expected      string
	}{
		{"no template", "screens/Home.xml", false, "", filepath.Join("/output", "screens", "Home.json")},
		{"single file", "Home.xml", false, "", filepath.Join("/output", "Home.json")},
		{"default template", "screens/Home.xml", false, "{{ .Name }}", filepath.Join("/output", "screens", "Home.json")},
		{"transliterate", "Книга.xml", true, "", filepath.Join("/output", "kniga.json")},
		{"document and index", "screens/Home.xml", false, "{{ .Document }}/{{ .Index }}-{{ .Name }}", filepath.Join("/output", "screens", "Design", "3-Home.json")},
		{"pages", "a.json", false, `{{ join "+" .Pages }}`, filepath.Join("/output", "Home+Settings.json")},
		{"bad template", "screens/Home.xml", false, "{{ .Name", filepath.Join("/output", "screens", "Home.json")},
		{"unknown field", "screens/Home.xml", false, "{{ .Title }}", filepath.Join("/output", "screens", "Home.json")},
		{"blank expansion", "screens/Home.xml", false, "{{ if false }}x{{ end }}  ", filepath.Join("/output", "screens", "Home.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.transliterate, tt.template)

			result := buildOutputPath(tt.src, "/output", testDocument(), 3, env)
			if result != tt.expected {
				t.Errorf("buildOutputPath() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"simple path", "screens/home", []string{"screens", "home"}},
		{"single segment", "home", []string{"home"}},
		{"with trailing slash", "screens/home/", []string{"screens", "home"}},
		{"three levels", "app/screens/home", []string{"app", "screens", "home"}},
		{"empty path", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndCleanPath(filepath.FromSlash(tt.path))
			if len(result) != len(tt.expected) {
				t.Errorf("splitAndCleanPath() length = %d, want %d", len(result), len(tt.expected))
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndCleanPath()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCleanPathSegment(t *testing.T) {
	tests := []struct {
		name          string
		segment       string
		transliterate bool
		expected      string
	}{
		{"simple segment", "screens", false, "screens"},
		{"with spaces", "My Screen", false, "My Screen"},
		{"transliterate cyrillic", "Автор", true, "avtor"},
		{"leading dots", "..hidden", false, "hidden"},
		{"nothing left", "..", false, "_bad_file_name_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.transliterate, "")

			result := cleanPathSegment(tt.segment, env)
			if result != tt.expected {
				t.Errorf("cleanPathSegment() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAssemblePathWithSubdirs(t *testing.T) {
	tests := []struct {
		name          string
		expandedName  string
		transliterate bool
		expected      string
	}{
		{"subdirectories", "app/home", false, filepath.Join("/output", "app", "home.json")},
		{"single level", "home", false, filepath.Join("/output", "home.json")},
		{"with transliterate", "Автор/Книга", true, filepath.Join("/output", "avtor", "kniga.json")},
		{"empty path", "", false, "/output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.transliterate, "")

			result := assemblePathWithSubdirs("/output", filepath.FromSlash(tt.expandedName), env)
			if result != tt.expected {
				t.Errorf("assemblePathWithSubdirs() = %q, want %q", result, tt.expected)
			}
		})
	}
}
