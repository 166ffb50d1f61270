package convert

import (
	"reflect"
	"strings"
	"testing"

	"sketchgen/config"
)

func TestBuildValues(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		withDoc  bool
		expected Values
	}{
		{
			name:    "nested source",
			src:     "screens/mobile/Home.xml",
			withDoc: true,
			expected: Values{
				Context:  string(config.OutputNameTemplateFieldName),
				Name:     "Home",
				Dir:      "screens/mobile",
				Document: "Design",
				Pages:    []string{"Home", "Settings"},
				Index:    1,
			},
		},
		{
			name: "no document",
			src:  "Home.json",
			expected: Values{
				Context: string(config.OutputNameTemplateFieldName),
				Name:    "Home",
				Pages:   []string{},
				Index:   1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			if !tt.withDoc {
				doc = nil
			}
			got := buildValues(config.OutputNameTemplateFieldName, tt.src, doc, 1)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("buildValues() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestExpandTemplate(t *testing.T) {
	values := buildValues(config.OutputNameTemplateFieldName, "screens/Home Screen.xml", testDocument(), 7)

	tests := []struct {
		name     string
		field    string
		expected string
		wantErr  bool
	}{
		{"simple text", "simple-text", "simple-text", false},
		{"name", "{{ .Name }}", "Home Screen", false},
		{"context", "{{ .Context }}", "output_name_template", false},
		{"index", "{{ printf \"%03d\" .Index }}", "007", false},
		{"sprig", "{{ .Name | lower | replace \" \" \"_\" }}", "home_screen", false},
		{"first page", "{{ first .Pages }}", "Home", false},
		{"dir", "{{ .Dir }}/{{ .Document }}", "screens/Design", false},
		{"parse error", "{{ .Name", "", true},
		{"execution error", "{{ .Missing }}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandTemplate(config.OutputNameTemplateFieldName, tt.field, values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if tt.name == "parse error" && !strings.Contains(err.Error(), "output_name_template") {
					t.Errorf("error %q does not name the field", err)
				}
				return
			}
			if result != tt.expected {
				t.Errorf("expandTemplate() = %q, want %q", result, tt.expected)
			}
		})
	}
}
