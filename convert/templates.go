package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"sketchgen/config"
	"sketchgen/sketch"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Name     string
	Dir      string
	Document string
	Pages    []string
	Index    int
}

// buildValues describes the conversion of src, the source path relative to
// the input (including file name), which produced doc as index-th document
// of a batch.
func buildValues(name config.TemplateFieldName, src string, doc *sketch.Layer, index int) Values {
	v := Values{
		Context: string(name),
		Name:    strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Dir:     filepath.ToSlash(filepath.Dir(src)),
		Index:   index,
		Pages:   []string{},
	}
	if v.Dir == "." {
		v.Dir = ""
	}
	if doc != nil {
		v.Document = doc.Name
		for _, l := range doc.Layers {
			if l != nil && l.Class == sketch.ClassPage {
				v.Pages = append(v.Pages, l.Name)
			}
		}
	}
	return v
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
