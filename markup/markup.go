// Package markup reads component tree descriptions. Two encodings are
// accepted: the JSON shape produced by test renderers and an XML/JSX like
// markup where the style attribute carries inline CSS declarations.
package markup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"sketchgen/css"
	"sketchgen/mapping"
	"sketchgen/tree"
)

// Format of a description.
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatXML
)

// common named references which are not predefined in XML
var entities = map[string]string{
	"nbsp":   "\u00a0",
	"ndash":  "\u2013",
	"mdash":  "\u2014",
	"hellip": "\u2026",
	"laquo":  "\u00ab",
	"raquo":  "\u00bb",
	"copy":   "\u00a9",
	"reg":    "\u00ae",
	"trade":  "\u2122",
	"bull":   "\u2022",
	"middot": "\u00b7",
}

var errEmpty = errors.New("empty description")

// Reader turns descriptions into component trees.
type Reader struct {
	css *css.Parser
	log *zap.Logger
}

// NewReader creates a description reader.
func NewReader(log *zap.Logger) *Reader {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("markup")
	return &Reader{css: css.NewParser(log), log: log}
}

// Read decodes a single rooted description from r.
func (rd *Reader) Read(r io.Reader, format Format) (*tree.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read description: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errEmpty
	}

	if format == FormatAuto {
		format = Detect(data)
	}
	if format == FormatJSON {
		return rd.readJSON(data)
	}
	return rd.readXML(data)
}

// ReadFile decodes the description stored in path. The format follows the
// file extension and falls back to content detection.
func (rd *Reader) ReadFile(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := rd.Read(f, FormatFromExt(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	rd.log.Debug("Description loaded", zap.String("file", path), zap.String("root", root.Tag))
	return root, nil
}

// FormatFromExt maps a file name to its description format.
func FormatFromExt(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".xml", ".jsx", ".html", ".htm":
		return FormatXML
	}
	return FormatAuto
}

// Detect guesses description format from its first significant byte.
func Detect(data []byte) Format {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return FormatJSON
	}
	return FormatXML
}

func (rd *Reader) readJSON(data []byte) (*tree.Node, error) {
	if data[0] == '[' {
		return nil, errors.New("description root must be a single element, got array")
	}
	var root tree.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("unable to decode JSON description: %w", err)
	}
	if root.Tag == "" {
		return nil, errors.New("description root has no type")
	}
	return &root, nil
}

func (rd *Reader) readXML(data []byte) (*tree.Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        entities,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to read XML description: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errEmpty
	}
	return rd.element(root, false), nil
}

// element converts el and its subtree. Below a vector graphics element
// names are kept as written.
func (rd *Reader) element(el *etree.Element, vector bool) *tree.Node {
	tag := el.FullTag()
	if !vector {
		tag = componentTag(tag)
	}
	n := &tree.Node{Tag: tag}
	vector = vector || tag == mapping.Svg
	for _, a := range el.Attr {
		switch key := a.FullKey(); key {
		case "class", "className":
			n.ClassName = a.Value
		case "style":
			n.Style = rd.css.Inline(a.Value)
		default:
			if n.Props == nil {
				n.Props = make(map[string]any, len(el.Attr))
			}
			n.Props[key] = a.Value
		}
	}

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			n.Children = append(n.Children, rd.element(t, vector))
		case *etree.CharData:
			if s := collapseText(t.Data); s != "" {
				n.Children = append(n.Children, tree.Text(s))
			}
		}
	}
	return n
}

// componentTag lower cases element names ("View", "DIV") so they match
// mapping table entries and type selectors. Dotted component names
// ("Svg.Rect") are kept.
func componentTag(tag string) string {
	return mapping.NormalizeTag(tag)
}

// collapseText applies JSX whitespace rules: text without line breaks is
// kept as is, otherwise lines are trimmed on the sides adjacent to a line
// break, blank lines are dropped and the rest is joined with single spaces.
func collapseText(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for i, line := range raw {
		if i > 0 {
			line = strings.TrimLeft(line, " \t")
		}
		if i < len(raw)-1 {
			line = strings.TrimRight(line, " \t")
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}
