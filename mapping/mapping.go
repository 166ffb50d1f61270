// Package mapping classifies generic element tags into target document
// component types.
package mapping

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Target component types. The set is closed: renderers are registered for
// exactly these types.
const (
	Document = "document"
	Page     = "page"
	Artboard = "artboard"
	View     = "view"
	Text     = "text"
	Image    = "image"
	Svg      = "svg"

	// Blacklist is the sentinel target of tags which must never receive a
	// target component type.
	Blacklist = "BLACKLIST"
)

// Targets lists all target component types.
var Targets = []string{Document, Page, Artboard, View, Text, Image, Svg}

// Structural types are never styled by the cascade pass.
var Structural = []string{Document, Page, Artboard}

// DefaultTags maps every target type to the source tags it accepts.
var DefaultTags = map[string][]string{
	Document: {"document"},
	Page:     {"page"},
	Artboard: {"artboard"},
	View: {
		"view", "div", "section", "header", "footer", "main", "nav", "article", "aside",
		"form", "ul", "ol", "li", "hr", "button", "table", "tr", "td", "th", "figure",
		"blockquote",
	},
	Text: {
		"text", "p", "h1", "h2", "h3", "h4", "h5", "h6", "span", "a", "label",
		"strong", "em", "b", "i", "small", "code", "pre",
	},
	Image:     {"image", "img"},
	Svg:       {"svg"},
	Blacklist: {"script", "style", "head", "meta", "link", "noscript", "template", "br"},
}

// NormalizeTag folds element names to lower case, tags are matched case
// insensitively. Dotted component names ("Svg.Path") keep their case.
func NormalizeTag(tag string) string {
	if strings.Contains(tag, ".") {
		return tag
	}
	return strings.ToLower(tag)
}

// Classification is the result of classifying a source tag.
type Classification struct {
	SourceTag  string
	TargetType string
}

// Blacklisted reports whether the tag must not receive a target type.
func (c *Classification) Blacklisted() bool {
	return c != nil && c.TargetType == Blacklist
}

// Table is the flattened tag -> target lookup. It is built once per
// pipeline and read-only afterwards.
type Table struct {
	byTag   map[string]string
	targets map[string][]string
}

// NewTable flattens a target -> tags mapping. A tag accepted by two
// different targets is an error.
func NewTable(tags map[string][]string) (*Table, error) {
	t := &Table{
		byTag:   make(map[string]string),
		targets: make(map[string][]string, len(tags)),
	}
	// sorted for deterministic error reporting
	targets := slices.Collect(maps.Keys(tags))
	sort.Strings(targets)
	for _, target := range targets {
		accepted := make([]string, 0, len(tags[target]))
		for _, tag := range tags[target] {
			tag = NormalizeTag(tag)
			if prev, ok := t.byTag[tag]; ok && prev != target {
				return nil, fmt.Errorf("tag %q is mapped to both %q and %q", tag, prev, target)
			}
			t.byTag[tag] = target
			accepted = append(accepted, tag)
		}
		t.targets[target] = accepted
	}
	return t, nil
}

// Default returns the table built from DefaultTags.
func Default() *Table {
	t, err := NewTable(DefaultTags)
	if err != nil {
		// this should never happen
		panic(err)
	}
	return t
}

// Extend returns a new table with extra mappings added. Tags listed in extra
// move to their new target.
func (t *Table) Extend(extra map[string][]string) (*Table, error) {
	merged := make(map[string][]string, len(t.targets)+len(extra))
	moved := make(map[string]bool)
	for _, tags := range extra {
		for _, tag := range tags {
			moved[NormalizeTag(tag)] = true
		}
	}
	for target, tags := range t.targets {
		for _, tag := range tags {
			if !moved[tag] {
				merged[target] = append(merged[target], tag)
			}
		}
	}
	for target, tags := range extra {
		if target != Blacklist && !slices.Contains(Targets, target) {
			return nil, fmt.Errorf("unknown target component type %q", target)
		}
		merged[target] = append(merged[target], tags...)
	}
	return NewTable(merged)
}

// Classify returns the classification of tag, nil when the tag is not
// mapped. Blacklisted tags return a classification with the Blacklist
// target. The source tag of the result is normalized.
func (t *Table) Classify(tag string) *Classification {
	tag = NormalizeTag(tag)
	target, ok := t.byTag[tag]
	if !ok {
		return nil
	}
	return &Classification{SourceTag: tag, TargetType: target}
}

// Known reports whether tag appears in the table.
func (t *Table) Known(tag string) bool {
	_, ok := t.byTag[NormalizeTag(tag)]
	return ok
}

// Tags returns the source tags accepted by target in natural order.
func (t *Table) Tags(target string) []string {
	tags := slices.Clone(t.targets[target])
	sort.Sort(natural.StringSlice(tags))
	return tags
}

// RendererKey resolves a node type to the key its renderer is registered
// under: a source tag resolves to its target, anything else to itself.
func (t *Table) RendererKey(typ string) string {
	if target, ok := t.byTag[NormalizeTag(typ)]; ok {
		return target
	}
	return typ
}
