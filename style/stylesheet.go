package style

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"
)

// ModifierSeparator marks variant modifier class tokens ("button--primary").
// Such tokens never act as the base selector of compound lookups.
const ModifierSeparator = "--"

// Stylesheet maps a selector ("Card", "h1", "Card hr") to its declared
// style. It is read-only for the duration of a pipeline run.
type Stylesheet map[string]Style

// Lookup returns the style declared for selector or nil when the selector
// is unknown. Unknown selectors are not an error.
func (s Stylesheet) Lookup(selector string) Style {
	if selector == "" {
		return nil
	}
	return s[selector]
}

// Selectors returns all selectors in natural order.
func (s Stylesheet) Selectors() []string {
	keys := slices.Collect(maps.Keys(s))
	sort.Sort(natural.StringSlice(keys))
	return keys
}

// Extend returns a new stylesheet where declarations from other are merged
// over the receiver per selector.
func (s Stylesheet) Extend(other Stylesheet) Stylesheet {
	out := make(Stylesheet, len(s)+len(other))
	for sel, st := range s {
		out[sel] = st.Clone()
	}
	for sel, st := range other {
		out[sel] = Merge(out[sel], st)
	}
	return out
}
