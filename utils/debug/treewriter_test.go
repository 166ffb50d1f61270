package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "node", want: "node\n"},
		{name: "depth 2", depth: 2, format: "leaf", want: "    leaf\n"},
		{name: "with formatting", depth: 1, format: "%s[%d]", args: []any{"view", 3}, want: "  view[3]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(1, "content", "line1\nline2")
	tw.TextBlock(0, "empty", "")

	want := "  content: \"line1\\nline2\"\nempty: \n"
	if got := tw.String(); got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}
}

func TestTreeWriter_Map(t *testing.T) {
	tw := NewTreeWriter()
	tw.Map(1, "style", map[string]any{
		"margin10": 1,
		"margin2":  2,
		"color":    "red",
	})
	tw.Map(1, "skipped", nil)

	want := "  style:\n    color=red\n    margin2=2\n    margin10=1\n"
	if got := tw.String(); got != want {
		t.Errorf("Map() = %q, want %q", got, want)
	}
}
