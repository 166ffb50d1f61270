package main

import (
	"bytes"
	"strings"
	"testing"

	"sketchgen/mapping"
)

func TestWriteTags(t *testing.T) {
	table, err := mapping.Default().Extend(map[string][]string{"text": {"caption"}, "view": {"span"}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeTags(&buf, table); err != nil {
		t.Fatalf("writeTags() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(mapping.Targets)+1 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		switch fields[0] {
		case mapping.Text:
			if !strings.Contains(line, " caption") || strings.Contains(line, " span") {
				t.Errorf("text line = %q", line)
			}
		case mapping.View:
			if !strings.Contains(line, " span") {
				t.Errorf("view line = %q", line)
			}
		case mapping.Blacklist:
			if !strings.Contains(line, " script") {
				t.Errorf("blacklist line = %q", line)
			}
		}
	}
}
