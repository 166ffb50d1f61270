package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func createZip(t *testing.T, files map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t, map[string]string{
		"screens/home10.xml": "<view/>",
		"screens/home2.xml":  "<text/>",
		"screens/notes.txt":  "notes",
		"flows/login.json":   `{"type":"view"}`,
		"readme.md":          "readme",
	})
	isXML := func(name string) bool { return strings.HasSuffix(name, ".xml") }

	tests := []struct {
		name   string
		prefix string
		match  func(string) bool
		want   []string
	}{
		{"prefix and match", "screens/", isXML, []string{"screens/home2.xml", "screens/home10.xml"}},
		{"prefix only", "screens/", nil, []string{"screens/home2.xml", "screens/home10.xml", "screens/notes.txt"}},
		{"everything", "", nil, []string{"flows/login.json", "readme.md", "screens/home2.xml", "screens/home10.xml", "screens/notes.txt"}},
		{"no matching prefix", "nonexistent/", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, tt.match, func(name string, r io.Reader) error {
				visited = append(visited, name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited = %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_Content(t *testing.T) {
	zipPath := createZip(t, map[string]string{"a.xml": "<view/>"})
	err := Walk(zipPath, "", nil, func(name string, r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if string(data) != "<view/>" {
			t.Errorf("content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	zipPath := createZip(t, map[string]string{"a.xml": "", "b.xml": ""})
	stop := errors.New("stop")
	count := 0
	err := Walk(zipPath, "", nil, func(string, io.Reader) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) || count != 1 {
		t.Errorf("Walk() error = %v after %d files", err, count)
	}
}

func TestWalk_UnsafePaths(t *testing.T) {
	for _, name := range []string{"../evil.xml", "dir/../../evil.xml", "/abs.xml"} {
		t.Run(name, func(t *testing.T) {
			zipPath := createZip(t, map[string]string{name: "x", "ok.xml": "y"})
			err := Walk(zipPath, "", nil, func(string, io.Reader) error { return nil })
			if err == nil || !strings.Contains(err.Error(), "unsafe path") {
				t.Errorf("Walk() error = %v, want unsafe path", err)
			}
		})
	}
}

func TestWalk_NotArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.zip")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(path, "", nil, func(string, io.Reader) error { return nil }); err == nil {
		t.Error("Walk() on non archive must fail")
	}
}

func TestIsArchive(t *testing.T) {
	zipPath := createZip(t, map[string]string{"a.xml": "<view/>"})
	plain := filepath.Join(t.TempDir(), "a.zip")
	if err := os.WriteFile(plain, []byte("<view/>"), 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{zipPath, true},
		{plain, false},
		{empty, false},
	}
	for _, tt := range tests {
		got, err := IsArchive(tt.path)
		if err != nil {
			t.Fatalf("IsArchive(%s) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("IsArchive(%s) = %v, want %v", filepath.Base(tt.path), got, tt.want)
		}
	}
	if _, err := IsArchive(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing file must fail")
	}
}
