package collect

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(rel), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func mustPattern(t *testing.T, p string) *Filter {
	t.Helper()
	re, err := CompilePattern(p)
	if err != nil {
		t.Fatalf("CompilePattern(%q) error = %v", p, err)
	}
	return &Filter{Exclude: re}
}

func relPaths(t *testing.T, entries []Entry) []string {
	t.Helper()
	out := make([]string, len(entries))
	for i, e := range entries {
		rel, err := filepath.Rel(e.Root, e.Path)
		if err != nil {
			t.Fatalf("Rel() error = %v", err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b.txt",
		"a.txt",
		".hidden",
		"sub/c.txt",
		"sub/deeper/d.txt",
		".git/config",
	)

	defaultFilter := mustPattern(t, `\.`)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "non-recursive skips dotfiles",
			filter: *defaultFilter,
			want:   []string{"a.txt", "b.txt"},
		},
		{
			name:   "recursive descends visible dirs",
			filter: Filter{Exclude: defaultFilter.Exclude, Recursive: true},
			want:   []string{"a.txt", "b.txt", "sub/c.txt", "sub/deeper/d.txt"},
		},
		{
			name:   "no exclude keeps dotfiles",
			filter: Filter{},
			want:   []string{".hidden", "a.txt", "b.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Collect([]string{root}, tt.filter)
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			got := relPaths(t, entries)
			if !equalStrings(got, tt.want) {
				t.Errorf("Collect() = %v, want %v", got, tt.want)
			}
			for _, e := range entries {
				if e.Root != root {
					t.Errorf("entry root = %q, want %q", e.Root, root)
				}
			}
		})
	}
}

func TestCollect_IncludeIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "IMG_001.JPG", "img_002.jpg", "notes.txt")

	include, err := CompilePattern(`img_`)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := Collect([]string{root}, Filter{Include: include})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	got := relPaths(t, entries)
	want := []string{"IMG_001.JPG", "img_002.jpg"}
	if !equalStrings(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
}

func TestCollect_DeduplicatesAcrossSearchPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.txt", "sub/b.txt")

	entries, err := Collect(
		[]string{root, filepath.Join(root, "sub"), filepath.Join(root, "a.txt")},
		Filter{Recursive: true},
	)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Collect() returned %d entries, want 2: %v", len(entries), entries)
	}
	if entries[1].Root != root {
		t.Errorf("first occurrence should keep its root, got %q", entries[1].Root)
	}
}

func TestCollect_FileArgument(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "single.txt")

	entries, err := Collect([]string{filepath.Join(root, "single.txt")}, Filter{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Root != root {
		t.Errorf("Collect() = %v, want one entry rooted at %s", entries, root)
	}
}

func TestCollect_MissingSearchPath(t *testing.T) {
	if _, err := Collect([]string{filepath.Join(t.TempDir(), "nope")}, Filter{}); err == nil {
		t.Error("expected error for missing search path")
	}
}

func TestCompilePattern_AnchorsAtStart(t *testing.T) {
	re, err := CompilePattern(`\.`)
	if err != nil {
		t.Fatal(err)
	}
	if re.MatchString("file.txt") {
		t.Error("default exclude should not match a dot inside the name")
	}
	if !re.MatchString(".bashrc") {
		t.Error("default exclude should match a leading dot")
	}
}
