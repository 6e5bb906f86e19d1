package listing

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/nitf-rename/internal/collect"
)

func TestEncode(t *testing.T) {
	root := filepath.FromSlash("/data/photos")
	entries := []collect.Entry{
		{Root: root, Path: filepath.Join(root, "b.jpg")},
		{Root: root, Path: filepath.Join(root, "2020", "a b.jpg")},
		{Root: root, Path: filepath.Join(root, "c.jpg")},
	}

	tests := []struct {
		name    string
		flatten bool
		want    string
	}{
		{
			name:    "relative to root",
			flatten: false,
			want:    "b.jpg\n" + filepath.Join("2020", "a b.jpg") + "\nc.jpg\n",
		},
		{
			name:    "flatten shows basenames",
			flatten: true,
			want:    "b.jpg\na b.jpg\nc.jpg\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(entries, tt.flatten)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_RejectsNewline(t *testing.T) {
	root := filepath.FromSlash("/data")
	entries := []collect.Entry{
		{Root: root, Path: filepath.Join(root, "ok.txt")},
		{Root: root, Path: filepath.Join(root, "bad\nname.txt")},
	}

	data, err := Encode(entries, false)
	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("Encode() error = %v, want *IntegrityError", err)
	}
	if integrityErr.Path != entries[1].Path {
		t.Errorf("IntegrityError.Path = %q, want %q", integrityErr.Path, entries[1].Path)
	}
	if data != nil {
		t.Errorf("Encode() returned data alongside an error: %q", data)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty buffer", in: "", want: []string{}},
		{name: "only terminator", in: "\n", want: []string{}},
		{name: "trailing newline stripped once", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "second trailing newline is an empty line", in: "a\n\n", want: []string{"a", "."}},
		{name: "spaces kept", in: " lead and trail \n", want: []string{" lead and trail "}},
		{name: "redundant separators collapsed", in: "x//y/./z\n", want: []string{filepath.Join("x", "y", "z")}},
		{name: "parent segments resolved", in: "x/../y\n", want: []string{"y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Decode(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	root := filepath.FromSlash("/r")
	var entries []collect.Entry
	for _, name := range []string{"z", "a", "m", filepath.Join("d", "q"), "b"} {
		entries = append(entries, collect.Entry{Root: root, Path: filepath.Join(root, name)})
	}

	data, err := Encode(entries, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	lines := Decode(data)
	if len(lines) != len(entries) {
		t.Fatalf("Decode() returned %d lines, want %d", len(lines), len(entries))
	}
	for i, e := range entries {
		if got := filepath.Join(root, lines[i]); got != e.Path {
			t.Errorf("line %d maps to %q, want %q", i+1, got, e.Path)
		}
	}
}

func TestEncode_CarriageReturnRoundTrips(t *testing.T) {
	root := filepath.FromSlash("/r")
	path := filepath.Join(root, "odd\rname")

	data, err := Encode([]collect.Entry{{Root: root, Path: path}}, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	lines := Decode(data)
	if len(lines) != 1 || lines[0] != "odd\rname" {
		t.Errorf("Decode() = %q, want the name unchanged", lines)
	}
}
