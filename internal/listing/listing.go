// Package listing converts between collected entries and the plain-text
// buffer the user edits: one path per line, in collection order.
package listing

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/nitf-rename/internal/collect"
)

// IntegrityError reports a discovered path that cannot be represented on a
// single line of the listing.
type IntegrityError struct {
	Path string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("file name contains a newline, cannot be listed: %q", e.Path)
}

// Encode renders one line per entry. With flatten only the basename is
// written, otherwise the path relative to the entry's root.
//
// Any entry whose line would contain a newline fails the whole encoding with
// an *IntegrityError; nothing is returned in that case.
func Encode(entries []collect.Entry, flatten bool) ([]byte, error) {
	var b strings.Builder
	for _, e := range entries {
		line, err := lineFor(e, flatten)
		if err != nil {
			return nil, err
		}
		if strings.Contains(line, "\n") {
			return nil, &IntegrityError{Path: e.Path}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

func lineFor(e collect.Entry, flatten bool) (string, error) {
	if flatten {
		return filepath.Base(e.Path), nil
	}
	rel, err := filepath.Rel(e.Root, e.Path)
	if err != nil {
		return "", fmt.Errorf("failed to compute path relative to %s: %w", e.Root, err)
	}
	return rel, nil
}

// Decode splits an edited buffer back into lines. A single trailing newline
// is dropped; each line is normalized (separators canonicalized, redundant
// separators and "."/".." segments resolved) but whitespace is kept.
// An empty line decodes to ".".
func Decode(data []byte) []string {
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}

	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = filepath.Clean(filepath.FromSlash(line))
	}
	return lines
}
