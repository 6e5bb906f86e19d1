// Package collect discovers the files offered for renaming.
//
// Collect walks each search path and returns an ordered, de-duplicated list of
// entries. The order is the only link between a source file and its line in
// the edited listing, so it must stay stable for the whole run.
package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Entry is a discovered file together with the search root it was found under.
// Both fields are absolute paths.
type Entry struct {
	Root string
	Path string
}

// Filter selects which files are collected.
type Filter struct {
	// Include, when set, must match the filename for it to be collected.
	Include *regexp.Regexp

	// Exclude drops any filename it matches. It takes precedence over Include.
	Exclude *regexp.Regexp

	// Recursive descends into subdirectories whose name does not start with a dot.
	Recursive bool
}

// Collect returns the files under searchPaths that pass the filter.
//
// A directory contributes its files (in lexical order); a regular file given
// directly is collected with its parent directory as root. The same absolute
// path is only collected once, at its first occurrence.
func Collect(searchPaths []string, filter Filter) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]bool)

	add := func(root, path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		entries = append(entries, Entry{Root: root, Path: path})
	}

	for _, sp := range searchPaths {
		abs, err := filepath.Abs(sp)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path of %s: %w", sp, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to stat search path: %w", err)
		}

		if !info.IsDir() {
			if filter.matches(filepath.Base(abs)) {
				add(filepath.Dir(abs), abs)
			}
			continue
		}

		if err := walk(abs, abs, filter, add); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// walk visits dir and, when recursive, its visible subdirectories. Files of a
// directory are emitted before descending so a listing reads top-down.
func walk(root, dir string, filter Filter, add func(root, path string)) error {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var subdirs []string
	for _, de := range dirEntries {
		name := de.Name()
		path := filepath.Join(dir, name)

		if de.IsDir() {
			if filter.Recursive && !strings.HasPrefix(name, ".") {
				subdirs = append(subdirs, path)
			}
			continue
		}

		if !isFileLike(de, path) {
			continue
		}
		if filter.matches(name) {
			add(root, path)
		}
	}

	for _, sub := range subdirs {
		if err := walk(root, sub, filter, add); err != nil {
			return err
		}
	}
	return nil
}

// isFileLike accepts regular files and symlinks that do not point at a directory.
func isFileLike(de os.DirEntry, path string) bool {
	if de.Type().IsRegular() {
		return true
	}
	if de.Type()&os.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	if err != nil {
		// Dangling links can still be renamed.
		return true
	}
	return !target.IsDir()
}

func (f Filter) matches(name string) bool {
	if f.Exclude != nil && f.Exclude.MatchString(name) {
		return false
	}
	if f.Include != nil && !f.Include.MatchString(name) {
		return false
	}
	return true
}

// CompilePattern compiles a filename pattern the way filters expect it:
// case-insensitive and anchored at the start of the name, so the default
// exclude `\.` only drops names beginning with a dot.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)^(?:` + pattern + `)`)
}
