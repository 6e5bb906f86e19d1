package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/nitf-rename/internal/collect"
	"github.com/danieljhkim/nitf-rename/internal/fsops"
)

// Options controls how destinations are computed and checked.
type Options struct {
	// Flatten keeps each file in its directory; only the basename is edited.
	Flatten bool

	// Overwrite allows destinations that are existing, different files.
	// A directory is never a valid destination.
	Overwrite bool
}

// Build reconciles entries with the edited lines.
//
// Lines are paired with entries by index only. When the counts differ the
// plan carries a single ConflictLineCount and no destination is computed.
func Build(fs fsops.FS, entries []collect.Entry, lines []string, opts Options) *Plan {
	plan := &Plan{}

	if len(lines) != len(entries) {
		plan.AddConflict(Conflict{
			Kind:   ConflictLineCount,
			Reason: fmt.Sprintf("found %d lines, expected %d", len(lines), len(entries)),
		})
		return plan
	}

	for i, entry := range entries {
		plan.AddTask(Task{
			Line:        i + 1,
			Source:      entry,
			Destination: Destination(entry, lines[i], opts.Flatten),
		})
	}

	checkEmpty(plan, lines)
	checkDuplicates(plan)
	NewConflictChecker(fs).checkDestinations(plan, opts.Overwrite)

	return plan
}

// Destination computes where entry goes given its edited line.
func Destination(entry collect.Entry, line string, flatten bool) string {
	if flatten {
		return filepath.Join(filepath.Dir(entry.Path), filepath.Base(line))
	}
	if filepath.IsAbs(line) {
		return filepath.Clean(line)
	}
	return filepath.Join(entry.Root, line)
}

func checkEmpty(plan *Plan, lines []string) {
	for i, line := range lines {
		if line == "." {
			plan.AddConflict(Conflict{
				Kind:   ConflictEmpty,
				Line:   i + 1,
				Reason: "empty name",
			})
		}
	}
}

// checkDuplicates reports every line whose destination is shared with
// another line.
func checkDuplicates(plan *Plan) {
	lineNumbers := make(map[string][]int, len(plan.Tasks))
	for _, t := range plan.Tasks {
		lineNumbers[t.Destination] = append(lineNumbers[t.Destination], t.Line)
	}

	for _, t := range plan.Tasks {
		lines := lineNumbers[t.Destination]
		if len(lines) < 2 {
			continue
		}
		var others []string
		for _, n := range lines {
			if n != t.Line {
				others = append(others, fmt.Sprintf("%d", n))
			}
		}
		plan.AddConflict(Conflict{
			Kind:   ConflictDuplicate,
			Line:   t.Line,
			Path:   t.Destination,
			Reason: fmt.Sprintf("duplicate destination, also on line %s", strings.Join(others, ", ")),
		})
	}
}

// ConflictChecker checks destinations against what is already on disk.
type ConflictChecker struct {
	fs fsops.FS
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(fs fsops.FS) *ConflictChecker {
	return &ConflictChecker{fs: fs}
}

// CheckPath returns a conflict if moving src to dst would replace a
// different existing file, or nil if the destination is free or is src
// itself.
func (c *ConflictChecker) CheckPath(src, dst string) *Conflict {
	exists, err := c.fs.Exists(dst)
	if err != nil {
		return &Conflict{
			Kind:   ConflictExists,
			Path:   dst,
			Reason: fmt.Sprintf("failed to check destination: %v", err),
		}
	}
	if !exists {
		return nil
	}

	same, err := c.fs.SameFile(src, dst)
	if err != nil {
		return &Conflict{
			Kind:   ConflictExists,
			Path:   dst,
			Reason: fmt.Sprintf("failed to compare with destination: %v", err),
		}
	}
	if same {
		return nil
	}

	return &Conflict{
		Kind:   ConflictExists,
		Path:   dst,
		Reason: "destination already exists",
	}
}

// CheckDirectory returns a conflict if dst is an existing directory. A file
// cannot replace a directory, and removing it through a VCS tool would drop
// everything below it.
func (c *ConflictChecker) CheckDirectory(dst string) *Conflict {
	info, err := c.fs.Lstat(dst)
	if err != nil || !info.IsDir() {
		return nil
	}
	return &Conflict{
		Kind:   ConflictDirectory,
		Path:   dst,
		Reason: "destination is a directory",
	}
}

// checkDestinations reports directory destinations always, and existing
// files unless overwrite is set.
func (c *ConflictChecker) checkDestinations(plan *Plan, overwrite bool) {
	for _, t := range plan.Tasks {
		if t.Unchanged() {
			continue
		}
		conflict := c.CheckDirectory(t.Destination)
		if conflict == nil && !overwrite {
			conflict = c.CheckPath(t.Source.Path, t.Destination)
		}
		if conflict != nil {
			conflict.Line = t.Line
			plan.AddConflict(*conflict)
		}
	}
}
