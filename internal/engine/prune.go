package engine

import (
	"path/filepath"

	"github.com/danieljhkim/nitf-rename/internal/fsops"
	"github.com/danieljhkim/nitf-rename/internal/planner"
)

// prune removes source directories that no longer contain anything, hidden
// files included. Directories are visited in task order and consecutive
// repeats are checked once. Only the directory itself is removed, never its
// ancestors. Failures are reported and otherwise ignored.
func (e *Engine) prune(tasks []planner.Task, reporter Reporter) []string {
	var removed []string
	prev := ""

	for _, task := range tasks {
		dir := filepath.Dir(task.Source.Path)
		if dir == prev {
			continue
		}
		prev = dir

		empty, err := fsops.IsEmptyDir(e.fs, dir)
		if err != nil {
			reporter.Pruned(dir, err)
			continue
		}
		if !empty {
			continue
		}

		if err := e.fs.Remove(dir); err != nil {
			reporter.Pruned(dir, err)
			continue
		}
		removed = append(removed, dir)
		reporter.Pruned(dir, nil)
	}

	return removed
}
