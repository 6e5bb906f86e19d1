package engine

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/nitf-rename/internal/planner"
	"github.com/danieljhkim/nitf-rename/internal/vcs"
)

var (
	errDestinationExists = errors.New("destination already exists")
	errDestinationIsDir  = errors.New("destination is a directory")
)

type applyOptions struct {
	flatten   bool
	overwrite bool

	// tool is nil for plain filesystem renames.
	tool vcs.Tool
}

// applyTask executes a single task and classifies the result. The existence
// check is repeated here because the filesystem may have changed since the
// plan was validated.
func (e *Engine) applyTask(task planner.Task, opts applyOptions) Outcome {
	outcome := Outcome{Task: task}
	fail := func(err error) Outcome {
		outcome.Status = StatusError
		outcome.Err = err
		return outcome
	}

	if task.Unchanged() {
		outcome.Status = StatusUnchanged
		return outcome
	}

	src, dst := task.Source.Path, task.Destination

	exists, err := e.fs.Exists(dst)
	if err != nil {
		return fail(fmt.Errorf("failed to check destination: %w", err))
	}
	if exists {
		same, err := e.fs.SameFile(src, dst)
		if err != nil {
			return fail(err)
		}
		if same {
			outcome.Status = StatusUnchanged
			return outcome
		}
		if info, err := e.fs.Lstat(dst); err == nil && info.IsDir() {
			return fail(errDestinationIsDir)
		}
		if !opts.overwrite {
			return fail(errDestinationExists)
		}
	}

	if !opts.flatten {
		if err := e.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fail(fmt.Errorf("failed to create directory: %w", err))
		}
	}

	if err := e.move(src, dst, exists, opts.tool); err != nil {
		return fail(err)
	}

	outcome.Status = StatusRenamed
	return outcome
}

// move renames src to dst, through the VCS tool when one is configured.
// With a tool an existing destination is removed first so the tool does not
// refuse the move.
func (e *Engine) move(src, dst string, dstExists bool, tool vcs.Tool) error {
	if tool == nil {
		return e.fs.Rename(src, dst)
	}

	if dstExists {
		if err := tool.Remove(dst); err != nil {
			return fmt.Errorf("failed to remove destination: %w", err)
		}
	}
	return tool.Move(src, dst)
}
