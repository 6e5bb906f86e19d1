package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/nitf-rename/internal/collect"
	"github.com/danieljhkim/nitf-rename/internal/editor"
	"github.com/danieljhkim/nitf-rename/internal/listing"
	"github.com/danieljhkim/nitf-rename/internal/planner"
	"github.com/danieljhkim/nitf-rename/internal/vcs"
)

// Rename collects the files, lets the user edit the listing until it
// reconciles cleanly, then applies and optionally prunes.
//
// Per-task failures do not produce an error; they are counted in the result.
// A cancelled edit returns a result with Canceled set and a nil error.
func (e *Engine) Rename(ctx context.Context, req *RenameRequest) (*RenameResult, error) {
	if len(req.SearchPaths) == 0 {
		return nil, fmt.Errorf("no search paths given")
	}

	mode, err := vcs.Resolve(req.VCS, req.SearchPaths[0])
	if err != nil {
		return nil, fmt.Errorf("failed to detect version control: %w", err)
	}
	result := &RenameResult{VCS: mode}

	var tool vcs.Tool
	if mode != vcs.ModeNone {
		tool, err = vcs.NewTool(mode, e.runner)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoVCSTool, err)
		}
	}

	entries, err := collect.Collect(req.SearchPaths, req.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	result.Collected = len(entries)
	if len(entries) == 0 {
		return result, nil
	}

	plan, err := e.edit(ctx, req, entries, result)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		result.Canceled = true
		return result, nil
	}

	opts := applyOptions{flatten: req.Flatten, overwrite: req.Overwrite, tool: tool}
	for _, task := range plan.Tasks {
		outcome := e.applyTask(task, opts)
		switch outcome.Status {
		case StatusRenamed:
			result.Renamed++
		case StatusUnchanged:
			result.Unchanged++
		case StatusError:
			result.Errors++
		}
		req.Reporter.Applied(outcome)
	}

	if req.PruneEmpty {
		result.Pruned = e.prune(plan.Tasks, req.Reporter)
	}

	return result, nil
}

// edit writes the listing and loops editor rounds until a plan without
// conflicts is produced. A nil plan with a nil error means the user canceled.
// The listing file is removed on every return path.
func (e *Engine) edit(ctx context.Context, req *RenameRequest, entries []collect.Entry, result *RenameResult) (*planner.Plan, error) {
	data, err := listing.Encode(entries, req.Flatten)
	if err != nil {
		return nil, err
	}

	path, err := e.fs.CreateTemp(e.tempDir, "nitf-rename-*.txt")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = e.fs.Remove(path)
	}()

	if err := e.fs.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write listing: %w", err)
	}

	opts := planner.Options{Flatten: req.Flatten, Overwrite: req.Overwrite}
	for {
		result.Rounds++
		if err := req.Editor.Edit(ctx, path); err != nil {
			if errors.Is(err, editor.ErrCanceled) {
				return nil, nil
			}
			return nil, err
		}

		edited, err := e.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read listing: %w", err)
		}

		plan := planner.Build(e.fs, entries, listing.Decode(edited), opts)
		if !plan.HasConflicts() {
			return plan, nil
		}

		if err := req.Reporter.Rejected(ctx, plan.Conflicts); err != nil {
			if errors.Is(err, editor.ErrCanceled) {
				return nil, nil
			}
			return nil, err
		}
	}
}
