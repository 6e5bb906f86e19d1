package engine

import (
	"context"

	"github.com/danieljhkim/nitf-rename/internal/collect"
	"github.com/danieljhkim/nitf-rename/internal/editor"
	"github.com/danieljhkim/nitf-rename/internal/planner"
	"github.com/danieljhkim/nitf-rename/internal/vcs"
)

// RenameRequest represents one interactive rename run.
type RenameRequest struct {
	// SearchPaths are the directories (or files) to collect from.
	SearchPaths []string

	// Filter selects the collected files.
	Filter collect.Filter

	// Flatten lists basenames only and keeps files in their directories.
	Flatten bool

	// Overwrite allows replacing existing files.
	Overwrite bool

	// PruneEmpty removes source directories left empty.
	PruneEmpty bool

	// VCS selects plain renames or a version control tool. ModeAuto is
	// resolved from the first search path before the listing is built.
	VCS vcs.Mode

	// Editor is invoked on the listing file once per round.
	Editor editor.Editor

	// Reporter receives diagnostics and outcomes as they happen.
	Reporter Reporter
}

// Reporter is notified while a run progresses.
type Reporter interface {
	// Rejected is called with the conflicts of an invalid round, before the
	// editor is opened again. Returning editor.ErrCanceled ends the run.
	Rejected(ctx context.Context, conflicts []planner.Conflict) error

	// Applied is called once per task, in listing order.
	Applied(o Outcome)

	// Pruned is called for every directory removal attempt.
	Pruned(dir string, err error)
}

// Status classifies the outcome of a task.
type Status string

const (
	StatusRenamed   Status = "renamed"
	StatusUnchanged Status = "unchanged"
	StatusError     Status = "error"
)

// Outcome is the result of applying one task.
type Outcome struct {
	Task   planner.Task
	Status Status

	// Err is set when Status is StatusError.
	Err error
}

// RenameResult contains the result of a rename run.
type RenameResult struct {
	// VCS is the mode used after resolving auto.
	VCS vcs.Mode

	// Collected is the number of files listed.
	Collected int

	// Rounds is how many times the editor was opened.
	Rounds int

	// Canceled is set when the user abandoned editing; nothing was changed.
	Canceled bool

	Renamed   int
	Unchanged int
	Errors    int

	// Pruned lists the directories removed.
	Pruned []string
}

// OK reports whether every task succeeded.
func (r *RenameResult) OK() bool {
	return r.Errors == 0
}
