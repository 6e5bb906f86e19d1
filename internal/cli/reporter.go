package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/nitf-rename/internal/editor"
	"github.com/danieljhkim/nitf-rename/internal/engine"
	"github.com/danieljhkim/nitf-rename/internal/planner"
	"github.com/danieljhkim/nitf-rename/internal/vcs"
)

// terminalReporter prints progress and asks before re-opening the editor.
// Errors always go to errOut; --quiet hides everything else except a summary
// on failure.
type terminalReporter struct {
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
	quiet  bool
}

func newTerminalReporter(out, errOut io.Writer, in io.Reader, quiet bool) *terminalReporter {
	return &terminalReporter{
		out:    out,
		errOut: errOut,
		in:     bufio.NewReader(in),
		quiet:  quiet,
	}
}

// Rejected prints the conflicts of a round and waits for Enter. EOF or an
// interrupt cancels the run.
func (r *terminalReporter) Rejected(ctx context.Context, conflicts []planner.Conflict) error {
	PrintSection(r.errOut, "The edited listing cannot be applied")
	for _, c := range conflicts {
		PrintError(r.errOut, describeConflict(c))
	}
	_, _ = fmt.Fprintln(r.errOut)
	_, _ = fmt.Fprint(r.errOut, "Press Enter to edit again, or Ctrl-C to cancel: ")

	// On interrupt the read stays blocked on stdin; the process exits right
	// after a cancel, so it is never waited for.
	answered := make(chan error, 1)
	go func() {
		_, err := r.in.ReadString('\n')
		answered <- err
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(r.errOut)
		return editor.ErrCanceled
	case err := <-answered:
		if err != nil {
			_, _ = fmt.Fprintln(r.errOut)
			return editor.ErrCanceled
		}
		return nil
	}
}

func describeConflict(c planner.Conflict) string {
	switch c.Kind {
	case planner.ConflictLineCount:
		return "line count changed: " + c.Reason
	case planner.ConflictEmpty:
		return fmt.Sprintf("line %d: %s", c.Line, c.Reason)
	default:
		return fmt.Sprintf("line %d: %s: %s", c.Line, c.Reason, c.Path)
	}
}

// Applied prints one task outcome.
func (r *terminalReporter) Applied(o engine.Outcome) {
	src := displayPath(o.Task.Source.Root, o.Task.Source.Path)
	dst := displayPath(o.Task.Source.Root, o.Task.Destination)

	switch o.Status {
	case engine.StatusError:
		PrintError(r.errOut, fmt.Sprintf("error: %s -> %s: %v", src, dst, o.Err))
	case engine.StatusRenamed:
		if !r.quiet {
			PrintSuccess(r.out, fmt.Sprintf("renamed: %s -> %s", src, dst))
		}
	case engine.StatusUnchanged:
		if !r.quiet {
			PrintEmptyState(r.out, "unchanged: "+src)
		}
	}
}

// Pruned prints a directory removal or its failure.
func (r *terminalReporter) Pruned(dir string, err error) {
	if err != nil {
		PrintError(r.errOut, fmt.Sprintf("failed to remove empty directory %s: %v", dir, err))
		return
	}
	if !r.quiet {
		PrintInfo(r.out, "removed empty directory: "+dir)
	}
}

// Summary prints the totals of a finished run.
func (r *terminalReporter) Summary(result *engine.RenameResult) {
	if r.quiet && result.OK() {
		return
	}
	msg := fmt.Sprintf("%s, %d unchanged, %s",
		PrintCount(result.Renamed, "file renamed", "files renamed"),
		result.Unchanged,
		PrintCount(result.Errors, "error", "errors"),
	)
	if result.VCS != "" && result.VCS != vcs.ModeNone {
		msg += fmt.Sprintf(" (via %s)", result.VCS)
	}
	if result.OK() {
		PrintSuccess(r.out, msg)
		return
	}
	PrintWarning(r.errOut, msg)
}

// displayPath shows p relative to root when it lies under it.
func displayPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}
