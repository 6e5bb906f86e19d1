package planner

import "github.com/danieljhkim/nitf-rename/internal/collect"

// Plan is the outcome of one reconciliation round.
type Plan struct {
	// Tasks is one task per entry, in entry order. Empty when the line count
	// did not match.
	Tasks []Task

	// Conflicts lists every problem found; the plan may only be applied when
	// it is empty.
	Conflicts []Conflict
}

// Task moves one collected file to its destination.
type Task struct {
	// Line is the 1-based line number in the listing.
	Line int

	Source collect.Entry

	// Destination is the absolute path the file moves to.
	Destination string
}

// Unchanged reports whether the destination is literally the source path.
func (t Task) Unchanged() bool {
	return t.Destination == t.Source.Path
}

// ConflictKind classifies a Conflict.
type ConflictKind string

const (
	ConflictLineCount ConflictKind = "line_count"
	ConflictDuplicate ConflictKind = "duplicate"
	ConflictExists    ConflictKind = "exists"
	ConflictEmpty     ConflictKind = "empty"
	ConflictDirectory ConflictKind = "directory"
)

// Conflict represents a problem that forces the user to edit again.
type Conflict struct {
	Kind ConflictKind

	// Line is the 1-based listing line, zero for ConflictLineCount.
	Line int

	// Path is the destination involved, if any.
	Path string

	// Reason is a human-readable explanation of the conflict.
	Reason string
}

// HasConflicts returns true if the plan has any conflicts.
func (p *Plan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddTask adds a task to the plan.
func (p *Plan) AddTask(t Task) {
	p.Tasks = append(p.Tasks, t)
}

// AddConflict adds a conflict to the plan.
func (p *Plan) AddConflict(c Conflict) {
	p.Conflicts = append(p.Conflicts, c)
}
