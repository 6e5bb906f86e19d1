// Package engine provides the core rename workflow of nitf-rename.
//
// The engine sits between the CLI and the lower-level packages. It collects
// the files, writes the listing, drives the edit/validate loop, applies the
// validated plan and prunes emptied directories.
//
// Key components:
//   - Engine: Main orchestrator called by the CLI
//   - Rename: Listing, re-edit loop and application of one batch
//   - Mover: Per-task application with outcome classification
//   - Pruner: Removal of source directories left empty
package engine

import (
	"github.com/danieljhkim/nitf-rename/internal/fsops"
	"github.com/danieljhkim/nitf-rename/internal/vcs"
)

// Engine orchestrates a rename run.
type Engine struct {
	fs     fsops.FS
	runner vcs.Runner

	// tempDir holds the listing file; empty means the system temp directory.
	tempDir string
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, runner vcs.Runner) *Engine {
	return &Engine{
		fs:     fs,
		runner: runner,
	}
}

// SetTempDir overrides where the listing file is created.
func (e *Engine) SetTempDir(dir string) {
	e.tempDir = dir
}
