package engine

import "errors"

var (
	// ErrRenameFailed indicates at least one task could not be applied.
	ErrRenameFailed = errors.New("some files could not be renamed")

	// ErrNoVCSTool indicates a VCS mode without a matching tool.
	ErrNoVCSTool = errors.New("no version control tool")
)
