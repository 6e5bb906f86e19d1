// Package config holds the options of a nitf-rename run and validates them
// before anything touches the filesystem.
//
// Options come from command-line flags. The editor command can also be
// supplied with the NITF_RENAME_EDITOR environment variable.
package config

import (
	"fmt"
	"os"

	"github.com/danieljhkim/nitf-rename/internal/collect"
	"github.com/danieljhkim/nitf-rename/internal/editor"
	"github.com/danieljhkim/nitf-rename/internal/vcs"
)

const (
	// EnvEditor provides the editor command when --editor is not given.
	EnvEditor = "NITF_RENAME_EDITOR"

	// DefaultExclude skips names starting with a dot.
	DefaultExclude = `\.`
)

// ConfigError reports an invalid option. It is always fatal.
type ConfigError struct {
	Option string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Option, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Options contains everything a run is configured with.
type Options struct {
	SearchPaths []string

	// Editor is the editor command template, containing {file}.
	Editor string

	Quiet      bool
	Overwrite  bool
	Recursive  bool
	Flatten    bool
	PruneEmpty bool

	VCS vcs.Mode

	// IncludeFiles and ExcludeFiles are filename regexes; empty disables.
	IncludeFiles string
	ExcludeFiles string
}

// Default returns options with the default VCS mode and exclude pattern.
func Default() *Options {
	return &Options{
		VCS:          vcs.ModeNone,
		ExcludeFiles: DefaultExclude,
	}
}

// ApplyEnv fills options not set on the command line from the environment.
func (o *Options) ApplyEnv() {
	if o.Editor == "" {
		o.Editor = os.Getenv(EnvEditor)
	}
}

// Validated is the compiled form of Options.
type Validated struct {
	Filter collect.Filter
	Editor *editor.Command
}

// Validate checks every option and compiles the patterns and editor command.
// The first problem is returned as a *ConfigError.
func (o *Options) Validate() (*Validated, error) {
	if len(o.SearchPaths) == 0 {
		return nil, &ConfigError{Option: "search paths", Err: fmt.Errorf("at least one is required")}
	}
	for _, p := range o.SearchPaths {
		if _, err := os.Stat(p); err != nil {
			return nil, &ConfigError{Option: "search path", Err: err}
		}
	}

	if o.Editor == "" {
		return nil, &ConfigError{
			Option: "--editor",
			Err:    fmt.Errorf("required (or set %s)", EnvEditor),
		}
	}
	cmd, err := editor.Parse(o.Editor)
	if err != nil {
		return nil, &ConfigError{Option: "--editor", Err: err}
	}

	if _, err := vcs.ParseMode(string(o.VCS)); err != nil {
		return nil, &ConfigError{Option: "--vcs", Err: err}
	}

	filter := collect.Filter{Recursive: o.Recursive}
	if o.IncludeFiles != "" {
		if filter.Include, err = collect.CompilePattern(o.IncludeFiles); err != nil {
			return nil, &ConfigError{Option: "--include-files", Err: err}
		}
	}
	if o.ExcludeFiles != "" {
		if filter.Exclude, err = collect.CompilePattern(o.ExcludeFiles); err != nil {
			return nil, &ConfigError{Option: "--exclude-files", Err: err}
		}
	}

	return &Validated{Filter: filter, Editor: cmd}, nil
}
