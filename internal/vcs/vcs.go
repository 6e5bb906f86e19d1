// Package vcs performs renames through a version control tool so history is
// kept, and locates the repository a search path belongs to.
package vcs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Mode selects how moves are executed.
type Mode string

const (
	ModeNone Mode = "none"
	ModeAuto Mode = "auto"
	ModeGit  Mode = "git"
	ModeHg   Mode = "hg"
	ModeSvn  Mode = "svn"
)

// Modes lists the accepted values in the order they are shown to users.
var Modes = []Mode{ModeNone, ModeAuto, ModeGit, ModeHg, ModeSvn}

// ParseMode validates a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("invalid vcs %q (choose from %s)", s, strings.Join(names, ", "))
}

// Marker returns the metadata directory that identifies a repository of this mode.
func (m Mode) Marker() string {
	switch m {
	case ModeGit:
		return ".git"
	case ModeHg:
		return ".hg"
	case ModeSvn:
		return ".svn"
	default:
		return ""
	}
}

// Discover walks up from start looking for a directory containing one of the
// markers of modes. It returns the repository root and its mode, or ok=false
// when the filesystem root is reached without a match.
func Discover(start string, modes []Mode) (root string, mode Mode, ok bool, err error) {
	absPath, err := filepath.Abs(start)
	if err != nil {
		return "", "", false, fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	if info, err := os.Stat(current); err == nil && !info.IsDir() {
		current = filepath.Dir(current)
	}

	for {
		for _, m := range modes {
			marker := m.Marker()
			if marker == "" {
				continue
			}
			// .git can be a file for worktrees and submodules.
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current, m, true, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", "", false, nil
		}
		current = parent
	}
}

// Resolve turns ModeAuto into a concrete mode by probing from start.
// Any other mode is returned unchanged; an unresolved auto becomes ModeNone.
func Resolve(mode Mode, start string) (Mode, error) {
	if mode != ModeAuto {
		return mode, nil
	}
	_, found, ok, err := Discover(start, []Mode{ModeGit, ModeHg, ModeSvn})
	if err != nil {
		return ModeNone, err
	}
	if !ok {
		return ModeNone, nil
	}
	return found, nil
}

// Runner executes an external command in dir.
type Runner interface {
	Run(dir, name string, args ...string) error
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// Run executes the command, returning stderr in the error on failure.
func (ExecRunner) Run(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s %s: %w", name, args[0], err)
		}
		return fmt.Errorf("%s %s: %w: %s", name, args[0], err, msg)
	}
	return nil
}

// Tool moves and removes paths through a version control tool.
type Tool interface {
	// Remove force-removes a path, dropping it from the repository.
	Remove(path string) error

	// Move renames src to dst, recording the rename in the repository.
	Move(src, dst string) error
}

type command struct {
	name       string
	removeArgs []string
	moveArgs   []string
}

var commands = map[Mode]command{
	ModeGit: {name: "git", removeArgs: []string{"rm", "-f", "--quiet", "--"}, moveArgs: []string{"mv", "--"}},
	ModeHg:  {name: "hg", removeArgs: []string{"remove", "--force"}, moveArgs: []string{"rename"}},
	ModeSvn: {name: "svn", removeArgs: []string{"delete", "--force"}, moveArgs: []string{"move", "--parents"}},
}

type cliTool struct {
	cmd    command
	runner Runner
}

// NewTool returns the Tool for a concrete mode. ModeNone and ModeAuto have no
// tool; callers resolve auto first and use plain renames for none.
func NewTool(mode Mode, runner Runner) (Tool, error) {
	cmd, ok := commands[mode]
	if !ok {
		return nil, fmt.Errorf("no version control tool for mode %q", mode)
	}
	return &cliTool{cmd: cmd, runner: runner}, nil
}

func (t *cliTool) Remove(path string) error {
	args := append(append([]string{}, t.cmd.removeArgs...), path)
	return t.runner.Run(filepath.Dir(path), t.cmd.name, args...)
}

func (t *cliTool) Move(src, dst string) error {
	args := append(append([]string{}, t.cmd.moveArgs...), src, dst)
	return t.runner.Run(filepath.Dir(src), t.cmd.name, args...)
}

// FakeRunner records commands instead of executing them, for testing.
type FakeRunner struct {
	Calls [][]string
	err   error
}

// NewFakeRunner creates a new FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// SetError sets an error to be returned by every Run.
func (r *FakeRunner) SetError(err error) {
	r.err = err
}

// Run records the command line.
func (r *FakeRunner) Run(dir, name string, args ...string) error {
	r.Calls = append(r.Calls, append([]string{name}, args...))
	return r.err
}
