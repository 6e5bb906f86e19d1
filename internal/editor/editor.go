// Package editor runs the user's editor on the listing file and waits for it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Placeholder is replaced by the listing path in the editor command.
const Placeholder = "{file}"

// ErrCanceled means the user abandoned editing. It is not a failure: nothing
// has been changed on disk.
var ErrCanceled = errors.New("canceled by user")

// Editor opens a file for editing and returns once the user is done with it.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// Command is an editor command template such as `vim {file}` or
// `code --wait {file}`.
type Command struct {
	args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Parse splits a template with shell quoting rules. The template must name at
// least one program and contain Placeholder.
func Parse(template string) (*Command, error) {
	if !strings.Contains(template, Placeholder) {
		return nil, fmt.Errorf("editor command %q must contain %s", template, Placeholder)
	}
	args, err := shellquote.Split(template)
	if err != nil {
		return nil, fmt.Errorf("invalid editor command %q: %w", template, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return &Command{
		args:   args,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Args returns the argv for path.
func (c *Command) Args(path string) []string {
	out := make([]string, len(c.args))
	for i, a := range c.args {
		out[i] = strings.ReplaceAll(a, Placeholder, path)
	}
	return out
}

// Edit runs the editor in the foreground and blocks until it exits.
//
// Cancelling ctx (an interrupt) kills the editor and returns ErrCanceled. A
// non-zero exit status also returns ErrCanceled, matching the way editors
// signal "abort" (vim's :cq).
func (c *Command) Edit(ctx context.Context, path string) error {
	argv := c.Args(path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return ErrCanceled
	}
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ErrCanceled
	}
	return fmt.Errorf("failed to run editor %s: %w", argv[0], err)
}
