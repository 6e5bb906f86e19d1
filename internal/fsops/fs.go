// Package fsops provides the filesystem operations used by nitf-rename.
//
// All filesystem access by the reconciler, mover and pruner goes through the
// FS interface so those components can be tested against a fake and so the
// checks they share (existence, same-file identity, emptiness) have one
// implementation.
package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// FS provides an abstraction for filesystem operations.
type FS interface {
	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// Exists checks if a path exists (without following symlinks).
	Exists(path string) (bool, error)

	// SameFile reports whether a and b name the same underlying file.
	// Both paths must exist; a missing path yields false and no error.
	SameFile(a, b string) (bool, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Rename moves oldpath to newpath.
	Rename(oldpath, newpath string) error

	// Remove removes a file or empty directory.
	Remove(path string) error

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, truncating it if it exists.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// CreateTemp creates a new empty file in dir (the system temp directory
	// when dir is empty) and returns its path.
	CreateTemp(dir, pattern string) (string, error)
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Lstat returns file info without following symlinks.
func (r *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Exists checks if a path exists. A path running through a regular file
// cannot exist and reports false.
func (r *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}

// SameFile compares device and inode of both paths. On a case-insensitive
// filesystem "A.txt" and "a.txt" resolve to the same file.
func (r *RealFS) SameFile(a, b string) (bool, error) {
	ai, err := os.Lstat(a)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", a, err)
	}
	bi, err := os.Lstat(b)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", b, err)
	}
	return os.SameFile(ai, bi), nil
}

// MkdirAll creates a directory and all parent directories.
func (r *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Rename moves oldpath to newpath.
func (r *RealFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove removes a file or empty directory.
func (r *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// ReadDir lists the entries of a directory, hidden files included.
func (r *RealFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadFile reads the entire contents of a file.
func (r *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path.
func (r *RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// CreateTemp creates a new empty file and returns its path.
func (r *RealFS) CreateTemp(dir, pattern string) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}

// IsEmptyDir reports whether path is an existing directory with no entries.
// A missing directory is reported as not empty with no error.
func IsEmptyDir(fsys FS, path string) (bool, error) {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return len(entries) == 0, nil
}
