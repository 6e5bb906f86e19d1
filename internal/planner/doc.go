// Package planner reconciles an edited listing with the collected entries.
//
// The planner pairs every edited line with the entry at the same index,
// computes where each file should end up, and rejects the round when the
// mapping is unsafe. It never touches the filesystem except to look at what
// already exists at a destination.
//
// Key responsibilities:
//   - Reject a listing whose line count differs from the entry count
//   - Compute destinations (relative to the root, or in place with flatten)
//   - Detect destinations shared by more than one line
//   - Detect destinations that would overwrite a different existing file
package planner
