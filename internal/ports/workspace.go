package ports

import "context"

// WorkspaceInfo holds repository context detected for a session.
type WorkspaceInfo struct {
	Repository string
	Branch     string
	Commit     string
}

// WorkspaceDetector detects the repository context of the working
// directory, used to tag completed work sessions.
// This is a driven port (implemented by adapters).
type WorkspaceDetector interface {
	// Detect scans the working directory for repository context.
	Detect(ctx context.Context, workingDir string) (*WorkspaceInfo, error)

	// IsAvailable checks whether a repository is reachable from the current
	// directory.
	IsAvailable() bool
}
