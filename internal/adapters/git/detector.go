// Package git detects repository context for session tagging using go-git.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/tempo-cli/tempo/internal/ports"
)

// Detector implements the ports.WorkspaceDetector interface using go-git.
type Detector struct{}

// NewDetector creates a new workspace detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Ensure Detector implements ports.WorkspaceDetector.
var _ ports.WorkspaceDetector = (*Detector)(nil)

// Detect scans the working directory for repository context.
func (d *Detector) Detect(ctx context.Context, workingDir string) (*ports.WorkspaceInfo, error) {
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repoPath, err := findRepo(workingDir)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %w", err)
	}

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	branch := head.Name().Short()
	if branch == "HEAD" {
		branch = "detached"
	}

	name := ""
	remotes, err := repo.Remotes()
	if err == nil && len(remotes) > 0 {
		urls := remotes[0].Config().URLs
		if len(urls) > 0 {
			name = repoNameFromURL(urls[0])
		}
	}
	if name == "" {
		name = filepath.Base(repoPath)
	}

	return &ports.WorkspaceInfo{
		Repository: name,
		Branch:     branch,
		Commit:     head.Hash().String(),
	}, nil
}

// IsAvailable checks whether a repository is reachable from the current
// directory.
func (d *Detector) IsAvailable() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	_, err = findRepo(cwd)
	return err == nil
}

// findRepo traverses up the directory tree to find a .git directory.
func findRepo(startPath string) (string, error) {
	currentPath := startPath

	for {
		gitPath := filepath.Join(currentPath, ".git")
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return currentPath, nil
		}

		// A plain file here is a worktree reference.
		if err == nil && !info.IsDir() {
			content, err := os.ReadFile(gitPath)
			if err == nil && strings.HasPrefix(string(content), "gitdir: ") {
				return currentPath, nil
			}
		}

		parent := filepath.Dir(currentPath)
		if parent == currentPath {
			break
		}
		currentPath = parent
	}

	return "", fmt.Errorf("no .git directory found")
}

// repoNameFromURL extracts "user/repo" from a remote URL.
func repoNameFromURL(url string) string {
	if strings.HasPrefix(url, "git@") {
		parts := strings.Split(url, ":")
		if len(parts) >= 2 {
			return strings.TrimSuffix(parts[len(parts)-1], ".git")
		}
	}

	if strings.HasPrefix(url, "http") {
		parts := strings.Split(url, "/")
		if len(parts) >= 2 {
			repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
			return parts[len(parts)-2] + "/" + repo
		}
	}

	return url
}
