package graph

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// TrackedDirs returns the top-level directory names committed at HEAD in the
// repository whose worktree root is root.
func TrackedDirs(root string) (map[string]bool, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", root, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD tree: %w", err)
	}

	dirs := make(map[string]bool)
	for _, e := range tree.Entries {
		if e.Mode == filemode.Dir {
			dirs[e.Name] = true
		}
	}
	return dirs, nil
}
